package output

import (
	"bytes"
	"fmt"

	"github.com/retireplan/spendgo/internal/domain"
)

// ConsoleFormatter renders the compact one-line-per-scenario summary used
// as the default terminal output.
type ConsoleFormatter struct{}

// Name returns the formatter's registered name
func (c ConsoleFormatter) Name() string { return "console-lite" }

// Format renders the schedule set as a short text summary
func (c ConsoleFormatter) Format(set *domain.ScheduleSet) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, "RETIREMENT SPENDING SUMMARY")
	fmt.Fprintln(&buf, "===========================")

	base := set.Base()
	if base == nil {
		fmt.Fprintln(&buf, "No schedules to display")
		return buf.Bytes(), nil
	}

	fmt.Fprintf(&buf, "Base Plan: %s\n\n", base.ScenarioName)

	baseTotal := base.TotalSpending()
	for i := range set.Schedules {
		sched := &set.Schedules[i]
		summary := sched.Summarize()
		fmt.Fprintf(&buf, "%-24s 1st Year: %s | Lifetime: %s | Peak: %s (%d)",
			summary.ScenarioName,
			FormatCurrency(summary.FirstYearSpending),
			FormatCurrency(summary.TotalSpending),
			FormatCurrency(summary.PeakAmount),
			summary.PeakYear)
		if sched != base {
			fmt.Fprintf(&buf, " | Δ %s", FormatCurrency(summary.TotalSpending.Sub(baseTotal)))
		}
		fmt.Fprintln(&buf)
	}

	rec := AnalyzeSchedules(set)
	if rec.ScenarioName != "" && rec.ScenarioName != base.ScenarioName {
		fmt.Fprintf(&buf, "\nRecommended: %s (Δ %s)\n", rec.ScenarioName, FormatCurrency(rec.LifetimeDelta))
	}

	return buf.Bytes(), nil
}
