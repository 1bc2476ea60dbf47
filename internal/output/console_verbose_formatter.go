package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/retireplan/spendgo/internal/domain"
)

// ConsoleVerboseFormatter renders the full year-by-year report via the
// pluggable interface.
type ConsoleVerboseFormatter struct{}

// Name returns the formatter's registered name
func (c ConsoleVerboseFormatter) Name() string { return "console" }

// Format renders every schedule in full, followed by a cross-scenario
// comparison when the set holds more than one.
func (c ConsoleVerboseFormatter) Format(set *domain.ScheduleSet) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf, "RETIREMENT SPENDING PLAN ANALYSIS")
	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range DefaultAssumptions {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	for i := range set.Schedules {
		writeScheduleDetail(&buf, i+1, &set.Schedules[i])
	}

	if len(set.Schedules) > 1 {
		writeSetComparison(&buf, set)
	}

	return buf.Bytes(), nil
}

// writeScheduleDetail prints one scenario's parameters, its year table, and
// the headline summary.
func writeScheduleDetail(buf *bytes.Buffer, index int, sched *domain.SpendingSchedule) {
	fmt.Fprintf(buf, "SCENARIO %d: %s\n", index, sched.ScenarioName)
	fmt.Fprintln(buf, strings.Repeat("=", 50))

	cfg := sched.Config
	fmt.Fprintf(buf, "Target Spend: %s/year | Inflation: %s | Start Year: %d | Horizon: %d years\n",
		FormatCurrency(cfg.TargetSpend),
		FormatPercentage(cfg.InflationRate.Mul(decimal.NewFromInt(100))),
		cfg.StartYear,
		sched.HorizonYears)
	fmt.Fprintf(buf, "Phases: GoGo %dy @ %s%% | SlowGo %dy @ %s%% | NoGo @ %s%%\n",
		cfg.GoGoYears, cfg.GoGoPercent.String(),
		cfg.SlowGoYears, cfg.SlowGoPercent.String(),
		cfg.NoGoPercent.String())
	if sched.Survivor != nil {
		fmt.Fprintf(buf, "Survivor event: offset %d (%d), spending drops to %s%% of the household level\n",
			sched.Survivor.DeathYearOffset,
			cfg.StartYear+sched.Survivor.DeathYearOffset,
			cfg.SurvivorPercent.String())
	}
	fmt.Fprintln(buf)

	if len(sched.Years) == 0 {
		fmt.Fprintln(buf, "No years projected (zero horizon)")
		fmt.Fprintln(buf)
		return
	}

	fmt.Fprintln(buf, "YEAR-BY-YEAR SCHEDULE:")
	fmt.Fprintf(buf, "%-6s %-7s %-8s %15s %15s %12s\n",
		"Year", "Offset", "Phase", "Nominal", "Final", "Monthly")
	fmt.Fprintln(buf, strings.Repeat("-", 70))
	for _, year := range sched.Years {
		marker := ""
		if year.SurvivorAdjusted {
			marker = " *"
		}
		fmt.Fprintf(buf, "%-6d %-7d %-8s %15s %15s %12s%s\n",
			year.CalendarYear,
			year.YearOffset,
			year.Phase.String(),
			FormatCurrency(year.NominalAmount.Round(2)),
			FormatCurrency(year.FinalAmount),
			FormatCurrency(year.MonthlyFinalAmount()),
			marker)
	}
	if sched.SurvivorYearCount() > 0 {
		fmt.Fprintln(buf, "* survivor-adjusted year")
	}
	fmt.Fprintln(buf)

	summary := sched.Summarize()
	fmt.Fprintln(buf, "SUMMARY:")
	fmt.Fprintf(buf, "  First Year:   %s\n", FormatCurrency(summary.FirstYearSpending))
	fmt.Fprintf(buf, "  Final Year:   %s\n", FormatCurrency(summary.FinalYearSpending))
	fmt.Fprintf(buf, "  Peak:         %s (%d)\n", FormatCurrency(summary.PeakAmount), summary.PeakYear)
	fmt.Fprintf(buf, "  Lifetime:     %s\n", FormatCurrency(summary.TotalSpending))
	fmt.Fprintf(buf, "  Phase Totals: GoGo %s | SlowGo %s | NoGo %s\n",
		FormatCurrency(summary.GoGoTotal),
		FormatCurrency(summary.SlowGoTotal),
		FormatCurrency(summary.NoGoTotal))
	if summary.SurvivorYears > 0 {
		fmt.Fprintf(buf, "  Survivor-adjusted years: %d\n", summary.SurvivorYears)
	}
	fmt.Fprintln(buf)
	fmt.Fprintln(buf)
}

// writeSetComparison prints the lifetime outlay of every scenario against
// the base plan plus the recommendation.
func writeSetComparison(buf *bytes.Buffer, set *domain.ScheduleSet) {
	fmt.Fprintln(buf, "SCENARIO COMPARISON")
	fmt.Fprintln(buf, strings.Repeat("=", 50))

	base := set.Base()
	baseTotal := base.TotalSpending()
	for i := range set.Schedules {
		sched := &set.Schedules[i]
		total := sched.TotalSpending()
		if sched == base {
			fmt.Fprintf(buf, "  %-24s %s (base)\n", sched.ScenarioName, FormatCurrency(total))
			continue
		}
		delta := total.Sub(baseTotal)
		sign := ""
		if delta.IsPositive() {
			sign = "+"
		}
		fmt.Fprintf(buf, "  %-24s %s (%s%s vs base)\n",
			sched.ScenarioName, FormatCurrency(total), sign, FormatCurrency(delta))
	}
	fmt.Fprintln(buf)

	rec := AnalyzeSchedules(set)
	if rec.ScenarioName != "" {
		fmt.Fprintf(buf, "Recommended Scenario: %s (%s)\n", rec.ScenarioName, rec.Reason)
	}
	fmt.Fprintln(buf)
}
