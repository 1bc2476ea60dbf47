package output

import (
	"bytes"
	"encoding/csv"
	"sort"
	"strconv"

	"github.com/retireplan/spendgo/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per scenario).
type CSVSummarizer struct{}

// Name returns the formatter's registered name
func (c CSVSummarizer) Name() string { return "csv" }

// Format writes one summary row per schedule, sorted by scenario name
func (c CSVSummarizer) Format(set *domain.ScheduleSet) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "FirstYearSpending", "FinalYearSpending", "LifetimeSpending", "GoGoTotal", "SlowGoTotal", "NoGoTotal", "PeakYear", "PeakAmount", "SurvivorYears"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	schedules := append([]domain.SpendingSchedule(nil), set.Schedules...)
	sort.Slice(schedules, func(i, j int) bool { return schedules[i].ScenarioName < schedules[j].ScenarioName })
	for i := range schedules {
		s := schedules[i].Summarize()
		row := []string{
			s.ScenarioName,
			s.FirstYearSpending.StringFixed(2),
			s.FinalYearSpending.StringFixed(2),
			s.TotalSpending.StringFixed(2),
			s.GoGoTotal.StringFixed(2),
			s.SlowGoTotal.StringFixed(2),
			s.NoGoTotal.StringFixed(2),
			strconv.Itoa(s.PeakYear),
			s.PeakAmount.StringFixed(2),
			strconv.Itoa(s.SurvivorYears),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
