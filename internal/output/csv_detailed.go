package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/retireplan/spendgo/internal/domain"
)

// DetailedCSVFormatter writes every projected year of every schedule, one
// row per scenario-year, in set order. Spreadsheet pivoting is the intended
// consumer, so nominal amounts keep their full precision.
type DetailedCSVFormatter struct{}

// Name returns the formatter's registered name
func (d DetailedCSVFormatter) Name() string { return "detailed-csv" }

// Format writes the year-level rows for the whole set
func (d DetailedCSVFormatter) Format(set *domain.ScheduleSet) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "CalendarYear", "YearOffset", "Phase", "RealPhaseAmount", "NominalAmount", "SurvivorAdjusted", "FinalAmount", "MonthlyAmount"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for i := range set.Schedules {
		sched := &set.Schedules[i]
		for _, year := range sched.Years {
			row := []string{
				sched.ScenarioName,
				strconv.Itoa(year.CalendarYear),
				strconv.Itoa(year.YearOffset),
				year.Phase.String(),
				year.RealPhaseAmount.StringFixed(2),
				year.NominalAmount.String(),
				strconv.FormatBool(year.SurvivorAdjusted),
				year.FinalAmount.StringFixed(2),
				year.MonthlyFinalAmount().StringFixed(2),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
