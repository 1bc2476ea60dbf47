package output

import (
	"bytes"
	_ "embed"
	"html/template"
	"time"

	"github.com/shopspring/decimal"

	"github.com/retireplan/spendgo/internal/domain"
)

// HTMLFormatter produces a standalone single-file HTML report.
type HTMLFormatter struct{}

// Name returns the formatter's registered name
func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr": FormatCurrency,
	"pct":  FormatPercentage,
}).Parse(htmlTemplateSource))

// htmlScheduleView pairs a schedule with its precomputed summary so the
// template never recomputes totals.
type htmlScheduleView struct {
	Schedule         *domain.SpendingSchedule
	Summary          domain.ScheduleSummary
	InflationPercent decimal.Decimal
}

// Format renders the embedded report template
func (h HTMLFormatter) Format(set *domain.ScheduleSet) ([]byte, error) {
	var buf bytes.Buffer
	views := make([]htmlScheduleView, 0, len(set.Schedules))
	for i := range set.Schedules {
		views = append(views, htmlScheduleView{
			Schedule:         &set.Schedules[i],
			Summary:          set.Schedules[i].Summarize(),
			InflationPercent: set.Schedules[i].Config.InflationRate.Mul(decimal.NewFromInt(100)),
		})
	}
	data := struct {
		BaseScenarioName string
		Views            []htmlScheduleView
		Recommendation   Recommendation
		Assumptions      []string
		GeneratedAt      string
	}{
		BaseScenarioName: set.BaseScenarioName,
		Views:            views,
		Recommendation:   AnalyzeSchedules(set),
		Assumptions:      DefaultAssumptions,
		GeneratedAt:      time.Now().Format("January 2, 2006 15:04"),
	}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
