package output

import (
	"github.com/goccy/go-json"

	"github.com/retireplan/spendgo/internal/domain"
)

// JSONFormatter emits the full schedule set as indented JSON. Decimal
// amounts serialize as quoted strings, so downstream consumers keep exact
// values.
type JSONFormatter struct{}

// Name returns the formatter's registered name
func (j JSONFormatter) Name() string { return "json" }

// Format marshals the schedule set
func (j JSONFormatter) Format(set *domain.ScheduleSet) ([]byte, error) {
	return json.MarshalIndent(set, "", "  ")
}
