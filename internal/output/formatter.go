package output

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/retireplan/spendgo/internal/domain"
)

// ErrUnsupportedFormat is returned when no formatter matches a requested name.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Formatter renders a schedule set into a byte payload ready to print or
// write to disk.
type Formatter interface {
	Format(set *domain.ScheduleSet) ([]byte, error)
	Name() string
}

// FormatterFunc adapts a plain function to the Formatter interface.
type FormatterFunc struct {
	ID string
	F  func(set *domain.ScheduleSet) ([]byte, error)
}

// Format invokes the wrapped function
func (ff FormatterFunc) Format(set *domain.ScheduleSet) ([]byte, error) {
	return ff.F(set)
}

// Name returns the formatter's registered ID
func (ff FormatterFunc) Name() string {
	return ff.ID
}

// formatAliases maps alternate spellings to canonical formatter names.
var formatAliases = map[string]string{
	"table":           "console-lite",
	"summary":         "console-lite",
	"verbose":         "console",
	"console-verbose": "console",
	"comma":           "csv",
	"csv-detailed":    "detailed-csv",
}

// NormalizeFormatName lowercases a format name and resolves aliases to the
// canonical formatter name.
func NormalizeFormatName(name string) string {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := formatAliases[normalized]; ok {
		return canonical
	}
	return normalized
}

// GetFormatterByName returns the formatter registered under the given name
// or alias, or nil when none matches.
func GetFormatterByName(name string) Formatter {
	switch NormalizeFormatName(name) {
	case "console-lite":
		return ConsoleFormatter{}
	case "console":
		return ConsoleVerboseFormatter{}
	case "csv":
		return CSVSummarizer{}
	case "detailed-csv":
		return DetailedCSVFormatter{}
	case "json":
		return JSONFormatter{}
	case "html":
		return HTMLFormatter{}
	}
	return nil
}

// AvailableFormatterNames lists the canonical formatter names in display
// order.
func AvailableFormatterNames() []string {
	return []string{"console-lite", "console", "csv", "detailed-csv", "json", "html"}
}

// AvailableFormatAliases lists the accepted alternate spellings.
func AvailableFormatAliases() []string {
	aliases := make([]string, 0, len(formatAliases))
	for alias := range formatAliases {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}

// Render formats a schedule set with the named formatter.
func Render(set *domain.ScheduleSet, format string) ([]byte, error) {
	formatter := GetFormatterByName(format)
	if formatter == nil {
		return nil, fmt.Errorf("%w: %q (available: %s)",
			ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "))
	}
	return formatter.Format(set)
}
