package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/retireplan/spendgo/internal/domain"
)

// GenerateReport renders the schedule set in the requested format. Console
// formats stream to stdout; file formats land in a timestamped file in the
// working directory.
func GenerateReport(set *domain.ScheduleSet, format string) error {
	formatter := GetFormatterByName(format)
	if formatter == nil {
		return fmt.Errorf("%w: %q (available: %s)",
			ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "))
	}

	switch formatter.Name() {
	case "console-lite", "console":
		data, err := formatter.Format(set)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	default:
		filename, err := WriteFormatted(formatter, set, extensionFor(formatter.Name()))
		if err != nil {
			return err
		}
		fmt.Printf("Report written to %s\n", filename)
		return nil
	}
}

// WriteFormatted runs the formatter and writes its output to a timestamped
// file in the working directory, returning the filename.
func WriteFormatted(formatter Formatter, set *domain.ScheduleSet, ext string) (string, error) {
	data, err := formatter.Format(set)
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("spending_schedule_%s.%s", time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return "", fmt.Errorf("write report %s: %w", filename, err)
	}
	return filename, nil
}

// WriteReportFile renders with the named formatter and writes the payload
// to the given path, creating parent directories as needed.
func WriteReportFile(set *domain.ScheduleSet, format, path string) error {
	data, err := Render(set, format)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create report directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}

// extensionFor maps a formatter name to its file extension.
func extensionFor(name string) string {
	switch name {
	case "csv", "detailed-csv":
		return "csv"
	case "json":
		return "json"
	case "html":
		return "html"
	}
	return "txt"
}

// FormatCurrency formats a decimal as currency
func FormatCurrency(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

// FormatPercentage formats a decimal as percentage
func FormatPercentage(amount decimal.Decimal) string {
	return amount.StringFixed(2) + "%"
}
