package tui

import (
	"github.com/retireplan/spendgo/internal/tui/tuistyles"
)

// Aliases into tuistyles so scene rendering can reference the shared
// palette unqualified. Components import tuistyles directly.
var (
	ColorAccent = tuistyles.ColorAccent
	ChartLine1  = tuistyles.ChartLine1
	ChartLine2  = tuistyles.ChartLine2
	ChartLine3  = tuistyles.ChartLine3
	ChartLine4  = tuistyles.ChartLine4

	TitleStyle          = tuistyles.TitleStyle
	SubtitleStyle       = tuistyles.SubtitleStyle
	StatusBarStyle      = tuistyles.StatusBarStyle
	StatusKeyStyle      = tuistyles.StatusKeyStyle
	BorderStyle         = tuistyles.BorderStyle
	TableHeaderStyle    = tuistyles.TableHeaderStyle
	TableCellStyle      = tuistyles.TableCellStyle
	TableHighlightStyle = tuistyles.TableHighlightStyle
	HelpKeyStyle        = tuistyles.HelpKeyStyle
	HelpDescStyle       = tuistyles.HelpDescStyle
	ErrorStyle          = tuistyles.ErrorStyle
	InfoStyle           = tuistyles.InfoStyle
)

// FormatCurrency renders whole dollars with thousands separators
var FormatCurrency = tuistyles.FormatCurrency
