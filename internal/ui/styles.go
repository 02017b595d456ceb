// internal/ui/styles.go
package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/config"
	"github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/notify"
)

var (
	textPrimary   lipgloss.Color
	textSecondary lipgloss.Color
	textFaint     lipgloss.Color

	accentColor    lipgloss.Color
	successColor   lipgloss.Color
	errorColor     lipgloss.Color
	highlightColor lipgloss.Color
	warningColor   lipgloss.Color

	bgPrimary   lipgloss.Color
	bgSecondary lipgloss.Color
	cardBg      lipgloss.Color
	borderColor lipgloss.Color

	// Styles
	StatusBarStyle      lipgloss.Style
	ParseModeStyle      lipgloss.Style
	SearchModeStyle     lipgloss.Style
	SelectionStyle      lipgloss.Style
	DependencyStyle     lipgloss.Style
	MetaStyle           lipgloss.Style
	PromptStyle         lipgloss.Style
	InputStyle          lipgloss.Style
	InputFocusedStyle   lipgloss.Style
	PanelTitleStyle     lipgloss.Style
	MatchStyle          lipgloss.Style
	AnnotationStyle     lipgloss.Style
	UnsavedStyle        lipgloss.Style
	PopupStyle          lipgloss.Style
	PopupTitleStyle     lipgloss.Style
	KeyStyle            lipgloss.Style
	KeyDescStyle        lipgloss.Style
	FieldLabelStyle     lipgloss.Style
	notificationStyles  map[notify.Severity]lipgloss.Style
	defaultNotification lipgloss.Style
)

// Color getter functions for use in components
func TextPrimary() lipgloss.Color    { return textPrimary }
func TextSecondary() lipgloss.Color  { return textSecondary }
func TextFaint() lipgloss.Color      { return textFaint }
func AccentColor() lipgloss.Color    { return accentColor }
func SuccessColor() lipgloss.Color   { return successColor }
func ErrorColor() lipgloss.Color     { return errorColor }
func HighlightColor() lipgloss.Color { return highlightColor }
func WarningColor() lipgloss.Color   { return warningColor }
func BgPrimary() lipgloss.Color      { return bgPrimary }
func BgSecondary() lipgloss.Color    { return bgSecondary }
func CardBg() lipgloss.Color         { return cardBg }
func BorderColor() lipgloss.Color    { return borderColor }

// InitStyles initializes the global styles based on the provided configuration theme
func InitStyles(theme config.Theme) {
	textPrimary = lipgloss.Color(theme.TextPrimary)
	textSecondary = lipgloss.Color(theme.TextSecondary)
	textFaint = lipgloss.Color(theme.TextFaint)

	accentColor = lipgloss.Color(theme.Accent)
	successColor = lipgloss.Color(theme.Success)
	errorColor = lipgloss.Color(theme.Error)
	highlightColor = lipgloss.Color(theme.Highlight)
	warningColor = lipgloss.Color(theme.Warning)

	bgPrimary = lipgloss.Color(theme.BgPrimary)
	bgSecondary = lipgloss.Color(theme.BgSecondary)
	cardBg = lipgloss.Color(theme.CardBg)
	borderColor = lipgloss.Color(theme.BorderColor)

	StatusBarStyle = lipgloss.NewStyle().
		Foreground(textPrimary).
		Background(bgSecondary)

	ParseModeStyle = lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Background(successColor).
		Foreground(bgPrimary)

	SearchModeStyle = lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Background(accentColor).
		Foreground(bgPrimary)

	SelectionStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(cardBg).
		Foreground(textPrimary)

	DependencyStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(bgSecondary).
		Foreground(textSecondary)

	MetaStyle = lipgloss.NewStyle().
		Foreground(textFaint).
		Italic(true)

	PromptStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(accentColor).
		MarginRight(1)

	InputStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), true, false, false, false).
		BorderForeground(textFaint)

	InputFocusedStyle = InputStyle.
		BorderForeground(accentColor)

	PanelTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(highlightColor)

	MatchStyle = lipgloss.NewStyle().
		Foreground(bgPrimary).
		Background(highlightColor)

	AnnotationStyle = lipgloss.NewStyle().
		Foreground(textSecondary).
		Italic(true)

	UnsavedStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Bold(true).
		Background(warningColor).
		Foreground(bgPrimary)

	PopupStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accentColor).
		Padding(1, 2)

	PopupTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(accentColor)

	KeyStyle = lipgloss.NewStyle().
		Foreground(successColor).
		Width(16)

	KeyDescStyle = lipgloss.NewStyle().
		Foreground(textSecondary)

	FieldLabelStyle = lipgloss.NewStyle().
		Foreground(textSecondary).
		Width(10)

	defaultNotification = lipgloss.NewStyle().
		Padding(0, 1).
		Background(cardBg).
		Foreground(textPrimary)

	notificationStyles = map[notify.Severity]lipgloss.Style{
		notify.Success: defaultNotification.Background(successColor).Foreground(bgPrimary),
		notify.Error:   defaultNotification.Background(errorColor).Foreground(textPrimary),
		notify.Info:    defaultNotification,
	}
}

// NotificationStyle returns the status bar style of a severity
func NotificationStyle(s notify.Severity) lipgloss.Style {
	if st, ok := notificationStyles[s]; ok {
		return st
	}
	return defaultNotification
}
