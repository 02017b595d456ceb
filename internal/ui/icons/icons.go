package icons

import "github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/notify"

const (
	IconSuccess   = "✓"
	IconError     = "⚠"
	IconInfo      = "ℹ"
	IconSelect    = "▸"
	IconBullet    = "•"
	IconSeparator = "  •  "
	IconUnsaved   = "●"
	IconMatch     = "⟦"
	IconMatchEnd  = "⟧"
)

// ForSeverity returns the status bar icon of a notification
func ForSeverity(s notify.Severity) string {
	switch s {
	case notify.Success:
		return IconSuccess
	case notify.Error:
		return IconError
	default:
		return IconInfo
	}
}
