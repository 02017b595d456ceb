// internal/ui/model_types.go
// Type definitions for the UI layer
package ui

// Focus is the pane receiving key input
type Focus int

const (
	FocusTable Focus = iota
	FocusInput
)

// Popup names used on the popup stack
const (
	popupAdd     = "add"
	popupHistory = "history"
	popupExport  = "export"
	popupRaw     = "raw"
	popupHelp    = "help"
)

// Notification texts raised by the UI itself
const (
	msgSaved         = "Successfully saved patterns!"
	msgNothingToCopy = "Nothing to copy."
	msgNotLoaded     = "Patterns are still loading."
)
