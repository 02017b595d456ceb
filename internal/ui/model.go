// internal/ui/model.go
// Root Model struct, constructor, and Init
package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/api"
	"github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/catalog"
	"github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/config"
	"github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/history"
	"github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/notify"
	"github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/patterns"
	"github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/query"
	"github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/ui/components/historylist"
	"github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/ui/components/suggestions"
)

// Gateway is the engine client the UI talks to
type Gateway interface {
	FetchCatalog(ctx context.Context) (catalog.Catalog, error)
	FetchRows(ctx context.Context, sel catalog.Selection) (api.Rows, error)
	SaveRows(ctx context.Context, sel catalog.Selection, matrix [][]string) error
	query.Gateway
}

// Model is the root Bubble Tea model
type Model struct {
	// Core state
	width, height int
	config        *config.Config
	gateway       Gateway
	historyStore  *history.Store // nil disables history

	// Notifications
	notes       *notify.Channel
	noteCh      <-chan *notify.Notification
	unsubscribe func()
	note        *notify.Notification

	// Catalog and selection
	catalog   catalog.Catalog
	selection catalog.Selection

	// Pattern table
	table      *patterns.Table
	loadSeq    int
	loading    bool
	saving     bool
	cursor     int
	column     int
	editing    bool
	cellEditor textinput.Model

	// Query
	focus    Focus
	session  query.Session
	input    textarea.Model
	querying bool
	lines    []query.Line
	results  viewport.Model
	lastRaw  any // last parse result or search items

	spinner spinner.Model

	// Popups
	popupStack     *PopupStack
	showAdd        bool
	addInputs      []textinput.Model
	addFields      []string
	addFocus       int
	addSuggestions suggestions.Model
	showHistory    bool
	historyList    historylist.Model
	history        []history.HistoryEntry
	historyTotal   int
	historyFilter  textinput.Model
	showExport     bool
	exportInput    textinput.Model
	showRaw        bool
	rawView        viewport.Model
	showHelp       bool
}

// NewModel creates a new UI model. store may be nil.
func NewModel(cfg *config.Config, gw Gateway, store *history.Store) Model {
	notes := notify.NewChannel()
	ch, unsubscribe := notes.Subscribe()

	ti := textarea.New()
	ti.Placeholder = "Type a date to parse..."
	ti.CharLimit = 5000
	ti.SetHeight(1)
	ti.SetWidth(80)
	ti.ShowLineNumbers = false
	ti.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ti.BlurredStyle.CursorLine = lipgloss.NewStyle()
	ti.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(TextFaint())
	ti.BlurredStyle.Placeholder = lipgloss.NewStyle().Foreground(TextFaint())

	ce := textinput.New()
	ce.Prompt = "edit: "
	ce.CharLimit = 500
	ce.Width = 60

	ei := textinput.New()
	ei.Prompt = "Export to: "
	ei.Placeholder = "patterns.csv"
	ei.CharLimit = 256
	ei.Width = 40

	hf := textinput.New()
	hf.Prompt = "/ "
	hf.Placeholder = "Filter history..."
	hf.CharLimit = 100
	hf.Width = 30

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(AccentColor())

	return Model{
		config:         cfg,
		gateway:        gw,
		historyStore:   store,
		notes:          notes,
		noteCh:         ch,
		unsubscribe:    unsubscribe,
		cellEditor:     ce,
		focus:          FocusTable,
		session:        query.NewSession(gw, notes),
		input:          ti,
		results:        viewport.New(80, 10),
		spinner:        sp,
		popupStack:     NewPopupStack(),
		addSuggestions: suggestions.New(),
		historyList:    historylist.New(),
		historyFilter:  hf,
		exportInput:    ei,
		rawView:        viewport.New(80, 20),
		loading:        true,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.fetchCatalogCmd(),
		m.waitForNotification(),
		m.spinner.Tick,
	)
}

// Close releases the notification subscription
func (m Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

// waitForNotification blocks on the notification subscription and
// delivers the next value as a message
func (m Model) waitForNotification() tea.Cmd {
	ch := m.noteCh
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return nil
		}
		return NotificationMsg{Note: n}
	}
}

// busy reports whether any request is in flight
func (m Model) busy() bool {
	return m.loading || m.saving || m.querying
}
