package ui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/api"
	"github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/catalog"
	"github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/config"
	"github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/history"
	"github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/notify"
	"github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/patterns"
	"github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/query"
	"github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/textdir"
)

type fakeGateway struct {
	cat     catalog.Catalog
	rows    api.Rows
	saveErr error
	saved   [][]string
	parse   api.ParseResult
	search  api.SearchResult
}

func (g *fakeGateway) FetchCatalog(ctx context.Context) (catalog.Catalog, error) {
	return g.cat, nil
}

func (g *fakeGateway) FetchRows(ctx context.Context, sel catalog.Selection) (api.Rows, error) {
	return g.rows, nil
}

func (g *fakeGateway) SaveRows(ctx context.Context, sel catalog.Selection, matrix [][]string) error {
	g.saved = matrix
	return g.saveErr
}

func (g *fakeGateway) Parse(ctx context.Context, sel catalog.Selection, input string, matrix [][]string) api.ParseResult {
	return g.parse
}

func (g *fakeGateway) Search(ctx context.Context, sel catalog.Selection, input string, matrix [][]string) api.SearchResult {
	return g.search
}

func testCatalog() catalog.Catalog {
	return catalog.New(
		catalog.Language{
			ID: "hebrew", Display: "Hebrew", Direction: textdir.RTL,
			Patterns: []catalog.PatternType{
				{Key: "date", Name: "dates", Dependencies: []string{"months"}},
				{Key: "month", Name: "months"},
			},
		},
		catalog.Language{
			ID: "english", Display: "English", Direction: textdir.LTR,
			Patterns: []catalog.PatternType{{Key: "month", Name: "months"}},
		},
	)
}

func testRows() api.Rows {
	return api.Rows{
		Fields: []string{"type", "pattern", "value"},
		Records: []map[string]string{
			{"type": "month", "pattern": "ניסן", "value": "1"},
			{"type": "month", "pattern": "אייר", "value": "2"},
			{"type": "day", "pattern": "ה׳", "value": "5"},
		},
	}
}

func newTestModel(t *testing.T, gw *fakeGateway) Model {
	t.Helper()
	cfg := config.DefaultConfig()
	InitStyles(cfg.Theme)
	m := NewModel(cfg, gw, nil)
	t.Cleanup(m.Close)
	m.width, m.height = 120, 40
	return m
}

// loaded returns a model with the catalog and rows of gw in place
func loaded(t *testing.T, gw *fakeGateway) Model {
	t.Helper()
	m := newTestModel(t, gw)
	m = update(t, m, CatalogLoadedMsg{Catalog: gw.cat})
	m = update(t, m, RowsLoadedMsg{Selection: m.selection, Seq: m.loadSeq, Rows: gw.rows})
	if m.table == nil {
		t.Fatal("expected rows to be loaded")
	}
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func updateCmd(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m = update(t, m, runes(string(r)))
	}
	return m
}

func TestCatalogLoadedSelectsAndFetches(t *testing.T) {
	gw := &fakeGateway{cat: testCatalog(), rows: testRows()}
	m := newTestModel(t, gw)

	m, cmd := updateCmd(t, m, CatalogLoadedMsg{Catalog: gw.cat})
	want := catalog.Selection{Language: "hebrew", PatternType: "dates"}
	if m.selection != want {
		t.Fatalf("selection = %v, want %v", m.selection, want)
	}
	if !m.loading || cmd == nil {
		t.Fatal("expected a rows fetch to start")
	}

	msg, ok := cmd().(RowsLoadedMsg)
	if !ok {
		t.Fatalf("expected RowsLoadedMsg, got %T", cmd())
	}
	m = update(t, m, msg)
	if m.loading || m.table == nil || m.table.Len() != 3 {
		t.Fatalf("expected 3 rows loaded, got %+v", m.table)
	}
}

func TestCatalogLoadedUnknownDefaultFallsBack(t *testing.T) {
	gw := &fakeGateway{cat: testCatalog(), rows: testRows()}
	m := newTestModel(t, gw)
	m.config.DefaultLanguage = "klingon"
	m.config.DefaultPatternType = "months"

	m = update(t, m, CatalogLoadedMsg{Catalog: gw.cat})
	want := catalog.Selection{Language: "hebrew", PatternType: "months"}
	if m.selection != want {
		t.Errorf("selection = %v, want %v", m.selection, want)
	}
}

func TestStaleRowsAreDiscarded(t *testing.T) {
	gw := &fakeGateway{cat: testCatalog(), rows: testRows()}
	m := newTestModel(t, gw)
	m.catalog = gw.cat

	first := catalog.Selection{Language: "hebrew", PatternType: "dates"}
	second := catalog.Selection{Language: "english", PatternType: "months"}
	m, _ = m.loadRows(first)
	firstSeq := m.loadSeq
	m, _ = m.loadRows(second)

	m = update(t, m, RowsLoadedMsg{Selection: first, Seq: firstSeq, Rows: testRows()})
	if m.table != nil {
		t.Fatal("rows of an abandoned selection must be dropped")
	}
	if !m.loading {
		t.Error("still waiting for the current selection")
	}

	m = update(t, m, RowsLoadedMsg{Selection: second, Seq: m.loadSeq, Rows: testRows()})
	if m.table == nil {
		t.Fatal("rows of the current selection should load")
	}
}

func TestStaleQueryResultsAreDiscarded(t *testing.T) {
	gw := &fakeGateway{cat: testCatalog(), rows: testRows()}
	m := loaded(t, gw)
	oldSeq := m.loadSeq

	m, _ = m.selectLanguage(m.catalog.NextLanguage(m.selection))
	if m.selection.Language != "english" {
		t.Fatalf("expected english, got %v", m.selection)
	}

	lines := query.Reshape([]api.SearchItem{{Text: "x"}})
	m = update(t, m, SearchResultMsg{Seq: oldSeq, Outcome: query.SearchOutcome{Lines: lines, OK: true}})
	if len(m.lines) != 0 {
		t.Error("search lines for the old selection must be dropped")
	}
	m = update(t, m, ParseResultMsg{Seq: oldSeq, Outcome: query.ParseOutcome{Matched: true}})
	if m.lastRaw != nil {
		t.Error("parse result for the old selection must be dropped")
	}
}

func TestStaleQueryResultsDoNotNotify(t *testing.T) {
	gw := &fakeGateway{
		cat:    testCatalog(),
		rows:   testRows(),
		parse:  api.ParseResult{Expression: "OLD", Evaluated: "1"},
		search: api.SearchResult{Error: true, Message: "old search failed"},
	}
	m := loaded(t, gw)

	m, parseCmd := m.runQuery()
	m, _ = m.toggleMode()
	m, searchCmd := m.runQuery()
	parsed := parseCmd().(ParseResultMsg)
	searched := searchCmd().(SearchResultMsg)

	m, _ = m.selectLanguage(m.catalog.NextLanguage(m.selection))
	m.notes.Show("current", notify.Info, textdir.LTR)

	m = update(t, m, parsed)
	m = update(t, m, searched)
	if n := m.notes.Current(); n == nil || n.Message != "current" {
		t.Errorf("results of the old selection must not notify, got %+v", n)
	}
}

func TestEditCellWithKeys(t *testing.T) {
	gw := &fakeGateway{cat: testCatalog(), rows: testRows()}
	m := loaded(t, gw)

	// Column 2 is "value"
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = update(t, m, runes("e"))
	if !m.editing {
		t.Fatal("expected the cell editor to open")
	}
	if got := m.cellEditor.Value(); got != "1" {
		t.Fatalf("editor should start with the cell value, got %q", got)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	m = typeText(t, m, "7")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.editing {
		t.Error("enter should close the editor")
	}
	row, _ := m.table.Row(0)
	if got := row.Value("value"); got != "7" {
		t.Errorf("value = %q, want 7", got)
	}
	if !row.Fields["value"].Modified {
		t.Error("edited cell should be modified")
	}
	if !m.table.Modified() {
		t.Error("table should report unsaved changes")
	}
}

func TestEditCancelKeepsValue(t *testing.T) {
	gw := &fakeGateway{cat: testCatalog(), rows: testRows()}
	m := loaded(t, gw)

	m = update(t, m, runes("e"))
	m = typeText(t, m, "zz")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	row, _ := m.table.Row(0)
	if got := row.Value("type"); got != "month" {
		t.Errorf("esc should discard the edit, got %q", got)
	}
}

func TestDeleteTogglesRow(t *testing.T) {
	gw := &fakeGateway{cat: testCatalog(), rows: testRows()}
	m := loaded(t, gw)

	m = update(t, m, runes("j"))
	m = update(t, m, runes("d"))
	row, _ := m.table.Row(1)
	if !row.Deleted {
		t.Fatal("row 1 should be deleted")
	}
	if n := len(m.table.CanonicalMatrix()); n != 2 {
		t.Errorf("canonical matrix has %d rows, want 2", n)
	}

	m = update(t, m, runes("d"))
	row, _ = m.table.Row(1)
	if row.Deleted {
		t.Error("second delete should restore the row")
	}
}

func TestAddRowClustersByType(t *testing.T) {
	gw := &fakeGateway{cat: testCatalog(), rows: testRows()}
	m := loaded(t, gw)

	m = update(t, m, runes("a"))
	if !m.showAdd || m.popupStack.TopName() != popupAdd {
		t.Fatal("expected the add popup")
	}
	if !m.onTypeField() {
		t.Fatal("type should be the first field")
	}

	// "mo" narrows the suggestions to month
	m = typeText(t, m, "mo")
	if got := m.addSuggestions.Items(); len(got) != 1 || got[0] != "month" {
		t.Fatalf("suggestions = %v, want [month]", got)
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if got := m.addInputs[0].Value(); got != "month" {
		t.Fatalf("accepting the suggestion should fill the type, got %q", got)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(t, m, "סיון")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(t, m, "3")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.showAdd || !m.popupStack.IsEmpty() {
		t.Fatal("submitting should close the popup")
	}
	if m.table.Len() != 4 {
		t.Fatalf("expected 4 rows, got %d", m.table.Len())
	}
	if m.cursor != 2 {
		t.Errorf("new month row should sit after the last month, cursor = %d", m.cursor)
	}
	row, _ := m.table.Row(2)
	if !row.Added || row.Value("pattern") != "סיון" || row.Value("value") != "3" {
		t.Errorf("unexpected added row: %+v", row)
	}
	if row.Fields["pattern"].Direction != textdir.RTL {
		t.Error("Hebrew pattern should be RTL")
	}
}

func TestAddPopupEscCancels(t *testing.T) {
	gw := &fakeGateway{cat: testCatalog(), rows: testRows()}
	m := loaded(t, gw)

	m = update(t, m, runes("a"))
	m = typeText(t, m, "year")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.showAdd || m.table.Len() != 3 {
		t.Error("esc should close the popup without adding")
	}
}

func TestSaveSendsCanonicalMatrix(t *testing.T) {
	gw := &fakeGateway{cat: testCatalog(), rows: testRows()}
	m := loaded(t, gw)
	if err := m.table.ToggleDelete(2); err != nil {
		t.Fatal(err)
	}

	m, cmd := updateCmd(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if !m.saving || cmd == nil {
		t.Fatal("expected a save to start")
	}
	msg := cmd().(SaveCompleteMsg)
	if len(gw.saved) != 2 || gw.saved[1][1] != "אייר" {
		t.Errorf("unexpected saved matrix %v", gw.saved)
	}

	m, cmd = updateCmd(t, m, msg)
	if m.saving {
		t.Error("saving flag should clear")
	}
	if n := m.notes.Current(); n == nil || n.Message != msgSaved || n.Severity != notify.Success {
		t.Errorf("unexpected notification %+v", n)
	}
	if cmd == nil || !m.loading {
		t.Error("a successful save reloads the rows")
	}
}

func TestSaveFailureShowsReason(t *testing.T) {
	gw := &fakeGateway{cat: testCatalog(), rows: testRows()}
	m := loaded(t, gw)

	m = update(t, m, SaveCompleteMsg{Selection: m.selection, Err: api.WrapSaveError("Row 3 is invalid", nil)})
	if n := m.notes.Current(); n == nil || n.Message != "Row 3 is invalid" || n.Severity != notify.Error {
		t.Errorf("unexpected notification %+v", n)
	}

	m = update(t, m, SaveCompleteMsg{Selection: m.selection, Err: api.WrapTransportError("PUT", "/x", os.ErrDeadlineExceeded)})
	if n := m.notes.Current(); n == nil || n.Message != api.DefaultSaveReason {
		t.Errorf("unexpected notification %+v", n)
	}
	if m.table == nil || m.loading {
		t.Error("a failed save keeps the table")
	}
}

func TestParseRunsOnEnter(t *testing.T) {
	gw := &fakeGateway{
		cat:   testCatalog(),
		rows:  testRows(),
		parse: api.ParseResult{Expression: "5 Nisan", Evaluated: "1445-04-05"},
	}
	m := loaded(t, gw)
	m, _ = m.switchFocus()
	m = typeText(t, m, "ה׳ ניסן")

	m, cmd := updateCmd(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.querying || cmd == nil {
		t.Fatal("enter should run a parse")
	}
	msg := cmd().(ParseResultMsg)
	if !msg.Outcome.Matched || msg.Entry.Status != history.StatusMatched {
		t.Fatalf("unexpected outcome %+v", msg)
	}
	m = update(t, m, msg)
	if m.querying {
		t.Error("querying flag should clear")
	}
	n := m.notes.Current()
	if n == nil || n.Message != "5 Nisan → 1445-04-05" || n.Direction != textdir.LTR {
		t.Errorf("unexpected notification %+v", n)
	}
	if m.lastRaw == nil {
		t.Error("parse result should be kept for the raw popup")
	}
}

func TestSearchShowsLines(t *testing.T) {
	gw := &fakeGateway{
		cat:  testCatalog(),
		rows: testRows(),
		search: api.SearchResult{Items: []api.SearchItem{
			{Text: "ביום ", Matches: nil},
			{Text: "ה׳ ניסן", Matches: []api.Match{{Parsed: "5 Nisan", Eval: "1445-04-05"}}},
			{Text: "\nnext"},
		}},
	}
	m := loaded(t, gw)
	m, _ = m.toggleMode()
	if m.session.Mode() != query.SearchMode {
		t.Fatal("expected search mode")
	}

	m, cmd := updateCmd(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	msg := cmd().(SearchResultMsg)
	if !msg.Outcome.OK || msg.Entry.Summary != "1 matches" {
		t.Fatalf("unexpected search result %+v", msg)
	}
	m = update(t, m, msg)
	if len(m.lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(m.lines))
	}
	if m.lines[0].Direction() != textdir.RTL {
		t.Error("first line holds Hebrew and should be RTL")
	}
	if !strings.Contains(m.results.View(), "next") {
		t.Error("results viewport should show the lines")
	}
	if got := m.copyText(); got != "ביום ה׳ ניסן\nnext" {
		t.Errorf("copyText() = %q", got)
	}
}

func TestSearchFailureClearsLines(t *testing.T) {
	gw := &fakeGateway{
		cat:    testCatalog(),
		rows:   testRows(),
		search: api.SearchResult{Error: true, Message: "Problem searching the input."},
	}
	m := loaded(t, gw)
	m, _ = m.toggleMode()
	m.lines = query.Reshape([]api.SearchItem{{Text: "old"}})

	m.notes.Show("unrelated", notify.Info, textdir.LTR)
	m, cmd := updateCmd(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	msg := cmd().(SearchResultMsg)
	if msg.Entry.Status != history.StatusError || msg.Entry.Summary != "Problem searching the input." {
		t.Errorf("history entry should carry the failure reason, got %+v", msg.Entry)
	}
	m = update(t, m, msg)
	if len(m.lines) != 0 {
		t.Error("a failed search clears the lines")
	}
	if n := m.notes.Current(); n == nil || n.Severity != notify.Error {
		t.Errorf("expected an error notification, got %+v", n)
	}
}

func TestToggleModeConvertsInput(t *testing.T) {
	gw := &fakeGateway{cat: testCatalog(), rows: testRows()}
	m := loaded(t, gw)

	m.input.SetValue("a   b")
	m, _ = m.toggleMode()
	if got := m.input.Value(); got != "a\nb" {
		t.Errorf("search input = %q, want %q", got, "a\nb")
	}
	if m.input.Height() != 5 {
		t.Errorf("search input height = %d", m.input.Height())
	}

	m, _ = m.toggleMode()
	if got := m.input.Value(); got != "a   b" {
		t.Errorf("parse input = %q, want %q", got, "a   b")
	}
}

func TestTextKeysInInputDoNotTriggerBindings(t *testing.T) {
	gw := &fakeGateway{cat: testCatalog(), rows: testRows()}
	m := loaded(t, gw)
	m, _ = m.switchFocus()

	m = typeText(t, m, "adq")
	if m.showAdd {
		t.Error("typing 'a' in the input must not open the add popup")
	}
	if got := m.input.Value(); got != "adq" {
		t.Errorf("input = %q", got)
	}
}

func TestRunBeforeLoadNotifies(t *testing.T) {
	gw := &fakeGateway{cat: testCatalog(), rows: testRows()}
	m := newTestModel(t, gw)

	m, cmd := updateCmd(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	if cmd != nil || m.querying {
		t.Error("no query without a table")
	}
	if n := m.notes.Current(); n == nil || n.Message != msgNotLoaded {
		t.Errorf("unexpected notification %+v", n)
	}
}

func TestQueryRecordsHistory(t *testing.T) {
	store, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	gw := &fakeGateway{cat: testCatalog(), rows: testRows()}
	m := loaded(t, gw)
	m.historyStore = store
	m.input.SetValue("nothing here")

	m, cmd := m.runQuery()
	msg := cmd().(ParseResultMsg)
	if msg.Outcome.Matched {
		t.Fatal("empty expression is no match")
	}

	entries, err := store.List("hebrew", "dates", 10, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Status != history.StatusNoMatch || e.Mode != "parse" || e.Input != "nothing here" || e.Summary != query.NoMatchMessage {
		t.Errorf("unexpected entry %+v", e)
	}

	// Restoring from the history popup loads the input back
	m.input.SetValue("")
	m, cmd = m.openHistory()
	loadedMsg := HistoryLoadedMsg{}
	for _, msg := range messagesOf(cmd) {
		if hm, ok := msg.(HistoryLoadedMsg); ok {
			loadedMsg = hm
		}
	}
	m = update(t, m, loadedMsg)
	if m.historyTotal != 1 || m.historyList.Len() != 1 {
		t.Fatalf("history popup should list 1 entry, got %d/%d", m.historyList.Len(), m.historyTotal)
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.showHistory {
		t.Error("enter should close the history popup")
	}
	if got := m.input.Value(); got != "nothing here" {
		t.Errorf("restored input = %q", got)
	}
	if m.focus != FocusInput {
		t.Error("restoring focuses the input")
	}
}

// messagesOf runs a command, expanding batches, and collects the messages
func messagesOf(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		out = append(out, messagesOf(c)...)
	}
	return out
}

func TestExportWritesCSV(t *testing.T) {
	gw := &fakeGateway{cat: testCatalog(), rows: testRows()}
	m := loaded(t, gw)
	if err := m.table.ToggleDelete(0); err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	m.config.ExportDir = dir
	msg := m.exportTableCmd("out")().(ExportCompleteMsg)
	if msg.Err != nil {
		t.Fatalf("export: %v", msg.Err)
	}
	if msg.Path != filepath.Join(dir, "out.csv") || msg.Rows != 2 {
		t.Errorf("unexpected result %+v", msg)
	}

	data, err := os.ReadFile(msg.Path)
	if err != nil {
		t.Fatal(err)
	}
	want := "type,pattern,value\nmonth,אייר,2\nday,ה׳,5\n"
	if string(data) != want {
		t.Errorf("csv = %q, want %q", data, want)
	}
}

func TestExportPath(t *testing.T) {
	tests := []struct {
		name, file, dir, want string
	}{
		{"adds extension", "x", "/tmp/e", "/tmp/e/x.csv"},
		{"keeps extension", "x.CSV", "/tmp/e", "/tmp/e/x.CSV"},
		{"absolute ignores dir", "/data/p.csv", "/tmp/e", "/data/p.csv"},
		{"empty name", " ", "/tmp/e", "/tmp/e/patterns.csv"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exportPath(tt.file, tt.dir); got != tt.want {
				t.Errorf("exportPath(%q, %q) = %q, want %q", tt.file, tt.dir, got, tt.want)
			}
		})
	}
}

func TestNotificationMessageUpdatesModel(t *testing.T) {
	gw := &fakeGateway{cat: testCatalog(), rows: testRows()}
	m := newTestModel(t, gw)

	note := &notify.Notification{Message: "hello", Severity: notify.Info}
	m, cmd := updateCmd(t, m, NotificationMsg{Note: note})
	if m.note != note {
		t.Error("model should hold the delivered notification")
	}
	if cmd == nil {
		t.Error("the subscription should be re-armed")
	}
}

func TestViewRendersStatus(t *testing.T) {
	gw := &fakeGateway{cat: testCatalog(), rows: testRows()}
	m := loaded(t, gw)
	if err := m.table.EditCell(0, "value", "9"); err != nil {
		t.Fatal(err)
	}

	view := m.View()
	for _, want := range []string{"PARSE", "hebrew/dates", "needs months", "unsaved", "ניסן"} {
		if !strings.Contains(view, want) {
			t.Errorf("view is missing %q", want)
		}
	}
}

func TestSaveReloadClosesTablePopups(t *testing.T) {
	gw := &fakeGateway{cat: testCatalog(), rows: testRows()}
	m := loaded(t, gw)

	m, saveCmd := updateCmd(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	m, _ = m.openExport()
	if !m.showExport {
		t.Fatal("expected the export popup")
	}

	m = update(t, m, saveCmd())
	if !m.loading || m.table != nil {
		t.Fatal("an untouched table reloads after saving")
	}
	if m.showExport || !m.popupStack.IsEmpty() {
		t.Fatal("popups working on the old table must close on reload")
	}

	// Keys go back to the table pane, which has nothing loaded yet
	m = update(t, m, runes("x"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.table != nil {
		t.Error("no table until the rows arrive")
	}
}

func TestAddPopupSurvivesSave(t *testing.T) {
	gw := &fakeGateway{cat: testCatalog(), rows: testRows()}
	m := loaded(t, gw)

	m, saveCmd := updateCmd(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	m = update(t, m, runes("a"))
	if !m.showAdd {
		t.Fatal("expected the add popup while saving")
	}

	m = update(t, m, saveCmd())
	if m.table == nil || m.loading {
		t.Fatal("an add in progress keeps the table")
	}
	if !m.showAdd || m.popupStack.TopName() != popupAdd {
		t.Fatal("the add popup stays open")
	}

	m = typeText(t, m, "day")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(t, m, "ו׳")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.table.Len() != 4 || !m.table.Modified() {
		t.Errorf("row added after the save should be pending, rows %d", m.table.Len())
	}
}

func TestAddPopupWithoutTableCloses(t *testing.T) {
	gw := &fakeGateway{cat: testCatalog(), rows: testRows()}
	m := loaded(t, gw)
	m, _ = m.openAdd()
	m.table = nil

	m = update(t, m, runes("x"))
	if m.showAdd || !m.popupStack.IsEmpty() {
		t.Error("typing into an add popup with no table should close it")
	}

	m.table = patterns.New([]string{"type"}, nil)
	m, _ = m.openAdd()
	m.table = nil
	m, _ = m.submitAdd()
	if m.showAdd {
		t.Error("submitting without a table should close the popup")
	}
}

func TestEditDuringSaveIsKept(t *testing.T) {
	gw := &fakeGateway{cat: testCatalog(), rows: testRows()}
	m := loaded(t, gw)
	if err := m.table.EditCell(1, "value", "22"); err != nil {
		t.Fatal(err)
	}

	m, saveCmd := updateCmd(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if err := m.table.EditCell(0, "value", "99"); err != nil {
		t.Fatal(err)
	}

	m, cmd := updateCmd(t, m, saveCmd())
	if m.table == nil || m.loading || cmd != nil {
		t.Fatal("a table changed during the save must not be reloaded")
	}
	if n := m.notes.Current(); n == nil || n.Message != msgSaved {
		t.Errorf("unexpected notification %+v", n)
	}

	edited, _ := m.table.Row(0)
	if c := edited.Fields["value"]; c.Value != "99" || !c.Modified {
		t.Errorf("edit made during the save was lost: %+v", c)
	}
	saved, _ := m.table.Row(1)
	if c := saved.Fields["value"]; c.Value != "22" || c.Modified {
		t.Errorf("saved edit should now be the baseline: %+v", c)
	}
}

func TestSaveDropsDeletedRowsAndKeepsCursor(t *testing.T) {
	gw := &fakeGateway{cat: testCatalog(), rows: testRows()}
	m := loaded(t, gw)
	if err := m.table.ToggleDelete(0); err != nil {
		t.Fatal(err)
	}
	m.cursor = 2

	m, saveCmd := updateCmd(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	m, _ = m.startEdit()
	m = typeText(t, m, "0")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m = update(t, m, saveCmd())
	if m.table.Len() != 2 {
		t.Fatalf("the saved deletion should drop the row, got %d rows", m.table.Len())
	}
	if m.cursor != 1 {
		t.Errorf("cursor should follow its row, got %d", m.cursor)
	}
	row, _ := m.table.Row(m.cursor)
	if row.Value("pattern") != "ה׳" {
		t.Errorf("cursor moved to another row: %+v", row)
	}
}

func TestAsyncResultsWhilePopupsOpen(t *testing.T) {
	store, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	openKeys := map[string]tea.KeyMsg{
		popupAdd:     runes("a"),
		popupExport:  {Type: tea.KeyCtrlE},
		popupHistory: {Type: tea.KeyCtrlH},
		popupRaw:     {Type: tea.KeyCtrlO},
		popupHelp:    runes("?"),
		"editor":     runes("e"),
	}

	for name, key := range openKeys {
		for _, async := range []string{"save", "reload"} {
			t.Run(name+"/"+async, func(t *testing.T) {
				gw := &fakeGateway{cat: testCatalog(), rows: testRows()}
				m := loaded(t, gw)
				m.historyStore = store
				m.lastRaw = map[string]string{"expression": "x"}

				var cmd tea.Cmd
				if async == "save" {
					m, cmd = updateCmd(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
				} else {
					m, cmd = updateCmd(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})
				}
				msg := cmd()

				m = update(t, m, key)
				m = update(t, m, msg)

				if m.showAdd && m.table == nil {
					t.Fatal("add popup open without a table")
				}
				if m.showExport && m.table == nil {
					t.Fatal("export popup open without a table")
				}
				if m.editing && m.table == nil {
					t.Fatal("cell editor open without a table")
				}

				// Whatever is left open must still take keys
				for _, k := range []tea.KeyMsg{runes("x"), {Type: tea.KeyDown}, {Type: tea.KeyTab}, {Type: tea.KeyEnter}, {Type: tea.KeyEsc}} {
					m = update(t, m, k)
				}
			})
		}
	}
}
