package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-kit/log"
	"github.com/mattn/go-runewidth"

	"linecomment/internal/parser"
)

// View identifies which screen the TUI shows.
type View int

const (
	ViewLines View = iota
	ViewConfirmQuit
	ViewQuitting
)

// noAnchor means no selection is pending.
const noAnchor = -1

// Options configures the TUI.
type Options struct {
	Backup              bool
	HighlightBoundaries bool
	Logger              log.Logger
}

// LineItem is one buffer line in the list.
type LineItem struct {
	Index    int
	Text     string
	Width    int
	Boundary bool // would be commented by enter
	Selected bool // inside the pending selection
}

func (l LineItem) Title() string       { return l.Text }
func (l LineItem) Description() string { return "" }
func (l LineItem) FilterValue() string { return l.Text }

var (
	lineNumberStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#555555"))
	cursorStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00FFFF"))
	boundaryStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFF00"))
	selectedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
)

// lineDelegate renders one LineItem per row with a gutter of line numbers.
type lineDelegate struct{}

func (lineDelegate) Height() int                             { return 1 }
func (lineDelegate) Spacing() int                            { return 0 }
func (lineDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (lineDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	li, ok := item.(LineItem)
	if !ok {
		return
	}
	gutter := fmt.Sprintf("%4d ", li.Index+1)
	text := li.Text
	if li.Width > 0 {
		text = runewidth.Truncate(text, max(li.Width-len(gutter)-2, 1), "…")
	}

	prefix := "  "
	style := lipgloss.NewStyle()
	switch {
	case li.Boundary:
		style = boundaryStyle
	case li.Selected:
		style = selectedStyle
	}
	if index == m.Index() {
		prefix = cursorStyle.Render("> ")
	}
	fmt.Fprint(w, prefix+lineNumberStyle.Render(gutter)+style.Render(text))
}

// model is the Bubbletea model for the TUI. It owns the document being edited.
type model struct {
	list       list.Model
	path       string
	doc        parser.Document
	anchor     int
	dirty      bool
	status     string
	ActiveView View
	height     int // Track terminal height for dynamic resizing
	width      int // Track terminal width for dynamic resizing
	opts       Options
}

// InitialModel creates the initial TUI model for doc, loaded from path.
func InitialModel(path string, doc parser.Document, height int, opts Options) model {
	if opts.Logger == nil {
		opts.Logger = log.NewNopLogger()
	}
	defaultWidth := 80
	l := list.New(nil, lineDelegate{}, defaultWidth, max(height-6, 5))
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	// q and ctrl+c are handled in HandleKeyMsg so unsaved changes can be confirmed.
	l.DisableQuitKeybindings()

	m := model{
		list:       l,
		path:       path,
		doc:        doc,
		anchor:     noAnchor,
		ActiveView: ViewLines,
		height:     height,
		width:      defaultWidth,
		opts:       opts,
	}
	m.refreshItems()
	return m
}

// Lines returns the current buffer contents.
func (m model) Lines() []string {
	return m.doc.Lines
}

// pendingRange returns the ordered line span enter would act on.
func (m model) pendingRange() (int, int) {
	cursor := m.list.Index()
	if m.anchor == noAnchor {
		return cursor, cursor
	}
	return min(m.anchor, cursor), max(m.anchor, cursor)
}

// refreshItems rebuilds the list items from the document and the pending selection.
func (m *model) refreshItems() {
	start, end := m.pendingRange()
	items := make([]list.Item, len(m.doc.Lines))
	for i, text := range m.doc.Lines {
		item := LineItem{Index: i, Text: text, Width: m.width - 4}
		if m.anchor != noAnchor {
			item.Selected = i >= start && i <= end
			item.Boundary = m.opts.HighlightBoundaries && (i == start || i == end)
		}
		items[i] = item
	}
	cursor := m.list.Index()
	m.list.SetItems(items)
	if cursor < len(items) {
		m.list.Select(cursor)
	}
}
