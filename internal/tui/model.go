// Package tui implements the interactive column-mapping picker shown before
// a delimited import is committed.
package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/spent/internal/importer"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// field is one record field that needs a column.
type field int

const (
	fieldDate field = iota
	fieldDescription
	fieldAmount
	fieldCount
)

func (f field) String() string {
	switch f {
	case fieldDate:
		return "Date"
	case fieldDescription:
		return "Description"
	case fieldAmount:
		return "Amount"
	default:
		return "?"
	}
}

// Model is the bubbletea model of the mapping picker.
type Model struct {
	help      help.Model
	theme     Theme
	keymap    KeyMap
	headers   []string
	preview   [][]string
	status    string
	columns   [fieldCount]int
	cursor    field
	confirmed bool
	cancelled bool
}

// NewModel creates a picker over the staged headers, starting from initial.
func NewModel(headers []string, preview [][]string, initial importer.Mapping) Model {
	m := Model{
		help:    help.New(),
		theme:   DefaultTheme,
		keymap:  DefaultKeyMap(),
		headers: headers,
		preview: preview,
	}
	m.setMapping(initial)
	return m
}

func (m *Model) setMapping(mp importer.Mapping) {
	m.columns[fieldDate] = m.clamp(mp.Date)
	m.columns[fieldDescription] = m.clamp(mp.Description)
	m.columns[fieldAmount] = m.clamp(mp.Amount)
}

func (m Model) clamp(col int) int {
	if col < 0 || col >= len(m.headers) {
		return importer.Unselected
	}
	return col
}

// Mapping returns the current selection.
func (m Model) Mapping() importer.Mapping {
	return importer.Mapping{
		Date:        m.columns[fieldDate],
		Description: m.columns[fieldDescription],
		Amount:      m.columns[fieldAmount],
	}
}

// Confirmed reports whether the user accepted a complete mapping.
func (m Model) Confirmed() bool {
	return m.confirmed
}

// Cancelled reports whether the user backed out.
func (m Model) Cancelled() bool {
	return m.cancelled
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch {
	case key.Matches(msg, m.keymap.ForceQuit), key.Matches(msg, m.keymap.Quit):
		m.cancelled = true
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Up):
		m.cursor = (m.cursor + fieldCount - 1) % fieldCount
	case key.Matches(msg, m.keymap.Down):
		m.cursor = (m.cursor + 1) % fieldCount
	case key.Matches(msg, m.keymap.Left):
		m.columns[m.cursor] = m.step(m.columns[m.cursor], -1)
	case key.Matches(msg, m.keymap.Right):
		m.columns[m.cursor] = m.step(m.columns[m.cursor], 1)
	case key.Matches(msg, m.keymap.Clear):
		m.columns[m.cursor] = importer.Unselected
	case key.Matches(msg, m.keymap.Suggest):
		m.setMapping(importer.SuggestMapping(m.headers))
	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keymap.Confirm):
		if !m.Mapping().Complete() {
			m.status = importer.ErrColumnNotSelected.Error()
			return m, nil
		}
		m.confirmed = true
		return m, tea.Quit
	}
	return m, nil
}

// step cycles through "unselected" followed by every column.
func (m Model) step(col, delta int) int {
	n := len(m.headers) + 1
	pos := (col + 1 + delta + n) % n
	return pos - 1
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.theme.Title.Render("Map CSV columns"))
	b.WriteString("\n\n")

	for f := field(0); f < fieldCount; f++ {
		label := fmt.Sprintf("%-12s %s", f.String()+":", m.columnLabel(m.columns[f]))
		if f == m.cursor {
			b.WriteString(m.theme.Cursor.Render("> " + label))
		} else {
			b.WriteString("  " + m.theme.Normal.Render(label))
		}
		b.WriteString("\n")
	}

	if len(m.preview) > 0 {
		b.WriteString("\n")
		b.WriteString(m.theme.PreviewHeader.Render(strings.Join(m.headers, " | ")))
		b.WriteString("\n")
		for _, row := range m.preview {
			b.WriteString(m.theme.Muted.Render(strings.Join(row, " | ")))
			b.WriteString("\n")
		}
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.theme.Error.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keymap))
	b.WriteString("\n")
	return b.String()
}

func (m Model) columnLabel(col int) string {
	if col == importer.Unselected {
		return m.theme.Muted.Render("(not selected)")
	}
	return fmt.Sprintf("%s (column %d)", m.headers[col], col+1)
}
