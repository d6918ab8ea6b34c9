package tui

import (
	"testing"

	"github.com/Veraticus/spent/internal/importer"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testHeaders = []string{"Posted", "Memo", "Debit", "Balance"}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(k)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m, cmd
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestNewModel_ClampsInitialMapping(t *testing.T) {
	m := NewModel(testHeaders, nil, importer.Mapping{Date: 0, Description: 9, Amount: -4})

	assert.Equal(t, importer.Mapping{Date: 0, Description: -1, Amount: -1}, m.Mapping())
}

func TestModel_CycleColumns(t *testing.T) {
	m := NewModel(testHeaders, nil, importer.UnselectedMapping())

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 0, m.Mapping().Date)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyLeft}, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 3, m.Mapping().Date, "left from unselected wraps to the last column")

	m, _ = press(t, m, runeKey('x'))
	assert.Equal(t, importer.Unselected, m.Mapping().Date)
}

func TestModel_NavigateFields(t *testing.T) {
	m := NewModel(testHeaders, nil, importer.UnselectedMapping())

	m, _ = press(t, m,
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyRight},
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyRight},
	)

	assert.Equal(t, importer.Mapping{Date: -1, Description: 1, Amount: 2}, m.Mapping())

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyUp})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, importer.Mapping{Date: -1, Description: 1, Amount: 3}, m.Mapping(), "up wraps from the first field to the last")
}

func TestModel_Suggest(t *testing.T) {
	m := NewModel(testHeaders, nil, importer.UnselectedMapping())

	m, _ = press(t, m, runeKey('s'))
	assert.Equal(t, importer.Mapping{Date: 0, Description: 1, Amount: 2}, m.Mapping())
}

func TestModel_ConfirmRequiresCompleteMapping(t *testing.T) {
	m := NewModel(testHeaders, nil, importer.Mapping{Date: 0, Description: 1, Amount: -1})

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.False(t, m.Confirmed())
	assert.Contains(t, m.View(), importer.ErrColumnNotSelected.Error())

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyRight})
	m, cmd = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, m.Confirmed())
	assert.Equal(t, importer.Mapping{Date: 0, Description: 1, Amount: 2}, m.Mapping())
}

func TestModel_Cancel(t *testing.T) {
	for _, k := range []tea.KeyMsg{runeKey('q'), {Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		m := NewModel(testHeaders, nil, importer.UnselectedMapping())
		m, cmd := press(t, m, k)
		assert.True(t, m.Cancelled(), k.String())
		assert.NotNil(t, cmd)
	}
}

func TestModel_View(t *testing.T) {
	preview := [][]string{{"2024-01-02", "Coffee", "3.50", "100.00"}}
	m := NewModel(testHeaders, preview, importer.Mapping{Date: 0, Description: -1, Amount: 2})

	view := m.View()
	assert.Contains(t, view, "Posted (column 1)")
	assert.Contains(t, view, "(not selected)")
	assert.Contains(t, view, "Debit (column 3)")
	assert.Contains(t, view, "Coffee")
}

func TestModel_ViewUsesHeaders(t *testing.T) {
	m := NewModel([]string{"Posted", "Memo", "Debit"}, [][]string{{"2024-03-01", "Coffee", "3.50"}},
		importer.Mapping{Date: 0, Description: importer.Unselected, Amount: 2})

	view := m.View()
	assert.Contains(t, view, "Posted (column 1)")
	assert.Contains(t, view, "(not selected)")
	assert.Contains(t, view, "Debit (column 3)")
	assert.Contains(t, view, "Coffee")
}
