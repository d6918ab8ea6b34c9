package tui

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/Veraticus/spent/internal/importer"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrPickerCancelled is returned when the user leaves the picker without
// confirming a mapping.
var ErrPickerCancelled = errors.New("column mapping cancelled")

// PickerConfig holds the terminal streams for the picker.
type PickerConfig struct {
	Input  io.Reader
	Output io.Writer
}

// PickMapping runs the picker until the user confirms a complete mapping or
// cancels.
func PickMapping(ctx context.Context, cfg PickerConfig, headers []string, preview [][]string, initial importer.Mapping) (importer.Mapping, error) {
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.Input != nil {
		opts = append(opts, tea.WithInput(cfg.Input))
	}
	if cfg.Output != nil {
		opts = append(opts, tea.WithOutput(cfg.Output))
	}

	final, err := tea.NewProgram(NewModel(headers, preview, initial), opts...).Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, context.Canceled) {
			return importer.UnselectedMapping(), ErrPickerCancelled
		}
		return importer.UnselectedMapping(), fmt.Errorf("mapping picker failed: %w", err)
	}

	m, ok := final.(Model)
	if !ok || !m.Confirmed() {
		return importer.UnselectedMapping(), ErrPickerCancelled
	}
	return m.Mapping(), nil
}
