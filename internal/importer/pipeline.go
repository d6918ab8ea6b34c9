// Package importer turns delimited bank exports into expense records.
//
// An import moves through a small state machine: text is tokenized into
// staged rows (Parsed), the caller confirms which columns hold the date,
// description and amount (Mapped), and the rows are validated and handed to a
// Sink (Committed). A staged import can be cancelled at any point before it is
// committed; cancelling discards every staged row.
package importer

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

// Stage is the position of a pipeline in the import state machine.
type Stage int

const (
	// StageIdle holds no staged data.
	StageIdle Stage = iota
	// StageParsed holds tokenized rows awaiting a column mapping.
	StageParsed
	// StageMapped holds tokenized rows and a confirmed column mapping.
	StageMapped
	// StageCommitted means the last import was written to the sink.
	StageCommitted
	// StageCancelled means the last import was discarded.
	StageCancelled
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageParsed:
		return "parsed"
	case StageMapped:
		return "mapped"
	case StageCommitted:
		return "committed"
	case StageCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// Batch-fatal import errors. Nothing is committed when one of these is
// returned.
var (
	ErrEmptyInput        = errors.New("input is empty or has no data rows")
	ErrNoValidRows       = errors.New("no valid data rows found")
	ErrColumnNotSelected = errors.New("date, description and amount columns must all be selected")
	ErrColumnOutOfRange  = errors.New("selected column does not exist")
	ErrNoStagedImport    = errors.New("no import is staged")
)

// minLines is a header plus at least one data row.
const minLines = 2

// Pipeline stages one import at a time.
type Pipeline struct {
	newID   func() string
	headers []string
	rows    [][]string
	mapping Mapping
	dropped int
	stage   Stage
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithIDGenerator replaces the generator used for new record ids.
func WithIDGenerator(fn func() string) Option {
	return func(p *Pipeline) {
		p.newID = fn
	}
}

// NewPipeline creates an idle pipeline.
func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{
		newID:   uuid.NewString,
		mapping: UnselectedMapping(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Stage returns the current stage.
func (p *Pipeline) Stage() Stage {
	return p.stage
}

// Headers returns the staged header labels.
func (p *Pipeline) Headers() []string {
	out := make([]string, len(p.headers))
	copy(out, p.headers)
	return out
}

// Rows returns the number of staged data rows.
func (p *Pipeline) Rows() int {
	return len(p.rows)
}

// Dropped returns how many input rows were not staged: delimited rows whose
// field count did not match the header, or OFX credits.
func (p *Pipeline) Dropped() int {
	return p.dropped
}

// Preview returns up to n staged rows for display.
func (p *Pipeline) Preview(n int) [][]string {
	if n > len(p.rows) {
		n = len(p.rows)
	}
	out := make([][]string, 0, n)
	for _, row := range p.rows[:n] {
		cp := make([]string, len(row))
		copy(cp, row)
		out = append(out, cp)
	}
	return out
}

// Tokenize stages text as a new import, discarding anything staged before.
// Blank lines are ignored, the first remaining line is the header, and data
// rows whose field count differs from the header are dropped.
func (p *Pipeline) Tokenize(text string) error {
	p.discard(StageIdle)

	lines := nonBlankLines(text)
	if len(lines) < minLines {
		return ErrEmptyInput
	}

	headers := splitLine(lines[0])
	for i, h := range headers {
		headers[i] = strings.ReplaceAll(h, `"`, "")
	}

	var (
		rows    [][]string
		dropped int
	)
	for _, line := range lines[1:] {
		fields := splitLine(line)
		if len(fields) != len(headers) {
			dropped++
			continue
		}
		rows = append(rows, fields)
	}

	slog.Debug("Tokenized import",
		"headers", len(headers),
		"rows", len(rows),
		"dropped", dropped)

	if len(rows) == 0 {
		return ErrNoValidRows
	}

	p.stageRows(headers, rows, dropped)
	return nil
}

// Cancel discards the staged import. Nothing is written.
func (p *Pipeline) Cancel() {
	if p.stage == StageParsed || p.stage == StageMapped {
		slog.Debug("Import cancelled", "rows", len(p.rows))
		p.discard(StageCancelled)
	}
}

// Reset returns the pipeline to idle.
func (p *Pipeline) Reset() {
	p.discard(StageIdle)
}

func (p *Pipeline) stageRows(headers []string, rows [][]string, dropped int) {
	p.headers = headers
	p.rows = rows
	p.dropped = dropped
	p.mapping = UnselectedMapping()
	p.stage = StageParsed
}

func (p *Pipeline) discard(next Stage) {
	p.headers = nil
	p.rows = nil
	p.dropped = 0
	p.mapping = UnselectedMapping()
	p.stage = next
}

func (p *Pipeline) staged() bool {
	return p.stage == StageParsed || p.stage == StageMapped
}

func nonBlankLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// splitLine splits one line on commas. A double quote toggles quoting and is
// not kept; commas inside quotes belong to the field. Doubled quotes are not
// unescaped. Fields are trimmed.
func splitLine(line string) []string {
	var (
		fields   []string
		current  strings.Builder
		inQuotes bool
	)
	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	return append(fields, strings.TrimSpace(current.String()))
}
