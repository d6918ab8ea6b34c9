package tracker

import (
	"context"
	"io"

	"github.com/Veraticus/spent/internal/importer"
	"github.com/Veraticus/spent/internal/model"
)

// ImportRequest carries the caller's choices for committing an import.
type ImportRequest struct {
	Progress func(done, total int)
	Category model.Category
	Mapping  importer.Mapping
}

// BeginImport stages delimited text, replacing any import already staged.
func (t *Tracker) BeginImport(text string) error {
	return t.pipeline.Tokenize(text)
}

// BeginOFXImport stages the debits of an OFX statement.
func (t *Tracker) BeginOFXImport(r io.Reader) error {
	return t.pipeline.TokenizeOFX(r)
}

// Import exposes the staged import for previews and mapping choices.
func (t *Tracker) Import() *importer.Pipeline {
	return t.pipeline
}

// SuggestMapping guesses the column mapping for the staged import.
func (t *Tracker) SuggestMapping() importer.Mapping {
	return t.pipeline.SuggestMapping()
}

// ConfirmImport commits the staged rows and persists the result once.
// Imported expenses do not raise budget alerts.
func (t *Tracker) ConfirmImport(ctx context.Context, req ImportRequest) (importer.Result, error) {
	res, err := t.pipeline.Commit(importer.CommitRequest{
		Progress: req.Progress,
		Category: req.Category,
		Mapping:  req.Mapping,
	}, t.store)
	if err != nil {
		return res, err
	}

	if res.Imported > 0 {
		if err := t.saveExpenses(ctx); err != nil {
			return res, err
		}
	}
	return res, nil
}

// CancelImport discards the staged import without committing anything.
func (t *Tracker) CancelImport() {
	t.pipeline.Cancel()
}
