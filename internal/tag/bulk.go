package tag

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/quiz-cms/internal/content"
	"github.com/gokatarajesh/quiz-cms/internal/store"
)

type tagStore interface {
	Insert(ctx context.Context, rec store.TagRecord) (int64, error)
}

// Result reports the outcome of one bulk-import item.
type Result struct {
	ID      *int64 `json:"id,omitempty"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Importer creates tags from bulk payloads, continuing past per-item
// failures.
type Importer struct {
	store  tagStore
	logger zerolog.Logger
}

func NewImporter(store tagStore, logger zerolog.Logger) *Importer {
	return &Importer{
		store:  store,
		logger: logger.With().Str("component", "tag_import").Logger(),
	}
}

// Import processes items sequentially and returns one result per item.
func (imp *Importer) Import(ctx context.Context, items []json.RawMessage) []Result {
	results := make([]Result, 0, len(items))
	for _, raw := range items {
		results = append(results, imp.importOne(ctx, raw))
	}
	return results
}

func (imp *Importer) importOne(ctx context.Context, raw json.RawMessage) Result {
	if err := content.ValidateTagItem(raw); err != nil {
		return Result{Status: "error", Message: err.Error()}
	}

	var in content.TagInput
	if err := json.Unmarshal(raw, &in); err != nil {
		return Result{Status: "error", Message: "item must be a tag object"}
	}

	rec, err := content.NormalizeTag(in)
	if err != nil {
		return Result{Status: "error", Message: err.Error()}
	}

	id, err := imp.store.Insert(ctx, rec)
	if err != nil {
		imp.logger.Warn().Err(err).Str("name", rec.Name).Msg("bulk tag insert failed")
		return Result{Status: "error", Message: err.Error()}
	}
	return Result{ID: &id, Status: "ok"}
}
