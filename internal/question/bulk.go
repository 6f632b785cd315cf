package question

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/quiz-cms/internal/content"
	"github.com/gokatarajesh/quiz-cms/internal/store"
)

type bulkStore interface {
	Insert(ctx context.Context, rec store.QuestionRecord) (int64, error)
}

// Importer creates questions from bulk payloads, one item at a time. A
// failing item reports its own error and the batch moves on; partial success
// is the normal outcome, not a failure mode.
type Importer struct {
	store  bulkStore
	logger zerolog.Logger
}

func NewImporter(store bulkStore, logger zerolog.Logger) *Importer {
	return &Importer{
		store:  store,
		logger: logger.With().Str("component", "question_import").Logger(),
	}
}

// Import processes items sequentially and returns one result per item.
func (imp *Importer) Import(ctx context.Context, items []json.RawMessage) []BulkResult {
	results := make([]BulkResult, 0, len(items))
	for _, raw := range items {
		results = append(results, imp.importOne(ctx, raw))
	}
	return results
}

func (imp *Importer) importOne(ctx context.Context, raw json.RawMessage) BulkResult {
	if err := content.ValidateQuestionItem(raw); err != nil {
		return BulkResult{Status: BulkStatusError, Message: err.Error()}
	}

	var in content.QuestionInput
	if err := json.Unmarshal(raw, &in); err != nil {
		return BulkResult{Status: BulkStatusError, Message: "item must be a question object"}
	}

	rec, err := content.NormalizeQuestion(in, nil)
	if err != nil {
		return BulkResult{Status: BulkStatusError, Message: err.Error()}
	}

	id, err := imp.store.Insert(ctx, rec)
	if err != nil {
		imp.logger.Warn().Err(err).Msg("bulk question insert failed")
		return BulkResult{Status: BulkStatusError, Message: err.Error()}
	}
	return BulkResult{ID: &id, Status: BulkStatusOK}
}
