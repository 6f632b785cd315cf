package deck

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/quiz-cms/internal/content"
	"github.com/gokatarajesh/quiz-cms/internal/store"
)

type deckWriter interface {
	AdaptiveByID(ctx context.Context, id int64) (*store.AdaptiveDeck, error)
	CreateAdaptive(ctx context.Context, rec store.AdaptiveDeckRecord) (int64, error)
	UpdateAdaptive(ctx context.Context, id int64, rec store.AdaptiveDeckRecord) error
	StructuredByID(ctx context.Context, id int64) (*store.StructuredDeck, error)
	CreateStructured(ctx context.Context, rec store.StructuredDeckRecord) (int64, error)
	UpdateStructured(ctx context.Context, id int64, rec store.StructuredDeckRecord) error
}

// Admin handles deck writes. Updates normalize against the stored prior
// version so partial payloads keep untouched fields.
type Admin struct {
	decks  deckWriter
	logger zerolog.Logger
}

func NewAdmin(decks deckWriter, logger zerolog.Logger) *Admin {
	return &Admin{
		decks:  decks,
		logger: logger.With().Str("component", "deck_admin").Logger(),
	}
}

func (a *Admin) CreateAdaptiveDeck(ctx context.Context, in content.AdaptiveDeckInput) (int64, error) {
	rec, err := content.NormalizeAdaptiveDeck(in, nil)
	if err != nil {
		return 0, err
	}
	id, err := a.decks.CreateAdaptive(ctx, rec)
	if err != nil {
		return 0, err
	}
	a.logger.Info().Int64("deck_id", id).Str("slug", rec.Slug).Msg("adaptive deck created")
	return id, nil
}

func (a *Admin) UpdateAdaptiveDeck(ctx context.Context, id int64, in content.AdaptiveDeckInput) error {
	existing, err := a.decks.AdaptiveByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrDeckNotFound
	}
	rec, err := content.NormalizeAdaptiveDeck(in, existing)
	if err != nil {
		return err
	}
	return a.decks.UpdateAdaptive(ctx, id, rec)
}

func (a *Admin) CreateStructuredDeck(ctx context.Context, in content.StructuredDeckInput) (int64, error) {
	rec, err := content.NormalizeStructuredDeck(in, nil)
	if err != nil {
		return 0, err
	}
	id, err := a.decks.CreateStructured(ctx, rec)
	if err != nil {
		return 0, err
	}
	a.logger.Info().Int64("deck_id", id).Str("slug", rec.Slug).Msg("structured deck created")
	return id, nil
}

func (a *Admin) UpdateStructuredDeck(ctx context.Context, id int64, in content.StructuredDeckInput) error {
	existing, err := a.decks.StructuredByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrDeckNotFound
	}
	rec, err := content.NormalizeStructuredDeck(in, existing)
	if err != nil {
		return err
	}
	return a.decks.UpdateStructured(ctx, id, rec)
}
