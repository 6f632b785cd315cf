package mcqset

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/quiz-cms/internal/content"
	"github.com/gokatarajesh/quiz-cms/internal/store"
)

// ErrSetNotFound is returned when no MCQ set matches the requested slug or id.
var ErrSetNotFound = errors.New("mcq set not found")

type setStore interface {
	BySlug(ctx context.Context, slug string) (*store.MCQSet, error)
	ByID(ctx context.Context, id int64) (*store.MCQSet, error)
	Create(ctx context.Context, rec store.MCQSetRecord) (int64, error)
	Update(ctx context.Context, id int64, rec store.MCQSetRecord) error
}

// View is the public read shape of an MCQ set page.
type View struct {
	ID              int64   `json:"id"`
	Slug            string  `json:"slug"`
	Title           string  `json:"title"`
	Exam            string  `json:"exam"`
	Section         string  `json:"section"`
	Topic           string  `json:"topic"`
	Intro           *string `json:"intro,omitempty"`
	ParentHubURL    *string `json:"parent_hub_url,omitempty"`
	CanonicalURL    *string `json:"canonical_url,omitempty"`
	TotalQuestions  int     `json:"total_questions"`
	FreeQuestionIDs []int64 `json:"free_question_ids"`
}

// Service serves MCQ set reads and writes.
type Service struct {
	sets   setStore
	logger zerolog.Logger
}

func NewService(sets setStore, logger zerolog.Logger) *Service {
	return &Service{
		sets:   sets,
		logger: logger.With().Str("component", "mcqset_service").Logger(),
	}
}

// BySlug resolves an MCQ set by slug. Lookup is trimmed and lowercased so
// URL casing never causes a miss.
func (s *Service) BySlug(ctx context.Context, slug string) (*View, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return nil, ErrSetNotFound
	}

	set, err := s.sets.BySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("fetch mcq set %q: %w", slug, err)
	}
	if set == nil {
		return nil, ErrSetNotFound
	}
	return toView(set), nil
}

// Create normalizes and persists a new MCQ set, returning its view.
func (s *Service) Create(ctx context.Context, in content.MCQSetInput) (*View, error) {
	rec, err := content.NormalizeMCQSet(in, nil)
	if err != nil {
		return nil, err
	}

	id, err := s.sets.Create(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("create mcq set: %w", err)
	}
	s.logger.Info().Int64("set_id", id).Str("slug", rec.Slug).Msg("mcq set created")

	set, err := s.sets.ByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload mcq set %d: %w", id, err)
	}
	return toView(set), nil
}

// Update applies a partial write on top of the stored set.
func (s *Service) Update(ctx context.Context, id int64, in content.MCQSetInput) (*View, error) {
	existing, err := s.sets.ByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch mcq set %d: %w", id, err)
	}
	if existing == nil {
		return nil, ErrSetNotFound
	}

	rec, err := content.NormalizeMCQSet(in, existing)
	if err != nil {
		return nil, err
	}
	if err := s.sets.Update(ctx, id, rec); err != nil {
		return nil, fmt.Errorf("update mcq set %d: %w", id, err)
	}
	s.logger.Info().Int64("set_id", id).Str("slug", rec.Slug).Msg("mcq set updated")

	set, err := s.sets.ByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload mcq set %d: %w", id, err)
	}
	return toView(set), nil
}

func toView(set *store.MCQSet) *View {
	return &View{
		ID:              set.ID,
		Slug:            set.Slug,
		Title:           set.Title,
		Exam:            set.Exam,
		Section:         set.Section,
		Topic:           set.Topic,
		Intro:           set.Intro,
		ParentHubURL:    set.ParentHubURL,
		CanonicalURL:    set.CanonicalURL,
		TotalQuestions:  set.TotalQuestions,
		FreeQuestionIDs: set.FreeQuestionIDs,
	}
}
