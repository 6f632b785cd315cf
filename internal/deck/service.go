package deck

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/quiz-cms/internal/store"
)

// ErrDeckNotFound covers both a missing slug and a draft deck: non-public
// decks are indistinguishable from absent ones.
var ErrDeckNotFound = errors.New("deck not found")

// Variant discriminates the two deck kinds in metadata.
const (
	VariantAdaptive   = "adaptive"
	VariantStructured = "structured"
)

// Metadata is the variant-tagged deck configuration exposed to clients. The
// adaptive-only fields are null for structured decks.
type Metadata struct {
	ID                     int64          `json:"id"`
	Slug                   string         `json:"slug"`
	Title                  string         `json:"title"`
	Variant                string         `json:"variant"`
	BatchSize              *int           `json:"batch_size"`
	MaxQuestionsPerSession *int           `json:"max_questions_per_session"`
	KeepGroupsTogether     bool           `json:"keep_groups_together"`
	RulePolicy             *string        `json:"rule_policy"`
	Exam                   *HierarchyRef  `json:"exam"`
	Section                *HierarchyRef  `json:"section"`
	Topic                  *HierarchyRef  `json:"topic"`
	Tags                   []int64        `json:"tags"`
	TagLogic               store.TagLogic `json:"tag_logic"`
	IncludeDifficulties    []string       `json:"include_difficulties"`
	Exclusions             []int64        `json:"exclusions"`
}

// IndexResponse pairs deck metadata with the resolved question index.
type IndexResponse struct {
	Deck      Metadata             `json:"deck"`
	Questions []store.QuestionStub `json:"questions"`
}

type deckReader interface {
	AdaptiveBySlug(ctx context.Context, slug string) (*store.AdaptiveDeck, error)
	StructuredBySlug(ctx context.Context, slug string) (*store.StructuredDeck, error)
}

// IndexCache is a read-through cache of resolved indexes. Get returns
// (nil, nil) on miss.
type IndexCache interface {
	Get(ctx context.Context, slug string) (*IndexResponse, error)
	Set(ctx context.Context, slug string, resp IndexResponse) error
}

// Service resolves deck slugs into question indexes. It owns no state beyond
// its collaborators; every resolution is a fresh read of the entity store.
type Service struct {
	decks     deckReader
	questions questionReader
	cache     IndexCache
	logger    zerolog.Logger
}

func NewService(decks deckReader, questions questionReader, cache IndexCache, logger zerolog.Logger) *Service {
	return &Service{
		decks:     decks,
		questions: questions,
		cache:     cache,
		logger:    logger.With().Str("component", "deck_service").Logger(),
	}
}

// ResolveIndex computes the full question index for a deck slug. Adaptive
// decks shadow structured decks sharing a slug: the adaptive lookup runs
// first and wins.
func (s *Service) ResolveIndex(ctx context.Context, slug string) (*IndexResponse, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, slug); err != nil {
			indexCacheMisses.Inc()
			s.logger.Warn().Err(err).Str("slug", slug).Msg("index cache read failed")
		} else if cached != nil {
			indexCacheHits.Inc()
			return cached, nil
		} else {
			indexCacheMisses.Inc()
		}
	}

	resp, err := s.resolve(ctx, slug)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, slug, *resp); err != nil {
			s.logger.Warn().Err(err).Str("slug", slug).Msg("index cache write failed")
		}
	}
	return resp, nil
}

func (s *Service) resolve(ctx context.Context, slug string) (*IndexResponse, error) {
	adaptive, err := s.decks.AdaptiveBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if adaptive != nil {
		return s.resolveAdaptive(ctx, adaptive)
	}

	structured, err := s.decks.StructuredBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if structured == nil {
		return nil, ErrDeckNotFound
	}
	return s.resolveStructured(ctx, structured)
}

func (s *Service) resolveAdaptive(ctx context.Context, d *store.AdaptiveDeck) (*IndexResponse, error) {
	resolution, err := buildAdaptiveResolution(d)
	if err != nil {
		return nil, err
	}

	stubs, err := fetchAllStubs(ctx, s.questions, resolution.Filter)
	if err != nil {
		return nil, err
	}

	metadata := buildAdaptiveMetadata(d)
	// Report the rule set actually applied, not the raw stored fields.
	metadata.IncludeDifficulties = resolution.Difficulties
	metadata.Tags = resolution.TagIDs
	metadata.Exclusions = resolution.ExclusionIDs

	resolutionsTotal.WithLabelValues(VariantAdaptive).Inc()
	return &IndexResponse{Deck: metadata, Questions: stubList(stubs)}, nil
}

func (s *Service) resolveStructured(ctx context.Context, d *store.StructuredDeck) (*IndexResponse, error) {
	orderedIDs, err := resolveStructuredOrder(ctx, s.questions, d)
	if err != nil {
		return nil, err
	}

	stubs := []store.QuestionStub{}
	if len(orderedIDs) > 0 {
		detailed, err := s.questions.ByIDs(ctx, orderedIDs)
		if err != nil {
			return nil, err
		}
		lookup := make(map[int64]store.Question, len(detailed))
		for _, q := range detailed {
			lookup[q.ID] = q
		}
		for _, id := range orderedIDs {
			q, ok := lookup[id]
			if !ok {
				continue
			}
			tagIDs := make([]int64, 0, len(q.Tags))
			for _, tag := range q.Tags {
				tagIDs = append(tagIDs, tag.ID)
			}
			stubs = append(stubs, store.QuestionStub{
				ID:         q.ID,
				Difficulty: q.Difficulty,
				GroupID:    q.GroupID,
				TagIDs:     tagIDs,
			})
		}
	}

	resolutionsTotal.WithLabelValues(VariantStructured).Inc()
	return &IndexResponse{Deck: buildStructuredMetadata(d), Questions: stubs}, nil
}

// AdaptiveMetadata serves the standalone adaptive-deck endpoint. The stored
// configuration is reported as-is; no resolution runs.
func (s *Service) AdaptiveMetadata(ctx context.Context, slug string) (*Metadata, error) {
	d, err := s.decks.AdaptiveBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, ErrDeckNotFound
	}
	metadata := buildAdaptiveMetadata(d)
	return &metadata, nil
}

func buildAdaptiveMetadata(d *store.AdaptiveDeck) Metadata {
	h := ExtractHierarchy(d.Topic)

	batchSize := d.BatchSize
	maxPerSession := d.MaxQuestionsPerSession
	if maxPerSession == 0 {
		maxPerSession = batchSize
	}
	policy := d.RulePolicy
	if policy == "" {
		policy = "default-v1"
	}

	difficulties := d.IncludeDifficulties
	if difficulties == nil {
		difficulties = append([]string{}, allowedDifficulties...)
	}

	return Metadata{
		ID:                     d.ID,
		Slug:                   d.Slug,
		Title:                  d.Title,
		Variant:                VariantAdaptive,
		BatchSize:              &batchSize,
		MaxQuestionsPerSession: &maxPerSession,
		KeepGroupsTogether:     d.KeepGroupsTogether,
		RulePolicy:             &policy,
		Exam:                   h.Exam,
		Section:                h.Section,
		Topic:                  h.Topic,
		Tags:                   dedupeInt64(d.TagIDs),
		TagLogic:               normalizeLogic(d.TagLogic),
		IncludeDifficulties:    difficulties,
		Exclusions:             dedupeInt64(d.ExclusionIDs),
	}
}

func buildStructuredMetadata(d *store.StructuredDeck) Metadata {
	h := ExtractHierarchy(d.Topic)

	return Metadata{
		ID:                     d.ID,
		Slug:                   d.Slug,
		Title:                  d.Title,
		Variant:                VariantStructured,
		BatchSize:              nil,
		MaxQuestionsPerSession: nil,
		KeepGroupsTogether:     d.KeepGroupsTogether,
		RulePolicy:             nil,
		Exam:                   h.Exam,
		Section:                h.Section,
		Topic:                  h.Topic,
		Tags:                   dedupeInt64(d.TagIDs),
		TagLogic:               normalizeLogic(d.TagLogic),
		IncludeDifficulties:    []string{},
		Exclusions:             dedupeInt64(d.ExclusionIDs),
	}
}

func stubList(stubs []store.QuestionStub) []store.QuestionStub {
	if stubs == nil {
		return []store.QuestionStub{}
	}
	return stubs
}
