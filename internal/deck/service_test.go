package deck

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/quiz-cms/internal/store"
)

func adaptiveDeck(slug string) *store.AdaptiveDeck {
	return &store.AdaptiveDeck{
		ID:                     1,
		Slug:                   slug,
		Title:                  "Adaptive " + slug,
		Visibility:             store.VisibilityPublic,
		TagLogic:               store.TagLogicAny,
		IncludeDifficulties:    []string{"easy", "medium"},
		BatchSize:              5,
		MaxQuestionsPerSession: 25,
		RulePolicy:             "default-v1",
	}
}

func newTestService(decks *memoryDecks, questions *memoryQuestions, cache IndexCache) *Service {
	return NewService(decks, questions, cache, zerolog.Nop())
}

func TestResolveIndexAdaptiveFiltersQuestions(t *testing.T) {
	deck := adaptiveDeck("algebra")
	deck.TagIDs = []int64{4}

	questions := questionSource(
		plainStub(1, "easy", 4),
		plainStub(2, "hard", 4),  // excluded difficulty
		plainStub(3, "easy", 9),  // missing tag
		plainStub(4, "medium", 4),
	)
	svc := newTestService(&memoryDecks{adaptive: map[string]*store.AdaptiveDeck{"algebra": deck}}, questions, nil)

	resp, err := svc.ResolveIndex(context.Background(), "algebra")
	require.NoError(t, err)

	assert.Equal(t, VariantAdaptive, resp.Deck.Variant)
	assert.Equal(t, []string{"easy", "medium"}, resp.Deck.IncludeDifficulties)
	require.Len(t, resp.Questions, 2)
	assert.Equal(t, int64(1), resp.Questions[0].ID)
	assert.Equal(t, int64(4), resp.Questions[1].ID)
}

func TestResolveIndexAdaptiveShadowsStructured(t *testing.T) {
	decks := &memoryDecks{
		adaptive:   map[string]*store.AdaptiveDeck{"shared": adaptiveDeck("shared")},
		structured: map[string]*store.StructuredDeck{"shared": structuredDeck(store.OrderedItem{Kind: store.ItemKindQuestion, ID: 5})},
	}
	svc := newTestService(decks, questionSource(), nil)

	resp, err := svc.ResolveIndex(context.Background(), "shared")
	require.NoError(t, err)
	assert.Equal(t, VariantAdaptive, resp.Deck.Variant)
}

func TestResolveIndexStructuredPreservesOrder(t *testing.T) {
	deck := structuredDeck(
		store.OrderedItem{Kind: store.ItemKindQuestion, ID: 20},
		store.OrderedItem{Kind: store.ItemKindQuestion, ID: 5},
		store.OrderedItem{Kind: store.ItemKindQuestion, ID: 999}, // unknown, omitted
	)
	questions := questionSource(plainStub(5, "easy"), plainStub(20, "hard"))
	svc := newTestService(&memoryDecks{structured: map[string]*store.StructuredDeck{"mock-test": deck}}, questions, nil)

	resp, err := svc.ResolveIndex(context.Background(), "mock-test")
	require.NoError(t, err)

	assert.Equal(t, VariantStructured, resp.Deck.Variant)
	assert.Nil(t, resp.Deck.BatchSize)
	assert.Nil(t, resp.Deck.RulePolicy)
	assert.Equal(t, []string{}, resp.Deck.IncludeDifficulties)
	require.Len(t, resp.Questions, 2)
	assert.Equal(t, int64(20), resp.Questions[0].ID)
	assert.Equal(t, int64(5), resp.Questions[1].ID)
}

func TestResolveIndexUnknownSlug(t *testing.T) {
	svc := newTestService(&memoryDecks{}, questionSource(), nil)

	_, err := svc.ResolveIndex(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrDeckNotFound)
}

func TestResolveIndexCacheHitSkipsStore(t *testing.T) {
	cache := newMemoryIndexCache()
	cache.entries["algebra"] = IndexResponse{Deck: Metadata{Slug: "algebra", Variant: VariantAdaptive}}

	questions := questionSource(plainStub(1, "easy"))
	svc := newTestService(&memoryDecks{}, questions, cache)

	resp, err := svc.ResolveIndex(context.Background(), "algebra")
	require.NoError(t, err)
	assert.Equal(t, "algebra", resp.Deck.Slug)
	assert.Equal(t, 0, questions.pageCalls)
}

func TestResolveIndexCacheMissPopulates(t *testing.T) {
	cache := newMemoryIndexCache()
	decks := &memoryDecks{adaptive: map[string]*store.AdaptiveDeck{"algebra": adaptiveDeck("algebra")}}
	svc := newTestService(decks, questionSource(plainStub(1, "easy")), cache)

	_, err := svc.ResolveIndex(context.Background(), "algebra")
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)
}

func TestResolveIndexCacheFailureDegradesGracefully(t *testing.T) {
	cache := newMemoryIndexCache()
	cache.failing = true
	decks := &memoryDecks{adaptive: map[string]*store.AdaptiveDeck{"algebra": adaptiveDeck("algebra")}}
	svc := newTestService(decks, questionSource(plainStub(1, "easy")), cache)

	hitsBefore := testutil.ToFloat64(indexCacheHits)
	missesBefore := testutil.ToFloat64(indexCacheMisses)

	resp, err := svc.ResolveIndex(context.Background(), "algebra")
	require.NoError(t, err)
	assert.Len(t, resp.Questions, 1)

	// a failed cache read counts as a miss, so hits+misses tracks resolutions
	assert.Equal(t, hitsBefore, testutil.ToFloat64(indexCacheHits))
	assert.Equal(t, missesBefore+1, testutil.ToFloat64(indexCacheMisses))
}

func TestResolveIndexEmptyMatchIsNotAnError(t *testing.T) {
	decks := &memoryDecks{adaptive: map[string]*store.AdaptiveDeck{"algebra": adaptiveDeck("algebra")}}
	svc := newTestService(decks, questionSource(), nil)

	resp, err := svc.ResolveIndex(context.Background(), "algebra")
	require.NoError(t, err)
	assert.NotNil(t, resp.Questions)
	assert.Empty(t, resp.Questions)
}

func TestAdaptiveMetadata(t *testing.T) {
	deck := adaptiveDeck("algebra")
	deck.MaxQuestionsPerSession = 0
	deck.RulePolicy = ""
	decks := &memoryDecks{adaptive: map[string]*store.AdaptiveDeck{"algebra": deck}}
	svc := newTestService(decks, questionSource(), nil)

	meta, err := svc.AdaptiveMetadata(context.Background(), "algebra")
	require.NoError(t, err)

	// degenerate stored values fall back to usable ones
	assert.Equal(t, deck.BatchSize, *meta.MaxQuestionsPerSession)
	assert.Equal(t, "default-v1", *meta.RulePolicy)
	assert.Equal(t, VariantAdaptive, meta.Variant)

	_, err = svc.AdaptiveMetadata(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrDeckNotFound)
}
