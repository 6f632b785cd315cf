package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/quiz-cms/internal/store"
)

func intPtr(v int) *int { return &v }

func TestNormalizeAdaptiveDeckDefaults(t *testing.T) {
	rec, err := NormalizeAdaptiveDeck(AdaptiveDeckInput{Title: "Algebra Drills"}, nil)
	require.NoError(t, err)

	assert.Equal(t, "algebra-drills", rec.Slug)
	assert.Equal(t, "Algebra Drills", rec.Title)
	assert.Equal(t, store.VisibilityDraft, rec.Visibility)
	assert.Equal(t, store.TagLogicAny, rec.TagLogic)
	assert.Equal(t, 5, rec.BatchSize)
	assert.Equal(t, 25, rec.MaxQuestionsPerSession)
	assert.Equal(t, "default-v1", rec.RulePolicy)
	assert.Equal(t, []string{"easy", "medium", "hard"}, rec.IncludeDifficulties)
	assert.False(t, rec.KeepGroupsTogether)
}

func TestNormalizeAdaptiveDeckBatchSizeBounds(t *testing.T) {
	for _, size := range []int{0, 2, 11} {
		_, err := NormalizeAdaptiveDeck(AdaptiveDeckInput{
			Title:     "d",
			BatchSize: intPtr(size),
		}, nil)
		assert.Error(t, err, "batch size %d", size)
	}

	rec, err := NormalizeAdaptiveDeck(AdaptiveDeckInput{
		Title:     "d",
		BatchSize: intPtr(10),
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 10, rec.BatchSize)
}

func TestNormalizeAdaptiveDeckSessionCapCannotUndercutBatch(t *testing.T) {
	_, err := NormalizeAdaptiveDeck(AdaptiveDeckInput{
		Title:                  "d",
		BatchSize:              intPtr(8),
		MaxQuestionsPerSession: intPtr(7),
	}, nil)
	verr := &ValidationError{}
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "max_questions_per_session", verr.Field)
}

func TestNormalizeAdaptiveDeckDifficultyCoercion(t *testing.T) {
	rec, err := NormalizeAdaptiveDeck(AdaptiveDeckInput{
		Title:               "d",
		IncludeDifficulties: "Easy, HARD",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"easy", "hard"}, rec.IncludeDifficulties)

	_, err = NormalizeAdaptiveDeck(AdaptiveDeckInput{
		Title:               "d",
		IncludeDifficulties: []any{"easy", "impossible"},
	}, nil)
	assert.Error(t, err)
}

func TestNormalizeAdaptiveDeckVisibilityAndLogic(t *testing.T) {
	rec, err := NormalizeAdaptiveDeck(AdaptiveDeckInput{
		Title:      "d",
		Visibility: "PUBLIC",
		TagLogic:   "all",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, store.VisibilityPublic, rec.Visibility)
	assert.Equal(t, store.TagLogicAll, rec.TagLogic)

	// unknown values fall back to defaults, not errors
	rec, err = NormalizeAdaptiveDeck(AdaptiveDeckInput{
		Title:      "d",
		Visibility: "hidden",
		TagLogic:   "XOR",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, store.VisibilityDraft, rec.Visibility)
	assert.Equal(t, store.TagLogicAny, rec.TagLogic)
}

func TestNormalizeAdaptiveDeckUpdateKeepsStoredFields(t *testing.T) {
	existing := &store.AdaptiveDeck{
		Slug:                   "mechanics",
		Title:                  "Mechanics",
		Visibility:             store.VisibilityPublic,
		TagLogic:               store.TagLogicAll,
		IncludeDifficulties:    []string{"hard"},
		BatchSize:              7,
		MaxQuestionsPerSession: 30,
		RulePolicy:             "default-v1",
		KeepGroupsTogether:     true,
		TagIDs:                 []int64{4, 8},
		ExclusionIDs:           []int64{2},
	}

	rec, err := NormalizeAdaptiveDeck(AdaptiveDeckInput{}, existing)
	require.NoError(t, err)

	assert.Equal(t, "mechanics", rec.Slug)
	assert.Equal(t, store.VisibilityPublic, rec.Visibility)
	assert.Equal(t, store.TagLogicAll, rec.TagLogic)
	assert.Equal(t, 7, rec.BatchSize)
	assert.Equal(t, 30, rec.MaxQuestionsPerSession)
	assert.Equal(t, []string{"hard"}, rec.IncludeDifficulties)
	assert.True(t, rec.KeepGroupsTogether)
	assert.Equal(t, []int64{4, 8}, rec.TagIDs)
	assert.Equal(t, []int64{2}, rec.ExclusionIDs)
}

func TestNormalizeAdaptiveDeckUpdateTagAssociations(t *testing.T) {
	existing := &store.AdaptiveDeck{
		Slug:                   "mechanics",
		Title:                  "Mechanics",
		BatchSize:              5,
		MaxQuestionsPerSession: 25,
		TagIDs:                 []int64{4, 8},
		ExclusionIDs:           []int64{2},
	}

	// an explicit empty array clears the set, an omitted field keeps it
	rec, err := NormalizeAdaptiveDeck(AdaptiveDeckInput{TagIDs: &[]int64{}}, existing)
	require.NoError(t, err)
	assert.Empty(t, rec.TagIDs)
	assert.Equal(t, []int64{2}, rec.ExclusionIDs)

	rec, err = NormalizeAdaptiveDeck(AdaptiveDeckInput{
		TagIDs:       &[]int64{5, 5, 6},
		ExclusionIDs: &[]int64{},
	}, existing)
	require.NoError(t, err)
	assert.Equal(t, []int64{5, 6}, rec.TagIDs)
	assert.Empty(t, rec.ExclusionIDs)
}

func TestNormalizeAdaptiveDeckRequiresTitle(t *testing.T) {
	_, err := NormalizeAdaptiveDeck(AdaptiveDeckInput{Slug: "no-title"}, nil)
	verr := &ValidationError{}
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "title", verr.Field)
}
