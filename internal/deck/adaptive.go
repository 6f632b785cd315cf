package deck

import (
	"github.com/gokatarajesh/quiz-cms/internal/content"
	"github.com/gokatarajesh/quiz-cms/internal/store"
)

var allowedDifficulties = []string{store.DifficultyEasy, store.DifficultyMedium, store.DifficultyHard}

// adaptiveResolution is the normalized rule set an adaptive deck actually
// applies: the question filter plus the deduplicated inputs that built it,
// which metadata reports back to clients.
type adaptiveResolution struct {
	Filter       store.QuestionFilter
	Difficulties []string
	TagIDs       []int64
	ExclusionIDs []int64
}

// buildAdaptiveResolution turns an adaptive deck into its question filter.
// Unknown difficulty values are dropped; a deck left with no usable
// difficulty is a configuration error, not a request for everything.
// Adaptive decks never expand groups here: keep_groups_together is
// pass-through metadata for downstream session builders.
func buildAdaptiveResolution(d *store.AdaptiveDeck) (adaptiveResolution, error) {
	var difficulties []string
	seen := make(map[string]struct{})
	for _, value := range d.IncludeDifficulties {
		if !containsString(allowedDifficulties, value) {
			continue
		}
		if _, dup := seen[value]; dup {
			continue
		}
		seen[value] = struct{}{}
		difficulties = append(difficulties, value)
	}
	if len(difficulties) == 0 {
		return adaptiveResolution{}, &content.ValidationError{
			Field:   "include_difficulties",
			Message: "adaptive deck has no valid include_difficulties",
		}
	}

	tagIDs := dedupeInt64(d.TagIDs)
	exclusionIDs := dedupeInt64(d.ExclusionIDs)

	return adaptiveResolution{
		Filter: store.QuestionFilter{
			Difficulties:  difficulties,
			TagIDs:        tagIDs,
			TagLogic:      normalizeLogic(d.TagLogic),
			ExcludeTagIDs: exclusionIDs,
		},
		Difficulties: difficulties,
		TagIDs:       tagIDs,
		ExclusionIDs: exclusionIDs,
	}, nil
}

func normalizeLogic(logic store.TagLogic) store.TagLogic {
	if logic == store.TagLogicAll {
		return store.TagLogicAll
	}
	return store.TagLogicAny
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

func dedupeInt64(values []int64) []int64 {
	seen := make(map[int64]struct{}, len(values))
	out := make([]int64, 0, len(values))
	for _, v := range values {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
