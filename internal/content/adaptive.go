package content

import (
	"strings"

	"github.com/gokatarajesh/quiz-cms/internal/store"
)

const (
	minBatchSize         = 3
	maxBatchSize         = 10
	defaultBatchSize     = 5
	defaultMaxPerSession = 25
	defaultRulePolicy    = "default-v1"
)

// AdaptiveDeckInput is the raw write payload for an adaptive deck.
// IncludeDifficulties is untyped for the same reason as question options.
type AdaptiveDeckInput struct {
	Slug                   string   `json:"slug"`
	Title                  string   `json:"title"`
	Visibility             string   `json:"visibility"`
	TagLogic               string   `json:"tag_logic"`
	IncludeDifficulties    any      `json:"include_difficulties"`
	BatchSize              *int     `json:"batch_size"`
	MaxQuestionsPerSession *int     `json:"max_questions_per_session"`
	RulePolicy             *string  `json:"rule_policy"`
	KeepGroupsTogether     *bool    `json:"keep_groups_together"`
	TopicID                *int64   `json:"topic"`
	TagIDs                 *[]int64 `json:"tags"`
	ExclusionIDs           *[]int64 `json:"exclusions"`
}

// NormalizeAdaptiveDeck validates an adaptive deck write against the prior
// version (nil on create). Defaults: visibility draft, tag_logic ANY,
// batch_size 5, max_questions_per_session 25, all difficulties, rule policy
// "default-v1". The batch_size <= max_questions_per_session invariant holds on
// every successful return.
func NormalizeAdaptiveDeck(in AdaptiveDeckInput, existing *store.AdaptiveDeck) (store.AdaptiveDeckRecord, error) {
	rec := store.AdaptiveDeckRecord{}

	existingSlug, existingTitle := existingDeckSlugTitle(existing)
	slug, title, err := resolveSlugTitle(in.Slug, in.Title, existingSlug, existingTitle)
	if err != nil {
		return rec, err
	}
	rec.Slug = slug
	rec.Title = title

	rec.Visibility = resolveVisibility(in.Visibility, existingAdaptiveVisibility(existing))
	rec.TagLogic = resolveTagLogic(in.TagLogic, existingAdaptiveTagLogic(existing))

	batchSize := defaultBatchSize
	if in.BatchSize != nil {
		batchSize = *in.BatchSize
	} else if existing != nil {
		batchSize = existing.BatchSize
	}
	if batchSize < minBatchSize || batchSize > maxBatchSize {
		return rec, validationf("batch_size", "batch_size must be between %d and %d", minBatchSize, maxBatchSize)
	}
	rec.BatchSize = batchSize

	maxPerSession := defaultMaxPerSession
	if in.MaxQuestionsPerSession != nil {
		maxPerSession = *in.MaxQuestionsPerSession
	} else if existing != nil {
		maxPerSession = existing.MaxQuestionsPerSession
	}
	if maxPerSession < batchSize {
		return rec, validationf("max_questions_per_session",
			"max_questions_per_session must be greater than or equal to batch_size")
	}
	rec.MaxQuestionsPerSession = maxPerSession

	difficulties, err := normalizeDifficulties(in.IncludeDifficulties, existing)
	if err != nil {
		return rec, err
	}
	rec.IncludeDifficulties = difficulties

	policy := ""
	if in.RulePolicy != nil {
		policy = strings.TrimSpace(*in.RulePolicy)
	} else if existing != nil {
		policy = strings.TrimSpace(existing.RulePolicy)
	}
	if policy == "" {
		policy = defaultRulePolicy
	}
	rec.RulePolicy = policy

	if in.KeepGroupsTogether != nil {
		rec.KeepGroupsTogether = *in.KeepGroupsTogether
	} else if existing != nil {
		rec.KeepGroupsTogether = existing.KeepGroupsTogether
	}

	rec.TopicID = in.TopicID
	if rec.TopicID == nil && existing != nil && existing.Topic != nil {
		id := existing.Topic.ID
		rec.TopicID = &id
	}

	var existingTags, existingExclusions []int64
	if existing != nil {
		existingTags, existingExclusions = existing.TagIDs, existing.ExclusionIDs
	}
	rec.TagIDs = resolveTagSet(in.TagIDs, existingTags)
	rec.ExclusionIDs = resolveTagSet(in.ExclusionIDs, existingExclusions)

	return rec, nil
}

// resolveTagSet keeps the stored association set only when the payload omits
// the field entirely. An explicit empty array clears the set.
func resolveTagSet(in *[]int64, existing []int64) []int64 {
	if in != nil {
		return dedupeInt64(*in)
	}
	return dedupeInt64(existing)
}

func normalizeDifficulties(raw any, existing *store.AdaptiveDeck) ([]string, error) {
	values, ok, err := FlexStrings("include_difficulties", raw)
	if err != nil {
		return nil, err
	}
	if !ok && existing != nil {
		values = existing.IncludeDifficulties
	}
	if len(values) == 0 {
		values = append([]string{}, validDifficulties...)
	}

	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, item := range values {
		value := strings.ToLower(strings.TrimSpace(item))
		if !containsString(validDifficulties, value) {
			return nil, validationf("include_difficulties", "invalid difficulty %q", item)
		}
		if _, dup := seen[value]; dup {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	return out, nil
}

func resolveSlugTitle(slug, title string, existingSlug, existingTitle string) (string, string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		title = existingTitle
	}
	if title == "" {
		return "", "", validationf("title", "title is required")
	}

	slug = strings.TrimSpace(slug)
	if slug == "" {
		slug = existingSlug
	}
	if slug == "" {
		slug = title
	}
	normalized := Slugify(slug)
	if normalized == "" {
		return "", "", validationf("slug", "slug must contain alphanumeric characters")
	}
	return normalized, title, nil
}

func resolveVisibility(raw string, fallback store.Visibility) store.Visibility {
	switch store.Visibility(strings.ToLower(strings.TrimSpace(raw))) {
	case store.VisibilityPublic:
		return store.VisibilityPublic
	case store.VisibilityDraft:
		return store.VisibilityDraft
	}
	if fallback != "" {
		return fallback
	}
	return store.VisibilityDraft
}

func resolveTagLogic(raw string, fallback store.TagLogic) store.TagLogic {
	switch store.TagLogic(strings.ToUpper(strings.TrimSpace(raw))) {
	case store.TagLogicAll:
		return store.TagLogicAll
	case store.TagLogicAny:
		return store.TagLogicAny
	}
	if fallback != "" {
		return fallback
	}
	return store.TagLogicAny
}

func existingDeckSlugTitle(existing *store.AdaptiveDeck) (string, string) {
	if existing == nil {
		return "", ""
	}
	return existing.Slug, existing.Title
}

func existingAdaptiveVisibility(existing *store.AdaptiveDeck) store.Visibility {
	if existing == nil {
		return ""
	}
	return existing.Visibility
}

func existingAdaptiveTagLogic(existing *store.AdaptiveDeck) store.TagLogic {
	if existing == nil {
		return ""
	}
	return existing.TagLogic
}
