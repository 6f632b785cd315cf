package content

import (
	"strings"

	"github.com/gokatarajesh/quiz-cms/internal/store"
)

// StructuredDeckInput is the raw write payload for a structured deck.
// OrderedItems accepts the same historical shapes as other list fields.
type StructuredDeckInput struct {
	Slug               string   `json:"slug"`
	Title              string   `json:"title"`
	Visibility         string   `json:"visibility"`
	TagLogic           string   `json:"tag_logic"`
	KeepGroupsTogether *bool    `json:"keep_groups_together"`
	OrderedItems       any      `json:"ordered_items"`
	TopicID            *int64   `json:"topic"`
	TagIDs             *[]int64 `json:"tags"`
	ExclusionIDs       *[]int64 `json:"exclusions"`
}

// NormalizeStructuredDeck validates a structured deck write against the prior
// version (nil on create). ordered_items must resolve to a non-empty sequence
// of {kind: question|group, id > 0} entries.
func NormalizeStructuredDeck(in StructuredDeckInput, existing *store.StructuredDeck) (store.StructuredDeckRecord, error) {
	rec := store.StructuredDeckRecord{}

	var existingSlug, existingTitle string
	if existing != nil {
		existingSlug, existingTitle = existing.Slug, existing.Title
	}
	slug, title, err := resolveSlugTitle(in.Slug, in.Title, existingSlug, existingTitle)
	if err != nil {
		return rec, err
	}
	rec.Slug = slug
	rec.Title = title

	var fallbackVisibility store.Visibility
	var fallbackLogic store.TagLogic
	if existing != nil {
		fallbackVisibility = existing.Visibility
		fallbackLogic = existing.TagLogic
	}
	rec.Visibility = resolveVisibility(in.Visibility, fallbackVisibility)
	rec.TagLogic = resolveTagLogic(in.TagLogic, fallbackLogic)

	if in.KeepGroupsTogether != nil {
		rec.KeepGroupsTogether = *in.KeepGroupsTogether
	} else if existing != nil {
		rec.KeepGroupsTogether = existing.KeepGroupsTogether
	}

	items, err := normalizeOrderedItems(in.OrderedItems, existing)
	if err != nil {
		return rec, err
	}
	rec.OrderedItems = items

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

func normalizeOrderedItems(raw any, existing *store.StructuredDeck) ([]store.OrderedItem, error) {
	entries, ok := FlexSlice(raw)
	if !ok && existing != nil && len(existing.OrderedItems) > 0 {
		return existing.OrderedItems, nil
	}
	if len(entries) == 0 {
		return nil, validationf("ordered_items", "structured decks must define ordered_items")
	}

	items := make([]store.OrderedItem, 0, len(entries))
	for i, entry := range entries {
		obj, ok := entry.(map[string]any)
		if !ok {
			return nil, validationf("ordered_items", "entry %d must be an object", i+1)
		}

		kind, _ := obj["kind"].(string)
		kind = strings.TrimSpace(kind)
		if kind != store.ItemKindQuestion && kind != store.ItemKindGroup {
			return nil, validationf("ordered_items", "entry %d has invalid kind %q", i+1, kind)
		}

		id, ok := positiveInt(obj["id"])
		if !ok {
			return nil, validationf("ordered_items", "entry %d must include a positive numeric id", i+1)
		}

		items = append(items, store.OrderedItem{Kind: kind, ID: id})
	}
	return items, nil
}

// positiveInt accepts the integral shapes JSON decoding produces.
func positiveInt(v any) (int64, bool) {
	switch t := v.(type) {
	case float64:
		if t > 0 && t == float64(int64(t)) {
			return int64(t), true
		}
	case int64:
		if t > 0 {
			return t, true
		}
	case int:
		if t > 0 {
			return int64(t), true
		}
	}
	return 0, false
}
