package deck

import (
	"github.com/gokatarajesh/quiz-cms/internal/content"
	"github.com/gokatarajesh/quiz-cms/internal/store"
)

// HierarchyRef is a single display node of the topic->section->exam chain.
// Only the topic carries its id in responses.
type HierarchyRef struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Hierarchy is the resolved display chain for a deck's topic reference.
type Hierarchy struct {
	Topic   *HierarchyRef
	Section *HierarchyRef
	Exam    *HierarchyRef
}

// ExtractHierarchy derives display names and slugs for a deck's topic chain.
// Display names win over raw names; stored slugs win over derived ones. When
// slug derivation yields nothing usable, the raw name serves as the slug so
// the chain never resolves to an empty reference.
func ExtractHierarchy(topic *store.Topic) Hierarchy {
	if topic == nil {
		return Hierarchy{}
	}

	h := Hierarchy{
		Topic: &HierarchyRef{
			ID:   topic.ID,
			Name: displayName(topic.DisplayName, topic.Name),
			Slug: resolveSlug(topic.Slug, topic.Name),
		},
	}

	section := topic.Section
	if section == nil {
		return h
	}
	h.Section = &HierarchyRef{
		Name: displayName(section.DisplayName, section.Name),
		Slug: resolveSlug(section.Slug, section.Name),
	}

	exam := section.Exam
	if exam == nil {
		return h
	}
	h.Exam = &HierarchyRef{
		Name: exam.Name,
		Slug: resolveSlug(exam.Slug, exam.Name),
	}
	return h
}

func displayName(display *string, name string) string {
	if display != nil && *display != "" {
		return *display
	}
	return name
}

func resolveSlug(stored *string, name string) string {
	if stored != nil && *stored != "" {
		return *stored
	}
	if derived := content.Slugify(name); derived != "" {
		return derived
	}
	return name
}
