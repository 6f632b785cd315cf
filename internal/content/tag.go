package content

import (
	"strings"

	"github.com/gokatarajesh/quiz-cms/internal/store"
)

// TagInput is the raw write payload for a tag.
type TagInput struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}

// NormalizeTag validates a tag write. The name is slug-normalized (it is the
// public lookup key); the display name defaults to the raw name.
func NormalizeTag(in TagInput) (store.TagRecord, error) {
	raw := strings.TrimSpace(in.Name)
	if raw == "" {
		return store.TagRecord{}, validationf("name", "name is required")
	}

	name := Slugify(raw)
	if name == "" {
		return store.TagRecord{}, validationf("name", "name must contain alphanumeric characters")
	}

	display := strings.TrimSpace(in.DisplayName)
	if display == "" {
		display = raw
	}

	return store.TagRecord{Name: name, DisplayName: display}, nil
}
