package content

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTagSlugifiesName(t *testing.T) {
	rec, err := NormalizeTag(TagInput{Name: "Time & Work"})
	require.NoError(t, err)
	assert.Equal(t, "time-work", rec.Name)
	assert.Equal(t, "Time & Work", rec.DisplayName)
}

func TestNormalizeTagExplicitDisplayName(t *testing.T) {
	rec, err := NormalizeTag(TagInput{Name: "geometry", DisplayName: "Geometry"})
	require.NoError(t, err)
	assert.Equal(t, "geometry", rec.Name)
	assert.Equal(t, "Geometry", rec.DisplayName)
}

func TestNormalizeTagRejectsEmptyName(t *testing.T) {
	for _, name := range []string{"", "   ", "!!!"} {
		_, err := NormalizeTag(TagInput{Name: name})
		assert.Error(t, err, "name %q", name)
	}
}

func TestValidateQuestionItem(t *testing.T) {
	assert.NoError(t, ValidateQuestionItem(json.RawMessage(`{"stem": "q", "difficulty": "easy"}`)))
	assert.Error(t, ValidateQuestionItem(json.RawMessage(`{"difficulty": "easy"}`)))
	assert.Error(t, ValidateQuestionItem(json.RawMessage(`{"stem": "q", "tags": ["algebra"]}`)))
}

func TestValidateTagItem(t *testing.T) {
	assert.NoError(t, ValidateTagItem(json.RawMessage(`{"name": "algebra"}`)))
	assert.Error(t, ValidateTagItem(json.RawMessage(`{"display_name": "Algebra"}`)))
	assert.Error(t, ValidateTagItem(json.RawMessage(`"algebra"`)))
}
