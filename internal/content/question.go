package content

import (
	"strings"

	"github.com/gokatarajesh/quiz-cms/internal/store"
)

var validDifficulties = []string{store.DifficultyEasy, store.DifficultyMedium, store.DifficultyHard}

// QuestionInput is the raw write payload for a question. Options is untyped
// because historical importers sent it as an array, a JSON string, or a
// {set/value} wrapper; FlexSlice resolves that.
type QuestionInput struct {
	Stem        string  `json:"stem"`
	Explanation *string `json:"explanation"`
	Stimulus    *string `json:"stimulus"`
	Type        string  `json:"type"`
	Difficulty  string  `json:"difficulty"`
	GroupID     *string `json:"group_id"`
	Answer      *string `json:"answer"`
	Options     any     `json:"options"`
	TagIDs      []int64 `json:"tags"`
}

// NormalizeQuestion validates a question write against the prior version (nil
// on create) and produces the record to persist. MCQ questions need at least
// two options and one correct answer; other types need a free-text answer.
func NormalizeQuestion(in QuestionInput, existing *store.Question) (store.QuestionRecord, error) {
	rec := store.QuestionRecord{}

	qType := strings.TrimSpace(in.Type)
	if qType == "" && existing != nil {
		qType = existing.Type
	}
	if qType == "" {
		qType = store.TypeMCQ
	}
	rec.Type = qType

	stem := strings.TrimSpace(in.Stem)
	if stem == "" && existing != nil {
		stem = existing.Stem
	}
	if stem == "" {
		return rec, validationf("stem", "stem is required")
	}
	rec.Stem = stem

	difficulty := strings.ToLower(strings.TrimSpace(in.Difficulty))
	if difficulty == "" && existing != nil {
		difficulty = existing.Difficulty
	}
	if difficulty == "" {
		return rec, validationf("difficulty", "difficulty is required")
	}
	if !containsString(validDifficulties, difficulty) {
		return rec, validationf("difficulty", "invalid difficulty %q", difficulty)
	}
	rec.Difficulty = difficulty

	rec.Explanation = trimOptional(in.Explanation)
	rec.Stimulus = trimOptional(in.Stimulus)
	rec.GroupID = trimOptional(in.GroupID)
	if rec.GroupID == nil && existing != nil {
		rec.GroupID = existing.GroupID
	}

	if len(in.TagIDs) > 0 {
		rec.TagIDs = dedupeInt64(in.TagIDs)
	} else if existing != nil {
		for _, tag := range existing.Tags {
			rec.TagIDs = append(rec.TagIDs, tag.ID)
		}
	}

	if qType == store.TypeMCQ {
		options, err := resolveOptions(in.Options, existing)
		if err != nil {
			return rec, err
		}
		if len(options) < 2 {
			return rec, validationf("options", "MCQ questions must include at least two options")
		}
		correct := 0
		for _, opt := range options {
			if opt.IsCorrect {
				correct++
			}
		}
		if correct == 0 {
			return rec, validationf("options", "MCQ questions must have at least one correct option")
		}
		rec.Options = options
		// answer is an artifact of non-MCQ types; never stored for MCQs
		rec.Answer = nil
		return rec, nil
	}

	answer := trimOptional(in.Answer)
	if answer == nil && existing != nil {
		answer = existing.Answer
	}
	if answer == nil {
		return rec, validationf("answer", "answer is required for non-MCQ question types")
	}
	rec.Answer = answer
	rec.Options = nil
	return rec, nil
}

func resolveOptions(raw any, existing *store.Question) ([]store.OptionRecord, error) {
	entries, ok := FlexSlice(raw)
	if !ok {
		if existing == nil {
			return nil, nil
		}
		options := make([]store.OptionRecord, 0, len(existing.Options))
		for _, opt := range existing.Options {
			options = append(options, store.OptionRecord{Text: opt.Text, IsCorrect: opt.IsCorrect})
		}
		return options, nil
	}

	options := make([]store.OptionRecord, 0, len(entries))
	for _, entry := range entries {
		obj, ok := entry.(map[string]any)
		if !ok {
			return nil, validationf("options", "each option must be an object")
		}
		text, _ := obj["text"].(string)
		text = strings.TrimSpace(text)
		if text == "" {
			return nil, validationf("options", "option text is required")
		}
		options = append(options, store.OptionRecord{
			Text:      text,
			IsCorrect: coerceBool(obj["is_correct"]),
		})
	}
	return options, nil
}

func coerceBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t == "true" || t == "1"
	}
	return false
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
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
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
