package content

import (
	"strings"

	"github.com/gokatarajesh/quiz-cms/internal/store"
)

// MCQSetInput is the raw write payload for an MCQ set page.
type MCQSetInput struct {
	Slug            string  `json:"slug"`
	Title           string  `json:"title"`
	Exam            string  `json:"exam"`
	Section         string  `json:"section"`
	Topic           string  `json:"topic"`
	Intro           *string `json:"intro"`
	ParentHubURL    *string `json:"parentHubUrl"`
	CanonicalURL    *string `json:"canonicalUrl"`
	TotalQuestions  *int    `json:"totalQuestions"`
	FreeQuestionIDs []int64 `json:"freeQuestions"`
}

// NormalizeMCQSet validates an MCQ set write against the prior version (nil
// on create). The slug derives from the explicit slug or the title; the total
// question count can never fall below the number of attached free questions.
func NormalizeMCQSet(in MCQSetInput, existing *store.MCQSet) (store.MCQSetRecord, error) {
	rec := store.MCQSetRecord{}

	title := strings.TrimSpace(in.Title)
	if title == "" && existing != nil {
		title = existing.Title
	}
	rec.Title = title

	slugSource := strings.TrimSpace(in.Slug)
	if slugSource == "" {
		slugSource = title
	}
	if slugSource == "" && existing != nil {
		slugSource = existing.Slug
	}
	if slugSource == "" {
		return rec, validationf("slug", "slug is required for an MCQ set")
	}
	slug := Slugify(slugSource)
	if slug == "" {
		return rec, validationf("slug", "slug must contain alphanumeric characters")
	}
	rec.Slug = slug

	rec.Exam = strings.TrimSpace(in.Exam)
	rec.Section = strings.TrimSpace(in.Section)
	rec.Topic = strings.TrimSpace(in.Topic)
	if existing != nil {
		if rec.Exam == "" {
			rec.Exam = existing.Exam
		}
		if rec.Section == "" {
			rec.Section = existing.Section
		}
		if rec.Topic == "" {
			rec.Topic = existing.Topic
		}
	}

	rec.Intro = trimOptional(in.Intro)
	rec.CanonicalURL = trimOptional(in.CanonicalURL)
	if hub := trimOptional(in.ParentHubURL); hub != nil {
		lowered := strings.ToLower(*hub)
		rec.ParentHubURL = &lowered
	}

	total := 0
	if in.TotalQuestions != nil {
		total = *in.TotalQuestions
	} else if existing != nil {
		total = existing.TotalQuestions
	}

	free := dedupeInt64(in.FreeQuestionIDs)
	if in.FreeQuestionIDs == nil && existing != nil {
		free = dedupeInt64(existing.FreeQuestionIDs)
	}

	if total < len(free) {
		return rec, validationf("totalQuestions",
			"total questions cannot be less than the number of free MCQs attached to this set")
	}
	rec.TotalQuestions = total
	rec.FreeQuestionIDs = free

	return rec, nil
}
