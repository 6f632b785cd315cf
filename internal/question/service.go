package question

import (
	"context"
	"crypto/subtle"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/quiz-cms/internal/store"
)

// MaxIDsPerRequest caps the batch detail endpoint. Oversized requests are
// rejected outright; callers split instead of the server paginating.
const MaxIDsPerRequest = 50

type detailReader interface {
	ByIDs(ctx context.Context, ids []int64) ([]store.Question, error)
}

// Service serves question details with secret-gated answer exposure.
type Service struct {
	questions detailReader
	secret    string
	logger    zerolog.Logger
}

func NewService(questions detailReader, secret string, logger zerolog.Logger) *Service {
	return &Service{
		questions: questions,
		secret:    secret,
		logger:    logger.With().Str("component", "question_service").Logger(),
	}
}

// ParseIDs extracts positive integer ids from a CSV parameter, deduplicated
// with first-occurrence order preserved. Non-numeric and non-positive entries
// are dropped, not errors.
func ParseIDs(raw string) []int64 {
	var ids []int64
	seen := make(map[int64]struct{})
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil || id <= 0 {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

// RevealAllowed reports whether the supplied header value unlocks answer
// exposure. Always false when no secret is configured.
func (s *Service) RevealAllowed(headerSecret string) bool {
	if s.secret == "" || headerSecret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(s.secret), []byte(headerSecret)) == 1
}

// Details fetches question bodies for the requested ids, in requested order.
// Ids that resolve to nothing are omitted; partial results are valid.
func (s *Service) Details(ctx context.Context, ids []int64, revealAnswers bool) ([]Detail, error) {
	questions, err := s.questions.ByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	lookup := make(map[int64]store.Question, len(questions))
	for _, q := range questions {
		lookup[q.ID] = q
	}

	details := make([]Detail, 0, len(ids))
	for _, id := range ids {
		q, ok := lookup[id]
		if !ok {
			continue
		}
		details = append(details, toDetail(q, revealAnswers))
	}
	return details, nil
}

func toDetail(q store.Question, revealAnswers bool) Detail {
	options := make([]OptionView, 0, len(q.Options))
	for _, opt := range q.Options {
		view := OptionView{ID: opt.ID, Text: opt.Text}
		if revealAnswers {
			correct := opt.IsCorrect
			view.IsCorrect = &correct
		}
		options = append(options, view)
	}

	tags := make([]TagView, 0, len(q.Tags))
	for _, tag := range q.Tags {
		tags = append(tags, TagView{ID: tag.ID, Name: tag.Name})
	}

	return Detail{
		ID:          q.ID,
		Type:        q.Type,
		Difficulty:  q.Difficulty,
		GroupID:     q.GroupID,
		Stem:        q.Stem,
		Explanation: q.Explanation,
		Stimulus:    q.Stimulus,
		Options:     options,
		Tags:        tags,
	}
}
