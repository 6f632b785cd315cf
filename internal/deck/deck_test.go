package deck

import (
	"context"
	"errors"
	"sync"

	"github.com/gokatarajesh/quiz-cms/internal/store"
)

// memoryQuestions is an in-memory question source backing the engine tests.
// StubPage applies the filter with the same semantics the SQL translation has.
type memoryQuestions struct {
	stubs     []store.QuestionStub
	details   map[int64]store.Question
	pageCalls int
	pageSize  int
}

func (m *memoryQuestions) StubPage(_ context.Context, filter store.QuestionFilter, page, pageSize int) ([]store.QuestionStub, error) {
	m.pageCalls++
	m.pageSize = pageSize

	var matched []store.QuestionStub
	for _, s := range m.stubs {
		if filter.Matches(s) {
			matched = append(matched, s)
		}
	}

	start := (page - 1) * pageSize
	if start >= len(matched) {
		return nil, nil
	}
	return matched[start:min(start+pageSize, len(matched))], nil
}

func (m *memoryQuestions) ByIDs(_ context.Context, ids []int64) ([]store.Question, error) {
	var out []store.Question
	for _, id := range ids {
		if q, ok := m.details[id]; ok {
			out = append(out, q)
		}
	}
	return out, nil
}

type memoryDecks struct {
	adaptive   map[string]*store.AdaptiveDeck
	structured map[string]*store.StructuredDeck
}

func (m *memoryDecks) AdaptiveBySlug(_ context.Context, slug string) (*store.AdaptiveDeck, error) {
	return m.adaptive[slug], nil
}

func (m *memoryDecks) StructuredBySlug(_ context.Context, slug string) (*store.StructuredDeck, error) {
	return m.structured[slug], nil
}

var errCacheDown = errors.New("cache down")

// memoryIndexCache records cache traffic; failing forces the degraded path.
type memoryIndexCache struct {
	mu      sync.Mutex
	entries map[string]IndexResponse
	failing bool
	sets    int
}

func newMemoryIndexCache() *memoryIndexCache {
	return &memoryIndexCache{entries: map[string]IndexResponse{}}
}

func (c *memoryIndexCache) Get(_ context.Context, slug string) (*IndexResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failing {
		return nil, errCacheDown
	}
	if resp, ok := c.entries[slug]; ok {
		return &resp, nil
	}
	return nil, nil
}

func (c *memoryIndexCache) Set(_ context.Context, slug string, resp IndexResponse) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failing {
		return errCacheDown
	}
	c.entries[slug] = resp
	c.sets++
	return nil
}

func groupStub(id int64, group string, difficulty string, tagIDs ...int64) store.QuestionStub {
	return store.QuestionStub{ID: id, Difficulty: difficulty, GroupID: &group, TagIDs: tagIDs}
}

func plainStub(id int64, difficulty string, tagIDs ...int64) store.QuestionStub {
	return store.QuestionStub{ID: id, Difficulty: difficulty, TagIDs: tagIDs}
}

func detailFromStub(s store.QuestionStub) store.Question {
	tags := make([]store.TagRef, 0, len(s.TagIDs))
	for _, id := range s.TagIDs {
		tags = append(tags, store.TagRef{ID: id})
	}
	return store.Question{
		ID:         s.ID,
		Stem:       "stem",
		Type:       store.TypeMCQ,
		Difficulty: s.Difficulty,
		GroupID:    s.GroupID,
		Tags:       tags,
	}
}

func questionSource(stubs ...store.QuestionStub) *memoryQuestions {
	details := make(map[int64]store.Question, len(stubs))
	for _, s := range stubs {
		details[s.ID] = detailFromStub(s)
	}
	return &memoryQuestions{stubs: stubs, details: details}
}
