package deck

import (
	"context"

	"github.com/gokatarajesh/quiz-cms/internal/store"
)

// indexPageSize bounds a single storage round-trip during index resolution.
const indexPageSize = 200

type stubPager interface {
	StubPage(ctx context.Context, filter store.QuestionFilter, page, pageSize int) ([]store.QuestionStub, error)
}

// fetchAllStubs pages through every stub matching the filter, id-ascending.
// Pages are requested sequentially; a short or empty page ends the walk. The
// full match set is materialized here, so callers see one logical result even
// though the storage layer never returns more than a page at a time.
func fetchAllStubs(ctx context.Context, src stubPager, filter store.QuestionFilter) ([]store.QuestionStub, error) {
	var all []store.QuestionStub
	for page := 1; ; page++ {
		stubs, err := src.StubPage(ctx, filter, page, indexPageSize)
		if err != nil {
			return nil, err
		}
		if len(stubs) == 0 {
			break
		}
		all = append(all, stubs...)
		if len(stubs) < indexPageSize {
			break
		}
	}
	return all, nil
}
