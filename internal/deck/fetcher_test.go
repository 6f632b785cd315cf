package deck

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/quiz-cms/internal/store"
)

func TestFetchAllStubsWalksEveryPage(t *testing.T) {
	stubs := make([]store.QuestionStub, 0, indexPageSize*2+30)
	for i := 1; i <= indexPageSize*2+30; i++ {
		stubs = append(stubs, plainStub(int64(i), "easy"))
	}
	src := &memoryQuestions{stubs: stubs}

	all, err := fetchAllStubs(context.Background(), src, store.QuestionFilter{})
	require.NoError(t, err)

	assert.Len(t, all, indexPageSize*2+30)
	assert.Equal(t, 3, src.pageCalls)
	assert.Equal(t, indexPageSize, src.pageSize)
	assert.Equal(t, int64(1), all[0].ID)
	assert.Equal(t, int64(indexPageSize*2+30), all[len(all)-1].ID)
}

func TestFetchAllStubsStopsOnShortPage(t *testing.T) {
	src := questionSource(plainStub(1, "easy"), plainStub(2, "easy"))

	all, err := fetchAllStubs(context.Background(), src, store.QuestionFilter{})
	require.NoError(t, err)

	assert.Len(t, all, 2)
	assert.Equal(t, 1, src.pageCalls)
}

func TestFetchAllStubsEmptyResult(t *testing.T) {
	src := questionSource()

	all, err := fetchAllStubs(context.Background(), src, store.QuestionFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.Equal(t, 1, src.pageCalls)
}

func TestFetchAllStubsExactPageBoundary(t *testing.T) {
	stubs := make([]store.QuestionStub, 0, indexPageSize)
	for i := 1; i <= indexPageSize; i++ {
		stubs = append(stubs, plainStub(int64(i), "medium"))
	}
	src := &memoryQuestions{stubs: stubs}

	all, err := fetchAllStubs(context.Background(), src, store.QuestionFilter{})
	require.NoError(t, err)

	// a full page forces one extra empty-page probe
	assert.Len(t, all, indexPageSize)
	assert.Equal(t, 2, src.pageCalls)
}
