package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWhereClauseEmptyFilter(t *testing.T) {
	var args []any
	clause := QuestionFilter{}.whereClause(&args)
	assert.Equal(t, "TRUE", clause)
	assert.Empty(t, args)
}

func TestWhereClauseAnyLogicSingleMembership(t *testing.T) {
	var args []any
	f := QuestionFilter{
		Difficulties: []string{"easy", "medium"},
		TagIDs:       []int64{4, 9},
		TagLogic:     TagLogicAny,
	}
	clause := f.whereClause(&args)

	assert.Equal(t,
		"q.difficulty = ANY($1) AND "+
			"EXISTS (SELECT 1 FROM question_tags qt WHERE qt.question_id = q.id AND qt.tag_id = ANY($2))",
		clause)
	assert.Equal(t, []any{[]string{"easy", "medium"}, []int64{4, 9}}, args)
}

func TestWhereClauseAllLogicOneClausePerTag(t *testing.T) {
	var args []any
	f := QuestionFilter{
		TagIDs:   []int64{4, 9},
		TagLogic: TagLogicAll,
	}
	clause := f.whereClause(&args)

	assert.Equal(t,
		"EXISTS (SELECT 1 FROM question_tags qt WHERE qt.question_id = q.id AND qt.tag_id = $1) AND "+
			"EXISTS (SELECT 1 FROM question_tags qt WHERE qt.question_id = q.id AND qt.tag_id = $2)",
		clause)
	assert.Equal(t, []any{int64(4), int64(9)}, args)
}

func TestWhereClauseExclusionIsAlwaysAny(t *testing.T) {
	var args []any
	f := QuestionFilter{
		TagIDs:        []int64{1},
		TagLogic:      TagLogicAll,
		ExcludeTagIDs: []int64{6, 7},
	}
	clause := f.whereClause(&args)

	assert.Contains(t, clause,
		"NOT EXISTS (SELECT 1 FROM question_tags qt WHERE qt.question_id = q.id AND qt.tag_id = ANY($2))")
	assert.Equal(t, []any{int64(1), []int64{6, 7}}, args)
}

func TestWhereClauseIDsAndGroups(t *testing.T) {
	var args []any
	f := QuestionFilter{
		IDs:      []int64{3, 5},
		GroupIDs: []string{"grp-1"},
	}
	clause := f.whereClause(&args)

	assert.Equal(t, "q.id = ANY($1) AND q.group_id = ANY($2)", clause)
	assert.Equal(t, []any{[]int64{3, 5}, []string{"grp-1"}}, args)
}

func TestMatchesMirrorsSQLSemantics(t *testing.T) {
	group := "grp-1"
	stub := QuestionStub{ID: 3, Difficulty: "easy", GroupID: &group, TagIDs: []int64{4, 9}}

	assert.True(t, QuestionFilter{}.Matches(stub))
	assert.True(t, QuestionFilter{Difficulties: []string{"easy"}}.Matches(stub))
	assert.False(t, QuestionFilter{Difficulties: []string{"hard"}}.Matches(stub))

	assert.True(t, QuestionFilter{TagIDs: []int64{9, 100}, TagLogic: TagLogicAny}.Matches(stub))
	assert.False(t, QuestionFilter{TagIDs: []int64{9, 100}, TagLogic: TagLogicAll}.Matches(stub))
	assert.True(t, QuestionFilter{TagIDs: []int64{4, 9}, TagLogic: TagLogicAll}.Matches(stub))

	assert.False(t, QuestionFilter{ExcludeTagIDs: []int64{4}}.Matches(stub))
	assert.True(t, QuestionFilter{ExcludeTagIDs: []int64{100}}.Matches(stub))

	assert.True(t, QuestionFilter{GroupIDs: []string{"grp-1"}}.Matches(stub))
	assert.False(t, QuestionFilter{GroupIDs: []string{"grp-2"}}.Matches(stub))

	noGroup := QuestionStub{ID: 4, Difficulty: "easy"}
	assert.False(t, QuestionFilter{GroupIDs: []string{"grp-1"}}.Matches(noGroup))

	assert.True(t, QuestionFilter{IDs: []int64{3}}.Matches(stub))
	assert.False(t, QuestionFilter{IDs: []int64{8}}.Matches(stub))
}
