package store

import (
	"fmt"
	"strings"
)

// QuestionFilter is the portable filter language the resolution engines speak.
// Stores translate it into SQL; tests and fakes interpret it in memory.
type QuestionFilter struct {
	Difficulties  []string
	TagIDs        []int64
	TagLogic      TagLogic
	ExcludeTagIDs []int64
	GroupIDs      []string
	IDs           []int64
}

// whereClause renders the filter as a SQL predicate over questions q,
// appending bind values to args. An empty filter renders as "TRUE".
//
// Tag inclusion with ALL logic becomes one EXISTS clause per tag id: a single
// membership predicate cannot express "has every tag" against the
// question_tags join without a post-aggregation count, so the N-clause
// conjunction is used instead.
func (f QuestionFilter) whereClause(args *[]any) string {
	var conds []string

	bind := func(v any) string {
		*args = append(*args, v)
		return fmt.Sprintf("$%d", len(*args))
	}

	if len(f.Difficulties) > 0 {
		conds = append(conds, fmt.Sprintf("q.difficulty = ANY(%s)", bind(f.Difficulties)))
	}

	if len(f.IDs) > 0 {
		conds = append(conds, fmt.Sprintf("q.id = ANY(%s)", bind(f.IDs)))
	}

	if len(f.GroupIDs) > 0 {
		conds = append(conds, fmt.Sprintf("q.group_id = ANY(%s)", bind(f.GroupIDs)))
	}

	if len(f.TagIDs) > 0 {
		if f.TagLogic == TagLogicAll {
			for _, id := range f.TagIDs {
				conds = append(conds, fmt.Sprintf(
					"EXISTS (SELECT 1 FROM question_tags qt WHERE qt.question_id = q.id AND qt.tag_id = %s)",
					bind(id)))
			}
		} else {
			conds = append(conds, fmt.Sprintf(
				"EXISTS (SELECT 1 FROM question_tags qt WHERE qt.question_id = q.id AND qt.tag_id = ANY(%s))",
				bind(f.TagIDs)))
		}
	}

	// Exclusion is always ANY-semantics: possessing any excluded tag
	// disqualifies the question, regardless of the inclusion logic.
	if len(f.ExcludeTagIDs) > 0 {
		conds = append(conds, fmt.Sprintf(
			"NOT EXISTS (SELECT 1 FROM question_tags qt WHERE qt.question_id = q.id AND qt.tag_id = ANY(%s))",
			bind(f.ExcludeTagIDs)))
	}

	if len(conds) == 0 {
		return "TRUE"
	}
	return strings.Join(conds, " AND ")
}

// Matches interprets the filter against an in-memory stub. Fakes in tests and
// the structured engine's fallback path share this with the SQL translation.
func (f QuestionFilter) Matches(s QuestionStub) bool {
	if len(f.Difficulties) > 0 && !containsString(f.Difficulties, s.Difficulty) {
		return false
	}
	if len(f.IDs) > 0 && !containsInt64(f.IDs, s.ID) {
		return false
	}
	if len(f.GroupIDs) > 0 {
		if s.GroupID == nil || !containsString(f.GroupIDs, *s.GroupID) {
			return false
		}
	}
	if len(f.TagIDs) > 0 {
		if f.TagLogic == TagLogicAll {
			for _, id := range f.TagIDs {
				if !containsInt64(s.TagIDs, id) {
					return false
				}
			}
		} else {
			any := false
			for _, id := range f.TagIDs {
				if containsInt64(s.TagIDs, id) {
					any = true
					break
				}
			}
			if !any {
				return false
			}
		}
	}
	for _, id := range f.ExcludeTagIDs {
		if containsInt64(s.TagIDs, id) {
			return false
		}
	}
	return true
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

func containsInt64(values []int64, target int64) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
