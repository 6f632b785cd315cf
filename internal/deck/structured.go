package deck

import (
	"context"

	"github.com/gokatarajesh/quiz-cms/internal/store"
)

type questionReader interface {
	stubPager
	ByIDs(ctx context.Context, ids []int64) ([]store.Question, error)
}

// resolveStructuredOrder flattens a structured deck's ordered items into a
// deduplicated question id sequence. Question items pass through; group items
// expand to every question sharing the anchor's group_id, in ascending id
// order. An anchor without a group (or whose group resolves empty) falls back
// to the anchor id itself so no authored item silently disappears. A question
// reachable through several items keeps only its first position.
func resolveStructuredOrder(ctx context.Context, questions questionReader, d *store.StructuredDeck) ([]int64, error) {
	if len(d.OrderedItems) == 0 {
		return nil, nil
	}

	var anchorIDs []int64
	for _, item := range d.OrderedItems {
		if item.Kind == store.ItemKindGroup {
			anchorIDs = append(anchorIDs, item.ID)
		}
	}

	groupByAnchor := make(map[int64]string)
	var groupIDs []string
	if len(anchorIDs) > 0 {
		anchors, err := questions.ByIDs(ctx, anchorIDs)
		if err != nil {
			return nil, err
		}
		seen := make(map[string]struct{})
		for _, q := range anchors {
			if q.GroupID == nil || *q.GroupID == "" {
				continue
			}
			groupByAnchor[q.ID] = *q.GroupID
			if _, dup := seen[*q.GroupID]; !dup {
				seen[*q.GroupID] = struct{}{}
				groupIDs = append(groupIDs, *q.GroupID)
			}
		}
	}

	// Members arrive id-ascending from the chunked fetch, which fixes the
	// within-group ordering regardless of the anchor's own position.
	members := make(map[string][]int64)
	if len(groupIDs) > 0 {
		stubs, err := fetchAllStubs(ctx, questions, store.QuestionFilter{GroupIDs: groupIDs})
		if err != nil {
			return nil, err
		}
		for _, stub := range stubs {
			if stub.GroupID == nil {
				continue
			}
			members[*stub.GroupID] = append(members[*stub.GroupID], stub.ID)
		}
	}

	var resolved []int64
	emitted := make(map[int64]struct{})
	emit := func(id int64) {
		if _, dup := emitted[id]; dup {
			return
		}
		emitted[id] = struct{}{}
		resolved = append(resolved, id)
	}

	for _, item := range d.OrderedItems {
		if item.Kind == store.ItemKindQuestion {
			emit(item.ID)
			continue
		}
		groupID, ok := groupByAnchor[item.ID]
		if !ok || len(members[groupID]) == 0 {
			emit(item.ID)
			continue
		}
		for _, memberID := range members[groupID] {
			emit(memberID)
		}
	}
	return resolved, nil
}
