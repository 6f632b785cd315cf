package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// QuestionStore provides filtered, paginated and populated reads over
// questions, plus the insert used by bulk import.
type QuestionStore struct {
	pool *pgxpool.Pool
}

func NewQuestionStore(pool *pgxpool.Pool) *QuestionStore {
	return &QuestionStore{pool: pool}
}

// StubPage returns one fixed-size page of index stubs matching the filter,
// ordered by id ascending. Page numbers start at 1.
func (s *QuestionStore) StubPage(ctx context.Context, filter QuestionFilter, page, pageSize int) ([]QuestionStub, error) {
	if page < 1 {
		page = 1
	}

	var args []any
	where := filter.whereClause(&args)
	args = append(args, pageSize, (page-1)*pageSize)

	query := fmt.Sprintf(`
		SELECT q.id, q.difficulty, q.group_id,
		       COALESCE(array_agg(t.tag_id ORDER BY t.tag_id) FILTER (WHERE t.tag_id IS NOT NULL), '{}')
		FROM questions q
		LEFT JOIN question_tags t ON t.question_id = q.id
		WHERE %s
		GROUP BY q.id, q.difficulty, q.group_id
		ORDER BY q.id
		LIMIT $%d OFFSET $%d`, where, len(args)-1, len(args))

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query question stubs: %w", err)
	}
	defer rows.Close()

	var stubs []QuestionStub
	for rows.Next() {
		var stub QuestionStub
		if err := rows.Scan(&stub.ID, &stub.Difficulty, &stub.GroupID, &stub.TagIDs); err != nil {
			return nil, fmt.Errorf("scan question stub: %w", err)
		}
		if stub.TagIDs == nil {
			stub.TagIDs = []int64{}
		}
		stubs = append(stubs, stub)
	}
	return stubs, rows.Err()
}

// ByIDs returns fully populated questions for the given ids, sorted ascending
// by id. Missing ids are silently absent from the result.
func (s *QuestionStore) ByIDs(ctx context.Context, ids []int64) ([]Question, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, stem, explanation, stimulus, type, difficulty, group_id, answer
		FROM questions
		WHERE id = ANY($1)
		ORDER BY id`, ids)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	var questions []Question
	index := make(map[int64]int)
	for rows.Next() {
		var q Question
		if err := rows.Scan(&q.ID, &q.Stem, &q.Explanation, &q.Stimulus, &q.Type, &q.Difficulty, &q.GroupID, &q.Answer); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		index[q.ID] = len(questions)
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, nil
	}

	optRows, err := s.pool.Query(ctx, `
		SELECT question_id, id, text, is_correct
		FROM question_options
		WHERE question_id = ANY($1)
		ORDER BY question_id, position, id`, ids)
	if err != nil {
		return nil, fmt.Errorf("query options: %w", err)
	}
	defer optRows.Close()
	for optRows.Next() {
		var qid int64
		var opt Option
		if err := optRows.Scan(&qid, &opt.ID, &opt.Text, &opt.IsCorrect); err != nil {
			return nil, fmt.Errorf("scan option: %w", err)
		}
		if i, ok := index[qid]; ok {
			questions[i].Options = append(questions[i].Options, opt)
		}
	}
	if err := optRows.Err(); err != nil {
		return nil, err
	}

	tagRows, err := s.pool.Query(ctx, `
		SELECT qt.question_id, tg.id, tg.name
		FROM question_tags qt
		JOIN tags tg ON tg.id = qt.tag_id
		WHERE qt.question_id = ANY($1)
		ORDER BY qt.question_id, tg.id`, ids)
	if err != nil {
		return nil, fmt.Errorf("query question tags: %w", err)
	}
	defer tagRows.Close()
	for tagRows.Next() {
		var qid int64
		var tag TagRef
		if err := tagRows.Scan(&qid, &tag.ID, &tag.Name); err != nil {
			return nil, fmt.Errorf("scan question tag: %w", err)
		}
		if i, ok := index[qid]; ok {
			questions[i].Tags = append(questions[i].Tags, tag)
		}
	}
	return questions, tagRows.Err()
}

// Insert persists a normalized question with its options and tag links.
func (s *QuestionStore) Insert(ctx context.Context, rec QuestionRecord) (int64, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin insert question: %w", err)
	}
	defer tx.Rollback(ctx)

	var id int64
	err = tx.QueryRow(ctx, `
		INSERT INTO questions (stem, explanation, stimulus, type, difficulty, group_id, answer)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		rec.Stem, rec.Explanation, rec.Stimulus, rec.Type, rec.Difficulty, rec.GroupID, rec.Answer,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert question: %w", err)
	}

	for i, opt := range rec.Options {
		if _, err := tx.Exec(ctx, `
			INSERT INTO question_options (question_id, position, text, is_correct)
			VALUES ($1, $2, $3, $4)`, id, i, opt.Text, opt.IsCorrect); err != nil {
			return 0, fmt.Errorf("insert option: %w", err)
		}
	}

	if err := insertTagLinks(ctx, tx, "question_tags", "question_id", id, rec.TagIDs); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit insert question: %w", err)
	}
	return id, nil
}

func insertTagLinks(ctx context.Context, tx pgx.Tx, table, column string, ownerID int64, tagIDs []int64) error {
	for _, tagID := range tagIDs {
		query := fmt.Sprintf(`INSERT INTO %s (%s, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, table, column)
		if _, err := tx.Exec(ctx, query, ownerID, tagID); err != nil {
			return fmt.Errorf("link tag %d: %w", tagID, err)
		}
	}
	return nil
}
