package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MCQSetStore provides slug lookup and writes for MCQ set pages.
type MCQSetStore struct {
	pool *pgxpool.Pool
}

func NewMCQSetStore(pool *pgxpool.Pool) *MCQSetStore {
	return &MCQSetStore{pool: pool}
}

// BySlug fetches an MCQ set by its normalized slug, or nil when absent.
func (s *MCQSetStore) BySlug(ctx context.Context, slug string) (*MCQSet, error) {
	return s.setWhere(ctx, "slug = $1", slug)
}

// ByID fetches an MCQ set by id (write path).
func (s *MCQSetStore) ByID(ctx context.Context, id int64) (*MCQSet, error) {
	return s.setWhere(ctx, "id = $1", id)
}

func (s *MCQSetStore) setWhere(ctx context.Context, where string, arg any) (*MCQSet, error) {
	query := fmt.Sprintf(`
		SELECT id, slug, title, exam, section, topic, intro, parent_hub_url, canonical_url, total_questions
		FROM mcq_sets
		WHERE %s
		LIMIT 1`, where)

	set := &MCQSet{}
	err := s.pool.QueryRow(ctx, query, arg).Scan(
		&set.ID, &set.Slug, &set.Title, &set.Exam, &set.Section, &set.Topic,
		&set.Intro, &set.ParentHubURL, &set.CanonicalURL, &set.TotalQuestions)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query mcq set: %w", err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT question_id FROM mcq_set_free_questions
		WHERE mcq_set_id = $1
		ORDER BY position, question_id`, set.ID)
	if err != nil {
		return nil, fmt.Errorf("query free questions: %w", err)
	}
	defer rows.Close()

	set.FreeQuestionIDs = []int64{}
	for rows.Next() {
		var qid int64
		if err := rows.Scan(&qid); err != nil {
			return nil, fmt.Errorf("scan free question: %w", err)
		}
		set.FreeQuestionIDs = append(set.FreeQuestionIDs, qid)
	}
	return set, rows.Err()
}

// Create inserts a normalized MCQ set and its free-question links.
func (s *MCQSetStore) Create(ctx context.Context, rec MCQSetRecord) (int64, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin create mcq set: %w", err)
	}
	defer tx.Rollback(ctx)

	var id int64
	err = tx.QueryRow(ctx, `
		INSERT INTO mcq_sets (slug, title, exam, section, topic, intro, parent_hub_url, canonical_url, total_questions)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		rec.Slug, rec.Title, rec.Exam, rec.Section, rec.Topic,
		rec.Intro, rec.ParentHubURL, rec.CanonicalURL, rec.TotalQuestions,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert mcq set: %w", err)
	}

	if err := replaceFreeQuestions(ctx, tx, id, rec.FreeQuestionIDs); err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit create mcq set: %w", err)
	}
	return id, nil
}

// Update replaces an MCQ set row and its free-question links.
func (s *MCQSetStore) Update(ctx context.Context, id int64, rec MCQSetRecord) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin update mcq set: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE mcq_sets SET
			slug = $2, title = $3, exam = $4, section = $5, topic = $6,
			intro = $7, parent_hub_url = $8, canonical_url = $9, total_questions = $10,
			updated_at = now()
		WHERE id = $1`,
		id, rec.Slug, rec.Title, rec.Exam, rec.Section, rec.Topic,
		rec.Intro, rec.ParentHubURL, rec.CanonicalURL, rec.TotalQuestions)
	if err != nil {
		return fmt.Errorf("update mcq set: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	if err := replaceFreeQuestions(ctx, tx, id, rec.FreeQuestionIDs); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func replaceFreeQuestions(ctx context.Context, tx pgx.Tx, setID int64, questionIDs []int64) error {
	if _, err := tx.Exec(ctx, `DELETE FROM mcq_set_free_questions WHERE mcq_set_id = $1`, setID); err != nil {
		return fmt.Errorf("clear free questions: %w", err)
	}
	for i, qid := range questionIDs {
		if _, err := tx.Exec(ctx, `
			INSERT INTO mcq_set_free_questions (mcq_set_id, question_id, position)
			VALUES ($1, $2, $3)`, setID, qid, i); err != nil {
			return fmt.Errorf("link free question %d: %w", qid, err)
		}
	}
	return nil
}
