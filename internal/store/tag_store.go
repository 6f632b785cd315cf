package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TagStore persists tags created through bulk import.
type TagStore struct {
	pool *pgxpool.Pool
}

func NewTagStore(pool *pgxpool.Pool) *TagStore {
	return &TagStore{pool: pool}
}

// Insert creates a tag. Duplicate names surface as errors for the bulk
// importer to report per item.
func (s *TagStore) Insert(ctx context.Context, rec TagRecord) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx, `
		INSERT INTO tags (name, display_name)
		VALUES ($1, $2)
		RETURNING id`, rec.Name, rec.DisplayName).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert tag: %w", err)
	}
	return id, nil
}
