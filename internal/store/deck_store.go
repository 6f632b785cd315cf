package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DeckStore provides slug/id lookups and writes for both deck variants,
// with the topic hierarchy and tag associations populated.
type DeckStore struct {
	pool *pgxpool.Pool
}

func NewDeckStore(pool *pgxpool.Pool) *DeckStore {
	return &DeckStore{pool: pool}
}

const topicChainColumns = `
	tp.id, tp.name, tp.display_name, tp.slug,
	sc.id, sc.name, sc.display_name, sc.slug,
	ex.id, ex.name, ex.slug`

const topicChainJoins = `
	LEFT JOIN topics tp ON tp.id = d.topic_id
	LEFT JOIN sections sc ON sc.id = tp.section_id
	LEFT JOIN exams ex ON ex.id = sc.exam_id`

// AdaptiveBySlug fetches a public adaptive deck by slug, or nil when absent.
// Draft decks are indistinguishable from missing ones.
func (s *DeckStore) AdaptiveBySlug(ctx context.Context, slug string) (*AdaptiveDeck, error) {
	return s.adaptiveWhere(ctx, "d.slug = $1 AND d.visibility = 'public'", slug)
}

// AdaptiveByID fetches an adaptive deck regardless of visibility (write path).
func (s *DeckStore) AdaptiveByID(ctx context.Context, id int64) (*AdaptiveDeck, error) {
	return s.adaptiveWhere(ctx, "d.id = $1", id)
}

func (s *DeckStore) adaptiveWhere(ctx context.Context, where string, arg any) (*AdaptiveDeck, error) {
	query := fmt.Sprintf(`
		SELECT d.id, d.slug, d.title, d.visibility, d.tag_logic, d.include_difficulties,
		       d.batch_size, d.max_questions_per_session, d.rule_policy, d.keep_groups_together,
		       %s
		FROM adaptive_decks d
		%s
		WHERE %s
		LIMIT 1`, topicChainColumns, topicChainJoins, where)

	row := s.pool.QueryRow(ctx, query, arg)

	deck := &AdaptiveDeck{}
	var chain topicChainScan
	dests := append([]any{
		&deck.ID, &deck.Slug, &deck.Title, &deck.Visibility, &deck.TagLogic, &deck.IncludeDifficulties,
		&deck.BatchSize, &deck.MaxQuestionsPerSession, &deck.RulePolicy, &deck.KeepGroupsTogether,
	}, chain.dests()...)
	err := row.Scan(dests...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query adaptive deck: %w", err)
	}
	deck.Topic = chain.topic()

	deck.TagIDs, err = s.linkedTagIDs(ctx, "adaptive_deck_tags", "deck_id", deck.ID)
	if err != nil {
		return nil, err
	}
	deck.ExclusionIDs, err = s.linkedTagIDs(ctx, "adaptive_deck_exclusions", "deck_id", deck.ID)
	if err != nil {
		return nil, err
	}
	return deck, nil
}

// StructuredBySlug fetches a public structured deck by slug, or nil when absent.
func (s *DeckStore) StructuredBySlug(ctx context.Context, slug string) (*StructuredDeck, error) {
	return s.structuredWhere(ctx, "d.slug = $1 AND d.visibility = 'public'", slug)
}

// StructuredByID fetches a structured deck regardless of visibility (write path).
func (s *DeckStore) StructuredByID(ctx context.Context, id int64) (*StructuredDeck, error) {
	return s.structuredWhere(ctx, "d.id = $1", id)
}

func (s *DeckStore) structuredWhere(ctx context.Context, where string, arg any) (*StructuredDeck, error) {
	query := fmt.Sprintf(`
		SELECT d.id, d.slug, d.title, d.visibility, d.tag_logic, d.keep_groups_together, d.ordered_items,
		       %s
		FROM structured_decks d
		%s
		WHERE %s
		LIMIT 1`, topicChainColumns, topicChainJoins, where)

	row := s.pool.QueryRow(ctx, query, arg)

	deck := &StructuredDeck{}
	var chain topicChainScan
	var rawItems []byte
	dests := append([]any{
		&deck.ID, &deck.Slug, &deck.Title, &deck.Visibility, &deck.TagLogic, &deck.KeepGroupsTogether, &rawItems,
	}, chain.dests()...)
	err := row.Scan(dests...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query structured deck: %w", err)
	}
	if len(rawItems) > 0 {
		if err := json.Unmarshal(rawItems, &deck.OrderedItems); err != nil {
			return nil, fmt.Errorf("decode ordered_items: %w", err)
		}
	}
	deck.Topic = chain.topic()

	deck.TagIDs, err = s.linkedTagIDs(ctx, "structured_deck_tags", "deck_id", deck.ID)
	if err != nil {
		return nil, err
	}
	deck.ExclusionIDs, err = s.linkedTagIDs(ctx, "structured_deck_exclusions", "deck_id", deck.ID)
	if err != nil {
		return nil, err
	}
	return deck, nil
}

// CreateAdaptive inserts a normalized adaptive deck and its tag links.
func (s *DeckStore) CreateAdaptive(ctx context.Context, rec AdaptiveDeckRecord) (int64, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin create adaptive deck: %w", err)
	}
	defer tx.Rollback(ctx)

	var id int64
	err = tx.QueryRow(ctx, `
		INSERT INTO adaptive_decks
			(slug, title, visibility, tag_logic, include_difficulties, batch_size,
			 max_questions_per_session, rule_policy, keep_groups_together, topic_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`,
		rec.Slug, rec.Title, rec.Visibility, rec.TagLogic, rec.IncludeDifficulties,
		rec.BatchSize, rec.MaxQuestionsPerSession, rec.RulePolicy, rec.KeepGroupsTogether, rec.TopicID,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert adaptive deck: %w", err)
	}

	if err := replaceTagLinks(ctx, tx, "adaptive_deck_tags", id, rec.TagIDs); err != nil {
		return 0, err
	}
	if err := replaceTagLinks(ctx, tx, "adaptive_deck_exclusions", id, rec.ExclusionIDs); err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit create adaptive deck: %w", err)
	}
	return id, nil
}

// UpdateAdaptive replaces a deck row and its association sets.
func (s *DeckStore) UpdateAdaptive(ctx context.Context, id int64, rec AdaptiveDeckRecord) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin update adaptive deck: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE adaptive_decks SET
			slug = $2, title = $3, visibility = $4, tag_logic = $5, include_difficulties = $6,
			batch_size = $7, max_questions_per_session = $8, rule_policy = $9,
			keep_groups_together = $10, topic_id = $11, updated_at = now()
		WHERE id = $1`,
		id, rec.Slug, rec.Title, rec.Visibility, rec.TagLogic, rec.IncludeDifficulties,
		rec.BatchSize, rec.MaxQuestionsPerSession, rec.RulePolicy, rec.KeepGroupsTogether, rec.TopicID)
	if err != nil {
		return fmt.Errorf("update adaptive deck: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	if err := replaceTagLinks(ctx, tx, "adaptive_deck_tags", id, rec.TagIDs); err != nil {
		return err
	}
	if err := replaceTagLinks(ctx, tx, "adaptive_deck_exclusions", id, rec.ExclusionIDs); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// CreateStructured inserts a normalized structured deck and its tag links.
func (s *DeckStore) CreateStructured(ctx context.Context, rec StructuredDeckRecord) (int64, error) {
	items, err := json.Marshal(rec.OrderedItems)
	if err != nil {
		return 0, fmt.Errorf("encode ordered_items: %w", err)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin create structured deck: %w", err)
	}
	defer tx.Rollback(ctx)

	var id int64
	err = tx.QueryRow(ctx, `
		INSERT INTO structured_decks
			(slug, title, visibility, tag_logic, keep_groups_together, ordered_items, topic_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		rec.Slug, rec.Title, rec.Visibility, rec.TagLogic, rec.KeepGroupsTogether, items, rec.TopicID,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert structured deck: %w", err)
	}

	if err := replaceTagLinks(ctx, tx, "structured_deck_tags", id, rec.TagIDs); err != nil {
		return 0, err
	}
	if err := replaceTagLinks(ctx, tx, "structured_deck_exclusions", id, rec.ExclusionIDs); err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit create structured deck: %w", err)
	}
	return id, nil
}

// UpdateStructured replaces a structured deck row and its association sets.
func (s *DeckStore) UpdateStructured(ctx context.Context, id int64, rec StructuredDeckRecord) error {
	items, err := json.Marshal(rec.OrderedItems)
	if err != nil {
		return fmt.Errorf("encode ordered_items: %w", err)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin update structured deck: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE structured_decks SET
			slug = $2, title = $3, visibility = $4, tag_logic = $5,
			keep_groups_together = $6, ordered_items = $7, topic_id = $8, updated_at = now()
		WHERE id = $1`,
		id, rec.Slug, rec.Title, rec.Visibility, rec.TagLogic, rec.KeepGroupsTogether, items, rec.TopicID)
	if err != nil {
		return fmt.Errorf("update structured deck: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	if err := replaceTagLinks(ctx, tx, "structured_deck_tags", id, rec.TagIDs); err != nil {
		return err
	}
	if err := replaceTagLinks(ctx, tx, "structured_deck_exclusions", id, rec.ExclusionIDs); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *DeckStore) linkedTagIDs(ctx context.Context, table, column string, deckID int64) ([]int64, error) {
	query := fmt.Sprintf(`SELECT tag_id FROM %s WHERE %s = $1 ORDER BY tag_id`, table, column)
	rows, err := s.pool.Query(ctx, query, deckID)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func replaceTagLinks(ctx context.Context, tx pgx.Tx, table string, deckID int64, tagIDs []int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE deck_id = $1`, table)
	if _, err := tx.Exec(ctx, query, deckID); err != nil {
		return fmt.Errorf("clear %s: %w", table, err)
	}
	return insertTagLinks(ctx, tx, table, "deck_id", deckID, tagIDs)
}

// topicChainScan collects the nullable topic->section->exam join columns.
type topicChainScan struct {
	topicID, sectionID, examID       *int64
	topicName, sectionName, examName *string
	topicDisplay, sectionDisplay     *string
	topicSlug, sectionSlug, examSlug *string
}

func (c *topicChainScan) dests() []any {
	return []any{
		&c.topicID, &c.topicName, &c.topicDisplay, &c.topicSlug,
		&c.sectionID, &c.sectionName, &c.sectionDisplay, &c.sectionSlug,
		&c.examID, &c.examName, &c.examSlug,
	}
}

func (c *topicChainScan) topic() *Topic {
	if c.topicID == nil {
		return nil
	}
	topic := &Topic{
		ID:          *c.topicID,
		Name:        deref(c.topicName),
		DisplayName: c.topicDisplay,
		Slug:        c.topicSlug,
	}
	if c.sectionID != nil {
		topic.Section = &Section{
			ID:          *c.sectionID,
			Name:        deref(c.sectionName),
			DisplayName: c.sectionDisplay,
			Slug:        c.sectionSlug,
		}
		if c.examID != nil {
			topic.Section.Exam = &Exam{
				ID:   *c.examID,
				Name: deref(c.examName),
				Slug: c.examSlug,
			}
		}
	}
	return topic
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
