package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dnflvus-wq/engTest-sub000/internal/model"
)

// ChapterRepository handles book chapter and round linkage data access.
type ChapterRepository struct {
	pool *pgxpool.Pool
}

// NewChapterRepository creates a new ChapterRepository.
func NewChapterRepository(pool *pgxpool.Pool) *ChapterRepository {
	return &ChapterRepository{pool: pool}
}

// ListWithUsage retrieves every chapter with the rounds covering it.
func (r *ChapterRepository) ListWithUsage(ctx context.Context) ([]model.ChapterUsage, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT c.id, c.book_id, c.book_title, c.part_number, c.part_title,
		        c.chapter_label, c.chapter_title, c.seq_no, c.vocabulary_count,
		        COALESCE(ARRAY_AGG(rc.round_id) FILTER (WHERE rc.round_id IS NOT NULL), '{}')
		 FROM book_chapters c
		 LEFT JOIN round_chapters rc ON rc.chapter_id = c.id
		 GROUP BY c.id
		 ORDER BY c.seq_no ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chapters []model.ChapterUsage
	for rows.Next() {
		var cu model.ChapterUsage
		if err := rows.Scan(&cu.ID, &cu.BookID, &cu.BookTitle, &cu.PartNumber, &cu.PartTitle,
			&cu.ChapterLabel, &cu.ChapterTitle, &cu.SeqNo, &cu.VocabularyCount, &cu.RoundIDs); err != nil {
			return nil, err
		}
		chapters = append(chapters, cu)
	}
	return chapters, rows.Err()
}

// ListCompletedForUser retrieves chapter IDs covered by rounds the user
// has passed.
func (r *ChapterRepository) ListCompletedForUser(ctx context.Context, userID int64) (map[int64]bool, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT DISTINCT rc.chapter_id
		 FROM round_chapters rc
		 JOIN exams e ON e.round_id = rc.round_id
		 WHERE e.user_id = $1 AND e.is_passed = TRUE`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	completed := make(map[int64]bool)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		completed[id] = true
	}
	return completed, rows.Err()
}

// List retrieves every chapter in sequence order.
func (r *ChapterRepository) List(ctx context.Context) ([]model.BookChapter, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, book_id, book_title, part_number, part_title,
		        chapter_label, chapter_title, seq_no, vocabulary_count
		 FROM book_chapters
		 ORDER BY seq_no ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chapters []model.BookChapter
	for rows.Next() {
		var c model.BookChapter
		if err := rows.Scan(&c.ID, &c.BookID, &c.BookTitle, &c.PartNumber, &c.PartTitle,
			&c.ChapterLabel, &c.ChapterTitle, &c.SeqNo, &c.VocabularyCount); err != nil {
			return nil, err
		}
		chapters = append(chapters, c)
	}
	return chapters, rows.Err()
}

// AssignToRound replaces a round's chapter links.
func (r *ChapterRepository) AssignToRound(ctx context.Context, roundID int64, chapterIDs []int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM round_chapters WHERE round_id = $1`, roundID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx,
		`INSERT INTO round_chapters (round_id, chapter_id)
		 SELECT $1, cid FROM UNNEST($2::bigint[]) AS cid
		 ON CONFLICT DO NOTHING`, roundID, chapterIDs); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
