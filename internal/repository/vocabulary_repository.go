package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dnflvus-wq/engTest-sub000/internal/model"
)

// VocabularyRepository handles vocabulary word data access.
type VocabularyRepository struct {
	pool *pgxpool.Pool
}

// NewVocabularyRepository creates a new VocabularyRepository.
func NewVocabularyRepository(pool *pgxpool.Pool) *VocabularyRepository {
	return &VocabularyRepository{pool: pool}
}

// ListByRound retrieves a round's vocabulary in sequence order.
func (r *VocabularyRepository) ListByRound(ctx context.Context, roundID int64) ([]model.VocabularyWord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, round_id, english, korean, phonetic, seq_no, created_at
		 FROM vocabulary_words
		 WHERE round_id = $1
		 ORDER BY seq_no ASC, id ASC`, roundID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var words []model.VocabularyWord
	for rows.Next() {
		var w model.VocabularyWord
		if err := rows.Scan(&w.ID, &w.RoundID, &w.English, &w.Korean,
			&w.Phonetic, &w.SeqNo, &w.CreatedAt); err != nil {
			return nil, err
		}
		words = append(words, w)
	}
	return words, rows.Err()
}

// CreateBatch inserts vocabulary words with UNNEST for a single round trip.
func (r *VocabularyRepository) CreateBatch(ctx context.Context, words []model.VocabularyWord) error {
	if len(words) == 0 {
		return nil
	}

	roundIDs := make([]int64, len(words))
	english := make([]string, len(words))
	korean := make([]string, len(words))
	phonetic := make([]string, len(words))
	seqNos := make([]int, len(words))
	for i, w := range words {
		roundIDs[i] = w.RoundID
		english[i] = w.English
		korean[i] = w.Korean
		phonetic[i] = w.Phonetic
		seqNos[i] = w.SeqNo
	}

	_, err := r.pool.Exec(ctx,
		`INSERT INTO vocabulary_words (round_id, english, korean, phonetic, seq_no)
		 SELECT * FROM UNNEST($1::bigint[], $2::text[], $3::text[], $4::text[], $5::int[])`,
		roundIDs, english, korean, phonetic, seqNos)
	return err
}

// MaxSeqNo returns the highest sequence number in a round, 0 when empty.
func (r *VocabularyRepository) MaxSeqNo(ctx context.Context, roundID int64) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(MAX(seq_no), 0) FROM vocabulary_words WHERE round_id = $1`, roundID).Scan(&n)
	return n, err
}

// Delete removes a vocabulary word.
func (r *VocabularyRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM vocabulary_words WHERE id = $1`, id)
	return err
}
