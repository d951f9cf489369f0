package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dnflvus-wq/engTest-sub000/internal/model"
)

// RoundRepository handles round data access.
type RoundRepository struct {
	pool *pgxpool.Pool
}

// NewRoundRepository creates a new RoundRepository.
func NewRoundRepository(pool *pgxpool.Pool) *RoundRepository {
	return &RoundRepository{pool: pool}
}

const roundColumns = `id, title, description, question_count, difficulty, pass_score, status, created_at`

func scanRound(row pgx.Row) (*model.Round, error) {
	rd := &model.Round{}
	err := row.Scan(&rd.ID, &rd.Title, &rd.Description, &rd.QuestionCount,
		&rd.Difficulty, &rd.PassScore, &rd.Status, &rd.CreatedAt)
	if err != nil {
		return nil, err
	}
	return rd, nil
}

// GetByID retrieves a round by ID.
func (r *RoundRepository) GetByID(ctx context.Context, id int64) (*model.Round, error) {
	return scanRound(r.pool.QueryRow(ctx,
		`SELECT `+roundColumns+` FROM rounds WHERE id = $1`, id))
}

// List retrieves all rounds, newest first.
func (r *RoundRepository) List(ctx context.Context) ([]model.Round, error) {
	return r.queryRounds(ctx,
		`SELECT `+roundColumns+` FROM rounds ORDER BY id DESC`)
}

// ListByStatus retrieves rounds in a given state, newest first.
func (r *RoundRepository) ListByStatus(ctx context.Context, status model.RoundStatus) ([]model.Round, error) {
	return r.queryRounds(ctx,
		`SELECT `+roundColumns+` FROM rounds WHERE status = $1 ORDER BY id DESC`, status)
}

// GetPrevious retrieves the most recent round created before the given one.
// Returns (nil, nil) when the given round is the first.
func (r *RoundRepository) GetPrevious(ctx context.Context, id int64) (*model.Round, error) {
	rd, err := scanRound(r.pool.QueryRow(ctx,
		`SELECT `+roundColumns+` FROM rounds WHERE id < $1 ORDER BY id DESC LIMIT 1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return rd, err
}

// Create inserts a new round and fills in its generated fields.
func (r *RoundRepository) Create(ctx context.Context, rd *model.Round) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO rounds (title, description, question_count, difficulty, pass_score, status)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		rd.Title, rd.Description, rd.QuestionCount, rd.Difficulty, rd.PassScore, rd.Status,
	).Scan(&rd.ID, &rd.CreatedAt)
}

// Update overwrites a round's editable fields.
func (r *RoundRepository) Update(ctx context.Context, rd *model.Round) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE rounds
		 SET title = $1, description = $2, question_count = $3, difficulty = $4, pass_score = $5
		 WHERE id = $6`,
		rd.Title, rd.Description, rd.QuestionCount, rd.Difficulty, rd.PassScore, rd.ID)
	return err
}

// UpdateStatus changes a round's lifecycle state.
func (r *RoundRepository) UpdateStatus(ctx context.Context, id int64, status model.RoundStatus) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE rounds SET status = $1 WHERE id = $2`, status, id)
	return err
}

// Delete removes a round. Questions, vocabulary, exams and chapter links
// cascade through foreign keys.
func (r *RoundRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM rounds WHERE id = $1`, id)
	return err
}

// Count returns the total number of rounds.
func (r *RoundRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM rounds`).Scan(&n)
	return n, err
}

func (r *RoundRepository) queryRounds(ctx context.Context, query string, args ...any) ([]model.Round, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rounds []model.Round
	for rows.Next() {
		var rd model.Round
		if err := rows.Scan(&rd.ID, &rd.Title, &rd.Description, &rd.QuestionCount,
			&rd.Difficulty, &rd.PassScore, &rd.Status, &rd.CreatedAt); err != nil {
			return nil, err
		}
		rounds = append(rounds, rd)
	}
	return rounds, rows.Err()
}
