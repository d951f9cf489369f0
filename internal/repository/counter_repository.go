package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dnflvus-wq/engTest-sub000/internal/model"
)

// CounterRepository handles cumulative user action counters.
type CounterRepository struct {
	pool *pgxpool.Pool
}

// NewCounterRepository creates a new CounterRepository.
func NewCounterRepository(pool *pgxpool.Pool) *CounterRepository {
	return &CounterRepository{pool: pool}
}

// Increment bumps a user's counter for an action and returns the new value.
func (r *CounterRepository) Increment(ctx context.Context, userID int64, action string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`INSERT INTO user_action_counters (user_id, action, count)
		 VALUES ($1, $2, 1)
		 ON CONFLICT (user_id, action) DO UPDATE SET count = user_action_counters.count + 1
		 RETURNING count`, userID, action).Scan(&count)
	return count, err
}

// Get returns a user's count for an action, 0 when never tracked.
func (r *CounterRepository) Get(ctx context.Context, userID int64, action string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(
		   (SELECT count FROM user_action_counters WHERE user_id = $1 AND action = $2), 0)`,
		userID, action).Scan(&count)
	return count, err
}

// ListByUser retrieves all of a user's counters.
func (r *CounterRepository) ListByUser(ctx context.Context, userID int64) ([]model.ActionCounter, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT user_id, action, count
		 FROM user_action_counters
		 WHERE user_id = $1
		 ORDER BY action ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counters []model.ActionCounter
	for rows.Next() {
		var c model.ActionCounter
		if err := rows.Scan(&c.UserID, &c.Action, &c.Count); err != nil {
			return nil, err
		}
		counters = append(counters, c)
	}
	return counters, rows.Err()
}
