package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dnflvus-wq/engTest-sub000/internal/model"
)

// ExamMetric is one completed exam reduced to the fields achievement
// checks care about, ordered oldest first.
type ExamMetric struct {
	ExamID          int64
	RoundID         int64
	Mode            model.ExamMode
	CorrectCount    int
	TotalCount      int
	IsPassed        bool
	DurationMinutes int
}

// RoundRank is a user's final rank within one round, in round order.
type RoundRank struct {
	RoundID int64
	Rank    int
}

// MetricsRepository supplies the aggregate queries behind achievement
// checking. Read-only.
type MetricsRepository struct {
	pool *pgxpool.Pool
}

// NewMetricsRepository creates a new MetricsRepository.
func NewMetricsRepository(pool *pgxpool.Pool) *MetricsRepository {
	return &MetricsRepository{pool: pool}
}

// ExamMetrics returns a user's completed exams oldest first, with the
// wall-clock minutes each one took.
func (r *MetricsRepository) ExamMetrics(ctx context.Context, userID int64) ([]ExamMetric, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, round_id, mode, correct_count, total_count, is_passed,
		        COALESCE(EXTRACT(EPOCH FROM (submitted_at - started_at)) / 60, 0)::int
		 FROM exams
		 WHERE user_id = $1 AND status = 'COMPLETED'
		 ORDER BY submitted_at ASC, id ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var metrics []ExamMetric
	for rows.Next() {
		var m ExamMetric
		if err := rows.Scan(&m.ExamID, &m.RoundID, &m.Mode, &m.CorrectCount, &m.TotalCount,
			&m.IsPassed, &m.DurationMinutes); err != nil {
			return nil, err
		}
		metrics = append(metrics, m)
	}
	return metrics, rows.Err()
}

// RoundRanks returns a user's final rank in every round they completed,
// in round order.
func (r *MetricsRepository) RoundRanks(ctx context.Context, userID int64) ([]RoundRank, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT round_id, user_rank FROM (
		   SELECT round_id, user_id,
		          RANK() OVER (PARTITION BY round_id ORDER BY score DESC, submitted_at ASC) AS user_rank
		   FROM exams
		   WHERE status = 'COMPLETED'
		 ) ranked
		 WHERE user_id = $1
		 ORDER BY round_id ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ranks []RoundRank
	for rows.Next() {
		var rr RoundRank
		if err := rows.Scan(&rr.RoundID, &rr.Rank); err != nil {
			return nil, err
		}
		ranks = append(ranks, rr)
	}
	return ranks, rows.Err()
}

// LoginDates returns the distinct calendar dates on which a user logged in.
func (r *MetricsRepository) LoginDates(ctx context.Context, userID int64) ([]time.Time, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT DISTINCT created_at::date
		 FROM activity_logs
		 WHERE user_id = $1 AND action = 'LOGIN'
		 ORDER BY created_at::date ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

// CountFirstSubmissions returns how many rounds the user was the first
// to submit in.
func (r *MetricsRepository) CountFirstSubmissions(ctx context.Context, userID int64) (int, error) {
	return r.count(ctx,
		`SELECT COUNT(*) FROM (
		   SELECT DISTINCT ON (round_id) round_id, user_id
		   FROM exams
		   WHERE status = 'COMPLETED'
		   ORDER BY round_id, submitted_at ASC, id ASC
		 ) firsts
		 WHERE user_id = $1`, userID)
}

// CountCompletedRoundsParticipated returns how many rounds the user
// finished that have since closed.
func (r *MetricsRepository) CountCompletedRoundsParticipated(ctx context.Context, userID int64) (int, error) {
	return r.count(ctx,
		`SELECT COUNT(DISTINCT e.round_id)
		 FROM exams e
		 JOIN rounds r ON r.id = e.round_id
		 WHERE e.user_id = $1 AND e.status = 'COMPLETED' AND r.status = 'COMPLETED'`, userID)
}

// CountGoldOrAbove returns how many GOLD or DIAMOND unlocks a user holds.
func (r *MetricsRepository) CountGoldOrAbove(ctx context.Context, userID int64) (int, error) {
	return r.count(ctx,
		`SELECT COUNT(*) FROM user_achievements
		 WHERE user_id = $1 AND tier IN ('GOLD', 'DIAMOND')`, userID)
}

// CountSameScoreExams returns how many of a user's completed exams share
// a score with another user's exam in the same round.
func (r *MetricsRepository) CountSameScoreExams(ctx context.Context, userID int64) (int, error) {
	return r.count(ctx,
		`SELECT COUNT(*) FROM exams e
		 WHERE e.user_id = $1 AND e.status = 'COMPLETED'
		   AND EXISTS (
		     SELECT 1 FROM exams o
		     WHERE o.round_id = e.round_id AND o.status = 'COMPLETED'
		       AND o.user_id <> e.user_id AND o.score = e.score
		   )`, userID)
}

// CountCompletedChapters returns how many linked chapters a user's passed
// rounds cover, optionally filtered by book.
func (r *MetricsRepository) CountCompletedChapters(ctx context.Context, userID int64, bookID string) (int, error) {
	query := `SELECT COUNT(DISTINCT rc.chapter_id)
	          FROM round_chapters rc
	          JOIN exams e ON e.round_id = rc.round_id
	          JOIN book_chapters c ON c.id = rc.chapter_id
	          WHERE e.user_id = $1 AND e.is_passed = TRUE`
	args := []any{userID}
	if bookID != "" {
		query += ` AND c.book_id = $2`
		args = append(args, bookID)
	}
	var n int
	err := r.pool.QueryRow(ctx, query, args...).Scan(&n)
	return n, err
}

// CountChapters returns the chapter catalog size, optionally by book.
func (r *MetricsRepository) CountChapters(ctx context.Context, bookID string) (int, error) {
	if bookID == "" {
		var n int
		err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM book_chapters`).Scan(&n)
		return n, err
	}
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM book_chapters WHERE book_id = $1`, bookID).Scan(&n)
	return n, err
}

// VocabularyLearned returns the total vocabulary count of the chapters a
// user's passed rounds cover.
func (r *MetricsRepository) VocabularyLearned(ctx context.Context, userID int64) (int, error) {
	return r.count(ctx,
		`SELECT COALESCE(SUM(c.vocabulary_count), 0) FROM book_chapters c
		 WHERE c.id IN (
		   SELECT DISTINCT rc.chapter_id
		   FROM round_chapters rc
		   JOIN exams e ON e.round_id = rc.round_id
		   WHERE e.user_id = $1 AND e.is_passed = TRUE
		 )`, userID)
}

func (r *MetricsRepository) count(ctx context.Context, query string, userID int64) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, query, userID).Scan(&n)
	return n, err
}
