package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dnflvus-wq/engTest-sub000/internal/model"
)

// ExamRepository handles exam attempt data access.
type ExamRepository struct {
	pool *pgxpool.Pool
}

// NewExamRepository creates a new ExamRepository.
func NewExamRepository(pool *pgxpool.Pool) *ExamRepository {
	return &ExamRepository{pool: pool}
}

const examColumns = `id, user_id, round_id, mode, total_count, correct_count,
	score, is_passed, status, started_at, submitted_at`

// GetByID retrieves an exam by ID.
func (r *ExamRepository) GetByID(ctx context.Context, id int64) (*model.Exam, error) {
	e := &model.Exam{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+examColumns+` FROM exams WHERE id = $1`, id,
	).Scan(&e.ID, &e.UserID, &e.RoundID, &e.Mode, &e.TotalCount, &e.CorrectCount,
		&e.Score, &e.IsPassed, &e.Status, &e.StartedAt, &e.SubmittedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Create inserts a new exam attempt.
func (r *ExamRepository) Create(ctx context.Context, e *model.Exam) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO exams (user_id, round_id, mode, total_count, correct_count, score, is_passed, status)
		 VALUES ($1, $2, $3, $4, 0, 0, FALSE, $5)
		 RETURNING id, started_at`,
		e.UserID, e.RoundID, e.Mode, e.TotalCount, model.ExamStatusInProgress,
	).Scan(&e.ID, &e.StartedAt)
}

// Complete marks an exam as submitted with its final result.
func (r *ExamRepository) Complete(ctx context.Context, e *model.Exam) error {
	now := time.Now()
	e.SubmittedAt = &now
	e.Status = model.ExamStatusCompleted
	_, err := r.pool.Exec(ctx,
		`UPDATE exams
		 SET correct_count = $1, score = $2, is_passed = $3, status = $4, submitted_at = $5
		 WHERE id = $6`,
		e.CorrectCount, e.Score, e.IsPassed, e.Status, now, e.ID)
	return err
}

// ListInProgressByUser retrieves a user's unfinished exams.
func (r *ExamRepository) ListInProgressByUser(ctx context.Context, userID int64) ([]model.Exam, error) {
	return r.queryExams(ctx,
		`SELECT `+examColumns+` FROM exams WHERE user_id = $1 AND status = $2 ORDER BY started_at DESC`,
		userID, model.ExamStatusInProgress)
}

// ListByUser retrieves a user's exams, newest first.
func (r *ExamRepository) ListByUser(ctx context.Context, userID int64) ([]model.Exam, error) {
	return r.queryExams(ctx,
		`SELECT `+examColumns+` FROM exams WHERE user_id = $1 ORDER BY started_at DESC`, userID)
}

// ListByRound retrieves every exam taken against a round.
func (r *ExamRepository) ListByRound(ctx context.Context, roundID int64) ([]model.Exam, error) {
	return r.queryExams(ctx,
		`SELECT `+examColumns+` FROM exams WHERE round_id = $1 ORDER BY started_at DESC`, roundID)
}

// List retrieves all exams, newest first.
func (r *ExamRepository) List(ctx context.Context) ([]model.Exam, error) {
	return r.queryExams(ctx,
		`SELECT `+examColumns+` FROM exams ORDER BY started_at DESC`)
}

// CountCompletedByRound returns how many distinct users have completed a round.
func (r *ExamRepository) CountCompletedByRound(ctx context.Context, roundID int64) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(DISTINCT user_id) FROM exams WHERE round_id = $1 AND status = $2`,
		roundID, model.ExamStatusCompleted).Scan(&n)
	return n, err
}

// Ranking retrieves a round's completed exams with ranks assigned by score
// descending, earlier submission breaking ties.
func (r *ExamRepository) Ranking(ctx context.Context, roundID int64) ([]model.RankingEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT RANK() OVER (ORDER BY e.score DESC, e.submitted_at ASC),
		        e.user_id, u.name, e.score, e.correct_count, e.total_count, e.is_passed, e.submitted_at
		 FROM exams e
		 JOIN users u ON e.user_id = u.id
		 WHERE e.round_id = $1 AND e.status = $2
		 ORDER BY e.score DESC, e.submitted_at ASC`,
		roundID, model.ExamStatusCompleted)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.RankingEntry
	for rows.Next() {
		var en model.RankingEntry
		if err := rows.Scan(&en.Rank, &en.UserID, &en.UserName, &en.Score,
			&en.CorrectCount, &en.TotalCount, &en.IsPassed, &en.SubmittedAt); err != nil {
			return nil, err
		}
		entries = append(entries, en)
	}
	return entries, rows.Err()
}

// Participants retrieves each user's standing within a round.
func (r *ExamRepository) Participants(ctx context.Context, roundID int64) ([]model.RoundParticipant, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT e.user_id, u.name, e.score, e.is_passed, e.submitted_at
		 FROM exams e
		 JOIN users u ON e.user_id = u.id
		 WHERE e.round_id = $1
		 ORDER BY e.score DESC, e.submitted_at ASC NULLS LAST`, roundID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var parts []model.RoundParticipant
	for rows.Next() {
		var p model.RoundParticipant
		if err := rows.Scan(&p.UserID, &p.UserName, &p.Score, &p.IsPassed, &p.SubmittedAt); err != nil {
			return nil, err
		}
		parts = append(parts, p)
	}
	return parts, rows.Err()
}

// UserStats aggregates a user's completed exam history.
func (r *ExamRepository) UserStats(ctx context.Context, userID int64) (*model.UserStats, error) {
	s := &model.UserStats{UserID: userID}
	var lastExam *time.Time
	err := r.pool.QueryRow(ctx,
		`SELECT u.name,
		        COUNT(e.id),
		        COUNT(e.id) FILTER (WHERE e.is_passed),
		        COALESCE(AVG(e.score), 0),
		        COALESCE(MAX(e.score), 0),
		        COALESCE(SUM(e.correct_count), 0),
		        COALESCE(SUM(e.total_count), 0),
		        MAX(e.submitted_at)
		 FROM users u
		 LEFT JOIN exams e ON e.user_id = u.id AND e.status = $2
		 WHERE u.id = $1
		 GROUP BY u.name`, userID, model.ExamStatusCompleted,
	).Scan(&s.UserName, &s.ExamCount, &s.PassedCount, &s.AverageScore,
		&s.BestScore, &s.TotalCorrect, &s.TotalQuestions, &lastExam)
	if err != nil {
		return nil, err
	}
	if lastExam != nil {
		formatted := lastExam.UTC().Format(time.RFC3339)
		s.LastExamAt = &formatted
	}
	if s.ExamCount > 0 {
		s.PassRate = float64(s.PassedCount) / float64(s.ExamCount) * 100
	}
	return s, nil
}

// AllUserStats aggregates completed exam history for every user.
func (r *ExamRepository) AllUserStats(ctx context.Context) ([]model.UserStats, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT u.id, u.name,
		        COUNT(e.id),
		        COUNT(e.id) FILTER (WHERE e.is_passed),
		        COALESCE(AVG(e.score), 0),
		        COALESCE(MAX(e.score), 0),
		        COALESCE(SUM(e.correct_count), 0),
		        COALESCE(SUM(e.total_count), 0)
		 FROM users u
		 LEFT JOIN exams e ON e.user_id = u.id AND e.status = $1
		 GROUP BY u.id, u.name
		 ORDER BY u.id ASC`, model.ExamStatusCompleted)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []model.UserStats
	for rows.Next() {
		var s model.UserStats
		if err := rows.Scan(&s.UserID, &s.UserName, &s.ExamCount, &s.PassedCount,
			&s.AverageScore, &s.BestScore, &s.TotalCorrect, &s.TotalQuestions); err != nil {
			return nil, err
		}
		if s.ExamCount > 0 {
			s.PassRate = float64(s.PassedCount) / float64(s.ExamCount) * 100
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// RoundStats aggregates exam results for a single round.
func (r *ExamRepository) RoundStats(ctx context.Context, roundID int64) (*model.RoundStats, error) {
	s := &model.RoundStats{RoundID: roundID}
	err := r.pool.QueryRow(ctx,
		`SELECT r.title,
		        COUNT(DISTINCT e.user_id),
		        COUNT(e.id) FILTER (WHERE e.status = $2),
		        COUNT(e.id) FILTER (WHERE e.is_passed),
		        COALESCE(AVG(e.score) FILTER (WHERE e.status = $2), 0),
		        COALESCE(MAX(e.score) FILTER (WHERE e.status = $2), 0),
		        COALESCE(MIN(e.score) FILTER (WHERE e.status = $2), 0)
		 FROM rounds r
		 LEFT JOIN exams e ON e.round_id = r.id
		 WHERE r.id = $1
		 GROUP BY r.title`, roundID, model.ExamStatusCompleted,
	).Scan(&s.Title, &s.ParticipantCount, &s.CompletedCount, &s.PassedCount,
		&s.AverageScore, &s.HighestScore, &s.LowestScore)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// AllRoundStats aggregates exam results for every round.
func (r *ExamRepository) AllRoundStats(ctx context.Context) ([]model.RoundStats, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT r.id, r.title,
		        COUNT(DISTINCT e.user_id),
		        COUNT(e.id) FILTER (WHERE e.status = $1),
		        COUNT(e.id) FILTER (WHERE e.is_passed),
		        COALESCE(AVG(e.score) FILTER (WHERE e.status = $1), 0),
		        COALESCE(MAX(e.score) FILTER (WHERE e.status = $1), 0),
		        COALESCE(MIN(e.score) FILTER (WHERE e.status = $1), 0)
		 FROM rounds r
		 LEFT JOIN exams e ON e.round_id = r.id
		 GROUP BY r.id, r.title
		 ORDER BY r.id DESC`, model.ExamStatusCompleted)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []model.RoundStats
	for rows.Next() {
		var s model.RoundStats
		if err := rows.Scan(&s.RoundID, &s.Title, &s.ParticipantCount, &s.CompletedCount,
			&s.PassedCount, &s.AverageScore, &s.HighestScore, &s.LowestScore); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// Totals returns global exam counters for the dashboard.
func (r *ExamRepository) Totals(ctx context.Context) (totalExams int, overallAvg float64, err error) {
	err = r.pool.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(AVG(score) FILTER (WHERE status = $1), 0) FROM exams`,
		model.ExamStatusCompleted).Scan(&totalExams, &overallAvg)
	return totalExams, overallAvg, err
}

// Delete removes an exam. Its answers cascade through foreign keys.
func (r *ExamRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM exams WHERE id = $1`, id)
	return err
}

func (r *ExamRepository) queryExams(ctx context.Context, query string, args ...any) ([]model.Exam, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectExams(rows)
}

func collectExams(rows pgx.Rows) ([]model.Exam, error) {
	var exams []model.Exam
	for rows.Next() {
		var e model.Exam
		if err := rows.Scan(&e.ID, &e.UserID, &e.RoundID, &e.Mode, &e.TotalCount,
			&e.CorrectCount, &e.Score, &e.IsPassed, &e.Status, &e.StartedAt, &e.SubmittedAt); err != nil {
			return nil, err
		}
		exams = append(exams, e)
	}
	return exams, rows.Err()
}
