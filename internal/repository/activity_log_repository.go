package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dnflvus-wq/engTest-sub000/internal/model"
)

// ActivityLogRepository handles activity log data access.
type ActivityLogRepository struct {
	pool *pgxpool.Pool
}

// NewActivityLogRepository creates a new ActivityLogRepository.
func NewActivityLogRepository(pool *pgxpool.Pool) *ActivityLogRepository {
	return &ActivityLogRepository{pool: pool}
}

// Insert writes a single log row.
func (r *ActivityLogRepository) Insert(ctx context.Context, l *model.ActivityLog) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO activity_logs (user_id, user_name, action, detail, page, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		l.UserID, l.UserName, l.Action, l.Detail, l.Page, l.CreatedAt,
	).Scan(&l.ID)
}

// InsertBatch writes log rows with UNNEST for a single round trip.
func (r *ActivityLogRepository) InsertBatch(ctx context.Context, logs []model.ActivityLog) error {
	if len(logs) == 0 {
		return nil
	}

	userIDs := make([]int64, len(logs))
	userNames := make([]string, len(logs))
	actions := make([]string, len(logs))
	details := make([]string, len(logs))
	pages := make([]string, len(logs))
	createdAts := make([]time.Time, len(logs))
	for i, l := range logs {
		userIDs[i] = l.UserID
		userNames[i] = l.UserName
		actions[i] = l.Action
		details[i] = l.Detail
		pages[i] = l.Page
		createdAts[i] = l.CreatedAt
	}

	_, err := r.pool.Exec(ctx,
		`INSERT INTO activity_logs (user_id, user_name, action, detail, page, created_at)
		 SELECT * FROM UNNEST($1::bigint[], $2::text[], $3::text[], $4::text[], $5::text[], $6::timestamptz[])`,
		userIDs, userNames, actions, details, pages, createdAts)
	return err
}

// List retrieves logs newest first with optional user/action filters.
func (r *ActivityLogRepository) List(ctx context.Context, page, perPage int, userID *int64, action *string) ([]model.ActivityLog, int64, error) {
	baseQuery := ` FROM activity_logs WHERE 1=1`
	args := []any{}

	if userID != nil {
		args = append(args, *userID)
		baseQuery += fmt.Sprintf(" AND user_id = $%d", len(args))
	}
	if action != nil && *action != "" {
		args = append(args, *action)
		baseQuery += fmt.Sprintf(" AND action = $%d", len(args))
	}

	var total int64
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*)"+baseQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, perPage, (page-1)*perPage)
	query := fmt.Sprintf(
		"SELECT id, user_id, user_name, action, detail, page, created_at%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		baseQuery, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var logs []model.ActivityLog
	for rows.Next() {
		var l model.ActivityLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.UserName, &l.Action, &l.Detail, &l.Page, &l.CreatedAt); err != nil {
			return nil, 0, err
		}
		logs = append(logs, l)
	}
	return logs, total, rows.Err()
}

// ListActions retrieves the distinct action names present in the log.
func (r *ActivityLogRepository) ListActions(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT DISTINCT action FROM activity_logs ORDER BY action ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var actions []string
	for rows.Next() {
		var a string
		if err := rows.Scan(&a); err != nil {
			return nil, err
		}
		actions = append(actions, a)
	}
	return actions, rows.Err()
}

// ActiveDates retrieves the distinct calendar dates on which a user logged
// an action, newest first. Used by streak calculators.
func (r *ActivityLogRepository) ActiveDates(ctx context.Context, userID int64, action string) ([]time.Time, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT DISTINCT created_at::date
		 FROM activity_logs
		 WHERE user_id = $1 AND action = $2
		 ORDER BY created_at::date DESC`, userID, action)
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

// DeleteOlderThan prunes logs past the retention window and returns how
// many rows were removed.
func (r *ActivityLogRepository) DeleteOlderThan(ctx context.Context, days int) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM activity_logs WHERE created_at < NOW() - $1 * INTERVAL '1 day'`, days)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
