package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DhruvKhambhata/trackflow/internal/stats"
	"github.com/DhruvKhambhata/trackflow/internal/types/activitylog"
)

type LogService struct {
	db *pgxpool.Pool
}

func NewLogService(db *pgxpool.Pool) *LogService {
	return &LogService{db: db}
}

func (s *LogService) GetLogs(ctx context.Context, userID uuid.UUID) ([]*activitylog.Log, error) {
	query := `
		SELECT id, user_id, activity_id, value, to_char(date, 'YYYY-MM-DD'), created_at, updated_at
		FROM logs
		WHERE user_id = $1
		ORDER BY date DESC, created_at DESC
	`
	return s.queryLogs(ctx, query, userID)
}

func (s *LogService) GetLogsForDate(ctx context.Context, userID uuid.UUID, date string) ([]*activitylog.Log, error) {
	query := `
		SELECT id, user_id, activity_id, value, to_char(date, 'YYYY-MM-DD'), created_at, updated_at
		FROM logs
		WHERE user_id = $1 AND date = $2
		ORDER BY created_at DESC
	`
	return s.queryLogs(ctx, query, userID, date)
}

func (s *LogService) GetTodayLogs(ctx context.Context, userID uuid.UUID) ([]*activitylog.Log, error) {
	return s.GetLogsForDate(ctx, userID, stats.Day(time.Now()))
}

// UpsertLog writes one value for one activity on one day. A log already
// present for that (activity, date) is replaced, keeping the one-log-per-day
// invariant at the write boundary.
func (s *LogService) UpsertLog(ctx context.Context, userID uuid.UUID, req *activitylog.UpsertLogRequest) (*activitylog.Log, error) {
	date := req.Date
	if date == "" {
		date = stats.Day(time.Now())
	}
	if _, err := time.Parse(stats.DayFormat, date); err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", req.Date)
	}

	// The activity must exist and belong to the caller.
	var activityOwner uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT user_id FROM activities WHERE id = $1`, req.ActivityID).Scan(&activityOwner)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up activity: %w", err)
	}
	if activityOwner != userID {
		return nil, ErrNotFound
	}

	query := `
		INSERT INTO logs (user_id, activity_id, value, date)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (activity_id, date)
		DO UPDATE SET value = $3, updated_at = NOW()
		RETURNING id, user_id, activity_id, value, to_char(date, 'YYYY-MM-DD'), created_at, updated_at
	`

	l := &activitylog.Log{}
	err = s.db.QueryRow(ctx, query, userID, req.ActivityID, req.Value, date).Scan(
		&l.ID, &l.UserID, &l.ActivityID, &l.Value, &l.Date, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to save log: %w", err)
	}
	return l, nil
}

func (s *LogService) queryLogs(ctx context.Context, query string, args ...any) ([]*activitylog.Log, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch logs: %w", err)
	}
	defer rows.Close()

	logs := []*activitylog.Log{}
	for rows.Next() {
		l := &activitylog.Log{}
		err := rows.Scan(&l.ID, &l.UserID, &l.ActivityID, &l.Value, &l.Date, &l.CreatedAt, &l.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan log: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
