package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DhruvKhambhata/trackflow/internal/types/activity"
)

type ActivityService struct {
	db *pgxpool.Pool
}

func NewActivityService(db *pgxpool.Pool) *ActivityService {
	return &ActivityService{db: db}
}

func (s *ActivityService) GetActivities(ctx context.Context, userID uuid.UUID) ([]*activity.Activity, error) {
	query := `
		SELECT id, user_id, name, category, target, unit, color, emoji,
		       reminder_time, reminder_enabled, created_at
		FROM activities
		WHERE user_id = $1
		ORDER BY created_at
	`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch activities: %w", err)
	}
	defer rows.Close()

	activities := []*activity.Activity{}
	for rows.Next() {
		a := &activity.Activity{}
		err := rows.Scan(
			&a.ID, &a.UserID, &a.Name, &a.Category, &a.Target, &a.Unit,
			&a.Color, &a.Emoji, &a.ReminderTime, &a.ReminderEnabled, &a.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

func (s *ActivityService) CreateActivity(ctx context.Context, userID uuid.UUID, req *activity.CreateActivityRequest) (*activity.Activity, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("activity name is required")
	}
	if req.Target <= 0 {
		return nil, fmt.Errorf("activity target must be positive")
	}

	emoji := req.Emoji
	if emoji == "" {
		emoji = "⭐"
	}
	reminderTime := req.ReminderTime
	if reminderTime == "" {
		reminderTime = "20:00"
	}
	reminderEnabled := true
	if req.ReminderEnabled != nil {
		reminderEnabled = *req.ReminderEnabled
	}

	query := `
		INSERT INTO activities (user_id, name, category, target, unit, color, emoji, reminder_time, reminder_enabled)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, user_id, name, category, target, unit, color, emoji,
		          reminder_time, reminder_enabled, created_at
	`

	a := &activity.Activity{}
	err := s.db.QueryRow(
		ctx, query,
		userID, name, req.Category, req.Target, req.Unit, req.Color, emoji, reminderTime, reminderEnabled,
	).Scan(
		&a.ID, &a.UserID, &a.Name, &a.Category, &a.Target, &a.Unit,
		&a.Color, &a.Emoji, &a.ReminderTime, &a.ReminderEnabled, &a.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create activity: %w", err)
	}
	return a, nil
}

// DeleteActivity removes an activity and every log referencing it in one
// transaction, so no orphaned logs survive a partial failure.
func (s *ActivityService) DeleteActivity(ctx context.Context, userID, activityID uuid.UUID) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `DELETE FROM logs WHERE user_id = $1 AND activity_id = $2`, userID, activityID)
	if err != nil {
		return fmt.Errorf("failed to delete activity logs: %w", err)
	}

	result, err := tx.Exec(ctx, `DELETE FROM activities WHERE id = $1 AND user_id = $2`, activityID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit activity deletion: %w", err)
	}
	return nil
}
