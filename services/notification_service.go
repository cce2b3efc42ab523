package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DhruvKhambhata/trackflow/internal/notification"
	"github.com/DhruvKhambhata/trackflow/internal/types/subscription"
)

// NotificationService owns push/email subscription records and feeds the
// reminder dispatcher.
type NotificationService struct {
	db         *pgxpool.Pool
	dispatcher *ReminderDispatcher
}

func NewNotificationService(db *pgxpool.Pool, push PushProvider, email EmailProvider) *NotificationService {
	s := &NotificationService{db: db}
	s.dispatcher = NewReminderDispatcher(push, email, s)
	return s
}

func (s *NotificationService) Dispatcher() *ReminderDispatcher {
	return s.dispatcher
}

// SubscribePush upserts the user's Web Push subscription and reactivates it.
func (s *NotificationService) SubscribePush(ctx context.Context, userID uuid.UUID, req *subscription.SubscribePushRequest) error {
	if req.Subscription.Endpoint == "" || req.Subscription.Keys.P256dh == "" || req.Subscription.Keys.Auth == "" {
		return fmt.Errorf("push subscription requires endpoint, p256dh and auth keys")
	}
	reminderTime, err := normalizeReminderTime(req.ReminderTime)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO push_subscriptions (user_id, endpoint, p256dh, auth, reminder_time, is_active)
		VALUES ($1, $2, $3, $4, $5, true)
		ON CONFLICT (user_id)
		DO UPDATE SET endpoint = $2, p256dh = $3, auth = $4, reminder_time = $5,
		              is_active = true, updated_at = NOW()
	`

	_, err = s.db.Exec(ctx, query, userID, req.Subscription.Endpoint, req.Subscription.Keys.P256dh, req.Subscription.Keys.Auth, reminderTime)
	if err != nil {
		return fmt.Errorf("failed to save push subscription: %w", err)
	}
	return nil
}

// UnsubscribePush soft-deactivates, keeping the record for re-subscribe.
func (s *NotificationService) UnsubscribePush(ctx context.Context, userID uuid.UUID) error {
	_, err := s.db.Exec(ctx, `UPDATE push_subscriptions SET is_active = false, updated_at = NOW() WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate push subscription: %w", err)
	}
	return nil
}

func (s *NotificationService) SubscribeEmail(ctx context.Context, userID uuid.UUID, req *subscription.SubscribeEmailRequest) error {
	if req.Email == "" {
		return fmt.Errorf("email is required")
	}
	reminderTime, err := normalizeReminderTime(req.ReminderTime)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO email_subscriptions (user_id, email, reminder_time, is_active)
		VALUES ($1, $2, $3, true)
		ON CONFLICT (user_id)
		DO UPDATE SET email = $2, reminder_time = $3, is_active = true, updated_at = NOW()
	`

	_, err = s.db.Exec(ctx, query, userID, req.Email, reminderTime)
	if err != nil {
		return fmt.Errorf("failed to save email subscription: %w", err)
	}
	return nil
}

func (s *NotificationService) UnsubscribeEmail(ctx context.Context, userID uuid.UUID) error {
	_, err := s.db.Exec(ctx, `UPDATE email_subscriptions SET is_active = false, updated_at = NOW() WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate email subscription: %w", err)
	}
	return nil
}

// DeactivatePushSubscription is called by the dispatcher when a delivery
// fails, so stale endpoints stop being retried on the next sweep.
func (s *NotificationService) DeactivatePushSubscription(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.Exec(ctx, `UPDATE push_subscriptions SET is_active = false, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate push subscription: %w", err)
	}
	return nil
}

// Send fans a notification batch out to matching active subscriptions and
// returns how many deliveries were queued. "daily-reminder" only targets
// subscriptions whose reminder time equals the current UTC minute, which is
// why the cron trigger has to fire at minute granularity.
func (s *NotificationService) Send(ctx context.Context, req *subscription.SendRequest) (int, error) {
	switch req.Type {
	case "push":
		payload := notification.DefaultReminderPayload()
		if req.Message != "" {
			payload.Body = req.Message
		}
		subs, err := s.activePushSubscriptions(ctx, req.UserID, "")
		if err != nil {
			return 0, err
		}
		for _, sub := range subs {
			s.dispatcher.Enqueue(&DispatchJob{Push: sub, PushPayload: payload})
		}
		return len(subs), nil

	case "email":
		subs, err := s.activeEmailSubscriptions(ctx, req.UserID, "")
		if err != nil {
			return 0, err
		}
		message := req.Message
		if message == "" {
			message = "It's time for your daily check-in! Log your activities to keep your streaks alive."
		}
		for _, sub := range subs {
			s.dispatcher.Enqueue(&DispatchJob{Email: sub, EmailMessage: message})
		}
		return len(subs), nil

	case "daily-reminder":
		now := time.Now().UTC().Format("15:04")

		pushSubs, err := s.activePushSubscriptions(ctx, nil, now)
		if err != nil {
			return 0, err
		}
		emailSubs, emailErr := s.activeEmailSubscriptions(ctx, nil, now)
		return s.queueDailyReminders(pushSubs, emailSubs, emailErr, now), nil

	default:
		return 0, fmt.Errorf("unknown notification type %q", req.Type)
	}
}

// queueDailyReminders enqueues one job per matching subscription and
// returns how many were queued. An email-side fetch failure is logged and
// skipped rather than failing the sweep, since the push jobs are already
// in the queue by then and their count must still be reported.
func (s *NotificationService) queueDailyReminders(pushSubs []*subscription.PushSubscription, emailSubs []*subscription.EmailSubscription, emailErr error, now string) int {
	for _, sub := range pushSubs {
		s.dispatcher.Enqueue(&DispatchJob{Push: sub, PushPayload: notification.DefaultReminderPayload()})
	}

	if emailErr != nil {
		log.Printf("Daily reminder sweep: email subscriptions unavailable: %v", emailErr)
		return len(pushSubs)
	}
	for _, sub := range emailSubs {
		s.dispatcher.Enqueue(&DispatchJob{Email: sub})
	}

	queued := len(pushSubs) + len(emailSubs)
	log.Printf("Daily reminder sweep at %s UTC queued %d deliveries", now, queued)
	return queued
}

func (s *NotificationService) activePushSubscriptions(ctx context.Context, userID *uuid.UUID, reminderTime string) ([]*subscription.PushSubscription, error) {
	query := `
		SELECT id, user_id, endpoint, p256dh, auth, reminder_time, is_active, created_at, updated_at
		FROM push_subscriptions
		WHERE is_active = true
	`
	args := []any{}
	if userID != nil {
		args = append(args, *userID)
		query += fmt.Sprintf(" AND user_id = $%d", len(args))
	}
	if reminderTime != "" {
		args = append(args, reminderTime)
		query += fmt.Sprintf(" AND reminder_time = $%d", len(args))
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch push subscriptions: %w", err)
	}
	defer rows.Close()

	subs := []*subscription.PushSubscription{}
	for rows.Next() {
		sub := &subscription.PushSubscription{}
		err := rows.Scan(&sub.ID, &sub.UserID, &sub.Endpoint, &sub.P256dh, &sub.Auth, &sub.ReminderTime, &sub.IsActive, &sub.CreatedAt, &sub.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan push subscription: %w", err)
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

func (s *NotificationService) activeEmailSubscriptions(ctx context.Context, userID *uuid.UUID, reminderTime string) ([]*subscription.EmailSubscription, error) {
	query := `
		SELECT id, user_id, email, reminder_time, is_active, created_at, updated_at
		FROM email_subscriptions
		WHERE is_active = true
	`
	args := []any{}
	if userID != nil {
		args = append(args, *userID)
		query += fmt.Sprintf(" AND user_id = $%d", len(args))
	}
	if reminderTime != "" {
		args = append(args, reminderTime)
		query += fmt.Sprintf(" AND reminder_time = $%d", len(args))
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch email subscriptions: %w", err)
	}
	defer rows.Close()

	subs := []*subscription.EmailSubscription{}
	for rows.Next() {
		sub := &subscription.EmailSubscription{}
		err := rows.Scan(&sub.ID, &sub.UserID, &sub.Email, &sub.ReminderTime, &sub.IsActive, &sub.CreatedAt, &sub.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan email subscription: %w", err)
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

func normalizeReminderTime(value string) (string, error) {
	if value == "" {
		return "20:00", nil
	}
	if _, err := time.Parse("15:04", value); err != nil {
		return "", fmt.Errorf("invalid reminder time %q, expected HH:MM", value)
	}
	return value, nil
}
