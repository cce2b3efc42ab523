package services

import (
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/DhruvKhambhata/trackflow/internal/types/subscription"
)

func TestDailyReminderSweepSurvivesEmailFailure(t *testing.T) {
	push := &mockPushProvider{}
	email := &mockEmailProvider{}
	s := NewNotificationService(nil, push, email)
	defer s.Dispatcher().Stop()

	pushSubs := []*subscription.PushSubscription{
		pushSub(uuid.New()),
		pushSub(uuid.New()),
	}

	queued := s.queueDailyReminders(pushSubs, nil, fmt.Errorf("connection refused"), "20:00")
	if queued != 2 {
		t.Errorf("Expected queued count 2 when only push subscriptions were fetched, got %d", queued)
	}

	s.Dispatcher().Drain()

	push.mu.Lock()
	attempts := len(push.sent)
	push.mu.Unlock()
	if attempts != 2 {
		t.Errorf("Expected both push deliveries to be attempted, got %d", attempts)
	}
}

func TestDailyReminderSweepQueuesBothChannels(t *testing.T) {
	push := &mockPushProvider{}
	email := &mockEmailProvider{}
	s := NewNotificationService(nil, push, email)
	defer s.Dispatcher().Stop()

	pushSubs := []*subscription.PushSubscription{pushSub(uuid.New())}
	emailSubs := []*subscription.EmailSubscription{
		{UserID: uuid.New(), Email: "one@example.com"},
		{UserID: uuid.New(), Email: "two@example.com"},
	}

	queued := s.queueDailyReminders(pushSubs, emailSubs, nil, "08:00")
	if queued != 3 {
		t.Errorf("Expected queued count 3 across both channels, got %d", queued)
	}

	s.Dispatcher().Drain()

	push.mu.Lock()
	pushes := len(push.sent)
	push.mu.Unlock()
	email.mu.Lock()
	emails := len(email.daily)
	email.mu.Unlock()

	if pushes != 1 {
		t.Errorf("Expected 1 push delivery, got %d", pushes)
	}
	if emails != 2 {
		t.Errorf("Expected 2 daily reminder emails, got %d", emails)
	}
}
