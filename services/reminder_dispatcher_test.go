package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/DhruvKhambhata/trackflow/internal/notification"
	"github.com/DhruvKhambhata/trackflow/internal/types/subscription"
)

type mockPushProvider struct {
	mu       sync.Mutex
	sent     []uuid.UUID
	failFor  map[uuid.UUID]bool
}

func (m *mockPushProvider) SendPush(ctx context.Context, sub *subscription.PushSubscription, payload *notification.PushPayload) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sub.ID)
	if m.failFor[sub.ID] {
		return fmt.Errorf("simulated endpoint failure")
	}
	return nil
}

type mockEmailProvider struct {
	mu        sync.Mutex
	reminders []string
	daily     []string
	failFor   map[string]bool
}

func (m *mockEmailProvider) SendReminderEmail(ctx context.Context, to, message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failFor[to] {
		return fmt.Errorf("simulated email failure")
	}
	m.reminders = append(m.reminders, to)
	return nil
}

func (m *mockEmailProvider) SendDailyReminderEmail(ctx context.Context, to string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failFor[to] {
		return fmt.Errorf("simulated email failure")
	}
	m.daily = append(m.daily, to)
	return nil
}

type mockDeactivator struct {
	mu          sync.Mutex
	deactivated []uuid.UUID
}

func (m *mockDeactivator) DeactivatePushSubscription(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deactivated = append(m.deactivated, id)
	return nil
}

func pushSub(id uuid.UUID) *subscription.PushSubscription {
	return &subscription.PushSubscription{
		ID:       id,
		UserID:   uuid.New(),
		Endpoint: "https://push.example.com/" + id.String(),
		P256dh:   "p256dh-key",
		Auth:     "auth-key",
		IsActive: true,
	}
}

func TestDispatcherFailureDoesNotBlockBatch(t *testing.T) {
	good1 := uuid.New()
	bad := uuid.New()
	good2 := uuid.New()

	push := &mockPushProvider{failFor: map[uuid.UUID]bool{bad: true}}
	email := &mockEmailProvider{}
	store := &mockDeactivator{}

	d := NewReminderDispatcher(push, email, store)
	defer d.Stop()

	payload := notification.DefaultReminderPayload()
	d.Enqueue(&DispatchJob{Push: pushSub(good1), PushPayload: payload})
	d.Enqueue(&DispatchJob{Push: pushSub(bad), PushPayload: payload})
	d.Enqueue(&DispatchJob{Push: pushSub(good2), PushPayload: payload})
	d.Drain()

	push.mu.Lock()
	attempts := len(push.sent)
	push.mu.Unlock()
	if attempts != 3 {
		t.Errorf("Expected delivery attempts to all 3 subscribers, got %d", attempts)
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	if len(store.deactivated) != 1 {
		t.Fatalf("Expected exactly 1 deactivated subscription, got %d", len(store.deactivated))
	}
	if store.deactivated[0] != bad {
		t.Errorf("Expected failing subscription %s to be deactivated, got %s", bad, store.deactivated[0])
	}
}

func TestDispatcherEmailDeliveries(t *testing.T) {
	push := &mockPushProvider{}
	email := &mockEmailProvider{failFor: map[string]bool{"broken@example.com": true}}
	store := &mockDeactivator{}

	d := NewReminderDispatcher(push, email, store)
	defer d.Stop()

	d.Enqueue(&DispatchJob{
		Email:        &subscription.EmailSubscription{UserID: uuid.New(), Email: "custom@example.com"},
		EmailMessage: "Drink some water!",
	})
	d.Enqueue(&DispatchJob{
		Email: &subscription.EmailSubscription{UserID: uuid.New(), Email: "daily@example.com"},
	})
	d.Enqueue(&DispatchJob{
		Email: &subscription.EmailSubscription{UserID: uuid.New(), Email: "broken@example.com"},
	})
	d.Drain()

	email.mu.Lock()
	defer email.mu.Unlock()
	if len(email.reminders) != 1 || email.reminders[0] != "custom@example.com" {
		t.Errorf("Expected one custom reminder to custom@example.com, got %v", email.reminders)
	}
	if len(email.daily) != 1 || email.daily[0] != "daily@example.com" {
		t.Errorf("Expected one daily reminder to daily@example.com, got %v", email.daily)
	}

	// Email failures are logged but never deactivate anything.
	store.mu.Lock()
	defer store.mu.Unlock()
	if len(store.deactivated) != 0 {
		t.Errorf("Expected no deactivations from email failures, got %d", len(store.deactivated))
	}
}

func TestDispatcherMixedBatch(t *testing.T) {
	push := &mockPushProvider{}
	email := &mockEmailProvider{}
	store := &mockDeactivator{}

	d := NewReminderDispatcher(push, email, store)
	defer d.Stop()

	for i := 0; i < 20; i++ {
		d.Enqueue(&DispatchJob{Push: pushSub(uuid.New()), PushPayload: notification.DefaultReminderPayload()})
		d.Enqueue(&DispatchJob{Email: &subscription.EmailSubscription{UserID: uuid.New(), Email: fmt.Sprintf("user%d@example.com", i)}})
	}
	d.Drain()

	push.mu.Lock()
	pushes := len(push.sent)
	push.mu.Unlock()
	email.mu.Lock()
	emails := len(email.daily)
	email.mu.Unlock()

	if pushes != 20 {
		t.Errorf("Expected 20 push deliveries, got %d", pushes)
	}
	if emails != 20 {
		t.Errorf("Expected 20 email deliveries, got %d", emails)
	}
}
