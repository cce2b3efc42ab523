package subscription

import (
	"time"

	"github.com/google/uuid"
)

// PushSubscription holds a browser Web Push subscription for one user.
// Deactivated instead of deleted so a re-subscribe is a plain upsert.
type PushSubscription struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"userId"`
	Endpoint     string    `json:"endpoint"`
	P256dh       string    `json:"p256dh"`
	Auth         string    `json:"auth"`
	ReminderTime string    `json:"reminderTime"` // HH:MM, UTC
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type EmailSubscription struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"userId"`
	Email        string    `json:"email"`
	ReminderTime string    `json:"reminderTime"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// WebPushKeys mirrors the "keys" object of the browser PushSubscription JSON.
type WebPushKeys struct {
	P256dh string `json:"p256dh"`
	Auth   string `json:"auth"`
}

type WebPushSubscription struct {
	Endpoint string      `json:"endpoint"`
	Keys     WebPushKeys `json:"keys"`
}

type SubscribePushRequest struct {
	Subscription WebPushSubscription `json:"subscription"`
	ReminderTime string              `json:"reminderTime"`
}

type SubscribeEmailRequest struct {
	Email        string `json:"email"`
	ReminderTime string `json:"reminderTime"`
}

type SendRequest struct {
	Type    string     `json:"type"` // "push", "email" or "daily-reminder"
	Message string     `json:"message"`
	UserID  *uuid.UUID `json:"userId"`
}
