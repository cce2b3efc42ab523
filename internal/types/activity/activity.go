package activity

import (
	"time"

	"github.com/google/uuid"
)

type Activity struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"userId"`
	Name            string    `json:"name"`
	Category        string    `json:"category"`
	Target          float64   `json:"target"`
	Unit            string    `json:"unit"`
	Color           string    `json:"color"`
	Emoji           string    `json:"emoji"`
	ReminderTime    string    `json:"reminderTime"`
	ReminderEnabled bool      `json:"reminderEnabled"`
	CreatedAt       time.Time `json:"createdAt"`
}

type CreateActivityRequest struct {
	Name            string  `json:"name"`
	Category        string  `json:"category"`
	Target          float64 `json:"target"`
	Unit            string  `json:"unit"`
	Color           string  `json:"color"`
	Emoji           string  `json:"emoji"`
	ReminderTime    string  `json:"reminderTime"`
	ReminderEnabled *bool   `json:"reminderEnabled"`
}
