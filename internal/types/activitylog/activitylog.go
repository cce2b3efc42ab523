package activitylog

import (
	"time"

	"github.com/google/uuid"
)

// Log is one recorded value for one activity on one UTC calendar day.
// At most one log exists per (activity, date); a second write for the
// same day replaces the value.
type Log struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"userId"`
	ActivityID uuid.UUID `json:"activityId"`
	Value      float64   `json:"value"`
	Date       string    `json:"date"` // YYYY-MM-DD, UTC
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type UpsertLogRequest struct {
	ActivityID uuid.UUID `json:"activityId"`
	Value      float64   `json:"value"`
	Date       string    `json:"date"` // YYYY-MM-DD; empty means today
}
