package analytics

import (
	"github.com/google/uuid"

	"github.com/DhruvKhambhata/trackflow/internal/types/activity"
)

// CalendarDay is one cell of the monthly grid. Leading cells before the
// first of the month are nil in CalendarResponse.Days so the client can
// align day 1 to its weekday.
type CalendarDay struct {
	Day         int    `json:"day"`
	Date        string `json:"date"` // YYYY-MM-DD
	HasActivity bool   `json:"hasActivity"`
	LogCount    int    `json:"logCount"`
	IsToday     bool   `json:"isToday"`
}

type MonthlySummary struct {
	ActiveDays     int `json:"activeDays"`
	TotalDays      int `json:"totalDays"`
	CompletionRate int `json:"completionRate"`
	TotalLogs      int `json:"totalLogs"`
}

type CalendarResponse struct {
	Year    int            `json:"year"`
	Month   int            `json:"month"`
	Days    []*CalendarDay `json:"days"`
	Summary MonthlySummary `json:"summary"`
}

// ActivityStats joins an activity with its streak and lifetime totals.
type ActivityStats struct {
	Activity     activity.Activity `json:"activity"`
	Streak       int               `json:"streak"`
	TotalLogged  float64           `json:"totalLogged"`
	AverageDaily float64           `json:"averageDaily"`
	TotalDays    int               `json:"totalDays"`
}

// ActivityProgress is one dashboard row: an activity joined with today's log.
type ActivityProgress struct {
	Activity   activity.Activity `json:"activity"`
	TodayValue float64           `json:"todayValue"`
	Logged     bool              `json:"logged"`
	Progress   int               `json:"progress"` // percent, clamped to [0,100]
	Completed  bool              `json:"completed"`
	Streak     int               `json:"streak"`
}

type DashboardSummary struct {
	TotalActivities int   `json:"totalActivities"`
	CompletedToday  int   `json:"completedToday"`
	CompletionRate  int   `json:"completionRate"`
	TotalStreak     int   `json:"totalStreak"`
	WeeklyProgress  []int `json:"weeklyProgress"` // log counts, oldest first
}

type DashboardResponse struct {
	Activities []*ActivityProgress `json:"activities"`
	Summary    DashboardSummary    `json:"summary"`
}

// LogEntry is the minimal shape the stats core needs from a stored log.
type LogEntry struct {
	ActivityID uuid.UUID
	Date       string // YYYY-MM-DD
	Value      float64
}
