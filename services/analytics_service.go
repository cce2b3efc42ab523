package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DhruvKhambhata/trackflow/internal/stats"
	"github.com/DhruvKhambhata/trackflow/internal/types/analytics"
)

// AnalyticsService joins stored logs with the pure stats core to produce
// the calendar, per-activity stats and dashboard views.
type AnalyticsService struct {
	db         *pgxpool.Pool
	activities *ActivityService
}

func NewAnalyticsService(db *pgxpool.Pool, activities *ActivityService) *AnalyticsService {
	return &AnalyticsService{db: db, activities: activities}
}

func (s *AnalyticsService) GetCalendar(ctx context.Context, userID uuid.UUID, year, month int, activityID *uuid.UUID) (*analytics.CalendarResponse, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("invalid month %d", month)
	}

	entries, err := s.fetchLogEntries(ctx, userID, activityID)
	if err != nil {
		return nil, err
	}

	days, summary := stats.MonthGrid(entries, year, month, stats.Day(time.Now()))
	return &analytics.CalendarResponse{
		Year:    year,
		Month:   month,
		Days:    days,
		Summary: summary,
	}, nil
}

func (s *AnalyticsService) GetActivityStats(ctx context.Context, userID uuid.UUID) ([]*analytics.ActivityStats, error) {
	activities, err := s.activities.GetActivities(ctx, userID)
	if err != nil {
		return nil, err
	}

	entries, err := s.fetchLogEntries(ctx, userID, nil)
	if err != nil {
		return nil, err
	}

	byActivity := groupByActivity(entries)
	today := stats.Day(time.Now())

	result := make([]*analytics.ActivityStats, 0, len(activities))
	for _, a := range activities {
		logs := byActivity[a.ID]
		total, average, days := stats.ActivityTotals(logs)
		result = append(result, &analytics.ActivityStats{
			Activity:     *a,
			Streak:       stats.Streak(dates(logs), today),
			TotalLogged:  total,
			AverageDaily: average,
			TotalDays:    days,
		})
	}
	return result, nil
}

func (s *AnalyticsService) GetDashboard(ctx context.Context, userID uuid.UUID) (*analytics.DashboardResponse, error) {
	activities, err := s.activities.GetActivities(ctx, userID)
	if err != nil {
		return nil, err
	}

	entries, err := s.fetchLogEntries(ctx, userID, nil)
	if err != nil {
		return nil, err
	}

	byActivity := groupByActivity(entries)
	today := stats.Day(time.Now())

	progress := make([]*analytics.ActivityProgress, 0, len(activities))
	completedToday := 0
	totalStreak := 0
	for _, a := range activities {
		logs := byActivity[a.ID]

		todayValue := 0.0
		logged := false
		for _, l := range logs {
			if l.Date == today {
				todayValue = l.Value
				logged = true
				break
			}
		}

		percent, completed := stats.Progress(todayValue, a.Target)
		streak := stats.Streak(dates(logs), today)
		if completed {
			completedToday++
		}
		totalStreak += streak

		progress = append(progress, &analytics.ActivityProgress{
			Activity:   *a,
			TodayValue: todayValue,
			Logged:     logged,
			Progress:   percent,
			Completed:  completed,
			Streak:     streak,
		})
	}

	return &analytics.DashboardResponse{
		Activities: progress,
		Summary: analytics.DashboardSummary{
			TotalActivities: len(activities),
			CompletedToday:  completedToday,
			CompletionRate:  stats.RoundPercent(completedToday, len(activities)),
			TotalStreak:     totalStreak,
			WeeklyProgress:  stats.WeeklyCounts(entries, today),
		},
	}, nil
}

func (s *AnalyticsService) fetchLogEntries(ctx context.Context, userID uuid.UUID, activityID *uuid.UUID) ([]analytics.LogEntry, error) {
	query := `
		SELECT activity_id, to_char(date, 'YYYY-MM-DD'), value
		FROM logs
		WHERE user_id = $1
	`
	args := []any{userID}
	if activityID != nil {
		query += ` AND activity_id = $2`
		args = append(args, *activityID)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch log entries: %w", err)
	}
	defer rows.Close()

	entries := []analytics.LogEntry{}
	for rows.Next() {
		var e analytics.LogEntry
		if err := rows.Scan(&e.ActivityID, &e.Date, &e.Value); err != nil {
			return nil, fmt.Errorf("failed to scan log entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func groupByActivity(entries []analytics.LogEntry) map[uuid.UUID][]analytics.LogEntry {
	grouped := make(map[uuid.UUID][]analytics.LogEntry)
	for _, e := range entries {
		grouped[e.ActivityID] = append(grouped[e.ActivityID], e)
	}
	return grouped
}

func dates(entries []analytics.LogEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Date)
	}
	return out
}
