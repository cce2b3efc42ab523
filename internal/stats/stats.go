// Package stats holds the calendar-day math behind streaks, the monthly
// analytics grid and the dashboard. Everything here is pure so it can be
// tested without a database. Calendar days are UTC, formatted YYYY-MM-DD.
package stats

import (
	"math"
	"sort"
	"time"

	"github.com/DhruvKhambhata/trackflow/internal/types/analytics"
)

const DayFormat = "2006-01-02"

// Day formats t as a UTC calendar day.
func Day(t time.Time) string {
	return t.UTC().Format(DayFormat)
}

// Streak counts consecutive days with at least one log, walking backward
// from today. A missing log today means the streak is 0 regardless of any
// older run.
func Streak(dates []string, today string) int {
	todayT, err := time.Parse(DayFormat, today)
	if err != nil {
		return 0
	}

	distinct := distinctSortedDesc(dates)
	streak := 0
	for i, d := range distinct {
		expected := todayT.AddDate(0, 0, -i).Format(DayFormat)
		if d != expected {
			break
		}
		streak++
	}
	return streak
}

// MonthGrid builds the day-by-day grid for one month, with leading nil
// cells so day 1 aligns to its weekday (Sunday first), plus the monthly
// summary counts.
func MonthGrid(logs []analytics.LogEntry, year, month int, today string) ([]*analytics.CalendarDay, analytics.MonthlySummary) {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	countByDay := make(map[string]int)
	totalLogs := 0
	for _, l := range logs {
		d, err := time.Parse(DayFormat, l.Date)
		if err != nil {
			continue
		}
		if d.Year() != year || d.Month() != time.Month(month) {
			continue
		}
		countByDay[l.Date]++
		totalLogs++
	}

	days := make([]*analytics.CalendarDay, 0, daysInMonth+int(first.Weekday()))
	for i := 0; i < int(first.Weekday()); i++ {
		days = append(days, nil)
	}
	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Format(DayFormat)
		n := countByDay[date]
		days = append(days, &analytics.CalendarDay{
			Day:         day,
			Date:        date,
			HasActivity: n > 0,
			LogCount:    n,
			IsToday:     date == today,
		})
	}

	summary := analytics.MonthlySummary{
		ActiveDays:     len(countByDay),
		TotalDays:      daysInMonth,
		CompletionRate: roundPercent(len(countByDay), daysInMonth),
		TotalLogs:      totalLogs,
	}
	return days, summary
}

// ActivityTotals reduces one activity's logs to lifetime totals: sum of
// values, average per logged day (2 decimals) and the number of logged days.
func ActivityTotals(logs []analytics.LogEntry) (total float64, average float64, days int) {
	for _, l := range logs {
		total += l.Value
	}
	days = len(logs)
	if days > 0 {
		average = math.Round(total/float64(days)*100) / 100
	}
	return total, average, days
}

// Progress converts today's logged value into a completion percent clamped
// to [0,100]. Completion is decided on the raw value, not the rounded
// percent, so 99.6% of target never reports as done. A non-positive target
// never completes.
func Progress(value, target float64) (percent int, completed bool) {
	if target <= 0 {
		return 0, false
	}
	completed = value >= target
	percent = int(math.Round(value / target * 100))
	if percent > 100 {
		percent = 100
	}
	if percent < 0 {
		percent = 0
	}
	return percent, completed
}

// WeeklyCounts returns the log count for each of the last 7 days,
// oldest first, ending today.
func WeeklyCounts(logs []analytics.LogEntry, today string) []int {
	todayT, err := time.Parse(DayFormat, today)
	if err != nil {
		return make([]int, 7)
	}

	countByDay := make(map[string]int)
	for _, l := range logs {
		countByDay[l.Date]++
	}

	week := make([]int, 0, 7)
	for i := 6; i >= 0; i-- {
		day := todayT.AddDate(0, 0, -i).Format(DayFormat)
		week = append(week, countByDay[day])
	}
	return week
}

// RoundPercent is the completion-rate rounding used across analytics:
// round(100 * part / whole).
func RoundPercent(part, whole int) int {
	return roundPercent(part, whole)
}

func roundPercent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}

func distinctSortedDesc(dates []string) []string {
	seen := make(map[string]struct{}, len(dates))
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	// Lexicographic order matches chronological order for YYYY-MM-DD.
	sort.Sort(sort.Reverse(sort.StringSlice(out)))
	return out
}
