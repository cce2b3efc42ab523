package stats

import (
	"testing"
	"time"

	"github.com/DhruvKhambhata/trackflow/internal/types/analytics"
)

const testToday = "2025-03-15"

func daysBack(n int) []string {
	today, _ := time.Parse(DayFormat, testToday)
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, today.AddDate(0, 0, -i).Format(DayFormat))
	}
	return out
}

func TestStreakEmpty(t *testing.T) {
	if got := Streak(nil, testToday); got != 0 {
		t.Errorf("Expected streak 0 for no logs, got %d", got)
	}
}

func TestStreakConsecutiveDays(t *testing.T) {
	// Today plus the 4 prior days -> streak of 5.
	if got := Streak(daysBack(5), testToday); got != 5 {
		t.Errorf("Expected streak 5, got %d", got)
	}
}

func TestStreakRequiresLogToday(t *testing.T) {
	// A long run ending yesterday is still a broken streak.
	dates := daysBack(6)[1:]
	if got := Streak(dates, testToday); got != 0 {
		t.Errorf("Expected streak 0 without a log today, got %d", got)
	}
}

func TestStreakStopsAtGap(t *testing.T) {
	// Today, yesterday, then a one-day gap before older logs.
	dates := []string{"2025-03-15", "2025-03-14", "2025-03-12", "2025-03-11"}
	if got := Streak(dates, testToday); got != 2 {
		t.Errorf("Expected streak 2 at the gap, got %d", got)
	}
}

func TestStreakIgnoresDuplicateDates(t *testing.T) {
	dates := []string{"2025-03-15", "2025-03-15", "2025-03-14"}
	if got := Streak(dates, testToday); got != 2 {
		t.Errorf("Expected streak 2 with duplicate dates, got %d", got)
	}
}

func TestStreakUnsortedInput(t *testing.T) {
	dates := []string{"2025-03-13", "2025-03-15", "2025-03-14"}
	if got := Streak(dates, testToday); got != 3 {
		t.Errorf("Expected streak 3 from unsorted input, got %d", got)
	}
}

func TestMonthGridAlignmentAndSummary(t *testing.T) {
	// April 2025 starts on a Tuesday (weekday 2) and has 30 days.
	logs := []analytics.LogEntry{
		{Date: "2025-04-01", Value: 1},
		{Date: "2025-04-01", Value: 2},
		{Date: "2025-04-03", Value: 1},
		{Date: "2025-03-31", Value: 1}, // previous month, must be excluded
	}

	days, summary := MonthGrid(logs, 2025, 4, "2025-04-03")

	if len(days) != 32 {
		t.Fatalf("Expected 2 leading blanks + 30 days = 32 cells, got %d", len(days))
	}
	if days[0] != nil || days[1] != nil {
		t.Error("Expected leading cells to be nil")
	}
	if days[2] == nil || days[2].Day != 1 {
		t.Fatalf("Expected cell 2 to be day 1, got %+v", days[2])
	}
	if !days[2].HasActivity || days[2].LogCount != 2 {
		t.Errorf("Expected day 1 to have 2 logs, got %+v", days[2])
	}
	if days[3].HasActivity {
		t.Error("Expected day 2 to have no activity")
	}
	if !days[4].IsToday {
		t.Error("Expected day 3 to be flagged as today")
	}

	if summary.ActiveDays != 2 {
		t.Errorf("Expected 2 active days, got %d", summary.ActiveDays)
	}
	if summary.TotalDays != 30 {
		t.Errorf("Expected 30 days in April, got %d", summary.TotalDays)
	}
	if summary.TotalLogs != 3 {
		t.Errorf("Expected 3 logs in month, got %d", summary.TotalLogs)
	}
	// round(100 * 2/30) = 7
	if summary.CompletionRate != 7 {
		t.Errorf("Expected completion rate 7, got %d", summary.CompletionRate)
	}
}

func TestCompletionRateRounding(t *testing.T) {
	cases := []struct {
		active, total, want int
	}{
		{15, 30, 50},
		{0, 31, 0},
		{31, 31, 100},
		{1, 3, 33},
		{2, 3, 67},
	}
	for _, c := range cases {
		if got := RoundPercent(c.active, c.total); got != c.want {
			t.Errorf("RoundPercent(%d, %d) = %d, want %d", c.active, c.total, got, c.want)
		}
	}
}

func TestProgressClamped(t *testing.T) {
	percent, completed := Progress(25, 10)
	if percent != 100 || !completed {
		t.Errorf("Expected overshoot to clamp to 100/completed, got %d/%v", percent, completed)
	}

	percent, completed = Progress(5, 10)
	if percent != 50 || completed {
		t.Errorf("Expected 50/incomplete, got %d/%v", percent, completed)
	}

	percent, completed = Progress(10, 10)
	if percent != 100 || !completed {
		t.Errorf("Expected exact target to complete, got %d/%v", percent, completed)
	}

	// Just under target: the percent may round up to 100 for display, but
	// completion requires the full target.
	percent, completed = Progress(9.96, 10)
	if percent != 100 || completed {
		t.Errorf("Expected 99.6%% of target to show 100 but stay incomplete, got %d/%v", percent, completed)
	}

	percent, completed = Progress(9.94, 10)
	if percent != 99 || completed {
		t.Errorf("Expected 99/incomplete just under target, got %d/%v", percent, completed)
	}

	percent, completed = Progress(3, 0)
	if percent != 0 || completed {
		t.Errorf("Expected zero target to never complete, got %d/%v", percent, completed)
	}
}

func TestActivityTotals(t *testing.T) {
	logs := []analytics.LogEntry{
		{Date: "2025-03-13", Value: 10},
		{Date: "2025-03-14", Value: 20},
		{Date: "2025-03-15", Value: 5},
	}
	total, average, days := ActivityTotals(logs)
	if total != 35 {
		t.Errorf("Expected total 35, got %v", total)
	}
	if average != 11.67 {
		t.Errorf("Expected average 11.67, got %v", average)
	}
	if days != 3 {
		t.Errorf("Expected 3 logged days, got %d", days)
	}

	total, average, days = ActivityTotals(nil)
	if total != 0 || average != 0 || days != 0 {
		t.Errorf("Expected zero totals for no logs, got %v/%v/%d", total, average, days)
	}
}

func TestWeeklyCounts(t *testing.T) {
	logs := []analytics.LogEntry{
		{Date: "2025-03-15", Value: 1},
		{Date: "2025-03-15", Value: 2},
		{Date: "2025-03-12", Value: 1},
		{Date: "2025-03-01", Value: 1}, // outside the window
	}
	week := WeeklyCounts(logs, testToday)
	want := []int{0, 0, 0, 1, 0, 0, 2}
	if len(week) != 7 {
		t.Fatalf("Expected 7 entries, got %d", len(week))
	}
	for i := range want {
		if week[i] != want[i] {
			t.Errorf("Day %d: expected %d logs, got %d", i, want[i], week[i])
		}
	}
}
