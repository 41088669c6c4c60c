package wake

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func onTime(y int, m time.Month, d int) Event {
	return Event{ScannedAt: day(y, m, d, 7, 1, 0), OnTime: true}
}

func missedAttempt(y int, m time.Month, d int) Event {
	return Event{ScannedAt: day(y, m, d, 7, 45, 0), OnTime: false}
}

func statusOn(t *testing.T, days []Day, y int, m time.Month, d int) string {
	t.Helper()
	key := DateKey(day(y, m, d, 0, 0, 0))
	for _, dd := range days {
		if DateKey(dd.Date) == key {
			return dd.Status
		}
	}
	t.Fatalf("date %s not in calendar", key)
	return ""
}

func TestReconstructEmptyHistory(t *testing.T) {
	today := day(2024, 3, 10, 9, 0, 0)
	start := day(2024, 3, 1, 8, 0, 0)

	days, streak := Reconstruct(nil, start, today)

	assert.Equal(t, 366, len(days)) // 2024 is a leap year
	assert.Equal(t, 0, streak)
	assert.Equal(t, DayPreTracking, statusOn(t, days, 2024, 2, 29))
	assert.Equal(t, DayMissed, statusOn(t, days, 2024, 3, 1))
	assert.Equal(t, DayMissed, statusOn(t, days, 2024, 3, 10))
	assert.Equal(t, DayFuture, statusOn(t, days, 2024, 3, 11))
	assert.Equal(t, DayFuture, statusOn(t, days, 2024, 12, 31))
}

func TestReconstructSpecWalkthrough(t *testing.T) {
	// Tracking start 2024-03-01, today 2024-03-10, on-time scans on
	// 03-05..03-09 and nothing today: the unresolved today breaks the walk.
	start := day(2024, 3, 1, 10, 0, 0)
	today := day(2024, 3, 10, 8, 0, 0)
	var events []Event
	for d := 5; d <= 9; d++ {
		events = append(events, onTime(2024, 3, d))
	}

	days, streak := Reconstruct(events, start, today)

	assert.Equal(t, 0, streak)
	for d := 5; d <= 9; d++ {
		assert.Equal(t, DaySuccess, statusOn(t, days, 2024, 3, d))
	}
	for d := 1; d <= 4; d++ {
		assert.Equal(t, DayMissed, statusOn(t, days, 2024, 3, d))
	}
}

func TestReconstructStreakEndingToday(t *testing.T) {
	start := day(2024, 3, 1, 10, 0, 0)
	today := day(2024, 3, 10, 8, 0, 0)
	var events []Event
	for d := 6; d <= 10; d++ {
		events = append(events, onTime(2024, 3, d))
	}

	_, streak := Reconstruct(events, start, today)
	assert.Equal(t, 5, streak)
}

func TestReconstructAlmostOnlyDayBreaksStreak(t *testing.T) {
	// A day with only near-miss/late attempts counts exactly like an empty
	// day: it shows as missed and stops the streak.
	start := day(2024, 3, 1, 10, 0, 0)
	today := day(2024, 3, 10, 8, 0, 0)
	events := []Event{
		onTime(2024, 3, 7),
		missedAttempt(2024, 3, 8),
		{ScannedAt: day(2024, 3, 8, 8, 30, 0), OnTime: false},
		onTime(2024, 3, 9),
		onTime(2024, 3, 10),
	}

	days, streak := Reconstruct(events, start, today)

	assert.Equal(t, DayMissed, statusOn(t, days, 2024, 3, 8))
	assert.Equal(t, 2, streak)
}

func TestReconstructCollapseTakesAnyOnTimeEvent(t *testing.T) {
	// Duplicate scans on one day all persist; one on-time among them makes
	// the day a success regardless of order.
	start := day(2024, 3, 1, 10, 0, 0)
	today := day(2024, 3, 5, 9, 0, 0)
	events := []Event{
		missedAttempt(2024, 3, 5),
		onTime(2024, 3, 5),
		missedAttempt(2024, 3, 5),
	}

	days, streak := Reconstruct(events, start, today)
	assert.Equal(t, DaySuccess, statusOn(t, days, 2024, 3, 5))
	assert.Equal(t, 1, streak)
}

func TestReconstructFutureDaysDoNotBreakWalk(t *testing.T) {
	// Today mid-year: every date after today is skipped, not treated as a miss.
	start := day(2024, 1, 1, 0, 0, 0)
	today := day(2024, 6, 15, 12, 0, 0)
	events := []Event{onTime(2024, 6, 14), onTime(2024, 6, 15)}

	_, streak := Reconstruct(events, start, today)
	assert.Equal(t, 2, streak)
}

func TestReconstructAfterPurgeTagsPreTracking(t *testing.T) {
	// A purge moves the tracking start to the purge moment; every earlier
	// date must come back pre_tracking even though it once held events.
	today := day(2024, 3, 20, 9, 0, 0)
	purgedStart := day(2024, 3, 15, 14, 0, 0)

	days, streak := Reconstruct(nil, purgedStart, today)

	assert.Equal(t, 0, streak)
	for d := 1; d <= 14; d++ {
		assert.Equal(t, DayPreTracking, statusOn(t, days, 2024, 3, d))
	}
	assert.Equal(t, DayMissed, statusOn(t, days, 2024, 3, 15))
}

func TestReconstructIsPure(t *testing.T) {
	start := day(2024, 3, 1, 10, 0, 0)
	today := day(2024, 3, 10, 8, 0, 0)
	events := []Event{onTime(2024, 3, 8), onTime(2024, 3, 9), missedAttempt(2024, 3, 10)}

	days1, streak1 := Reconstruct(events, start, today)
	days2, streak2 := Reconstruct(events, start, today)

	require.Equal(t, len(days1), len(days2))
	assert.Equal(t, streak1, streak2)
	for i := range days1 {
		assert.True(t, days1[i].Date.Equal(days2[i].Date))
		assert.Equal(t, days1[i].Status, days2[i].Status)
	}
}

func TestReconstructNonLeapYearLength(t *testing.T) {
	today := day(2023, 7, 1, 9, 0, 0)
	days, _ := Reconstruct(nil, day(2023, 1, 1, 0, 0, 0), today)
	assert.Equal(t, 365, len(days))
	assert.Equal(t, DateKey(day(2023, 1, 1, 0, 0, 0)), DateKey(days[0].Date))
	assert.Equal(t, DateKey(day(2023, 12, 31, 0, 0, 0)), DateKey(days[len(days)-1].Date))
}
