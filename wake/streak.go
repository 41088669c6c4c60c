package wake

import "time"

// Day outcome tags for the calendar. Derived on every read, never stored.
const (
	DaySuccess     = "success"
	DayMissed      = "missed"
	DayFuture      = "future"
	DayPreTracking = "pre_tracking"
)

// Event is the slice of a persisted scan the reconstructor needs.
type Event struct {
	ScannedAt time.Time
	OnTime    bool
}

// Day is one calendar date tagged with its derived outcome.
type Day struct {
	Date   time.Time
	Status string
}

// Reconstruct derives the current-year calendar and the consecutive-success
// streak from the full event history. It is a pure function: the same events
// and the same "today" always produce the same output, and the whole year is
// recomputed from scratch on every call.
//
// A date counts as successful only if at least one event that date was
// on-time; a date with only almost/late events is treated exactly like a date
// with no events. The streak walks backward from Dec 31, skips dates strictly
// after today, and stops at the first non-success — so today without a scan
// yet breaks the streak like any other missed day.
func Reconstruct(events []Event, trackingStart, today time.Time) ([]Day, int) {
	success := make(map[string]bool, len(events))
	for _, ev := range events {
		if ev.OnTime {
			success[DateKey(ev.ScannedAt)] = true
		}
	}

	startKey := DateKey(trackingStart)
	todayKey := DateKey(today)

	year := today.Year()
	days := make([]Day, 0, 366)
	for d := time.Date(year, time.January, 1, 0, 0, 0, 0, today.Location()); d.Year() == year; d = d.AddDate(0, 0, 1) {
		key := DateKey(d)
		status := DayMissed
		switch {
		case key < startKey:
			status = DayPreTracking
		case key > todayKey:
			status = DayFuture
		case success[key]:
			status = DaySuccess
		}
		days = append(days, Day{Date: d, Status: status})
	}

	streak := 0
	for i := len(days) - 1; i >= 0; i-- {
		key := DateKey(days[i].Date)
		if key > todayKey {
			continue
		}
		if !success[key] {
			break
		}
		streak++
	}

	return days, streak
}
