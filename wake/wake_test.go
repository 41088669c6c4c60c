package wake

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d, hh, mm, ss int) time.Time {
	return time.Date(y, m, d, hh, mm, ss, 0, time.UTC)
}

func TestEvaluateClassificationBands(t *testing.T) {
	sub := Subject{
		TrackingStart:  day(2024, 5, 1, 9, 30, 0),
		TargetWakeTime: "07:00",
	}

	tests := []struct {
		name      string
		scannedAt time.Time
		status    string
		late      int
	}{
		{"before target clamps to zero", day(2024, 5, 2, 6, 45, 0), StatusSuccess, 0},
		{"exactly on target", day(2024, 5, 2, 7, 0, 0), StatusSuccess, 0},
		{"seconds floor to whole minutes", day(2024, 5, 2, 7, 2, 30), StatusSuccess, 2},
		{"three minutes is still success", day(2024, 5, 2, 7, 3, 0), StatusSuccess, 3},
		{"four minutes is almost", day(2024, 5, 2, 7, 4, 0), StatusAlmost, 4},
		{"thirty minutes is still almost", day(2024, 5, 2, 7, 30, 0), StatusAlmost, 30},
		{"thirty-one minutes is late", day(2024, 5, 2, 7, 31, 0), StatusLate, 31},
		{"forty-five minutes is late", day(2024, 5, 2, 7, 45, 0), StatusLate, 45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := Evaluate(sub, tt.scannedAt)
			require.NoError(t, err)
			assert.Equal(t, tt.status, ev.Status)
			assert.Equal(t, tt.late, ev.MinutesLate)
			assert.Equal(t, "07:00", ev.ScheduledWakeTime)
			assert.True(t, ev.ScannedAt.Equal(tt.scannedAt))
		})
	}
}

func TestEvaluateSecondsFloorAtBandEdge(t *testing.T) {
	// 3m59s past target floors to 3 whole minutes and stays a success.
	sub := Subject{TrackingStart: day(2024, 5, 1, 0, 0, 0), TargetWakeTime: "07:00"}
	ev, err := Evaluate(sub, day(2024, 5, 2, 7, 3, 59))
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, ev.Status)
	assert.Equal(t, 3, ev.MinutesLate)
}

func TestEvaluateTooSoonOnTrackingStartDate(t *testing.T) {
	// Same calendar date as tracking start is rejected no matter the hour,
	// even when the scan itself would have been perfectly on time.
	sub := Subject{
		TrackingStart:  day(2024, 5, 1, 23, 50, 0),
		TargetWakeTime: "07:00",
	}

	for _, scannedAt := range []time.Time{
		day(2024, 5, 1, 0, 1, 0),
		day(2024, 5, 1, 7, 0, 0),
		day(2024, 5, 1, 23, 59, 59),
	} {
		_, err := Evaluate(sub, scannedAt)
		assert.ErrorIs(t, err, ErrTooSoon, "scan at %v", scannedAt)
	}

	// Next calendar date passes even though fewer than 24h elapsed.
	ev, err := Evaluate(sub, day(2024, 5, 2, 7, 1, 0))
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, ev.Status)
}

func TestEvaluateNoTargetSet(t *testing.T) {
	sub := Subject{TrackingStart: day(2024, 5, 1, 9, 0, 0)}
	_, err := Evaluate(sub, day(2024, 5, 2, 7, 0, 0))
	assert.ErrorIs(t, err, ErrNoTargetSet)
}

func TestEvaluateRejectionOrder(t *testing.T) {
	// Too-soon wins over no-target: the start-date check runs first.
	sub := Subject{TrackingStart: day(2024, 5, 1, 9, 0, 0)}
	_, err := Evaluate(sub, day(2024, 5, 1, 7, 0, 0))
	assert.ErrorIs(t, err, ErrTooSoon)
}

func TestParseWakeTime(t *testing.T) {
	tests := []struct {
		in      string
		hour    int
		minute  int
		wantErr bool
	}{
		{"07:00", 7, 0, false},
		{"00:00", 0, 0, false},
		{"23:59", 23, 59, false},
		{"24:00", 0, 0, true},
		{"12:60", 0, 0, true},
		{"7:00", 0, 0, true},
		{"07-00", 0, 0, true},
		{"ab:cd", 0, 0, true},
		{"", 0, 0, true},
	}
	for _, tt := range tests {
		h, m, err := ParseWakeTime(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.hour, h)
		assert.Equal(t, tt.minute, m)
	}
}

func TestParseLocalTime(t *testing.T) {
	ts, err := ParseLocalTime("2024-05-02T07:02:30")
	require.NoError(t, err)
	assert.Equal(t, 2024, ts.Year())
	assert.Equal(t, time.May, ts.Month())
	assert.Equal(t, 2, ts.Day())
	assert.Equal(t, 7, ts.Hour())
	assert.Equal(t, 2, ts.Minute())
	assert.Equal(t, 30, ts.Second())

	// Timezone suffixes are not part of the wire format.
	_, err = ParseLocalTime("2024-05-02T07:02:30Z")
	assert.Error(t, err)
	_, err = ParseLocalTime("2024-05-02 07:02:30")
	assert.Error(t, err)
}

func TestSameDate(t *testing.T) {
	assert.True(t, SameDate(day(2024, 3, 1, 0, 0, 1), day(2024, 3, 1, 23, 59, 59)))
	assert.False(t, SameDate(day(2024, 3, 1, 23, 59, 59), day(2024, 3, 2, 0, 0, 0)))
	assert.False(t, SameDate(day(2023, 3, 1, 12, 0, 0), day(2024, 3, 1, 12, 0, 0)))
}
