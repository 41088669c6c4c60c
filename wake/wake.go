// Package wake holds the scan evaluation and streak derivation rules. It is
// deliberately free of HTTP, storage, and clock dependencies: callers load
// the subject's rows and pass explicit timestamps, so every outcome is
// reproducible in tests.
package wake

import (
	"errors"
	"fmt"
	"time"
)

// Scan outcome classifications, persisted on every evaluated scan.
const (
	StatusSuccess = "success"
	StatusAlmost  = "almost"
	StatusLate    = "late"
)

// Lateness bands in whole minutes; both bounds are inclusive of the lower
// band. Fixed policy, not per-user.
const (
	onTimeLimitMinutes   = 3
	nearMissLimitMinutes = 30
)

// Rejection reasons. None of these produce a persisted scan.
var (
	ErrInvalidToken      = errors.New("invalid QR code")
	ErrInvalidCredential = errors.New("incorrect email or password")
	ErrTooSoon           = errors.New("tracking starts the day after signup")
	ErrNoTargetSet       = errors.New("no wake time set")
)

// LocalTimeLayout is the wire format for the caller-supplied local wall-clock
// reading. No timezone suffix: the value is the user's local morning, not UTC.
const LocalTimeLayout = "2006-01-02T15:04:05"

// ParseLocalTime parses a claimed local timestamp from its wire format.
func ParseLocalTime(s string) (time.Time, error) {
	t, err := time.Parse(LocalTimeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid local timestamp %q", s)
	}
	return t, nil
}

// ParseWakeTime validates and splits a zero-padded "HH:MM" 24-hour string.
func ParseWakeTime(s string) (hour, minute int, err error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, 0, fmt.Errorf("invalid wake time %q", s)
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return 0, 0, fmt.Errorf("invalid wake time %q", s)
		}
	}
	hour = int(s[0]-'0')*10 + int(s[1]-'0')
	minute = int(s[3]-'0')*10 + int(s[4]-'0')
	if hour > 23 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid wake time %q", s)
	}
	return hour, minute, nil
}

// Subject carries the user state the evaluator needs: when tracking began and
// the current wake target ("" when unset). Token resolution and credential
// checks happen at the boundary; their failures map to ErrInvalidToken and
// ErrInvalidCredential so the full rejection taxonomy lives here.
type Subject struct {
	TrackingStart  time.Time
	TargetWakeTime string
}

// Evaluation is the accepted outcome of a scan attempt.
type Evaluation struct {
	Status            string
	MinutesLate       int
	ScannedAt         time.Time
	ScheduledWakeTime string
}

// Evaluate classifies a claimed local scan timestamp against the subject's
// target wake time.
//
// A scan on the same calendar date as the tracking start is rejected ErrTooSoon
// regardless of time of day: one full night must pass before the first scan
// can count, so a signup-day scan never double-counts. The comparison is by
// calendar date, not elapsed hours.
//
// Lateness is the whole-minute (floored) distance past the target moment on
// the scan's own date, never negative. Up to 3 minutes late is a success,
// up to 30 an "almost", beyond that late. The scan persists in all three
// cases; only rejections leave no record.
func Evaluate(sub Subject, scannedAt time.Time) (Evaluation, error) {
	if SameDate(scannedAt, sub.TrackingStart) {
		return Evaluation{}, ErrTooSoon
	}
	if sub.TargetWakeTime == "" {
		return Evaluation{}, ErrNoTargetSet
	}
	hour, minute, err := ParseWakeTime(sub.TargetWakeTime)
	if err != nil {
		return Evaluation{}, ErrNoTargetSet
	}

	expected := time.Date(scannedAt.Year(), scannedAt.Month(), scannedAt.Day(),
		hour, minute, 0, 0, scannedAt.Location())
	late := 0
	if d := scannedAt.Sub(expected); d > 0 {
		late = int(d.Minutes())
	}

	status := StatusLate
	switch {
	case late <= onTimeLimitMinutes:
		status = StatusSuccess
	case late <= nearMissLimitMinutes:
		status = StatusAlmost
	}

	return Evaluation{
		Status:            status,
		MinutesLate:       late,
		ScannedAt:         scannedAt,
		ScheduledWakeTime: sub.TargetWakeTime,
	}, nil
}

// SameDate reports whether two instants fall on the same calendar date,
// ignoring time of day.
func SameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// DateKey formats an instant as its calendar date, "YYYY-MM-DD". Keys sort
// lexicographically in date order.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
