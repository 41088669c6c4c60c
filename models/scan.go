package models

import "time"

// Scan is one evaluated wake-up attempt. Rows are append-only: a scan is
// written for every evaluated outcome (success, almost, late) and is never
// updated or deleted individually; only a bulk data purge removes them.
// ScannedAt is the caller-supplied local wall-clock reading, not the server
// clock. ScheduledWakeTime is the "HH:MM" target in effect at evaluation time.
type Scan struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	UserID            uint      `gorm:"index;not null" json:"user_id"`
	QRCodeID          uint      `gorm:"not null" json:"qrcode_id"`
	ScannedAt         time.Time `gorm:"index;not null" json:"scanned_at"`
	ScheduledWakeTime string    `gorm:"size:5;not null" json:"scheduled_wake_time"`
	Status            string    `gorm:"size:16;not null" json:"status"`
	MinutesLate       int       `json:"minutes_late"`
	CreatedAt         time.Time `json:"created_at"`
}
