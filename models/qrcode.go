package models

import "time"

// QRCode binds an unguessable scan token to exactly one user. Created once
// per user and never changed afterwards; presenting the code is how a scan
// names its subject.
type QRCode struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	Code      string    `gorm:"size:36;uniqueIndex;not null" json:"code"`
	CreatedAt time.Time `json:"created_at"`
}
