package models

// UserSetting stores per-user preferences. TargetWakeTime is a zero-padded
// "HH:MM" 24-hour string with no timezone; empty means no target is set and
// scans for that user cannot be evaluated.
type UserSetting struct {
	UserID         uint   `gorm:"primaryKey" json:"user_id"`
	TargetWakeTime string `gorm:"size:5" json:"target_wake_time"`
}
