package model

import "time"

// SessionAttendance records the outcome of one session day of a daily-window
// event. There is at most one row per (event, date).
type SessionAttendance struct {
	ID          int64     `gorm:"primaryKey"`
	EventID     string    `gorm:"size:36;not null;uniqueIndex:idx_event_session_date"`
	SessionDate string    `gorm:"size:10;not null;uniqueIndex:idx_event_session_date"` // YYYY-MM-DD
	Status      string    `gorm:"size:16;not null;default:pending"`
	Notes       *string   `gorm:"size:500"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}
