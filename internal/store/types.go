package store

import (
	"time"

	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/internal/attendance"
)

const (
	DefaultEventLimit = 100
	MaxEventLimit     = 1000
)

// EventFilter narrows ListEvents. Zero values disable a filter.
type EventFilter struct {
	StartFrom *time.Time // start_date >= StartFrom
	EndUntil  *time.Time // end_date <= EndUntil
	Category  string
	Completed *bool
	Skip      int
	Limit     int
}

// AttendanceMark is an upsert request for one session day.
type AttendanceMark struct {
	EventID     string
	SessionDate string
	Status      attendance.Status
	Notes       *string
	// KeepNotes leaves existing notes untouched when Notes is nil.
	KeepNotes bool
}
