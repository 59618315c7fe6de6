package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/internal/temporal"
)

type Category string

const (
	CategoryWork     Category = "work"
	CategoryPersonal Category = "personal"
	CategoryHealth   Category = "health"
	CategoryLearning Category = "learning"
	CategoryFinance  Category = "finance"
	CategorySocial   Category = "social"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// TimingMode says how strictly the event's times are meant.
type TimingMode string

const (
	TimingSpecific TimingMode = "specific"
	TimingAnytime  TimingMode = "anytime"
	TimingDeadline TimingMode = "deadline"
)

// Resolution is the user's verdict on an event after the fact.
type Resolution string

const (
	ResolutionPending     Resolution = "pending"
	ResolutionCompleted   Resolution = "completed"
	ResolutionMissed      Resolution = "missed"
	ResolutionRescheduled Resolution = "rescheduled"
)

// Subtask is a checklist item stored inline with its event.
type Subtask struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Event is a scheduled item. StartDate and EndDate hold wall-clock digits in
// the server's configured location.
type Event struct {
	ID                string     `gorm:"primaryKey;size:36"`
	Title             string     `gorm:"size:255;not null"`
	Description       *string    `gorm:"size:1000"`
	StartDate         time.Time  `gorm:"not null;index"`
	EndDate           time.Time  `gorm:"not null"`
	Category          Category   `gorm:"size:16;not null;default:work;index"`
	Priority          Priority   `gorm:"size:16;not null;default:medium"`
	IsRecurring       bool       `gorm:"not null;default:false"`
	IsCompleted       bool       `gorm:"not null;default:false;index"`
	Subtasks          []Subtask  `gorm:"serializer:json"`
	TimingMode        TimingMode `gorm:"size:16;not null;default:specific"`
	Resolution        Resolution `gorm:"size:16;not null;default:pending"`
	RescheduleCount   int        `gorm:"not null;default:0"`
	OriginalStartDate *time.Time
	DailyStartTime    *string `gorm:"size:5"`
	DailyEndTime      *string `gorm:"size:5"`
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// Associations
	Sessions []SessionAttendance `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate assigns IDs to the event and to any subtask missing one.
func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	for i := range e.Subtasks {
		if e.Subtasks[i].ID == "" {
			e.Subtasks[i].ID = uuid.NewString()
		}
	}
	return nil
}

// HasDailyWindow reports whether both daily bounds are set.
func (e *Event) HasDailyWindow() bool {
	return e.DailyStartTime != nil && e.DailyEndTime != nil
}

// Temporal converts the stored row into the engine's input with its
// instants viewed in loc.
func (e *Event) Temporal(loc *time.Location) (temporal.Event, error) {
	if loc == nil {
		loc = time.Local
	}
	w, err := temporal.WindowFromPair(e.DailyStartTime, e.DailyEndTime)
	if err != nil {
		return temporal.Event{}, err
	}
	return temporal.Event{
		Start:     e.StartDate.In(loc),
		End:       e.EndDate.In(loc),
		Completed: e.IsCompleted,
		Window:    w,
	}, nil
}
