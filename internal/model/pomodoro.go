package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PomodoroSession is one finished or abandoned focus/break timer run.
type PomodoroSession struct {
	ID        string    `gorm:"primaryKey;size:36"`
	Mode      string    `gorm:"size:20;not null;index"` // work, shortBreak, longBreak
	Duration  int       `gorm:"not null"`               // seconds
	Completed bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"not null;index"`
}

func (p *PomodoroSession) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
