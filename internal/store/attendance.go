package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/internal/attendance"
	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/internal/model"
)

// GetAttendanceRecords returns the ledger of an event, most recent day first.
func (s *gormStore) GetAttendanceRecords(ctx context.Context, eventID string) ([]model.SessionAttendance, error) {
	var records []model.SessionAttendance
	if err := s.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("session_date DESC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch sessions of event %s: %w", eventID, err)
	}
	return records, nil
}

// MarkAttendance upserts the record for (event, day). Re-marking a day
// overwrites the previous status.
func (s *gormStore) MarkAttendance(ctx context.Context, m AttendanceMark) (*model.SessionAttendance, error) {
	var out model.SessionAttendance
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Event{}).Where("id = ?", m.EventID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}

		updates := []string{"status", "updated_at"}
		if m.Notes != nil || !m.KeepNotes {
			updates = append(updates, "notes")
		}

		record := model.SessionAttendance{
			EventID:     m.EventID,
			SessionDate: m.SessionDate,
			Status:      string(m.Status),
			Notes:       m.Notes,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "event_id"}, {Name: "session_date"}},
			DoUpdates: clause.AssignmentColumns(updates),
		}).Create(&record).Error; err != nil {
			return fmt.Errorf("failed to upsert session %s of event %s: %w", m.SessionDate, m.EventID, err)
		}

		return tx.Where("event_id = ? AND session_date = ?", m.EventID, m.SessionDate).First(&out).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetPendingSessionDates lists closed session days of the event that have no
// record yet. Calendar days are read in now's location.
func (s *gormStore) GetPendingSessionDates(ctx context.Context, eventID string, now time.Time) ([]string, error) {
	ev, err := s.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !ev.HasDailyWindow() {
		return []string{}, nil
	}
	tev, err := ev.Temporal(now.Location())
	if err != nil {
		return nil, err
	}

	records, err := s.GetAttendanceRecords(ctx, eventID)
	if err != nil {
		return nil, err
	}
	marked := make(map[string]bool, len(records))
	for _, r := range records {
		marked[r.SessionDate] = true
	}

	pending := attendance.PendingDates(tev, marked, now)
	if pending == nil {
		pending = []string{}
	}
	return pending, nil
}
