package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/internal/model"
)

// ListEvents returns events ordered by start date.
func (s *gormStore) ListEvents(ctx context.Context, f EventFilter) ([]model.Event, error) {
	q := s.db.WithContext(ctx).Model(&model.Event{})
	if f.StartFrom != nil {
		q = q.Where("start_date >= ?", *f.StartFrom)
	}
	if f.EndUntil != nil {
		q = q.Where("end_date <= ?", *f.EndUntil)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Completed != nil {
		q = q.Where("is_completed = ?", *f.Completed)
	}

	limit := f.Limit
	if limit <= 0 {
		limit = DefaultEventLimit
	}
	if limit > MaxEventLimit {
		limit = MaxEventLimit
	}

	var events []model.Event
	if err := q.Order("start_date").Offset(f.Skip).Limit(limit).Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

// ListIncompleteEvents returns every event not yet marked completed.
func (s *gormStore) ListIncompleteEvents(ctx context.Context) ([]model.Event, error) {
	var events []model.Event
	if err := s.db.WithContext(ctx).Where("is_completed = ?", false).Order("start_date").Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to list incomplete events: %w", err)
	}
	return events, nil
}

func (s *gormStore) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	var ev model.Event
	if err := s.db.WithContext(ctx).First(&ev, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &ev, nil
}

func (s *gormStore) CreateEvent(ctx context.Context, ev *model.Event) error {
	if err := s.db.WithContext(ctx).Create(ev).Error; err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}

// CreateEvents inserts all events in a single transaction.
func (s *gormStore) CreateEvents(ctx context.Context, evs []*model.Event) error {
	if len(evs) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, ev := range evs {
			if err := tx.Create(ev).Error; err != nil {
				return fmt.Errorf("failed to create event %q: %w", ev.Title, err)
			}
		}
		return nil
	})
}

func (s *gormStore) UpdateEvent(ctx context.Context, ev *model.Event) error {
	res := s.db.WithContext(ctx).Model(ev).Select("*").Omit("created_at").Updates(ev)
	if res.Error != nil {
		return fmt.Errorf("failed to update event %s: %w", ev.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteEvent removes the event together with its attendance rows and
// subscription links.
func (s *gormStore) DeleteEvent(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&model.SessionAttendance{}).Error; err != nil {
			return fmt.Errorf("failed to delete sessions of event %s: %w", id, err)
		}
		if err := tx.Exec("DELETE FROM subscription_event_mapping WHERE event_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to unlink subscriptions of event %s: %w", id, err)
		}
		res := tx.Delete(&model.Event{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete event %s: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
