package store

import (
	"context"
	"fmt"

	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/internal/model"
)

func (s *gormStore) CreatePomodoroSession(ctx context.Context, p *model.PomodoroSession) error {
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("failed to record pomodoro session: %w", err)
	}
	return nil
}

// ListPomodoroSessions returns the most recent sessions first.
func (s *gormStore) ListPomodoroSessions(ctx context.Context, limit int) ([]model.PomodoroSession, error) {
	var sessions []model.PomodoroSession
	if err := s.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("failed to list pomodoro sessions: %w", err)
	}
	return sessions, nil
}

func (s *gormStore) ListPomodoroSessionsByMode(ctx context.Context, mode string) ([]model.PomodoroSession, error) {
	var sessions []model.PomodoroSession
	if err := s.db.WithContext(ctx).Where("mode = ?", mode).Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("failed to list %s sessions: %w", mode, err)
	}
	return sessions, nil
}
