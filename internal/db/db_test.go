package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/config"
	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/internal/model"
)

func TestInit_SQLite(t *testing.T) {
	gormDB, err := Init(&config.DatabaseConfig{Driver: "sqlite", DSN: "file:dbinit?mode=memory&cache=shared"})
	require.NoError(t, err)
	sqlDB, _ := gormDB.DB()
	defer sqlDB.Close()

	for _, table := range []any{&model.Event{}, &model.SessionAttendance{}, &model.PomodoroSession{}, &model.PushSubscription{}} {
		assert.True(t, gormDB.Migrator().HasTable(table))
	}
	assert.True(t, gormDB.Migrator().HasTable("subscription_event_mapping"))
	assert.True(t, gormDB.Migrator().HasIndex(&model.SessionAttendance{}, "idx_event_session_date"))
}

func TestInit_UnknownDriver(t *testing.T) {
	_, err := Init(&config.DatabaseConfig{Driver: "oracle", DSN: "x"})
	assert.Error(t, err)
}
