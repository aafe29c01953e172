package repository

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"taskboard-api/internal/domain"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   logger.Default.LogMode(logger.Silent),
		NowFunc:                                  func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Workspace{},
		&domain.WorkspaceMember{},
		&domain.Board{},
		&domain.BoardMember{},
		&domain.List{},
		&domain.Card{},
		&domain.CardAssignee{},
		&domain.CardWatcher{},
		&domain.CardComment{},
		&domain.CalendarEvent{},
		&domain.Action{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

// at returns a fixed UTC instant offset by minutes, for deterministic ordering
func at(minutes int) time.Time {
	return time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC).Add(time.Duration(minutes) * time.Minute)
}
