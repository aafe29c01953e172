package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{DisableForeignKeyConstraintWhenMigrating: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	return db
}

func TestSafeAutoMigrate_CreatesAllTables(t *testing.T) {
	db := openSQLite(t)

	require.NoError(t, SafeAutoMigrate(db, zap.NewNop()))
	for _, m := range models() {
		assert.True(t, db.Migrator().HasTable(m.tableName), m.tableName)
	}

	// running twice only reconciles
	assert.NoError(t, SafeAutoMigrateWithRetry(db, zap.NewNop(), 1))
}

func TestAutoMigrate(t *testing.T) {
	db := openSQLite(t)
	require.NoError(t, AutoMigrate(db))
	assert.True(t, db.Migrator().HasTable("card_comments"))
}

func TestPing(t *testing.T) {
	assert.Error(t, Ping(context.Background(), nil))

	db := openSQLite(t)
	assert.NoError(t, Ping(context.Background(), db))

	require.NoError(t, Close(db))
	assert.Error(t, Ping(context.Background(), db))
}
