// Package testutil provides an isolated in-memory database for tests.
package testutil

import (
	migration "Recipe-Website/cmd/database/migrate"
	"Recipe-Website/entities"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a fresh shared-cache in-memory SQLite database migrated the
// same way as production. Each test gets its own database name.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%s?mode=memory&cache=shared", name, uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := migration.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// CreateUser inserts a user with the given role and returns it.
func CreateUser(t *testing.T, db *gorm.DB, displayName, role string) *entities.User {
	t.Helper()

	user := &entities.User{
		ID:          uuid.New(),
		DisplayName: displayName,
		Email:       strings.ToLower(strings.ReplaceAll(displayName, " ", ".")) + "@example.com",
		Password:    "x",
		Role:        role,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}
