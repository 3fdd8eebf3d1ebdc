package migration

import (
	"Recipe-Website/entities"

	"github.com/go-gormigrate/gormigrate/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
)

func caseInsensitiveIndexes(tx *gorm.DB) error {
	if err := tx.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_tags_name_lower ON tags (LOWER(name))").Error; err != nil {
		return err
	}
	return tx.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email_lower ON users (LOWER(email))").Error
}

func migrations() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			ID: "202401010001_initial_schema",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(entities.All()...)
			},
			Rollback: func(tx *gorm.DB) error {
				models := entities.All()
				for i := len(models) - 1; i >= 0; i-- {
					if err := tx.Migrator().DropTable(models[i]); err != nil {
						return err
					}
				}
				return nil
			},
		},
		{
			ID:      "202401010002_case_insensitive_indexes",
			Migrate: caseInsensitiveIndexes,
			Rollback: func(tx *gorm.DB) error {
				if err := tx.Exec("DROP INDEX IF EXISTS idx_tags_name_lower").Error; err != nil {
					return err
				}
				return tx.Exec("DROP INDEX IF EXISTS idx_users_email_lower").Error
			},
		},
	}
}

func Migrate(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, migrations())

	m.InitSchema(func(tx *gorm.DB) error {
		log.Info("clean database detected, running full schema initialization")
		if err := tx.AutoMigrate(entities.All()...); err != nil {
			return err
		}
		return caseInsensitiveIndexes(tx)
	})

	if err := m.Migrate(); err != nil {
		log.Errorf("migration failed: %v", err)
		return err
	}

	log.Info("database migration complete")
	return nil
}

// RollbackLast reverts the most recently applied migration.
func RollbackLast(db *gorm.DB) error {
	return gormigrate.New(db, gormigrate.DefaultOptions, migrations()).RollbackLast()
}
