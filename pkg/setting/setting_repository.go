package setting

import (
	"Recipe-Website/entities"
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	SettingRepository interface {
		ListSettings(ctx context.Context) ([]*entities.Setting, error)
		UpsertSetting(ctx context.Context, key string, value *string) (*entities.Setting, error)
	}

	settingRepository struct {
		db *gorm.DB
	}
)

func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

func (r *settingRepository) ListSettings(ctx context.Context) ([]*entities.Setting, error) {
	var settings []*entities.Setting
	if err := r.db.WithContext(ctx).Order(clause.OrderByColumn{Column: clause.Column{Name: "key"}}).Find(&settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

func (r *settingRepository) UpsertSetting(ctx context.Context, key string, value *string) (*entities.Setting, error) {
	setting := &entities.Setting{ID: uuid.New(), Key: key, Value: value}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(setting).Error; err != nil {
		return nil, err
	}

	var saved entities.Setting
	if err := r.db.WithContext(ctx).Where(&entities.Setting{Key: key}).First(&saved).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}
