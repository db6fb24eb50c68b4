package dao

import (
	"context"
	"errors"
	"time"

	"shipdocs/shipdocs/sources/psql/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingDAO struct {
	DB *gorm.DB
}

func NewSettingDAO(db *gorm.DB) *SettingDAO {
	return &SettingDAO{DB: db}
}

// GetSetting returns nil without error when the key is unset.
func (dao *SettingDAO) GetSetting(ctx context.Context, key string) (*models.SystemSetting, error) {
	var setting models.SystemSetting
	err := dao.DB.WithContext(ctx).First(&setting, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

// SetSetting upserts: an existing key gets its value and timestamp
// overwritten, otherwise a new record is created.
func (dao *SettingDAO) SetSetting(ctx context.Context, key string, value models.JSONValue) (*models.SystemSetting, error) {
	setting := &models.SystemSetting{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}
	err := dao.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(setting).Error
	if err != nil {
		return nil, err
	}
	return setting, nil
}
