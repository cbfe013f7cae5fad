package repository

import (
	"context"

	"github.com/linskybing/formbuilder-go/internal/domain/setting"
	"gorm.io/gorm"
)

type SettingRepo interface {
	ListSettings(ctx context.Context) ([]setting.Setting, error)
	UpdateSettingValue(ctx context.Context, key string, value *string) (int64, error)
	WithTx(tx *gorm.DB) SettingRepo
}

type DBSettingRepo struct {
	db *gorm.DB
}

func NewSettingRepo(db *gorm.DB) *DBSettingRepo {
	return &DBSettingRepo{
		db: db,
	}
}

func (r *DBSettingRepo) ListSettings(ctx context.Context) ([]setting.Setting, error) {
	var settings []setting.Setting
	err := r.db.WithContext(ctx).Order("setting_key ASC").Find(&settings).Error
	return settings, err
}

// UpdateSettingValue reports zero rows when the key does not exist.
func (r *DBSettingRepo) UpdateSettingValue(ctx context.Context, key string, value *string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&setting.Setting{}).
		Where("setting_key = ?", key).
		Update("setting_value", value)
	return res.RowsAffected, res.Error
}

func (r *DBSettingRepo) WithTx(tx *gorm.DB) SettingRepo {
	if tx == nil {
		return r
	}
	return &DBSettingRepo{
		db: tx,
	}
}
