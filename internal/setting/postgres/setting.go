package postgres

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/AMOUAN/projet-electro/internal/setting"
)

type SettingRepository struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) setting.RepositoryAPI {
	return &SettingRepository{db: db}
}

func (r *SettingRepository) GetAll() ([]*setting.Setting, error) {
	var settings []*setting.Setting
	err := r.db.Order("key ASC").Find(&settings).Error
	return settings, err
}

func (r *SettingRepository) Get(key string) (*setting.Setting, error) {
	var st setting.Setting
	err := r.db.Where("key = ?", key).First(&st).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (r *SettingRepository) Upsert(key, value string) (*setting.Setting, error) {
	st := &setting.Setting{Key: key, Value: value}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(st).Error
	if err != nil {
		return nil, err
	}
	return st, nil
}
