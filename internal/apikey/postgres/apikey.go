package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/AMOUAN/projet-electro/internal/apikey"
)

type APIKeyRepository struct {
	db *gorm.DB
}

func NewAPIKeyRepository(db *gorm.DB) apikey.RepositoryAPI {
	return &APIKeyRepository{db: db}
}

func (r *APIKeyRepository) Create(k *apikey.APIKey) error {
	return r.db.Create(k).Error
}

func (r *APIKeyRepository) GetByID(id string) (*apikey.APIKey, error) {
	var k apikey.APIKey
	err := r.db.Where("id = ?", id).First(&k).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &k, nil
}

func (r *APIKeyRepository) GetByHash(hash string) (*apikey.APIKey, error) {
	var k apikey.APIKey
	err := r.db.Where("key_hash = ?", hash).First(&k).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &k, nil
}

func (r *APIKeyRepository) List(userID string) ([]*apikey.APIKey, error) {
	var keys []*apikey.APIKey
	q := r.db.Order("created_at DESC")
	if userID != "" {
		q = q.Where("user_id = ?", userID)
	}
	err := q.Find(&keys).Error
	return keys, err
}

func (r *APIKeyRepository) TouchLastUsed(id string, t time.Time) error {
	return r.db.Model(&apikey.APIKey{}).Where("id = ?", id).
		Update("last_used_at", t).Error
}

func (r *APIKeyRepository) Delete(id string) error {
	return r.db.Delete(&apikey.APIKey{}, "id = ?", id).Error
}
