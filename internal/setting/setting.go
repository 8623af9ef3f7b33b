package setting

import (
	"time"
)

// Setting is one key/value pair of platform configuration editable at
// runtime (UI labels, contact addresses, feature toggles).
type Setting struct {
	Key       string    `gorm:"primaryKey;size:128" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Setting) TableName() string { return "settings" }

type RepositoryAPI interface {
	GetAll() ([]*Setting, error)
	Get(key string) (*Setting, error)
	Upsert(key, value string) (*Setting, error)
}

type ServiceAPI interface {
	GetAll() (map[string]string, error)
	Get(key string) (*Setting, error)
	Upsert(key, value string) (*Setting, error)
	UpsertMany(values map[string]string) (map[string]string, error)
}
