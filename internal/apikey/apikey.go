package apikey

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const keyPrefix = "sk_"

// APIKey stores only a digest of the issued key; the full value is shown
// once at creation and never again.
type APIKey struct {
	ID         string     `gorm:"primaryKey;size:36" json:"id"`
	Name       string     `gorm:"size:255;not null" json:"name"`
	UserID     *string    `gorm:"size:36;index" json:"user_id,omitempty"`
	KeyHint    string     `gorm:"size:16;not null" json:"key_hint"`
	KeyHash    string     `gorm:"uniqueIndex;size:64;not null" json:"-"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (APIKey) TableName() string { return "api_keys" }

func (k *APIKey) BeforeCreate(tx *gorm.DB) error {
	if k.ID == "" {
		k.ID = uuid.NewString()
	}
	return nil
}

// GenerateKey returns a fresh secret of the form sk_<64 hex chars>.
func GenerateKey() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return keyPrefix + hex.EncodeToString(b), nil
}

// HashKey is the digest stored and compared on lookup.
func HashKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}

// Hint is the displayable fragment of a key, enough to recognize it in a
// list without revealing it.
func Hint(key string) string {
	if len(key) <= 10 {
		return key
	}
	return key[:10]
}

type RepositoryAPI interface {
	Create(k *APIKey) error
	GetByID(id string) (*APIKey, error)
	GetByHash(hash string) (*APIKey, error)
	List(userID string) ([]*APIKey, error)
	TouchLastUsed(id string, t time.Time) error
	Delete(id string) error
}

// CreatedKey carries the one-time plaintext alongside the stored record.
type CreatedKey struct {
	*APIKey
	Key string `json:"key"`
}

type ServiceAPI interface {
	Create(dto CreateAPIKeyDTO) (*CreatedKey, error)
	List(userID string) ([]*APIKey, error)
	Get(id string) (*APIKey, error)
	Authenticate(key string) (*APIKey, error)
	Delete(id string) error
}
