package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	userDatamodel "github.com/AMOUAN/projet-electro/internal/core/datamodel/user"
)

// UserRepository is the gorm-backed account store. It serves both the
// lifecycle side (activation tokens, CRUD) and the auth side (credential
// lookups, reset tokens). Misses come back as (nil, nil).
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) getOne(query string, args ...interface{}) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.db.Preload("Role").Preload("Company").Where(query, args...).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByID(id string) (*userDatamodel.User, error) {
	return r.getOne("id = ?", id)
}

func (r *UserRepository) GetByEmail(email string) (*userDatamodel.User, error) {
	return r.getOne("email = ?", email)
}

func (r *UserRepository) GetByUsername(username string) (*userDatamodel.User, error) {
	return r.getOne("username = ?", username)
}

func (r *UserRepository) GetByUsernameOrEmail(username, email string) (*userDatamodel.User, error) {
	return r.getOne("username = ? OR email = ?", username, email)
}

func (r *UserRepository) GetByActivationToken(token string) (*userDatamodel.User, error) {
	return r.getOne("activation_token = ?", token)
}

func (r *UserRepository) GetByResetToken(token string) (*userDatamodel.User, error) {
	return r.getOne("reset_password_token = ?", token)
}

func (r *UserRepository) ExistsOtherWithUsernameOrEmail(excludeID, username, email string) (bool, error) {
	var count int64
	err := r.db.Model(&userDatamodel.User{}).
		Where("id <> ? AND (username = ? OR email = ?)", excludeID, username, email).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *UserRepository) List() ([]*userDatamodel.User, error) {
	var users []*userDatamodel.User
	err := r.db.Preload("Role").Preload("Company").Order("created_at DESC").Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) ListByRoleName(roleName string) ([]*userDatamodel.User, error) {
	var users []*userDatamodel.User
	err := r.db.Preload("Role").
		Joins("JOIN roles ON roles.id = users.role_id").
		Where("roles.name = ?", roleName).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) Create(u *userDatamodel.User) error {
	return r.db.Create(u).Error
}

func (r *UserRepository) Update(u *userDatamodel.User) error {
	return r.db.Save(u).Error
}

func (r *UserRepository) Delete(id string) error {
	return r.db.Delete(&userDatamodel.User{}, "id = ?", id).Error
}

// Activate flips the row to ACTIVE and clears the activation token and
// its expiry together with storing the password, in one UPDATE.
func (r *UserRepository) Activate(id, passwordHash string) error {
	return r.db.Model(&userDatamodel.User{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":                   userDatamodel.StatusActive,
			"password":                 passwordHash,
			"activation_token":         nil,
			"activation_token_expires": nil,
		}).Error
}

func (r *UserRepository) UpdateLastLogin(id string, t time.Time) error {
	return r.db.Model(&userDatamodel.User{}).Where("id = ?", id).
		Update("last_login", t).Error
}

// SetResetToken overwrites any previous reset token, invalidating it.
func (r *UserRepository) SetResetToken(id, token string, expires time.Time) error {
	return r.db.Model(&userDatamodel.User{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"reset_password_token":         token,
			"reset_password_token_expires": expires,
		}).Error
}

// ConsumeResetToken stores the new hash and clears the token atomically.
func (r *UserRepository) ConsumeResetToken(id, passwordHash string) error {
	return r.db.Model(&userDatamodel.User{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"password":                     passwordHash,
			"reset_password_token":         nil,
			"reset_password_token_expires": nil,
		}).Error
}
