package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/domain/shared"
)

// GormUserRepository implements identity.UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Save creates or updates a user
func (r *GormUserRepository) Save(ctx context.Context, user *identity.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// FindByID finds a user by its ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	var user identity.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email; addresses are stored lowercased
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	var user identity.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ExistsByEmail checks if a user with the given email exists
func (r *GormUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&identity.User{}).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

var _ identity.UserRepository = (*GormUserRepository)(nil)

// GormConfirmTokenRepository implements identity.ConfirmTokenRepository using GORM
type GormConfirmTokenRepository struct {
	db *gorm.DB
}

// NewGormConfirmTokenRepository creates a new GormConfirmTokenRepository
func NewGormConfirmTokenRepository(db *gorm.DB) *GormConfirmTokenRepository {
	return &GormConfirmTokenRepository{db: db}
}

// Save creates or updates a confirmation token
func (r *GormConfirmTokenRepository) Save(ctx context.Context, token *identity.ConfirmToken) error {
	return r.db.WithContext(ctx).Save(token).Error
}

// FindByUserAndKey finds a pending token for the user with the given key
func (r *GormConfirmTokenRepository) FindByUserAndKey(ctx context.Context, userID uuid.UUID, key string) (*identity.ConfirmToken, error) {
	var token identity.ConfirmToken
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND key = ?", userID, key).
		First(&token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &token, nil
}

// Delete removes a redeemed token
func (r *GormConfirmTokenRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&identity.ConfirmToken{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ identity.ConfirmTokenRepository = (*GormConfirmTokenRepository)(nil)
