package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/domain/shared"
)

// GormContactRepository implements identity.ContactRepository using GORM
type GormContactRepository struct {
	db *gorm.DB
}

// NewGormContactRepository creates a new GormContactRepository
func NewGormContactRepository(db *gorm.DB) *GormContactRepository {
	return &GormContactRepository{db: db}
}

// Save creates or updates a contact
func (r *GormContactRepository) Save(ctx context.Context, contact *identity.Contact) error {
	return r.db.WithContext(ctx).Save(contact).Error
}

// FindByID finds a contact by its ID
func (r *GormContactRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Contact, error) {
	var contact identity.Contact
	if err := r.db.WithContext(ctx).First(&contact, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &contact, nil
}

// FindByIDForUser finds a contact by ID owned by the given user
func (r *GormContactRepository) FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*identity.Contact, error) {
	var contact identity.Contact
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&contact).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &contact, nil
}

// FindAllForUser lists the user's contacts, oldest first
func (r *GormContactRepository) FindAllForUser(ctx context.Context, userID uuid.UUID) ([]*identity.Contact, error) {
	var contacts []*identity.Contact
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

// CountForUser counts the user's contacts
func (r *GormContactRepository) CountForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&identity.Contact{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// DeleteForUser removes the given contacts if owned by userID. The
// user_id predicate keeps one user from deleting another's addresses.
func (r *GormContactRepository) DeleteForUser(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND id IN ?", userID, ids).
		Delete(&identity.Contact{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

var _ identity.ContactRepository = (*GormContactRepository)(nil)
