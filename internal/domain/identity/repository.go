package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository provides access to user accounts.
type UserRepository interface {
	Save(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// ConfirmTokenRepository stores pending email confirmation keys.
type ConfirmTokenRepository interface {
	Save(ctx context.Context, token *ConfirmToken) error
	FindByUserAndKey(ctx context.Context, userID uuid.UUID, key string) (*ConfirmToken, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ContactRepository stores delivery contacts scoped to their owner.
type ContactRepository interface {
	Save(ctx context.Context, contact *Contact) error
	FindByID(ctx context.Context, id uuid.UUID) (*Contact, error)
	FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*Contact, error)
	FindAllForUser(ctx context.Context, userID uuid.UUID) ([]*Contact, error)
	CountForUser(ctx context.Context, userID uuid.UUID) (int64, error)
	// DeleteForUser removes the given contacts if they belong to userID
	// and returns how many rows were deleted.
	DeleteForUser(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error)
}
