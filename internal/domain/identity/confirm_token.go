package identity

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/google/uuid"

	"github.com/marketplace/backend/internal/domain/shared"
)

// ConfirmToken is a single-use email confirmation key. It is created at
// registration, mailed to the user and deleted once redeemed.
type ConfirmToken struct {
	shared.BaseEntity
	UserID uuid.UUID `gorm:"type:uuid;index;not null"`
	Key    string    `gorm:"size:64;uniqueIndex;not null"`
}

// NewConfirmToken generates a fresh token for the user.
func NewConfirmToken(userID uuid.UUID) (*ConfirmToken, error) {
	key, err := generateKey()
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_GENERATION_ERROR", "failed to generate confirmation key")
	}
	return &ConfirmToken{UserID: userID, Key: key}, nil
}

func generateKey() (string, error) {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
