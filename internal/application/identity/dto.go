package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/marketplace/backend/internal/domain/identity"
)

// RegisterInput contains the input for account registration
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Company   string
	Position  string
	Role      identity.UserRole
}

// RegisterResult contains the result of a successful registration
type RegisterResult struct {
	UserID uuid.UUID
	Email  string
}

// ConfirmInput contains the input for email confirmation
type ConfirmInput struct {
	Email string
	Key   string
}

// LoginInput contains the input for user login
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult contains the issued token and basic account info
type LoginResult struct {
	AccessToken string
	ExpiresAt   time.Time
	TokenType   string
	User        UserInfo
}

// UserInfo contains account fields safe to return to the client
type UserInfo struct {
	ID        uuid.UUID
	Email     string
	FirstName string
	LastName  string
	Company   string
	Position  string
	Role      identity.UserRole
}

// UpdateDetailsInput contains the partial update for account details.
// Nil fields are left untouched.
type UpdateDetailsInput struct {
	UserID    uuid.UUID
	FirstName *string
	LastName  *string
	Company   *string
	Position  *string
	Password  *string
}

// CreateContactInput contains the input for adding a delivery contact
type CreateContactInput struct {
	UserID    uuid.UUID
	City      string
	Street    string
	House     string
	Structure string
	Building  string
	Apartment string
	Phone     string
}

// UpdateContactInput contains the partial update for a contact.
// Nil fields are left untouched.
type UpdateContactInput struct {
	UserID    uuid.UUID
	ContactID uuid.UUID
	City      *string
	Street    *string
	House     *string
	Structure *string
	Building  *string
	Apartment *string
	Phone     *string
}

func userInfo(user *identity.User) UserInfo {
	return UserInfo{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Company:   user.Company,
		Position:  user.Position,
		Role:      user.Role,
	}
}
