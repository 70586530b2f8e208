package identity

import (
	"regexp"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/marketplace/backend/internal/domain/shared"
)

// UserRole distinguishes buyers from shop owners.
type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleSupplier UserRole = "supplier"
)

func (r UserRole) IsValid() bool {
	return r == RoleCustomer || r == RoleSupplier
}

// Password cost for bcrypt
const bcryptCost = 12

// User is the aggregate root for account operations. Accounts are
// identified by email and stay inactive until the address is confirmed.
type User struct {
	shared.BaseEntity
	Email        string   `gorm:"size:200;uniqueIndex;not null"`
	PasswordHash string   `gorm:"size:100;not null"`
	FirstName    string   `gorm:"size:100"`
	LastName     string   `gorm:"size:100"`
	Company      string   `gorm:"size:200"`
	Position     string   `gorm:"size:100"`
	Role         UserRole `gorm:"size:20;not null;default:customer"`
	IsActive     bool     `gorm:"not null;default:false"`
}

// NewUser creates an unconfirmed user with a hashed password.
func NewUser(email, password string, role UserRole) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}
	if role == "" {
		role = RoleCustomer
	}
	if !role.IsValid() {
		return nil, shared.NewDomainErrorf("INVALID_ROLE", "unknown role %q", role)
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "failed to hash password")
	}

	return &User{
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}, nil
}

// Confirm activates the account after the email address was verified.
func (u *User) Confirm() {
	u.IsActive = true
	u.UpdatedAt = time.Now()
}

// SetPassword replaces the password hash.
func (u *User) SetPassword(password string) error {
	if err := ValidatePassword(password); err != nil {
		return err
	}
	hash, err := hashPassword(password)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "failed to hash password")
	}
	u.PasswordHash = hash
	u.UpdatedAt = time.Now()
	return nil
}

// VerifyPassword reports whether the plaintext password matches the hash.
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// CanLogin reports whether the account may obtain a token.
func (u *User) CanLogin() bool {
	return u.IsActive
}

// IsSupplier reports whether the user may manage a shop.
func (u *User) IsSupplier() bool {
	return u.Role == RoleSupplier
}

// FullName joins the optional name parts for display and email salutations.
func (u *User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Email
	}
	return name
}

// ValidatePassword enforces the minimum password policy. It is exported
// because the HTTP layer validates before touching the aggregate.
func ValidatePassword(password string) error {
	if password == "" {
		return shared.NewDomainError("INVALID_PASSWORD", "password cannot be empty")
	}
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "password must be at least 8 characters")
	}
	if len(password) > 128 {
		return shared.NewDomainError("INVALID_PASSWORD", "password cannot exceed 128 characters")
	}
	hasLetter := regexp.MustCompile(`[a-zA-Z]`).MatchString(password)
	hasNumber := regexp.MustCompile(`[0-9]`).MatchString(password)
	if !hasLetter || !hasNumber {
		return shared.NewDomainError("INVALID_PASSWORD", "password must contain at least one letter and one number")
	}
	return nil
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func validateEmail(email string) error {
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "email cannot be empty")
	}
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "email cannot exceed 200 characters")
	}
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "invalid email format")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
