package identity

import (
	"strings"

	"github.com/google/uuid"

	"github.com/marketplace/backend/internal/domain/shared"
)

// Contact is a delivery address plus phone number owned by a user.
// A user keeps several of them and picks one when placing an order.
type Contact struct {
	shared.BaseEntity
	UserID    uuid.UUID `gorm:"type:uuid;index;not null"`
	City      string    `gorm:"size:50;not null"`
	Street    string    `gorm:"size:100;not null"`
	House     string    `gorm:"size:15"`
	Structure string    `gorm:"size:15"`
	Building  string    `gorm:"size:15"`
	Apartment string    `gorm:"size:15"`
	Phone     string    `gorm:"size:20;not null"`
}

// MaxContactsPerUser caps the address book size.
const MaxContactsPerUser = 5

// NewContact validates the required fields and builds a contact.
func NewContact(userID uuid.UUID, city, street, phone string) (*Contact, error) {
	city = strings.TrimSpace(city)
	street = strings.TrimSpace(street)
	phone = strings.TrimSpace(phone)

	if city == "" {
		return nil, shared.NewDomainError("INVALID_CONTACT", "city is required")
	}
	if street == "" {
		return nil, shared.NewDomainError("INVALID_CONTACT", "street is required")
	}
	if phone == "" {
		return nil, shared.NewDomainError("INVALID_CONTACT", "phone is required")
	}

	return &Contact{
		UserID: userID,
		City:   city,
		Street: street,
		Phone:  phone,
	}, nil
}

// Address renders the contact as a single postal line.
func (c *Contact) Address() string {
	parts := []string{c.City, c.Street}
	if c.House != "" {
		parts = append(parts, "house "+c.House)
	}
	if c.Structure != "" {
		parts = append(parts, "structure "+c.Structure)
	}
	if c.Building != "" {
		parts = append(parts, "building "+c.Building)
	}
	if c.Apartment != "" {
		parts = append(parts, "apartment "+c.Apartment)
	}
	return strings.Join(parts, ", ")
}
