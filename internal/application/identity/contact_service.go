package identity

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/domain/shared"
)

// ContactService manages a user's delivery address book
type ContactService struct {
	contactRepo identity.ContactRepository
	logger      *zap.Logger
}

// NewContactService creates a new contact service
func NewContactService(contactRepo identity.ContactRepository, logger *zap.Logger) *ContactService {
	return &ContactService{contactRepo: contactRepo, logger: logger}
}

// List returns all contacts owned by the user.
func (s *ContactService) List(ctx context.Context, userID uuid.UUID) ([]*identity.Contact, error) {
	contacts, err := s.contactRepo.FindAllForUser(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to list contacts", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "failed to list contacts")
	}
	return contacts, nil
}

// Create adds a contact, capped at MaxContactsPerUser per account.
func (s *ContactService) Create(ctx context.Context, input CreateContactInput) (*identity.Contact, error) {
	count, err := s.contactRepo.CountForUser(ctx, input.UserID)
	if err != nil {
		s.logger.Error("Failed to count contacts", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "failed to create contact")
	}
	if count >= identity.MaxContactsPerUser {
		return nil, shared.NewDomainErrorf("CONTACT_LIMIT",
			"cannot keep more than %d contacts", identity.MaxContactsPerUser)
	}

	contact, err := identity.NewContact(input.UserID, input.City, input.Street, input.Phone)
	if err != nil {
		return nil, err
	}
	contact.House = input.House
	contact.Structure = input.Structure
	contact.Building = input.Building
	contact.Apartment = input.Apartment

	if err := s.contactRepo.Save(ctx, contact); err != nil {
		s.logger.Error("Failed to save contact", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "failed to create contact")
	}
	return contact, nil
}

// Update applies a partial change to a contact the user owns.
func (s *ContactService) Update(ctx context.Context, input UpdateContactInput) (*identity.Contact, error) {
	contact, err := s.contactRepo.FindByIDForUser(ctx, input.ContactID, input.UserID)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	if input.City != nil {
		contact.City = *input.City
	}
	if input.Street != nil {
		contact.Street = *input.Street
	}
	if input.House != nil {
		contact.House = *input.House
	}
	if input.Structure != nil {
		contact.Structure = *input.Structure
	}
	if input.Building != nil {
		contact.Building = *input.Building
	}
	if input.Apartment != nil {
		contact.Apartment = *input.Apartment
	}
	if input.Phone != nil {
		contact.Phone = *input.Phone
	}

	if contact.City == "" || contact.Street == "" || contact.Phone == "" {
		return nil, shared.NewDomainError("INVALID_CONTACT", "city, street and phone cannot be cleared")
	}

	if err := s.contactRepo.Save(ctx, contact); err != nil {
		s.logger.Error("Failed to update contact", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "failed to update contact")
	}
	return contact, nil
}

// Delete removes the given contact ids if they belong to the user.
// Foreign ids are simply not matched; the count reflects actual rows.
func (s *ContactService) Delete(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, shared.NewDomainError("INVALID_INPUT", "no contact ids given")
	}
	deleted, err := s.contactRepo.DeleteForUser(ctx, userID, ids)
	if err != nil {
		s.logger.Error("Failed to delete contacts", zap.Error(err))
		return 0, shared.NewDomainError("INTERNAL_ERROR", "failed to delete contacts")
	}
	return deleted, nil
}
