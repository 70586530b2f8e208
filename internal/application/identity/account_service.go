package identity

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/infrastructure/auth"
)

// ConfirmationMailer delivers the email confirmation key. Delivery is
// best effort: the account service logs failures but never fails the
// operation over them.
type ConfirmationMailer interface {
	SendConfirmation(ctx context.Context, email, name, key string) error
}

// AccountService handles registration, confirmation and authentication
type AccountService struct {
	userRepo   identity.UserRepository
	tokenRepo  identity.ConfirmTokenRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	mailer     ConfirmationMailer
	logger     *zap.Logger
}

// NewAccountService creates a new account service
func NewAccountService(
	userRepo identity.UserRepository,
	tokenRepo identity.ConfirmTokenRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	mailer ConfirmationMailer,
	logger *zap.Logger,
) *AccountService {
	return &AccountService{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		mailer:     mailer,
		logger:     logger,
	}
}

// Register creates an inactive account and emails a confirmation key.
func (s *AccountService) Register(ctx context.Context, input RegisterInput) (*RegisterResult, error) {
	user, err := identity.NewUser(input.Email, input.Password, input.Role)
	if err != nil {
		return nil, err
	}
	user.FirstName = input.FirstName
	user.LastName = input.LastName
	user.Company = input.Company
	user.Position = input.Position

	exists, err := s.userRepo.ExistsByEmail(ctx, user.Email)
	if err != nil {
		s.logger.Error("Failed to check email uniqueness", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "failed to register account")
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "an account with this email already exists")
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to save user", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "failed to register account")
	}

	token, err := identity.NewConfirmToken(user.ID)
	if err != nil {
		s.logger.Error("Failed to generate confirm token", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "failed to register account")
	}
	if err := s.tokenRepo.Save(ctx, token); err != nil {
		s.logger.Error("Failed to save confirm token", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "failed to register account")
	}

	if err := s.mailer.SendConfirmation(ctx, user.Email, user.FullName(), token.Key); err != nil {
		s.logger.Warn("Failed to send confirmation email",
			zap.String("email", user.Email),
			zap.Error(err))
	}

	s.logger.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)))

	return &RegisterResult{UserID: user.ID, Email: user.Email}, nil
}

// Confirm activates the account matching the email and confirmation key.
func (s *AccountService) Confirm(ctx context.Context, input ConfirmInput) error {
	user, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		return shared.NewDomainError("INVALID_CONFIRM_TOKEN", "invalid email or confirmation key")
	}

	token, err := s.tokenRepo.FindByUserAndKey(ctx, user.ID, input.Key)
	if err != nil {
		return shared.NewDomainError("INVALID_CONFIRM_TOKEN", "invalid email or confirmation key")
	}

	user.Confirm()
	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to activate user", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "failed to confirm account")
	}

	if err := s.tokenRepo.Delete(ctx, token.ID); err != nil {
		// The account is active either way; a leftover key is harmless.
		s.logger.Warn("Failed to delete confirm token", zap.Error(err))
	}

	s.logger.Info("Account confirmed", zap.String("user_id", user.ID.String()))
	return nil
}

// Login authenticates a user and returns an access token. Bad
// credentials yield the same generic error as an unknown email.
func (s *AccountService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		s.logger.Warn("Login for unknown email", zap.String("email", input.Email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "invalid email or password")
	}

	if !user.VerifyPassword(input.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("user_id", user.ID.String()))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "invalid email or password")
	}

	if !user.CanLogin() {
		return nil, shared.NewDomainError("ACCOUNT_INACTIVE", "account is not confirmed yet")
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		s.logger.Error("Failed to generate token", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "failed to generate authentication token")
	}

	s.logger.Info("User logged in", zap.String("user_id", user.ID.String()))

	return &LoginResult{
		AccessToken: token.AccessToken,
		ExpiresAt:   token.ExpiresAt,
		TokenType:   token.TokenType,
		User:        userInfo(user),
	}, nil
}

// Logout blacklists the token until its natural expiry.
func (s *AccountService) Logout(ctx context.Context, claims *auth.Claims) error {
	ttl := claims.GetRemainingTTL()
	if ttl <= 0 {
		return nil
	}
	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, ttl); err != nil {
		s.logger.Error("Failed to blacklist token", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "failed to log out")
	}
	s.logger.Info("User logged out", zap.String("user_id", claims.UserID))
	return nil
}

// GetDetails returns the caller's own account profile.
func (s *AccountService) GetDetails(ctx context.Context, userID uuid.UUID) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	info := userInfo(user)
	return &info, nil
}

// UpdateDetails applies a partial profile update. A password change
// goes through the aggregate so the policy check and re-hash apply.
func (s *AccountService) UpdateDetails(ctx context.Context, input UpdateDetailsInput) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Company != nil {
		user.Company = *input.Company
	}
	if input.Position != nil {
		user.Position = *input.Position
	}
	if input.Password != nil {
		if err := user.SetPassword(*input.Password); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to update user", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "failed to update account")
	}

	info := userInfo(user)
	return &info, nil
}
