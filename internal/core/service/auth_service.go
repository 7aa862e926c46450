package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/addisco/consulting-api/internal/core/domain"
	"github.com/addisco/consulting-api/internal/core/ports"
)

// AuthService implements registration, login and credential self-service.
type AuthService struct {
	repo   ports.UserRepository
	tokens ports.TokenService
	logger zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, tokens ports.TokenService, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, logger: logger}
}

// Register creates a client account. The role is forced to client no matter
// what the transport layer received.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, string, error) {
	email := domain.NormalizeEmail(input.Email)

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         input.Name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleClient,
		Organization: input.Organization,
		Phone:        input.Phone,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(ports.Identity{UserID: created.ID, Email: created.Email, Role: created.Role})
	if err != nil {
		return nil, "", err
	}

	s.logger.Info().Str("email", created.Email).Msg("user registered")
	return created, token, nil
}

// Login authenticates by email and password. Unknown email and wrong password
// return the same error so accounts cannot be enumerated.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.repo.FindByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !user.IsActive {
		return nil, "", domain.ErrAccountDisabled
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	if err := s.repo.TouchLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn().Err(err).Str("email", user.Email).Msg("failed to record last login")
	}
	now := time.Now().UTC()
	user.LastLogin = &now

	token, err := s.tokens.Issue(ports.Identity{UserID: user.ID, Email: user.Email, Role: user.Role})
	if err != nil {
		return nil, "", err
	}

	s.logger.Info().Str("email", user.Email).Str("role", user.Role).Msg("user logged in")
	return user, token, nil
}

func (s *AuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.FindByID(ctx, userID)
}

// UpdateProfile applies the provided fields and leaves omitted ones alone.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, input ports.ProfileUpdateInput) (*domain.User, error) {
	var update ports.UserUpdate
	if input.Name != "" {
		update.Name = &input.Name
	}
	if input.Organization != "" {
		update.Organization = &input.Organization
	}
	if input.Phone != "" {
		update.Phone = &input.Phone
	}
	return s.repo.Update(ctx, userID, update)
}

// ChangePassword verifies the current password before re-hashing and storing
// the new one. Existing tokens stay valid until they expire.
func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.repo.SetPassword(ctx, userID, string(hash)); err != nil {
		return err
	}

	s.logger.Info().Str("email", user.Email).Msg("password changed")
	return nil
}

// Logout only records the sign-out. Tokens are stateless, so the session ends
// when the client discards the token.
func (s *AuthService) Logout(_ context.Context, identity ports.Identity) {
	s.logger.Info().Str("email", identity.Email).Msg("user logged out")
}
