package ports

import (
	"context"

	"github.com/addisco/consulting-api/internal/core/domain"
)

// RegisterInput carries a self-service registration. The caller cannot choose
// a role; registration always produces a client account.
type RegisterInput struct {
	Name         string
	Email        string
	Password     string
	Organization string
	Phone        string
}

// ProfileUpdateInput is the self-service profile update.
type ProfileUpdateInput struct {
	Name         string
	Organization string
	Phone        string
}

// AuthService implements the identity and credential contract: registration,
// login, profile self-service, and password changes.
type AuthService interface {
	// Register creates a client account and returns it with a session token.
	// Returns domain.ErrEmailTaken when the normalized email is already in use.
	Register(ctx context.Context, input RegisterInput) (*domain.User, string, error)
	// Login authenticates by email/password, touches last-login, and returns
	// the user with a fresh token. Unknown email and wrong password are
	// indistinguishable (domain.ErrInvalidCredentials); a disabled account
	// returns domain.ErrAccountDisabled even with the correct password.
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	Me(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, input ProfileUpdateInput) (*domain.User, error)
	// ChangePassword verifies currentPassword before storing a new hash.
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	// Logout records the sign-out. Tokens are stateless and stay valid until
	// expiry; discarding the token is the client's job.
	Logout(ctx context.Context, identity Identity)
}
