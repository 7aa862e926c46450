package ports

// Identity is the verified subject of a request, as carried in token claims.
type Identity struct {
	UserID string
	Email  string
	Role   string
}

// TokenService issues and verifies signed, time-bounded session tokens.
// There is no revocation: a token stays valid until expiry regardless of
// server-side state changes, and logout is purely client-side.
type TokenService interface {
	Issue(identity Identity) (string, error)
	// Verify returns domain.ErrTokenExpired for a token past its expiry and
	// domain.ErrTokenInvalid for anything malformed, tampered with, or carrying
	// the wrong issuer/audience.
	Verify(token string) (Identity, error)
}
