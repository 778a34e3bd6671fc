package port

import (
	"context"

	"auth-api/app/domain"
)

// IdentityProvider is the capability surface this service needs from the
// external hosted identity provider. Handlers and the role gate depend on
// this interface only, so the concrete driver can be swapped for a fake in
// tests.
//
// Error contract: business rejections wrap domain.ErrProviderRejected,
// unknown or inactive tokens wrap domain.ErrInvalidToken, transport failures
// wrap domain.ErrProviderUnavailable.
type IdentityProvider interface {
	// SignUp creates a new account from email and password.
	SignUp(ctx context.Context, email, password string) (*domain.AuthResult, error)

	// SignIn authenticates an existing account with email and password.
	SignIn(ctx context.Context, email, password string) (*domain.AuthResult, error)

	// RefreshSession exchanges a refresh credential for a renewed session.
	RefreshSession(ctx context.Context, refreshToken string) (*domain.AuthResult, error)

	// ResolveIdentity maps a bearer access token to the identity it belongs
	// to. Every call round-trips to the provider; nothing is cached.
	ResolveIdentity(ctx context.Context, accessToken string) (*domain.Identity, error)

	// UpdateRole sets the role metadata on the target identity through the
	// provider's admin interface and returns the updated identity.
	UpdateRole(ctx context.Context, userID string, role domain.Role) (*domain.Identity, error)
}
