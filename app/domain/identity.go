package domain

import "time"

// Identity is the projection of a provider-owned user record that this
// service consumes. The provider remains the single source of truth; nothing
// here is persisted locally.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Session carries the tokens issued by the identity provider. It is passed
// through to the caller untouched.
type Session struct {
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token,omitempty"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
}

// AuthResult is what the provider hands back for sign-up, sign-in and
// session refresh.
type AuthResult struct {
	Identity Identity `json:"user"`
	Session  Session  `json:"session"`
}
