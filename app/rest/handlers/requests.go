package handlers

// CredentialsRequest is the body for login and register.
type CredentialsRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=32,pw_upper,pw_lower,pw_digit,pw_special"`
}

// RefreshRequest is the body for the token refresh endpoint.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// SetRoleRequest is the body for the role-assignment endpoint. The role
// value is checked against the closed role set by the handler itself, on
// top of the schema's non-empty constraint.
type SetRoleRequest struct {
	UserID string `json:"userId" validate:"required,uuid4"`
	Role   string `json:"role" validate:"required"`
}
