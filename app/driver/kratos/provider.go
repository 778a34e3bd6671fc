package kratos

import (
	"context"
	"log/slog"
	"net/http"

	kratosclient "github.com/ory/kratos-client-go"

	"auth-api/app/domain"
	"auth-api/app/port"
)

// Provider implements port.IdentityProvider on top of Ory Kratos. Password
// sign-up and sign-in go through native self-service flows; token resolution
// uses whoami; role metadata lives in metadata_public and is written through
// the admin API.
type Provider struct {
	client *Client
	logger *slog.Logger
}

// NewProvider creates a Kratos-backed identity provider.
func NewProvider(client *Client, logger *slog.Logger) port.IdentityProvider {
	return &Provider{
		client: client,
		logger: logger,
	}
}

// SignUp registers a new account through a native registration flow.
func (p *Provider) SignUp(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	flow, resp, err := p.client.PublicAPI().FrontendAPI.
		CreateNativeRegistrationFlow(ctx).
		Execute()
	if err != nil {
		p.logger.Error("registration flow creation failed", "error", err)
		return nil, classify(err, resp)
	}

	method := kratosclient.UpdateRegistrationFlowWithPasswordMethod{
		Method:   "password",
		Password: password,
		Traits:   map[string]interface{}{"email": email},
	}

	result, resp, err := p.client.PublicAPI().FrontendAPI.
		UpdateRegistrationFlow(ctx).
		Flow(flow.Id).
		UpdateRegistrationFlowBody(
			kratosclient.UpdateRegistrationFlowWithPasswordMethodAsUpdateRegistrationFlowBody(&method),
		).
		Execute()
	if err != nil {
		p.logger.Warn("registration rejected", "flow_id", flow.Id, "error", err)
		return nil, classify(err, resp)
	}

	auth := &domain.AuthResult{
		Identity: identityFromKratos(&result.Identity),
	}
	if result.SessionToken != nil {
		auth.Session.AccessToken = *result.SessionToken
		auth.Session.RefreshToken = *result.SessionToken
	}
	if result.Session != nil && result.Session.ExpiresAt != nil {
		auth.Session.ExpiresAt = result.Session.ExpiresAt
	}

	p.logger.Info("user registered", "user_id", auth.Identity.ID)
	return auth, nil
}

// SignIn authenticates an account through a native login flow.
func (p *Provider) SignIn(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	flow, resp, err := p.client.PublicAPI().FrontendAPI.
		CreateNativeLoginFlow(ctx).
		Execute()
	if err != nil {
		p.logger.Error("login flow creation failed", "error", err)
		return nil, classify(err, resp)
	}

	result, resp, err := p.submitLoginFlow(ctx, flow.Id, email, password, "")
	if err != nil {
		p.logger.Warn("login rejected", "flow_id", flow.Id, "error", err)
		return nil, classify(err, resp)
	}

	return authResultFromLogin(result), nil
}

// RefreshSession renews the session behind the given token. Kratos has no
// separate refresh token; the session token itself is the refresh
// credential. The session is extended through the admin API and the renewed
// expiry returned with the same token.
func (p *Provider) RefreshSession(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	session, resp, err := p.client.PublicAPI().FrontendAPI.
		ToSession(ctx).
		XSessionToken(refreshToken).
		Execute()
	if err != nil {
		p.logger.Warn("refresh token resolution failed", "error", err)
		return nil, classifyToken(err, resp)
	}
	if session.Identity == nil {
		return nil, domain.ErrInvalidToken
	}

	extended, resp, err := p.client.AdminAPI().IdentityAPI.
		ExtendSession(ctx, session.Id).
		Execute()
	if err != nil {
		p.logger.Error("session extension failed", "session_id", session.Id, "error", err)
		return nil, classify(err, resp)
	}

	auth := &domain.AuthResult{
		Identity: identityFromKratos(session.Identity),
		Session: domain.Session{
			AccessToken:  refreshToken,
			RefreshToken: refreshToken,
			ExpiresAt:    extended.ExpiresAt,
		},
	}

	p.logger.Info("session refreshed", "user_id", auth.Identity.ID)
	return auth, nil
}

// ResolveIdentity maps an access token to its identity via whoami.
func (p *Provider) ResolveIdentity(ctx context.Context, accessToken string) (*domain.Identity, error) {
	session, resp, err := p.client.PublicAPI().FrontendAPI.
		ToSession(ctx).
		XSessionToken(accessToken).
		Execute()
	if err != nil {
		return nil, classifyToken(err, resp)
	}

	if session.Active != nil && !*session.Active {
		return nil, domain.ErrInvalidToken
	}
	if session.Identity == nil {
		return nil, domain.ErrInvalidToken
	}

	identity := identityFromKratos(session.Identity)
	return &identity, nil
}

// UpdateRole writes the role into the identity's public metadata through the
// admin API. Existing metadata keys are preserved.
func (p *Provider) UpdateRole(ctx context.Context, userID string, role domain.Role) (*domain.Identity, error) {
	current, resp, err := p.client.AdminAPI().IdentityAPI.
		GetIdentity(ctx, userID).
		Execute()
	if err != nil {
		p.logger.Error("identity lookup failed", "user_id", userID, "error", err)
		return nil, classify(err, resp)
	}

	metadata := map[string]interface{}{}
	if existing, ok := current.MetadataPublic.(map[string]interface{}); ok {
		for k, v := range existing {
			metadata[k] = v
		}
	}
	metadata["role"] = role.String()

	patch := []kratosclient.JsonPatch{
		{
			Op:    "replace",
			Path:  "/metadata_public",
			Value: metadata,
		},
	}

	updated, resp, err := p.client.AdminAPI().IdentityAPI.
		PatchIdentity(ctx, userID).
		JsonPatch(patch).
		Execute()
	if err != nil {
		p.logger.Error("role update failed", "user_id", userID, "role", role, "error", err)
		return nil, classify(err, resp)
	}

	identity := identityFromKratos(updated)
	p.logger.Info("role updated", "user_id", identity.ID, "role", identity.Role)
	return &identity, nil
}

// identityFromKratos projects a Kratos identity into the domain model. A
// missing role in metadata defaults to the user role.
func identityFromKratos(id *kratosclient.Identity) domain.Identity {
	identity := domain.Identity{
		ID:   id.Id,
		Role: domain.DefaultRole,
	}

	if traits, ok := id.Traits.(map[string]interface{}); ok {
		if email, ok := traits["email"].(string); ok {
			identity.Email = email
		}
	}

	if metadata, ok := id.MetadataPublic.(map[string]interface{}); ok {
		if role, ok := metadata["role"].(string); ok && role != "" {
			identity.Role = domain.Role(role)
		}
	}

	return identity
}

func authResultFromLogin(result *kratosclient.SuccessfulNativeLogin) *domain.AuthResult {
	auth := &domain.AuthResult{
		Session: domain.Session{
			ExpiresAt: result.Session.ExpiresAt,
		},
	}
	if result.Session.Identity != nil {
		auth.Identity = identityFromKratos(result.Session.Identity)
	}
	if result.SessionToken != nil {
		auth.Session.AccessToken = *result.SessionToken
		auth.Session.RefreshToken = *result.SessionToken
	}
	return auth
}

func (p *Provider) submitLoginFlow(ctx context.Context, flowID, email, password, sessionToken string) (*kratosclient.SuccessfulNativeLogin, *http.Response, error) {
	method := kratosclient.UpdateLoginFlowWithPasswordMethod{
		Method:     "password",
		Identifier: email,
		Password:   password,
	}

	req := p.client.PublicAPI().FrontendAPI.
		UpdateLoginFlow(ctx).
		Flow(flowID).
		UpdateLoginFlowBody(
			kratosclient.UpdateLoginFlowWithPasswordMethodAsUpdateLoginFlowBody(&method),
		)
	if sessionToken != "" {
		req = req.XSessionToken(sessionToken)
	}

	result, resp, err := req.Execute()
	return result, resp, err
}
