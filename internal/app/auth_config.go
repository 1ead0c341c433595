package app

import (
	"github.com/hardik88t/projman/internal/auth"
	"github.com/hardik88t/projman/internal/middleware"
)

// TokenServiceConfig converts AuthConfig into the parameters expected by the
// session token service.
func (c AuthConfig) TokenServiceConfig() auth.TokenConfig {
	ttl := c.JWT.TTL
	if ttl <= 0 {
		ttl = auth.DefaultSessionTokenTTL
	}

	return auth.TokenConfig{
		Secret:          c.JWT.Secret,
		Issuer:          c.JWT.Issuer,
		SessionTokenTTL: ttl,
	}
}

// OpaqueTokenConfig converts AuthConfig into side-channel token parameters.
func (c AuthConfig) OpaqueTokenConfig() auth.OpaqueTokenConfig {
	return auth.OpaqueTokenConfig{
		ResetTTL:        c.Tokens.ResetTTL,
		VerificationTTL: c.Tokens.VerificationTTL,
	}
}

// GateConfig converts the gate settings into the middleware representation.
func (c AuthConfig) GateConfig() middleware.GateConfig {
	return middleware.GateConfig{
		LoginPath:             c.Gate.LoginPath,
		AuthenticatedHome:     c.Gate.AuthenticatedHome,
		RedirectAuthenticated: c.Gate.RedirectAuthenticated,
	}
}

// RouteClassifier builds the route classifier from the configured prefix
// tables. Empty tables fall back to the built-in defaults.
func (c AuthConfig) RouteClassifier() *middleware.RouteClassifier {
	return middleware.NewRouteClassifier(c.Gate.ProtectedPrefixes, c.Gate.AuthPrefixes)
}
