package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	iauth "github.com/hardik88t/projman/internal/auth"
	"github.com/hardik88t/projman/pkg/errors"
	"github.com/hardik88t/projman/pkg/response"
)

// Context keys under which the gate publishes the verified identity.
const (
	CtxClaimsKey = "authClaims"
	CtxUserIDKey = "userID"
	CtxEmailKey  = "userEmail"
)

// SessionCookieName transports the session token to browser clients.
const SessionCookieName = "auth-token"

// GateConfig tunes the request gate's redirect policy.
type GateConfig struct {
	// LoginPath is the redirect target for unauthenticated page requests.
	LoginPath string
	// AuthenticatedHome is where authenticated users are sent off auth
	// pages when RedirectAuthenticated is set.
	AuthenticatedHome string
	// RedirectAuthenticated bounces already-authenticated users off auth
	// pages. Off by default; the page may prefer to self-redirect.
	RedirectAuthenticated bool
}

// Gate intercepts every request and enforces the route policy table:
// protected routes require a valid session token, auth and public routes
// pass through. The token comes from the auth cookie when present, falling
// back to an Authorization bearer header. A malformed token is treated
// exactly like a missing one.
//
// The gate only checks structural validity; it attaches the identity to the
// request context and leaves every further decision to handlers.
func Gate(tokens *iauth.TokenService, classifier *RouteClassifier, cfg GateConfig) gin.HandlerFunc {
	loginPath := cfg.LoginPath
	if loginPath == "" {
		loginPath = "/login"
	}
	home := cfg.AuthenticatedHome
	if home == "" {
		home = "/dashboard"
	}

	return func(c *gin.Context) {
		claims := verifiedClaims(c, tokens)
		if claims != nil {
			c.Set(CtxClaimsKey, claims)
			c.Set(CtxUserIDKey, claims.UserID)
			c.Set(CtxEmailKey, claims.Email)
		}

		path := c.Request.URL.Path
		switch classifier.Classify(path) {
		case RouteProtected:
			if claims == nil {
				if isAPIPath(path) {
					response.Error(c, errors.ErrUnauthorized)
				} else {
					redirectToLogin(c, loginPath)
				}
				c.Abort()
				return
			}
		case RouteAuth:
			if claims != nil && cfg.RedirectAuthenticated && !isAPIPath(path) {
				c.Redirect(http.StatusFound, home)
				c.Abort()
				return
			}
		}

		c.Next()
	}
}

// ExtractToken returns the session token presented with the request, cookie
// first, bearer header second.
func ExtractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie != "" {
		return cookie
	}

	authz := c.GetHeader("Authorization")
	if len(authz) >= 8 && strings.EqualFold(authz[:7], "Bearer ") {
		return strings.TrimSpace(authz[7:])
	}

	return ""
}

func verifiedClaims(c *gin.Context, tokens *iauth.TokenService) *iauth.Claims {
	token := ExtractToken(c)
	if token == "" {
		return nil
	}
	claims, err := tokens.Verify(token)
	if err != nil {
		return nil
	}
	return claims
}

func redirectToLogin(c *gin.Context, loginPath string) {
	target := loginPath + "?redirect=" + url.QueryEscape(c.Request.URL.Path)
	c.Redirect(http.StatusFound, target)
}

func isAPIPath(path string) bool {
	return path == "/api" || strings.HasPrefix(path, "/api/")
}
