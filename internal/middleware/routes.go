package middleware

import "strings"

// RouteClass is the gate's view of a request path.
type RouteClass int

const (
	// RoutePublic routes are reachable regardless of authentication state.
	RoutePublic RouteClass = iota
	// RouteProtected routes require a valid session token.
	RouteProtected
	// RouteAuth routes belong to the login/signup surface. They are always
	// reachable; whether authenticated users are bounced away is policy.
	RouteAuth
)

// RouteClassifier decides the class of each request path from explicit
// prefix allowlists. Keeping classification in one testable place avoids the
// scattered matcher configuration it replaces.
type RouteClassifier struct {
	protected []string
	auth      []string
}

// DefaultProtectedPrefixes gates the app pages and the project APIs.
var DefaultProtectedPrefixes = []string{
	"/dashboard",
	"/manager",
	"/api/projects",
	"/api/project-items",
	"/api/auth/me",
}

// DefaultAuthPrefixes covers the unauthenticated auth surface.
var DefaultAuthPrefixes = []string{
	"/login",
	"/signup",
	"/forgot-password",
	"/reset-password",
	"/verify-email",
	"/api/auth",
}

// NewRouteClassifier builds a classifier; empty slices fall back to the
// defaults. Protected prefixes win over auth prefixes.
func NewRouteClassifier(protected, auth []string) *RouteClassifier {
	if len(protected) == 0 {
		protected = DefaultProtectedPrefixes
	}
	if len(auth) == 0 {
		auth = DefaultAuthPrefixes
	}
	return &RouteClassifier{
		protected: normalizePrefixes(protected),
		auth:      normalizePrefixes(auth),
	}
}

// Classify maps a request path to its route class.
func (rc *RouteClassifier) Classify(path string) RouteClass {
	if matchesAny(path, rc.protected) {
		return RouteProtected
	}
	if matchesAny(path, rc.auth) {
		return RouteAuth
	}
	return RoutePublic
}

func normalizePrefixes(prefixes []string) []string {
	out := make([]string, 0, len(prefixes))
	for _, p := range prefixes {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !strings.HasPrefix(p, "/") {
			p = "/" + p
		}
		out = append(out, strings.TrimRight(p, "/"))
	}
	return out
}

// matchesAny reports whether path equals a prefix or sits below it. Plain
// HasPrefix would let /dashboardx slip through the /dashboard rule.
func matchesAny(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}
