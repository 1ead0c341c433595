package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTokenTTL defines the fallback validity period for session tokens.
const DefaultSessionTokenTTL = 7 * 24 * time.Hour

// ErrTokenInvalid is the single failure result of token verification. Parse
// errors, signature mismatches and expiry all collapse into it so callers
// cannot tell (and cannot leak) which check failed.
var ErrTokenInvalid = errors.New("auth: invalid token")

// TokenConfig bundles the configuration required to build a TokenService.
type TokenConfig struct {
	Secret          string
	Issuer          string
	SessionTokenTTL time.Duration
	Clock           func() time.Time
}

// Claims represents the custom claims embedded in issued session tokens.
type Claims struct {
	UserID string `json:"uid"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies stateless signed session tokens. There is
// no server-side revocation list; logout is client-side token discard.
type TokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService constructs a TokenService from the provided configuration.
func NewTokenService(cfg TokenConfig) (*TokenService, error) {
	if cfg.Secret == "" {
		return nil, errors.New("auth: token secret must be provided")
	}

	ttl := cfg.SessionTokenTTL
	if ttl <= 0 {
		ttl = DefaultSessionTokenTTL
	}

	now := time.Now
	if cfg.Clock != nil {
		now = cfg.Clock
	}

	return &TokenService{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
		ttl:    ttl,
		now:    now,
	}, nil
}

// TTL reports the configured session token lifetime, used to align the
// auth cookie max-age with token expiry.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue signs a session token carrying the user's identity.
func (s *TokenService) Issue(userID, email string) (string, error) {
	if userID == "" {
		return "", errors.New("auth: user id is required")
	}

	now := s.now()
	claims := &Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    s.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}

	return signed, nil
}

// Verify parses and validates a signed session token, returning the claims
// only when signature, expiry and issuer all check out. Every failure mode
// returns ErrTokenInvalid.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrTokenInvalid
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)

	var claims Claims
	_, err := parser.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, ErrTokenInvalid
	}

	if s.issuer != "" && claims.Issuer != s.issuer {
		return nil, ErrTokenInvalid
	}
	if claims.UserID == "" {
		return nil, ErrTokenInvalid
	}

	return &claims, nil
}
