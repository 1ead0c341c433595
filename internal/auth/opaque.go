package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/hardik88t/projman/pkg/crypto"
)

// Opaque token kinds. These tokens are random strings delivered out-of-band
// (email links) and are unrelated to the signed session token mechanism.
const (
	TokenKindVerification = "verification"
	TokenKindReset        = "reset"
)

const (
	// opaqueTokenBytes is the entropy of generated tokens. 32 bytes keeps
	// them unguessable while staying short enough for email links.
	opaqueTokenBytes = 32

	// DefaultResetTokenTTL bounds the password reset window.
	DefaultResetTokenTTL = time.Hour
	// DefaultVerificationTokenTTL bounds email verification links.
	DefaultVerificationTokenTTL = 24 * time.Hour
)

// OpaqueTokenConfig carries the per-kind lifetimes. Verification expiry is an
// explicit configuration value rather than an implicit "never".
type OpaqueTokenConfig struct {
	ResetTTL        time.Duration
	VerificationTTL time.Duration
	Clock           func() time.Time
}

// OpaqueTokens generates side-channel tokens and computes their expiries.
type OpaqueTokens struct {
	resetTTL        time.Duration
	verificationTTL time.Duration
	now             func() time.Time
}

// NewOpaqueTokens applies defaults for any unset lifetime.
func NewOpaqueTokens(cfg OpaqueTokenConfig) *OpaqueTokens {
	resetTTL := cfg.ResetTTL
	if resetTTL <= 0 {
		resetTTL = DefaultResetTokenTTL
	}
	verificationTTL := cfg.VerificationTTL
	if verificationTTL <= 0 {
		verificationTTL = DefaultVerificationTokenTTL
	}
	now := time.Now
	if cfg.Clock != nil {
		now = cfg.Clock
	}
	return &OpaqueTokens{
		resetTTL:        resetTTL,
		verificationTTL: verificationTTL,
		now:             now,
	}
}

// Generate returns a new URL-safe random token.
func (o *OpaqueTokens) Generate() (string, error) {
	return crypto.GenerateToken(opaqueTokenBytes)
}

// ExpiryFor computes the expiry timestamp for a token of the given kind.
// Unknown kinds get the shorter reset window.
func (o *OpaqueTokens) ExpiryFor(kind string) time.Time {
	switch kind {
	case TokenKindVerification:
		return o.now().Add(o.verificationTTL)
	default:
		return o.now().Add(o.resetTTL)
	}
}

// HashToken derives the storage form of an opaque token. Only the digest is
// persisted, so a leaked database cannot be replayed against the consume
// endpoints.
func HashToken(token string) string {
	digest := sha256.Sum256([]byte(token))
	return hex.EncodeToString(digest[:])
}
