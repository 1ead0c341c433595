package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	iauth "github.com/hardik88t/projman/internal/auth"
	"github.com/hardik88t/projman/internal/models"
	"github.com/hardik88t/projman/pkg/crypto"
	"github.com/hardik88t/projman/pkg/logger"
	"github.com/hardik88t/projman/pkg/mail"
	"github.com/hardik88t/projman/pkg/metrics"
)

// ErrResetInvalid covers unknown, expired and already consumed reset tokens.
var ErrResetInvalid = errors.New("password reset: invalid token")

// PasswordResetService implements the forgot-password and reset-password
// flows. Requests never reveal whether an email is registered.
type PasswordResetService struct {
	db      *gorm.DB
	opaque  *iauth.OpaqueTokens
	mailer  mail.Mailer
	baseURL string
}

// NewPasswordResetService constructs the service. A nil mailer disables
// delivery; tokens are still minted so the flow remains testable.
func NewPasswordResetService(db *gorm.DB, opaque *iauth.OpaqueTokens, mailer mail.Mailer, baseURL string) (*PasswordResetService, error) {
	if db == nil {
		return nil, errors.New("password reset service: db is required")
	}
	if opaque == nil {
		return nil, errors.New("password reset service: opaque tokens are required")
	}
	return &PasswordResetService{
		db:      db,
		opaque:  opaque,
		mailer:  mailer,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// RequestReset mints a reset token for the account behind email, if any, and
// dispatches the reset email best-effort. The return is identical for known
// and unknown addresses; the plaintext token comes back only for a known one
// so in-process callers (tests, CLIs) can complete the flow.
func (s *PasswordResetService) RequestReset(ctx context.Context, email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", nil
	}

	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("password reset service: lookup user: %w", err)
	}

	token, err := s.opaque.Generate()
	if err != nil {
		return "", fmt.Errorf("password reset service: generate token: %w", err)
	}

	record := models.PasswordResetToken{
		UserID:    user.ID,
		TokenHash: iauth.HashToken(token),
		ExpiresAt: s.opaque.ExpiryFor(iauth.TokenKindReset),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND used_at IS NULL", user.ID).
			Delete(&models.PasswordResetToken{}).Error; err != nil {
			return fmt.Errorf("cleanup existing: %w", err)
		}
		return tx.Create(&record).Error
	})
	if err != nil {
		return "", fmt.Errorf("password reset service: store token: %w", err)
	}

	s.sendResetEmail(ctx, user.Email, token)

	return token, nil
}

// Reset consumes a reset token and replaces the user's password hash. The
// token is single-use; concurrent attempts see ErrResetInvalid.
func (s *PasswordResetService) Reset(ctx context.Context, token, newPassword string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrResetInvalid
	}
	if newPassword == "" {
		return errors.New("password reset service: new password is required")
	}

	hash, err := crypto.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("password reset service: hash password: %w", err)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record models.PasswordResetToken
		if err := tx.Where("token_hash = ?", iauth.HashToken(token)).
			First(&record).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrResetInvalid
			}
			return fmt.Errorf("find token: %w", err)
		}

		now := tx.NowFunc()
		if record.UsedAt != nil || record.ExpiresAt.Before(now) {
			return ErrResetInvalid
		}

		// conditional update guards against concurrent consumption
		res := tx.Model(&models.PasswordResetToken{}).
			Where("id = ? AND used_at IS NULL", record.ID).
			Update("used_at", now)
		if res.Error != nil {
			return fmt.Errorf("mark used: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrResetInvalid
		}

		if err := tx.Model(&models.User{}).
			Where("id = ?", record.UserID).
			Update("password", hash).Error; err != nil {
			return fmt.Errorf("update password: %w", err)
		}

		// invalidate any other outstanding tokens for the account
		return tx.Where("user_id = ? AND used_at IS NULL", record.UserID).
			Delete(&models.PasswordResetToken{}).Error
	})
	if err != nil {
		if errors.Is(err, ErrResetInvalid) {
			return ErrResetInvalid
		}
		return fmt.Errorf("password reset service: %w", err)
	}

	return nil
}

func (s *PasswordResetService) sendResetEmail(ctx context.Context, email, token string) {
	if s.mailer == nil {
		return
	}

	msg := mail.Message{
		To:      email,
		Subject: "Reset your projman password",
		Body: fmt.Sprintf("A password reset was requested for your account.\n\n"+
			"Visit the link below within one hour to choose a new password:\n%s\n\n"+
			"If you did not request a reset, you can ignore this message.\n",
			fmt.Sprintf("%s/reset-password?token=%s", s.baseURL, token)),
	}

	switch err := s.mailer.Send(ctx, msg); {
	case err == nil:
		metrics.TokenEmails.WithLabelValues("reset", "sent").Inc()
	case errors.Is(err, mail.ErrDisabled):
		metrics.TokenEmails.WithLabelValues("reset", "disabled").Inc()
	default:
		metrics.TokenEmails.WithLabelValues("reset", "failed").Inc()
		logger.WithModule("mail").Warn("reset email failed",
			zap.String("email", email),
			zap.Error(err),
		)
	}
}
