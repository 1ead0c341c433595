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
	"github.com/hardik88t/projman/pkg/logger"
	"github.com/hardik88t/projman/pkg/mail"
	"github.com/hardik88t/projman/pkg/metrics"
)

var (
	// ErrVerificationInvalid covers unknown, expired and already consumed
	// verification tokens alike.
	ErrVerificationInvalid = errors.New("email verification: invalid token")
)

// EmailVerificationService issues and consumes email verification tokens for
// new registrations. Only token digests are stored.
type EmailVerificationService struct {
	db      *gorm.DB
	opaque  *iauth.OpaqueTokens
	mailer  mail.Mailer
	baseURL string
}

// NewEmailVerificationService constructs the service. The mailer may be nil,
// in which case tokens are still issued but no email is dispatched.
func NewEmailVerificationService(db *gorm.DB, opaque *iauth.OpaqueTokens, mailer mail.Mailer, baseURL string) (*EmailVerificationService, error) {
	if db == nil {
		return nil, errors.New("email verification service: db is required")
	}
	if opaque == nil {
		return nil, errors.New("email verification service: opaque tokens are required")
	}
	return &EmailVerificationService{
		db:      db,
		opaque:  opaque,
		mailer:  mailer,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// CreateToken issues a fresh verification token for the user, replacing any
// outstanding one, and dispatches the verification email best-effort. The
// plaintext token is returned so tests and local setups can consume it
// without a mailbox.
func (s *EmailVerificationService) CreateToken(ctx context.Context, userID, email string) (string, error) {
	userID = strings.TrimSpace(userID)
	email = strings.ToLower(strings.TrimSpace(email))
	if userID == "" {
		return "", errors.New("email verification service: user id is required")
	}
	if email == "" {
		return "", errors.New("email verification service: email is required")
	}

	token, err := s.opaque.Generate()
	if err != nil {
		return "", fmt.Errorf("email verification service: generate token: %w", err)
	}

	verification := models.EmailVerification{
		UserID:    userID,
		TokenHash: iauth.HashToken(token),
		ExpiresAt: s.opaque.ExpiryFor(iauth.TokenKindVerification),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND verified_at IS NULL", userID).
			Delete(&models.EmailVerification{}).Error; err != nil {
			return fmt.Errorf("cleanup existing: %w", err)
		}
		return tx.Create(&verification).Error
	})
	if err != nil {
		return "", fmt.Errorf("email verification service: store token: %w", err)
	}

	s.sendVerificationEmail(ctx, email, token)

	return token, nil
}

// Consume validates a verification token, marks it used and flips the user's
// EmailVerified flag. All failure modes collapse into ErrVerificationInvalid.
func (s *EmailVerificationService) Consume(ctx context.Context, token string) (*models.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrVerificationInvalid
	}

	var user models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var verification models.EmailVerification
		if err := tx.Where("token_hash = ?", iauth.HashToken(token)).
			First(&verification).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrVerificationInvalid
			}
			return fmt.Errorf("find token: %w", err)
		}

		now := tx.NowFunc()
		if verification.VerifiedAt != nil || verification.ExpiresAt.Before(now) {
			return ErrVerificationInvalid
		}

		// conditional update guards against concurrent consumption
		res := tx.Model(&models.EmailVerification{}).
			Where("id = ? AND verified_at IS NULL", verification.ID).
			Update("verified_at", now)
		if res.Error != nil {
			return fmt.Errorf("mark verified: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrVerificationInvalid
		}

		if err := tx.Model(&models.User{}).
			Where("id = ?", verification.UserID).
			Update("email_verified", true).Error; err != nil {
			return fmt.Errorf("mark user verified: %w", err)
		}

		return tx.First(&user, "id = ?", verification.UserID).Error
	})
	if err != nil {
		if errors.Is(err, ErrVerificationInvalid) {
			return nil, ErrVerificationInvalid
		}
		return nil, fmt.Errorf("email verification service: %w", err)
	}

	return &user, nil
}

func (s *EmailVerificationService) sendVerificationEmail(ctx context.Context, email, token string) {
	if s.mailer == nil {
		return
	}

	msg := mail.Message{
		To:      email,
		Subject: "Verify your projman account",
		Body: fmt.Sprintf("Welcome to projman!\n\n"+
			"Please confirm your email address by visiting the link below within 24 hours:\n%s\n\n"+
			"If you did not create an account, you can ignore this message.\n",
			s.link("/verify-email", token)),
	}

	switch err := s.mailer.Send(ctx, msg); {
	case err == nil:
		metrics.TokenEmails.WithLabelValues("verification", "sent").Inc()
	case errors.Is(err, mail.ErrDisabled):
		metrics.TokenEmails.WithLabelValues("verification", "disabled").Inc()
	default:
		metrics.TokenEmails.WithLabelValues("verification", "failed").Inc()
		logger.WithModule("mail").Warn("verification email failed",
			zap.String("email", email),
			zap.Error(err),
		)
	}
}

func (s *EmailVerificationService) link(path, token string) string {
	return fmt.Sprintf("%s%s?token=%s", s.baseURL, path, token)
}
