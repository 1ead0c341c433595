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
	"github.com/hardik88t/projman/pkg/metrics"
)

var (
	// ErrInvalidCredentials is the single login failure result. A wrong
	// password and an unknown identifier are indistinguishable to callers.
	ErrInvalidCredentials = errors.New("auth service: invalid credentials")
	// ErrEmailTaken signals a signup against an already registered email.
	ErrEmailTaken = errors.New("auth service: email already registered")
	// ErrUsernameTaken signals a signup against an already taken username.
	ErrUsernameTaken = errors.New("auth service: username already taken")
)

// dummyHash absorbs a bcrypt comparison when the identifier does not match a
// user, keeping the unknown-user and wrong-password paths at similar cost.
// It is a well-formed cost-12 hash that corresponds to no account password.
const dummyHash = "$2a$12$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// RegisterInput carries validated signup fields.
type RegisterInput struct {
	Email    string
	Username string
	Name     string
	Password string
}

// AuthService implements the credential flows: login, signup and the session
// token handshake.
type AuthService struct {
	db           *gorm.DB
	tokens       *iauth.TokenService
	verification *EmailVerificationService
}

// NewAuthService constructs an AuthService. The verification service is
// optional; without it signups simply skip the verification email.
func NewAuthService(db *gorm.DB, tokens *iauth.TokenService, verification *EmailVerificationService) (*AuthService, error) {
	if db == nil {
		return nil, errors.New("auth service: db is required")
	}
	if tokens == nil {
		return nil, errors.New("auth service: token service is required")
	}
	return &AuthService{db: db, tokens: tokens, verification: verification}, nil
}

// Tokens exposes the session token service for cookie lifetime alignment.
func (s *AuthService) Tokens() *iauth.TokenService {
	return s.tokens
}

// Authenticate verifies an email-or-username plus password pair and issues a
// session token. Every failure path returns ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, identifier, password string) (*models.User, string, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		metrics.AuthAttempts.WithLabelValues("failure").Inc()
		return nil, "", ErrInvalidCredentials
	}

	var user models.User
	err := s.db.WithContext(ctx).
		Where("email = ? OR username = ?", strings.ToLower(identifier), identifier).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = crypto.VerifyPassword(dummyHash, password)
			metrics.AuthAttempts.WithLabelValues("failure").Inc()
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("auth service: lookup user: %w", err)
	}

	if !crypto.VerifyPassword(user.Password, password) {
		metrics.AuthAttempts.WithLabelValues("failure").Inc()
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("auth service: issue token: %w", err)
	}

	metrics.AuthAttempts.WithLabelValues("success").Inc()
	return &user, token, nil
}

// Register creates a new account. Duplicate emails and usernames are
// rejected; the verification email is dispatched best-effort after commit.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	username := strings.TrimSpace(input.Username)
	if email == "" {
		return nil, errors.New("auth service: email is required")
	}
	if input.Password == "" {
		return nil, errors.New("auth service: password is required")
	}

	var count int64
	if err := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("auth service: check email: %w", err)
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	if username != "" {
		if err := s.db.WithContext(ctx).
			Model(&models.User{}).
			Where("username = ?", username).
			Count(&count).Error; err != nil {
			return nil, fmt.Errorf("auth service: check username: %w", err)
		}
		if count > 0 {
			return nil, ErrUsernameTaken
		}
	}

	hash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth service: hash password: %w", err)
	}

	user := models.User{
		Email:    email,
		Name:     strings.TrimSpace(input.Name),
		Password: hash,
	}
	// empty usernames stay NULL so the unique index ignores them
	if username != "" {
		user.Username = &username
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, fmt.Errorf("auth service: create user: %w", err)
	}

	if s.verification != nil {
		if _, err := s.verification.CreateToken(ctx, user.ID, user.Email); err != nil {
			logger.WithModule("auth").Warn("verification email not sent",
				zap.String("user_id", user.ID),
				zap.Error(err),
			)
		}
	}

	return &user, nil
}

// GetUser loads a user by id.
func (s *AuthService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("auth service: load user: %w", err)
	}
	return &user, nil
}
