package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hardik88t/projman/internal/middleware"
	"github.com/hardik88t/projman/internal/services"
	appErrors "github.com/hardik88t/projman/pkg/errors"
	"github.com/hardik88t/projman/pkg/response"
)

// CookieSettings control how the session cookie is written.
type CookieSettings struct {
	// Secure marks the cookie HTTPS-only. Enabled in production deployments.
	Secure bool
	Domain string
}

// AuthHandler manages the authentication flows: login, signup, logout, the
// side-channel token flows and the current-user endpoint.
type AuthHandler struct {
	auth         *services.AuthService
	verification *services.EmailVerificationService
	resets       *services.PasswordResetService
	cookies      CookieSettings
}

func NewAuthHandler(auth *services.AuthService, verification *services.EmailVerificationService, resets *services.PasswordResetService, cookies CookieSettings) *AuthHandler {
	return &AuthHandler{
		auth:         auth,
		verification: verification,
		resets:       resets,
		cookies:      cookies,
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bindAndValidate(c, &req) {
		return
	}

	user, token, err := h.auth.Authenticate(requestContext(c), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			response.Error(c, appErrors.ErrInvalidCredentials)
			return
		}
		response.Error(c, appErrors.Wrap(err, "login failed"))
		return
	}

	h.setSessionCookie(c, token)
	response.JSON(c, http.StatusOK, gin.H{"user": user, "token": token})
}

type signupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"omitempty,min=3,max=30"`
	Name     string `json:"name" validate:"omitempty,max=100"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// POST /api/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if !bindAndValidate(c, &req) {
		return
	}

	user, err := h.auth.Register(requestContext(c), services.RegisterInput{
		Email:    req.Email,
		Username: req.Username,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken):
			response.Error(c, appErrors.ErrEmailTaken)
		case errors.Is(err, services.ErrUsernameTaken):
			response.Error(c, appErrors.New("USERNAME_TAKEN", "This username is already taken", http.StatusConflict))
		default:
			response.Error(c, appErrors.Wrap(err, "signup failed"))
		}
		return
	}

	response.JSON(c, http.StatusCreated, gin.H{
		"message": "Account created. Please check your email to verify your address.",
		"userId":  user.ID,
	})
}

// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	h.clearSessionCookie(c)
	response.Message(c, http.StatusOK, "Logged out")
}

// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	user, err := h.auth.GetUser(requestContext(c), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, appErrors.ErrUnauthorized)
			return
		}
		response.Error(c, appErrors.Wrap(err, "load user failed"))
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"user": user})
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// forgotPasswordMessage is returned for known and unknown emails alike.
const forgotPasswordMessage = "If an account with that email exists, a password reset link has been sent."

// POST /api/auth/forgot-password
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if !bindAndValidate(c, &req) {
		return
	}

	if _, err := h.resets.RequestReset(requestContext(c), req.Email); err != nil {
		response.Error(c, appErrors.Wrap(err, "reset request failed"))
		return
	}

	response.Message(c, http.StatusOK, forgotPasswordMessage)
}

type resetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// POST /api/auth/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if !bindAndValidate(c, &req) {
		return
	}

	if err := h.resets.Reset(requestContext(c), req.Token, req.Password); err != nil {
		if errors.Is(err, services.ErrResetInvalid) {
			response.Error(c, appErrors.ErrTokenInvalid)
			return
		}
		response.Error(c, appErrors.Wrap(err, "password reset failed"))
		return
	}

	response.Message(c, http.StatusOK, "Password updated. You can now log in with your new password.")
}

type verifyEmailRequest struct {
	Token string `json:"token" validate:"required"`
}

// POST /api/auth/verify-email
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req verifyEmailRequest
	if !bindAndValidate(c, &req) {
		return
	}

	user, err := h.verification.Consume(requestContext(c), req.Token)
	if err != nil {
		if errors.Is(err, services.ErrVerificationInvalid) {
			response.Error(c, appErrors.ErrTokenInvalid)
			return
		}
		response.Error(c, appErrors.Wrap(err, "email verification failed"))
		return
	}

	response.JSON(c, http.StatusOK, gin.H{
		"message": "Email verified",
		"user":    user,
	})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		middleware.SessionCookieName,
		token,
		int(h.auth.Tokens().TTL().Seconds()),
		"/",
		h.cookies.Domain,
		h.cookies.Secure,
		true,
	)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", h.cookies.Domain, h.cookies.Secure, true)
}
