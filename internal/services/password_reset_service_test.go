package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	iauth "github.com/hardik88t/projman/internal/auth"
	"github.com/hardik88t/projman/internal/models"
	"github.com/hardik88t/projman/pkg/crypto"
)

func TestResetRoundTrip(t *testing.T) {
	db := newTestDB(t)
	mailer := &recordingMailer{}
	service, err := NewPasswordResetService(db, newOpaqueTokens(t), mailer, "http://localhost:3000")
	require.NoError(t, err)

	ctx := context.Background()
	user := createTestUser(t, db, "reset@example.com", "old-password")

	token, err := service.RequestReset(ctx, "reset@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	messages := mailer.sent()
	require.Len(t, messages, 1)
	require.Contains(t, messages[0].Body, "/reset-password?token=")

	require.NoError(t, service.Reset(ctx, token, "new-password"))

	var updated models.User
	require.NoError(t, db.First(&updated, "id = ?", user.ID).Error)
	require.True(t, crypto.VerifyPassword(updated.Password, "new-password"))
	require.False(t, crypto.VerifyPassword(updated.Password, "old-password"))
}

func TestRequestResetIsSilentForUnknownEmail(t *testing.T) {
	db := newTestDB(t)
	mailer := &recordingMailer{}
	service, err := NewPasswordResetService(db, newOpaqueTokens(t), mailer, "")
	require.NoError(t, err)

	token, err := service.RequestReset(context.Background(), "ghost@example.com")
	require.NoError(t, err)
	require.Empty(t, token)
	require.Empty(t, mailer.sent())
}

func TestResetTokenIsSingleUse(t *testing.T) {
	db := newTestDB(t)
	service, err := NewPasswordResetService(db, newOpaqueTokens(t), nil, "")
	require.NoError(t, err)

	ctx := context.Background()
	createTestUser(t, db, "single@example.com", "old-password")

	token, err := service.RequestReset(ctx, "single@example.com")
	require.NoError(t, err)

	require.NoError(t, service.Reset(ctx, token, "first-new-password"))
	require.ErrorIs(t, service.Reset(ctx, token, "second-new-password"), ErrResetInvalid)
}

func TestResetRejectsExpiredToken(t *testing.T) {
	db := newTestDB(t)
	past := time.Now().Add(-2 * time.Hour)
	opaque := iauth.NewOpaqueTokens(iauth.OpaqueTokenConfig{
		Clock: func() time.Time { return past },
	})
	service, err := NewPasswordResetService(db, opaque, nil, "")
	require.NoError(t, err)

	ctx := context.Background()
	createTestUser(t, db, "stale@example.com", "old-password")

	token, err := service.RequestReset(ctx, "stale@example.com")
	require.NoError(t, err)

	require.ErrorIs(t, service.Reset(ctx, token, "new-password"), ErrResetInvalid)
}

func TestResetRejectsUnknownToken(t *testing.T) {
	db := newTestDB(t)
	service, err := NewPasswordResetService(db, newOpaqueTokens(t), nil, "")
	require.NoError(t, err)

	require.ErrorIs(t, service.Reset(context.Background(), "bogus", "new-password"), ErrResetInvalid)
}

func TestRequestResetInvalidatesOlderToken(t *testing.T) {
	db := newTestDB(t)
	service, err := NewPasswordResetService(db, newOpaqueTokens(t), nil, "")
	require.NoError(t, err)

	ctx := context.Background()
	createTestUser(t, db, "rotate@example.com", "old-password")

	first, err := service.RequestReset(ctx, "rotate@example.com")
	require.NoError(t, err)
	second, err := service.RequestReset(ctx, "rotate@example.com")
	require.NoError(t, err)

	require.ErrorIs(t, service.Reset(ctx, first, "new-password"), ErrResetInvalid)
	require.NoError(t, service.Reset(ctx, second, "new-password"))
}
