package services

import (
	"strings"
	"testing"

	"github.com/smp-team-2025/smp-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func seedLoginUser(t *testing.T, svc *AuthService, email, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		Name:         "Jane Doe",
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleParticipant,
	}
	require.NoError(t, svc.db.Create(user).Error)
	return user
}

func TestLogin(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, "test-secret", &fakeSender{}, "http://localhost")
	seedLoginUser(t, svc, "jane@example.com", "correct-horse")

	user, token, err := svc.Login("jane@example.com", "correct-horse")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "jane@example.com", user.Email)

	_, _, err = svc.Login("jane@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login("nobody@example.com", "correct-horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestTokenRoundTrip(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, "test-secret", &fakeSender{}, "http://localhost")

	token, err := svc.GenerateToken(42, models.RoleOrganizer)
	require.NoError(t, err)

	userID, role, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.EqualValues(t, 42, userID)
	assert.Equal(t, models.RoleOrganizer, role)

	_, _, err = svc.ValidateToken(token + "tampered")
	assert.Error(t, err)

	other := NewAuthService(db, "different-secret", &fakeSender{}, "http://localhost")
	_, _, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestPasswordResetFlow(t *testing.T) {
	db := newTestDB(t)
	mailer := &fakeSender{}
	svc := NewAuthService(db, "test-secret", mailer, "http://localhost:5173")
	seedLoginUser(t, svc, "jane@example.com", "old-password")

	// Unknown addresses do not reveal themselves.
	require.NoError(t, svc.ForgotPassword("nobody@example.com"))
	assert.Empty(t, mailer.sent)

	require.NoError(t, svc.ForgotPassword("jane@example.com"))
	require.Len(t, mailer.sent, 1)

	// Pull the raw token out of the mailed link.
	body := mailer.sent[0].Body
	idx := strings.Index(body, "token=")
	require.GreaterOrEqual(t, idx, 0)
	token := strings.Fields(body[idx+len("token="):])[0]

	require.NoError(t, svc.ResetPassword(token, "new-password"))

	_, _, err := svc.Login("jane@example.com", "new-password")
	require.NoError(t, err)
	_, _, err = svc.Login("jane@example.com", "old-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// The token is single-use.
	err = svc.ResetPassword(token, "another-password")
	assert.ErrorIs(t, err, ErrInvalidResetToken)
}
