package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nagrik-seva/app-docvault/internal/models"
	"github.com/nagrik-seva/app-docvault/internal/store"
)

type otpCaptureMailer struct {
	mu   sync.Mutex
	code string
	sent chan struct{}
}

func newOTPCaptureMailer() *otpCaptureMailer {
	return &otpCaptureMailer{sent: make(chan struct{}, 1)}
}

func (m *otpCaptureMailer) SendOTP(_, code string) error {
	m.mu.Lock()
	m.code = code
	m.mu.Unlock()
	m.sent <- struct{}{}
	return nil
}

func (m *otpCaptureMailer) SendDecision(string, *models.ChangeRequest) error { return nil }

func (m *otpCaptureMailer) lastCode(t *testing.T) string {
	t.Helper()
	select {
	case <-m.sent:
	case <-time.After(time.Second):
		t.Fatal("otp email was never sent")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.code
}

func newAuthFixture(t *testing.T) (*AuthService, *store.Store, *otpCaptureMailer) {
	t.Helper()
	s := store.NewMemoryStore()
	cache := NewMemoryCache()
	mailer := newOTPCaptureMailer()
	auth := NewAuthService(
		s.Citizens, s.Admins,
		NewOTPService(cache, time.Minute, 3),
		NewSessionService(cache, time.Hour),
		mailer,
	)
	return auth, s, mailer
}

func TestCitizenOTPLogin(t *testing.T) {
	auth, s, mailer := newAuthFixture(t)
	ctx := context.Background()

	citizen := &models.Citizen{
		NationalID: "123456789012",
		Name:       "Asha Verma",
		Email:      "asha@example.in",
	}
	require.NoError(t, s.Citizens.Insert(ctx, citizen))

	masked, err := auth.SendOTP(ctx, "123456789012")
	require.NoError(t, err)
	assert.NotEqual(t, citizen.Email, masked)
	assert.Contains(t, masked, "@example.in")

	code := mailer.lastCode(t)
	token, got, err := auth.VerifyOTP(ctx, "123456789012", code)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, citizen.ID, got.ID)

	t.Run("token resolves to the citizen", func(t *testing.T) {
		session, err := auth.sessions.Resolve(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, PrincipalCitizen, session.Kind)
		assert.Equal(t, citizen.ID, session.SubjectID)
	})

	t.Run("logout revokes the token", func(t *testing.T) {
		require.NoError(t, auth.Logout(ctx, token))
		_, err := auth.sessions.Resolve(ctx, token)
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})
}

func TestSendOTPRejectsUnknownCitizen(t *testing.T) {
	auth, _, _ := newAuthFixture(t)
	ctx := context.Background()

	t.Run("malformed national id", func(t *testing.T) {
		_, err := auth.SendOTP(ctx, "12345")
		assert.ErrorIs(t, err, models.ErrCitizenNotFound)
	})

	t.Run("unregistered national id", func(t *testing.T) {
		_, err := auth.SendOTP(ctx, "999988887777")
		assert.ErrorIs(t, err, models.ErrCitizenNotFound)
	})
}

func TestSendOTPRequiresEmail(t *testing.T) {
	auth, s, _ := newAuthFixture(t)
	ctx := context.Background()

	require.NoError(t, s.Citizens.Insert(ctx, &models.Citizen{
		NationalID: "123456789012",
		Name:       "No Email",
	}))

	_, err := auth.SendOTP(ctx, "123456789012")
	assert.ErrorIs(t, err, ErrNoEmailOnRecord)
}

func TestAdminLogin(t *testing.T) {
	auth, s, _ := newAuthFixture(t)
	ctx := context.Background()

	admin := &models.Admin{
		EmployeeID:   "EMP001",
		Name:         "Reviewer",
		PasswordHash: HashPassword("s3cret"),
	}
	require.NoError(t, s.Admins.Insert(ctx, admin))

	token, got, err := auth.AdminLogin(ctx, "EMP001", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, admin.ID, got.ID)

	session, err := auth.sessions.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, PrincipalAdmin, session.Kind)

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := auth.AdminLogin(ctx, "EMP001", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown employee", func(t *testing.T) {
		_, _, err := auth.AdminLogin(ctx, "EMP999", "s3cret")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
