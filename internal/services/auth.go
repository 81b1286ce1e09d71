package services

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"

	"go.uber.org/zap"

	"github.com/nagrik-seva/app-docvault/internal/models"
	"github.com/nagrik-seva/app-docvault/internal/observability"
	"github.com/nagrik-seva/app-docvault/internal/store"
	"github.com/nagrik-seva/app-docvault/internal/utils"
)

// Authentication errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNoEmailOnRecord    = errors.New("citizen has no email on record")
)

// AuthService handles both login flows: OTP-by-email for citizens and
// employee credentials for administrators.
type AuthService struct {
	citizens store.CitizenStore
	admins   store.AdminStore
	otp      *OTPService
	sessions *SessionService
	mailer   Mailer
}

// NewAuthService creates an auth service
func NewAuthService(citizens store.CitizenStore, admins store.AdminStore, otp *OTPService, sessions *SessionService, mailer Mailer) *AuthService {
	return &AuthService{
		citizens: citizens,
		admins:   admins,
		otp:      otp,
		sessions: sessions,
		mailer:   mailer,
	}
}

// SendOTP issues a login code and emails it to the citizen's address
// on record. Returns the masked address for the UI.
func (a *AuthService) SendOTP(ctx context.Context, nationalID string) (string, error) {
	ctx, span := utils.TraceBusinessLogic(ctx, "send_login_otp")
	defer span.End()

	if !utils.ValidateNationalID(nationalID) {
		return "", models.ErrCitizenNotFound
	}

	citizen, err := a.citizens.GetByNationalID(ctx, nationalID)
	if err != nil {
		return "", err
	}
	if citizen.Email == "" {
		return "", ErrNoEmailOnRecord
	}

	code, err := a.otp.Issue(ctx, nationalID)
	if err != nil {
		utils.RecordErrorInSpan(span, err, nil)
		return "", err
	}

	// Delivery happens off the request path; a slow SMTP server must
	// not hold up the login screen.
	go func() {
		if err := a.mailer.SendOTP(citizen.Email, code); err != nil {
			observability.Logger().Error("failed to send otp email",
				zap.String("email", observability.MaskEmail(citizen.Email)),
				zap.Error(err))
		}
	}()

	return observability.MaskEmail(citizen.Email), nil
}

// VerifyOTP completes a citizen login and issues a session token
func (a *AuthService) VerifyOTP(ctx context.Context, nationalID, code string) (string, *models.Citizen, error) {
	ctx, span := utils.TraceBusinessLogic(ctx, "verify_login_otp")
	defer span.End()

	citizen, err := a.citizens.GetByNationalID(ctx, nationalID)
	if err != nil {
		return "", nil, err
	}
	if err := a.otp.Verify(ctx, nationalID, code); err != nil {
		return "", nil, err
	}

	token, err := a.sessions.Create(ctx, PrincipalCitizen, citizen.ID)
	if err != nil {
		utils.RecordErrorInSpan(span, err, nil)
		return "", nil, err
	}
	return token, citizen, nil
}

// AdminLogin authenticates an administrator and issues a session token
func (a *AuthService) AdminLogin(ctx context.Context, employeeID, password string) (string, *models.Admin, error) {
	ctx, span := utils.TraceBusinessLogic(ctx, "admin_login")
	defer span.End()

	admin, err := a.admins.GetByEmployeeID(ctx, employeeID)
	if errors.Is(err, models.ErrAdminNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}

	if subtle.ConstantTimeCompare([]byte(HashPassword(password)), []byte(admin.PasswordHash)) != 1 {
		return "", nil, ErrInvalidCredentials
	}

	token, err := a.sessions.Create(ctx, PrincipalAdmin, admin.ID)
	if err != nil {
		utils.RecordErrorInSpan(span, err, nil)
		return "", nil, err
	}
	return token, admin, nil
}

// Logout revokes a session token
func (a *AuthService) Logout(ctx context.Context, token string) error {
	return a.sessions.Destroy(ctx, token)
}

// HashPassword returns the hex SHA-256 digest stored for admin
// passwords. Seed tooling uses the same function.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
