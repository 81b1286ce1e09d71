package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nagrik-seva/app-docvault/internal/middleware"
	"github.com/nagrik-seva/app-docvault/internal/models"
	"github.com/nagrik-seva/app-docvault/internal/services"
	"github.com/nagrik-seva/app-docvault/internal/store"
)

// AuthHandlers serves the login and logout endpoints
type AuthHandlers struct {
	auth     *services.AuthService
	citizens store.CitizenStore
	admins   store.AdminStore
}

// NewAuthHandlers creates auth handlers
func NewAuthHandlers(auth *services.AuthService, citizens store.CitizenStore, admins store.AdminStore) *AuthHandlers {
	return &AuthHandlers{auth: auth, citizens: citizens, admins: admins}
}

// SendOTP godoc
// @Summary Request a login OTP
// @Description Sends a one-time password to the email registered for the national ID
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.SendOTPRequest true "National ID"
// @Success 200 {object} models.SendOTPResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /auth/otp/send [post]
func (h *AuthHandlers) SendOTP(c *gin.Context) {
	var req models.SendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "nationalId is required"})
		return
	}

	maskedEmail, err := h.auth.SendOTP(c.Request.Context(), req.NationalID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SendOTPResponse{
		Message: "OTP sent",
		Email:   maskedEmail,
	})
}

// VerifyOTP godoc
// @Summary Complete a citizen login
// @Description Verifies the OTP and returns a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.VerifyOTPRequest true "National ID and OTP"
// @Success 200 {object} models.LoginResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /auth/otp/verify [post]
func (h *AuthHandlers) VerifyOTP(c *gin.Context) {
	var req models.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "nationalId and otp are required"})
		return
	}

	token, citizen, err := h.auth.VerifyOTP(c.Request.Context(), req.NationalID, req.OTP)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.LoginResponse{Token: token, Citizen: citizen})
}

// AdminLogin godoc
// @Summary Administrator login
// @Description Authenticates an administrator with employee credentials
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.AdminLoginRequest true "Employee credentials"
// @Success 200 {object} models.LoginResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/admin/login [post]
func (h *AuthHandlers) AdminLogin(c *gin.Context) {
	var req models.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "employeeId and password are required"})
		return
	}

	token, admin, err := h.auth.AdminLogin(c.Request.Context(), req.EmployeeID, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.LoginResponse{Token: token, Admin: admin})
}

// Logout godoc
// @Summary Revoke the current session
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 401 {object} ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandlers) Logout(c *gin.Context) {
	token := c.GetString(middleware.ContextTokenKey)
	if err := h.auth.Logout(c.Request.Context(), token); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Session godoc
// @Summary Introspect the current session
// @Description Returns the identity behind the bearer token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.LoginResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/session [get]
func (h *AuthHandlers) Session(c *gin.Context) {
	session := middleware.SessionFromContext(c)
	if session == nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "no active session"})
		return
	}

	resp := models.LoginResponse{}
	switch session.Kind {
	case services.PrincipalCitizen:
		citizen, err := h.citizens.GetByID(c.Request.Context(), session.SubjectID)
		if err != nil {
			respondError(c, err)
			return
		}
		resp.Citizen = citizen
	case services.PrincipalAdmin:
		admin, err := h.admins.GetByID(c.Request.Context(), session.SubjectID)
		if err != nil {
			respondError(c, err)
			return
		}
		resp.Admin = admin
	}
	c.JSON(http.StatusOK, resp)
}
