package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nagrik-seva/app-docvault/internal/models"
	"github.com/nagrik-seva/app-docvault/internal/observability"
	"github.com/nagrik-seva/app-docvault/internal/services"
	"github.com/nagrik-seva/app-docvault/internal/store"
)

// Context keys set by the auth middleware
const (
	ContextSessionKey = "session"
	ContextCitizenKey = "citizen"
	ContextAdminKey   = "admin"
	ContextTokenKey   = "token"
)

// bearerToken pulls the opaque token out of the Authorization header
func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

// AuthMiddleware resolves the bearer token to a session and stores it
// in the request context
func AuthMiddleware(sessions *services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		session, err := sessions.Resolve(c.Request.Context(), token)
		if errors.Is(err, services.ErrSessionNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}
		if err != nil {
			observability.Logger().Error("failed to resolve session", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve session"})
			c.Abort()
			return
		}

		c.Set(ContextSessionKey, session)
		c.Set(ContextTokenKey, token)
		c.Next()
	}
}

// RequireCitizen loads the citizen behind the session and rejects
// admin tokens
func RequireCitizen(citizens store.CitizenStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessionFromContext(c)
		if session == nil || session.Kind != services.PrincipalCitizen {
			c.JSON(http.StatusForbidden, gin.H{"error": "Citizen session required"})
			c.Abort()
			return
		}

		citizen, err := citizens.GetByID(c.Request.Context(), session.SubjectID)
		if errors.Is(err, models.ErrCitizenNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}
		if err != nil {
			observability.Logger().Error("failed to load citizen for session", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load citizen"})
			c.Abort()
			return
		}

		c.Set(ContextCitizenKey, citizen)
		c.Next()
	}
}

// RequireAdmin loads the administrator behind the session and rejects
// citizen tokens
func RequireAdmin(admins store.AdminStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessionFromContext(c)
		if session == nil || session.Kind != services.PrincipalAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin privileges required"})
			c.Abort()
			return
		}

		admin, err := admins.GetByID(c.Request.Context(), session.SubjectID)
		if errors.Is(err, models.ErrAdminNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}
		if err != nil {
			observability.Logger().Error("failed to load admin for session", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load admin"})
			c.Abort()
			return
		}

		c.Set(ContextAdminKey, admin)
		c.Next()
	}
}

// SessionFromContext returns the resolved session set by
// AuthMiddleware, or nil outside an authenticated route
func SessionFromContext(c *gin.Context) *services.Session {
	return sessionFromContext(c)
}

func sessionFromContext(c *gin.Context) *services.Session {
	val, exists := c.Get(ContextSessionKey)
	if !exists {
		return nil
	}
	session, ok := val.(*services.Session)
	if !ok {
		return nil
	}
	return session
}

// CitizenFromContext returns the authenticated citizen set by
// RequireCitizen
func CitizenFromContext(c *gin.Context) *models.Citizen {
	val, exists := c.Get(ContextCitizenKey)
	if !exists {
		return nil
	}
	citizen, ok := val.(*models.Citizen)
	if !ok {
		return nil
	}
	return citizen
}

// AdminFromContext returns the authenticated admin set by RequireAdmin
func AdminFromContext(c *gin.Context) *models.Admin {
	val, exists := c.Get(ContextAdminKey)
	if !exists {
		return nil
	}
	admin, ok := val.(*models.Admin)
	if !ok {
		return nil
	}
	return admin
}
