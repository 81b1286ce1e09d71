package handlers

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/nagrik-seva/app-docvault/internal/middleware"
	"github.com/nagrik-seva/app-docvault/internal/services"
	"github.com/nagrik-seva/app-docvault/internal/store"
)

// Dependencies carries everything the router needs
type Dependencies struct {
	Store     *store.Store
	Sessions  *services.SessionService
	Auth      *services.AuthService
	Documents *services.DocumentService
	Ledger    *services.LedgerService
}

// NewRouter builds the HTTP surface
func NewRouter(deps *Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.RequestTracker())
	router.Use(cors.Default())

	router.GET("/health", HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authHandlers := NewAuthHandlers(deps.Auth, deps.Store.Citizens, deps.Store.Admins)
	citizenHandlers := NewCitizenHandlers(deps.Documents, deps.Ledger)
	adminHandlers := NewAdminHandlers(deps.Ledger, deps.Documents, deps.Store.Citizens)

	v1 := router.Group("/v1")

	auth := v1.Group("/auth")
	auth.POST("/otp/send", authHandlers.SendOTP)
	auth.POST("/otp/verify", authHandlers.VerifyOTP)
	auth.POST("/admin/login", authHandlers.AdminLogin)

	authed := v1.Group("/auth", middleware.AuthMiddleware(deps.Sessions))
	authed.POST("/logout", authHandlers.Logout)
	authed.GET("/session", authHandlers.Session)

	citizen := v1.Group("/citizen",
		middleware.AuthMiddleware(deps.Sessions),
		middleware.RequireCitizen(deps.Store.Citizens))
	citizen.GET("/documents", citizenHandlers.GetDocuments)
	citizen.GET("/documents/:type", citizenHandlers.GetDocument)
	citizen.POST("/change-requests", citizenHandlers.SubmitChange)
	citizen.GET("/change-requests", citizenHandlers.ListMyRequests)
	citizen.GET("/change-requests/:reference", citizenHandlers.GetMyRequest)

	admin := v1.Group("/admin",
		middleware.AuthMiddleware(deps.Sessions),
		middleware.RequireAdmin(deps.Store.Admins))
	admin.GET("/change-requests", adminHandlers.ListPending)
	admin.POST("/change-requests/:id/decision", adminHandlers.Decide)
	admin.POST("/citizens", adminHandlers.RegisterCitizen)
	admin.GET("/citizens/:id/documents", adminHandlers.GetCitizenDocuments)
	admin.GET("/citizens/:id/change-requests", adminHandlers.GetCitizenRequests)
	admin.POST("/documents", adminHandlers.RegisterDocument)

	return router
}
