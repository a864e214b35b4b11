package routes

import (
	"net/http"
	"time"

	"aussiemate/handlers"
	"aussiemate/middleware"
	"aussiemate/session"
	"aussiemate/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers the sign-in flow and the admin's own profile.
// Login is public; everything else requires a session.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle, store session.Store) {
	api := r.Group("/api/auth")
	{
		api.POST("/login", hb.LoginHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.AdminAuthMiddleware(store))
		api.POST("/logout", hb.LogoutHandler)
		api.GET("/me", hb.GetProfileHandler)
		api.PUT("/me", hb.UpdateProfileHandler)
		api.POST("/me/photo", hb.UploadProfilePhotoHandler)
		api.DELETE("/me/photo", hb.DeleteProfilePhotoHandler)
	}
}

// RegisterAdminRoutes registers the dashboard data endpoints. All of them
// require a session.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle, store session.Store) {
	api := r.Group("/api/admin")
	{
		api.Use(middleware.AdminAuthMiddleware(store))

		api.GET("/stats", hb.DashboardHandler)

		api.GET("/cleaners", hb.ListCleanersHandler)
		api.GET("/cleaners/:id", hb.GetCleanerHandler)
		api.GET("/cleaners/:id/jobs", hb.GetCleanerJobsHandler)

		api.GET("/kyc", hb.ListKYCHandler)
		api.GET("/kyc/stats", hb.KYCStatsHandler)
		api.PUT("/kyc/:id/documents/:docKey", hb.SetDocumentStatusHandler)
		api.PUT("/kyc/:id/verified", hb.SetKYCVerifiedHandler)
		api.PUT("/kyc/:id/status", hb.SetKYCStatusHandler)
		api.POST("/kyc/:id/abn", hb.VerifyABNHandler)

		api.GET("/customers", hb.ListCustomersHandler)
		api.GET("/customers/:id", hb.GetCustomerHandler)
		api.GET("/customers/:id/jobs", hb.GetCustomerJobsHandler)
		api.GET("/customers/:id/reviews", hb.GetCustomerReviewsHandler)

		api.GET("/jobs", hb.ListJobsHandler)
		api.GET("/jobs/:id", hb.GetJobHandler)
		api.PUT("/jobs/:id/payment-status", hb.SetPaymentStatusHandler)

		api.GET("/payments", hb.ListTransactionsHandler)
		api.GET("/payments/:jobId", hb.GetTransactionHandler)

		api.GET("/audit", hb.ListAuditHandler)
		api.POST("/snapshots/refresh", hb.RefreshSnapshotHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "health": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, store session.Store) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterAuthRoutes(r, hb, store)
	RegisterAdminRoutes(r, hb, store)
}
