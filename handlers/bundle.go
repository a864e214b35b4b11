package handlers

import (
	auditRepoPkg "aussiemate/database/repository/audit"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	AuditRepo auditRepoPkg.AuditRepository

	// Auth endpoints
	LoginHandler              gin.HandlerFunc
	LogoutHandler             gin.HandlerFunc
	GetProfileHandler         gin.HandlerFunc
	UpdateProfileHandler      gin.HandlerFunc
	UploadProfilePhotoHandler gin.HandlerFunc
	DeleteProfilePhotoHandler gin.HandlerFunc

	// Cleaner endpoints
	ListCleanersHandler   gin.HandlerFunc
	GetCleanerHandler     gin.HandlerFunc
	GetCleanerJobsHandler gin.HandlerFunc

	// KYC endpoints
	ListKYCHandler           gin.HandlerFunc
	KYCStatsHandler          gin.HandlerFunc
	SetDocumentStatusHandler gin.HandlerFunc
	SetKYCVerifiedHandler    gin.HandlerFunc
	SetKYCStatusHandler      gin.HandlerFunc
	VerifyABNHandler         gin.HandlerFunc

	// Customer endpoints
	ListCustomersHandler      gin.HandlerFunc
	GetCustomerHandler        gin.HandlerFunc
	GetCustomerJobsHandler    gin.HandlerFunc
	GetCustomerReviewsHandler gin.HandlerFunc

	// Job endpoints
	ListJobsHandler         gin.HandlerFunc
	GetJobHandler           gin.HandlerFunc
	SetPaymentStatusHandler gin.HandlerFunc

	// Payment endpoints
	ListTransactionsHandler gin.HandlerFunc
	GetTransactionHandler   gin.HandlerFunc

	// Stats and operational endpoints
	DashboardHandler       gin.HandlerFunc
	ListAuditHandler       gin.HandlerFunc
	RefreshSnapshotHandler gin.HandlerFunc
}
