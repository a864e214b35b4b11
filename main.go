package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"aussiemate/config"
	"aussiemate/cron"
	"aussiemate/database"
	auditRepoPkg "aussiemate/database/repository/audit"
	"aussiemate/handlers"
	"aussiemate/middleware"
	"aussiemate/routes"
	"aussiemate/services/auth"
	"aussiemate/services/cleaner"
	"aussiemate/services/customer"
	"aussiemate/services/job"
	"aussiemate/services/payment"
	"aussiemate/services/snapshot"
	"aussiemate/services/stats"
	"aussiemate/services/storage"
	"aussiemate/session"
	"aussiemate/upstream"
	"aussiemate/utils"

	"github.com/gin-gonic/gin"
	redislib "github.com/go-redis/redis/v8"
	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitSessionCache()
	utils.InitSnapshotCache()

	storageService, err := storage.NewFromConfig()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize storage service: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// Upstream client and session store.
	sessionStore := session.NewRedisStore(utils.GetSessionCacheClient())
	upstreamClient := upstream.NewClient(config.AppConfig.UpstreamBaseURL, config.AppConfig.UpstreamTimeout, logger)
	upstreamClient.SetUnauthorizedHook(func(ctx context.Context) {
		id := session.IDFromContext(ctx)
		if id == "" {
			return
		}
		if err := sessionStore.Clear(ctx, id); err != nil {
			logger.Warn("failed to clear session after upstream 401", zap.Error(err))
		}
	})

	snapshotStore := snapshot.NewStore(utils.GetSnapshotCacheClient(), config.AppConfig.SnapshotTTL)

	// repositories.
	auditRepo := auditRepoPkg.NewMongoAuditRepo()

	// services.
	cleanerService := &cleaner.DefaultCleanerService{
		Upstream:  upstreamClient,
		Snapshots: snapshotStore,
		Logger:    logger,
	}
	customerService := &customer.DefaultCustomerService{
		Upstream: upstreamClient,
		Logger:   logger,
	}
	jobService := &job.DefaultJobService{
		Upstream:  upstreamClient,
		Snapshots: snapshotStore,
		Logger:    logger,
	}
	paymentService := &payment.DefaultPaymentService{
		Jobs:          jobService,
		Logger:        logger,
		StripeEnabled: config.AppConfig.StripeKey != "",
	}
	statsService := &stats.DefaultStatsService{
		Cleaners:  cleanerService,
		Customers: customerService,
		Jobs:      jobService,
		Logger:    logger,
	}
	authService := &auth.DefaultAuthService{
		Upstream: upstreamClient,
		Sessions: sessionStore,
		Storage:  storageService,
		Logger:   logger,
	}

	// Background snapshot worker and its enqueue client.
	taskClient := cron.NewTaskClient()
	cron.InitSnapshotWorker(cleanerService, jobService)

	authHandler := handlers.NewAuthHandler(authService)
	cleanerHandler := handlers.NewCleanerHandler(cleanerService)
	kycHandler := handlers.NewKYCHandler(cleanerService, auditRepo)
	customerHandler := handlers.NewCustomerHandler(customerService)
	jobHandler := handlers.NewJobHandler(jobService, auditRepo)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	statsHandler := handlers.NewStatsHandler(statsService)
	auditHandler := handlers.NewAuditHandler(auditRepo)
	snapshotHandler := handlers.NewSnapshotHandler(taskClient)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		AuditRepo: auditRepo,

		// Auth endpoints.
		LoginHandler:              authHandler.LoginHandler,
		LogoutHandler:             authHandler.LogoutHandler,
		GetProfileHandler:         authHandler.GetProfileHandler,
		UpdateProfileHandler:      authHandler.UpdateProfileHandler,
		UploadProfilePhotoHandler: authHandler.UploadProfilePhotoHandler,
		DeleteProfilePhotoHandler: authHandler.DeleteProfilePhotoHandler,

		// Cleaner endpoints.
		ListCleanersHandler:   cleanerHandler.ListCleanersHandler,
		GetCleanerHandler:     cleanerHandler.GetCleanerHandler,
		GetCleanerJobsHandler: cleanerHandler.GetCleanerJobsHandler,

		// KYC endpoints.
		ListKYCHandler:           kycHandler.ListKYCHandler,
		KYCStatsHandler:          kycHandler.KYCStatsHandler,
		SetDocumentStatusHandler: kycHandler.SetDocumentStatusHandler,
		SetKYCVerifiedHandler:    kycHandler.SetKYCVerifiedHandler,
		SetKYCStatusHandler:      kycHandler.SetKYCStatusHandler,
		VerifyABNHandler:         kycHandler.VerifyABNHandler,

		// Customer endpoints.
		ListCustomersHandler:      customerHandler.ListCustomersHandler,
		GetCustomerHandler:        customerHandler.GetCustomerHandler,
		GetCustomerJobsHandler:    customerHandler.GetCustomerJobsHandler,
		GetCustomerReviewsHandler: customerHandler.GetCustomerReviewsHandler,

		// Job endpoints.
		ListJobsHandler:         jobHandler.ListJobsHandler,
		GetJobHandler:           jobHandler.GetJobHandler,
		SetPaymentStatusHandler: jobHandler.SetPaymentStatusHandler,

		// Payment endpoints.
		ListTransactionsHandler: paymentHandler.ListTransactionsHandler,
		GetTransactionHandler:   paymentHandler.GetTransactionHandler,

		// Stats and operational endpoints.
		DashboardHandler:       statsHandler.DashboardHandler,
		ListAuditHandler:       auditHandler.ListAuditHandler,
		RefreshSnapshotHandler: snapshotHandler.RefreshSnapshotHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle, sessionStore)

	utils.StartHealthMonitor([]*redislib.Client{
		utils.GetSessionCacheClient(),
		utils.GetSnapshotCacheClient(),
	}, database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
