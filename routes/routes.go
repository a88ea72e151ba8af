package routes

import (
	"LabLedger/cache"
	"LabLedger/config"
	"LabLedger/controllers"
	"LabLedger/handlers"
	"LabLedger/middlewares"
	"LabLedger/repositories"
	"LabLedger/services"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes initializes the routes and middleware for the server
func SetupRoutes(cache *cache.Cache, config *config.AppConfig, db *gorm.DB) http.Handler {
	// Set Gin to release mode
	gin.SetMode(gin.ReleaseMode)

	// Create a Gin router
	router := gin.Default()

	// Create and apply CORS middleware configuration
	corsConfig := &middlewares.CorsConfig{
		AllowedOrigins:   []string{"http://localhost:3000", "https://www.example.com", "https://example-dev.com"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}
	router.Use(middlewares.CorsMiddleware(corsConfig))

	// Apply rate limiter middleware
	router.Use(middlewares.NewRateLimiterMiddleware(middlewares.RateLimiterConfig{
		RequestsPerSecond: 15, // 15 requests per second
		Burst:             30, // Burst of 30
	}))

	// Apply logging middleware
	router.Use(middlewares.LoggingMiddleware())

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db, cache)
	doctorRepo := repositories.NewDoctorRepository(db, cache)
	workTypeRepo := repositories.NewWorkTypeRepository(db, cache)
	caseRepo := repositories.NewCaseRepository(db, cache)
	expenseRepo := repositories.NewExpenseRepository(db, cache)
	partnerRepo := repositories.NewPartnerRepository(db, cache)
	partnerTxRepo := repositories.NewPartnerTransactionRepository(db, cache)
	doctorTxRepo := repositories.NewDoctorTransactionRepository(db, cache)
	checkRepo := repositories.NewCheckRepository(db, cache)

	// Initialize services
	financeService := services.NewFinanceService(db, cache, config.StrictPartnerPercentages)
	userService := services.NewUserService(userRepo)
	doctorService := services.NewDoctorService(doctorRepo)
	workTypeService := services.NewWorkTypeService(workTypeRepo)
	caseService := services.NewCaseService(caseRepo, doctorRepo, workTypeRepo, financeService)
	expenseService := services.NewExpenseService(expenseRepo, financeService)
	partnerService := services.NewPartnerService(partnerRepo, partnerTxRepo, financeService)
	doctorTxService := services.NewDoctorTransactionService(doctorTxRepo, financeService)
	checkService := services.NewCheckService(checkRepo)
	exportService := services.NewExportService(db, doctorRepo, caseRepo, doctorTxRepo, financeService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	caseHandler := handlers.NewCaseHandler(caseService)
	doctorHandler := handlers.NewDoctorHandler(doctorService, financeService)
	workTypeHandler := handlers.NewWorkTypeHandler(workTypeService)
	expenseHandler := handlers.NewExpenseHandler(expenseService)
	partnerHandler := handlers.NewPartnerHandler(partnerService)
	doctorTxHandler := handlers.NewDoctorTransactionHandler(doctorTxService)
	checkHandler := handlers.NewCheckHandler(checkService)
	financeHandler := handlers.NewFinanceHandler(financeService)
	exportHandler := handlers.NewExportHandler(exportService, doctorService)
	portalHandler := handlers.NewPortalHandler(doctorService, caseService, doctorTxService, financeService)

	// The doctor portal is registered before the bearer gate: its access
	// token is the only credential a doctor has.
	controllers.SetupPortalRoute(router, portalHandler)

	// Apply Bearer token validation to every route registered below
	router.Use(middlewares.ValidateBearerToken(config.GetBearerToken()))

	// Register routes
	controllers.SetupLabRoutes(
		router.Group(""),
		caseHandler,
		doctorHandler,
		workTypeHandler,
		expenseHandler,
		partnerHandler,
		doctorTxHandler,
		checkHandler,
		financeHandler,
		exportHandler,
	)

	authController := controllers.NewAuthController(authHandler)
	authController.RegisterRoutes(router)

	controllers.SetupRootRoute(router)

	return router
}
