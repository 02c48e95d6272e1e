package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"CityGeneral/cache"
	"CityGeneral/config"
	"CityGeneral/controllers"
	"CityGeneral/handlers"
	"CityGeneral/middlewares"
	"CityGeneral/repositories"
	"CityGeneral/services"
	"CityGeneral/utils"
)

// SetupRoutes initializes the routes and middleware for the server
func SetupRoutes(cache *cache.Cache, cfg *config.AppConfig, db *gorm.DB, tokens *utils.TokenMaker, policy *utils.PasswordPolicy) http.Handler {
	// Set Gin to release mode
	gin.SetMode(gin.ReleaseMode)

	// Create a Gin router
	router := gin.Default()

	// Create and apply CORS middleware configuration
	corsConfig := &middlewares.CorsConfig{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}
	router.Use(middlewares.CorsMiddleware(corsConfig))

	// Apply rate limiter middleware
	router.Use(middlewares.NewRateLimiterMiddleware(middlewares.RateLimiterConfig{
		RequestsPerSecond: 15,
		Burst:             30,
	}))

	// Apply logging middleware
	router.Use(middlewares.LoggingMiddleware())

	// Initialize repositories, services, and handlers
	userRepo := repositories.NewUserRepository(db, cache)
	patientRepo := repositories.NewPatientRepository(db, cache)
	doctorRepo := repositories.NewDoctorRepository(db)
	appointmentRepo := repositories.NewAppointmentRepository(db)
	medicalRecordRepo := repositories.NewMedicalRecordRepository(db)
	prescriptionRepo := repositories.NewPrescriptionRepository(db)
	billingRepo := repositories.NewBillingRepository(db, cache, time.Now)

	userService := services.NewUserService(userRepo, tokens, policy, cache, cfg)

	authHandler := handlers.NewAuthHandler(userService)
	patientHandler := handlers.NewPatientHandler(services.NewPatientService(patientRepo))
	doctorHandler := handlers.NewDoctorHandler(services.NewDoctorService(doctorRepo))
	appointmentHandler := handlers.NewAppointmentHandler(services.NewAppointmentService(appointmentRepo))
	medicalRecordHandler := handlers.NewMedicalRecordHandler(services.NewMedicalRecordService(medicalRecordRepo))
	prescriptionHandler := handlers.NewPrescriptionHandler(services.NewPrescriptionService(prescriptionRepo))
	billingHandler := handlers.NewBillingHandler(services.NewBillingService(billingRepo))

	// Register routes
	authController := controllers.NewAuthController(authHandler)
	authController.RegisterRoutes(router, tokens, userRepo, policy)

	controllers.SetupClinicalRoutes(
		router,
		tokens,
		userRepo,
		policy,
		patientHandler,
		doctorHandler,
		appointmentHandler,
		medicalRecordHandler,
		prescriptionHandler,
		billingHandler,
	)

	controllers.SetupRootRoute(router)

	return router
}
