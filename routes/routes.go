package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Maheshkadam-Delxn/eye/cache"
	"github.com/Maheshkadam-Delxn/eye/config"
	"github.com/Maheshkadam-Delxn/eye/controllers"
	"github.com/Maheshkadam-Delxn/eye/handlers"
	"github.com/Maheshkadam-Delxn/eye/middlewares"
	"github.com/Maheshkadam-Delxn/eye/repositories"
	"github.com/Maheshkadam-Delxn/eye/services"
	"github.com/Maheshkadam-Delxn/eye/utils"
)

// SetupRoutes initializes the routes and middleware for the server.
func SetupRoutes(c *cache.Cache, cfg *config.AppConfig, db *gorm.DB, tokenMaker *utils.TokenMaker, mailer *utils.Mailer) http.Handler {
	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()

	corsConfig := &middlewares.CorsConfig{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}
	router.Use(middlewares.CorsMiddleware(corsConfig))

	router.Use(middlewares.NewRateLimiterMiddleware(middlewares.RateLimiterConfig{
		RequestsPerSecond: 15,
		Burst:             30,
	}))

	router.Use(middlewares.LoggingMiddleware())

	// Every request is authenticated and role-gated here, before any
	// handler runs.
	router.Use(middlewares.AccessGate(tokenMaker, middlewares.DefaultPolicy))

	// Repositories, services, handlers.
	userRepo := repositories.NewUserRepository(db)
	patientRepo := repositories.NewPatientRepository(db)
	appointmentRepo := repositories.NewAppointmentRepository(db)

	authService := services.NewAuthService(userRepo)
	userService := services.NewUserService(userRepo)
	patientService := services.NewPatientService(patientRepo)
	availabilityService := services.NewAvailabilityService(userRepo)
	appointmentService := services.NewAppointmentService(appointmentRepo, patientRepo, userRepo, mailer)
	statsService := services.NewStatsService(userRepo, appointmentRepo, c)

	authHandler := handlers.NewAuthHandler(authService, tokenMaker, cfg.SecureCookies())
	userHandler := handlers.NewUserHandler(userService)
	patientHandler := handlers.NewPatientHandler(patientService)
	availabilityHandler := handlers.NewAvailabilityHandler(availabilityService)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentService)
	statsHandler := handlers.NewStatsHandler(statsService)

	// Register routes.
	controllers.SetupRootRoute(router)
	controllers.NewAuthController(authHandler).RegisterRoutes(router)
	controllers.NewDoctorController(availabilityHandler, appointmentHandler).RegisterRoutes(router)
	controllers.NewReceptionistController(appointmentHandler, patientHandler).RegisterRoutes(router)
	controllers.NewAdminController(userHandler, statsHandler).RegisterRoutes(router)

	return router
}
