package api

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/clinicore/clinic-api/internal/api/handler"
	"github.com/clinicore/clinic-api/internal/api/middleware"
	"github.com/clinicore/clinic-api/internal/core/domain"
	"github.com/clinicore/clinic-api/internal/core/ports"
	"github.com/clinicore/clinic-api/internal/core/service"
	"github.com/clinicore/clinic-api/internal/infrastructure/config"
	"github.com/clinicore/clinic-api/internal/infrastructure/db/postgres"
	"github.com/clinicore/clinic-api/internal/infrastructure/db/redis"
)

// NewRouter builds the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, pool *pgxpool.Pool, rdb *goredis.Client, mail ports.MailDispatcher, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("clinic"))

	// --- Dependencies ---
	userRepo := postgres.NewUserRepository(pool)
	limiter := redis.NewThrottle(rdb, cfg.Throttle.Limit, cfg.Throttle.Window)

	authService, err := service.NewAuthService(userRepo, mail, limiter, cfg.JWTSecret, cfg.TokenTTL, log)
	if err != nil {
		return nil, err
	}
	userService := service.NewUserService(userRepo, log)
	appointmentService := service.NewAppointmentService(postgres.NewAppointmentRepository(pool), log)
	contactService := service.NewContactService(postgres.NewContactRepository(pool))
	patientService := service.NewPatientService(postgres.NewPatientRepository(pool))
	receptionistService := service.NewReceptionistService(postgres.NewReceptionistRepository(pool))

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	appointmentHandler := handler.NewAppointmentHandler(appointmentService)
	contactHandler := handler.NewContactHandler(contactService)
	patientHandler := handler.NewPatientHandler(patientService)
	receptionistHandler := handler.NewReceptionistHandler(receptionistService)

	protect := middleware.Protect(authService)

	// --- Auth routes ---
	e.POST("/signup", authHandler.Signup)
	e.POST("/login", authHandler.Login)
	e.POST("/forgot-password", authHandler.ForgotPassword)
	e.PATCH("/reset-password/:token", authHandler.ResetPassword)
	e.PATCH("/update-password", authHandler.UpdatePassword, protect)

	// --- Appointments (any authenticated user) ---
	appointments := e.Group("/appointments", protect)
	appointments.POST("", appointmentHandler.Create)
	appointments.GET("", appointmentHandler.List)
	appointments.GET("/:id", appointmentHandler.Get)
	appointments.PUT("/:id", appointmentHandler.Update)
	appointments.DELETE("/:id", appointmentHandler.Delete)

	// --- User administration (admin only) ---
	users := e.Group("/users", protect, middleware.RestrictTo(domain.RoleAdmin))
	users.POST("", userHandler.Create)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	// --- Emergency contacts (any authenticated user) ---
	contacts := e.Group("/emergency-contacts", protect)
	contacts.POST("", contactHandler.Create)
	contacts.PUT("/:id", contactHandler.Update)
	contacts.DELETE("/:id", contactHandler.Delete)

	// --- Patient views ---
	patients := e.Group("/patients", protect, middleware.RestrictTo(domain.RolePatient, domain.RoleDoctor, domain.RoleAdmin))
	patients.GET("/:id/appointments", patientHandler.Appointments)
	patients.GET("/:id/medical-history", patientHandler.MedicalHistory)

	// --- Receptionist views ---
	receptionists := e.Group("/receptionists", protect, middleware.RestrictTo(domain.RoleReceptionist, domain.RoleAdmin))
	receptionists.GET("/:id/associated-doctor", receptionistHandler.AssociatedDoctor)
	receptionists.GET("/:id/appointments", receptionistHandler.DoctorAppointments)
	receptionists.GET("/:id/medical-histories", receptionistHandler.DoctorMedicalHistories)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(pool, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e, nil
}
