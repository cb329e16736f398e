package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/zankoclinic/clinic-api/internal/config"
	"github.com/zankoclinic/clinic-api/internal/handler"
	adminHandler "github.com/zankoclinic/clinic-api/internal/handler/admin"
	appointmentHandler "github.com/zankoclinic/clinic-api/internal/handler/appointment"
	authHandler "github.com/zankoclinic/clinic-api/internal/handler/auth"
	doctorHandler "github.com/zankoclinic/clinic-api/internal/handler/doctor"
	orthodonticHandler "github.com/zankoclinic/clinic-api/internal/handler/orthodontic"
	patientHandler "github.com/zankoclinic/clinic-api/internal/handler/patient"
	reminderHandler "github.com/zankoclinic/clinic-api/internal/handler/reminder"
	statsHandler "github.com/zankoclinic/clinic-api/internal/handler/stats"
	"github.com/zankoclinic/clinic-api/internal/middleware"
	"github.com/zankoclinic/clinic-api/internal/repository/postgres"
	"github.com/zankoclinic/clinic-api/internal/router"
	adminService "github.com/zankoclinic/clinic-api/internal/service/admin"
	appointmentService "github.com/zankoclinic/clinic-api/internal/service/appointment"
	authService "github.com/zankoclinic/clinic-api/internal/service/auth"
	doctorService "github.com/zankoclinic/clinic-api/internal/service/doctor"
	orthodonticService "github.com/zankoclinic/clinic-api/internal/service/orthodontic"
	patientService "github.com/zankoclinic/clinic-api/internal/service/patient"
	reminderService "github.com/zankoclinic/clinic-api/internal/service/reminder"
	statsService "github.com/zankoclinic/clinic-api/internal/service/stats"
	"github.com/zankoclinic/clinic-api/internal/session"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := postgres.RunMigrations(context.Background(), db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	adminRepo := postgres.NewAdminRepository(db)
	doctorRepo := postgres.NewDoctorRepository(db)
	patientRepo := postgres.NewPatientRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	orthodonticRepo := postgres.NewOrthodonticRepository(db)

	var sessions session.Store
	if cfg.Redis.Enabled {
		sessions, err = session.NewRedisStore(cfg.Redis.URL, cfg.Session.TTL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
		}
	} else {
		sessions = session.NewMemoryStore(cfg.Session.TTL)
	}

	authSvc := authService.NewService(adminRepo, doctorRepo, sessions, cfg.Session.Secret, cfg.Session.TTL)
	adminSvc := adminService.NewService(adminRepo)
	doctorSvc := doctorService.NewService(doctorRepo)
	patientSvc := patientService.NewService(patientRepo)
	appointmentSvc := appointmentService.NewService(appointmentRepo)
	reminderSvc := reminderService.NewService(appointmentRepo)
	orthodonticSvc := orthodonticService.NewService(orthodonticRepo, patientRepo)
	statsSvc := statsService.NewService(adminRepo, doctorRepo, patientRepo, appointmentRepo)

	if err := adminSvc.EnsureDefault(context.Background(),
		cfg.Bootstrap.AdminName, cfg.Bootstrap.AdminEmail, cfg.Bootstrap.AdminPassword); err != nil {
		log.Fatal().Err(err).Msg("failed to seed default admin")
	}

	authMiddleware := middleware.NewAuthMiddleware(authSvc, cfg.Session.CookieName)

	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.CORS.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.CORS.AllowedOrigins
	}

	r := router.NewRouter(authMiddleware, router.Handlers{
		Auth:        authHandler.NewHandler(authSvc, cfg.Session.CookieName, cfg.Session.TTL),
		Admin:       adminHandler.NewHandler(adminSvc),
		Doctor:      doctorHandler.NewHandler(doctorSvc),
		Patient:     patientHandler.NewHandler(patientSvc),
		Appointment: appointmentHandler.NewHandler(appointmentSvc),
		Reminder:    reminderHandler.NewHandler(reminderSvc),
		Orthodontic: orthodonticHandler.NewHandler(orthodonticSvc),
		Stats:       statsHandler.NewHandler(statsSvc),
		Health:      handler.NewHealth(db),
	}, router.Config{
		RateLimit:  rate.Limit(cfg.RateLimit.RPS),
		RateBurst:  cfg.RateLimit.Burst,
		CORSConfig: corsCfg,
	})
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
