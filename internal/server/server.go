// Package server wires the application together: database, migrations,
// repositories, services, handlers and routes, plus server lifecycle
// management with graceful shutdown.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/devcampdir/api/internal/auth"
	"github.com/devcampdir/api/internal/config"
	"github.com/devcampdir/api/internal/constants"
	"github.com/devcampdir/api/internal/database"
	"github.com/devcampdir/api/internal/handlers"
	"github.com/devcampdir/api/internal/repository"
	"github.com/devcampdir/api/internal/service"
	"github.com/devcampdir/api/internal/utils/ratelimit"
	"github.com/devcampdir/api/migrations"
	"github.com/devcampdir/api/scripts"
)

// Handlers groups the HTTP handlers of the application.
type Handlers struct {
	AuthHandler     *handlers.AuthHandler
	BootcampHandler *handlers.BootcampHandler
	CourseHandler   *handlers.CourseHandler
	ReviewHandler   *handlers.ReviewHandler
	UserHandler     *handlers.UserHandler
}

// repositories groups the data access layer.
type repositories struct {
	users     repository.UserRepository
	bootcamps repository.BootcampRepository
	courses   repository.CourseRepository
	reviews   repository.ReviewRepository
}

// Server is the API server. It owns every component and manages their
// lifecycle from initialization through graceful shutdown.
type Server struct {
	Config   *config.AppConfig
	Db       *database.Pool
	Handlers *Handlers

	router      chi.Router
	httpServer  *http.Server
	jwtService  *auth.JWTService
	passwordCfg *auth.PasswordConfig
	repos       repositories
	limiters    *ratelimit.Store
}

// NewServer creates a fully wired server. Initialization order is
// database, migrations, seeds, auth providers, repositories, services,
// handlers and finally routes.
func NewServer(cfg *config.AppConfig) (*Server, error) {
	s := &Server{
		Config:      cfg,
		jwtService:  auth.NewJWTService(&cfg.JWT),
		passwordCfg: auth.ConfigFromAppConfig(cfg),
	}

	if err := s.setupDatabase(); err != nil {
		return nil, fmt.Errorf("failed to set up database: %w", err)
	}

	s.repos = repositories{
		users:     repository.NewUserRepository(s.Db),
		bootcamps: repository.NewBootcampRepository(s.Db),
		courses:   repository.NewCourseRepository(s.Db),
		reviews:   repository.NewReviewRepository(s.Db),
	}

	if err := s.setupHandlers(); err != nil {
		return nil, fmt.Errorf("failed to set up handlers: %w", err)
	}

	s.setupRateLimiters()
	s.SetupRoutes()

	s.httpServer = &http.Server{
		Addr:         cfg.Server.ServerAddress(),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  constants.DefaultIdleTimeout,
	}

	return s, nil
}

// setupDatabase connects to Postgres, runs migrations and seeds the
// initial data.
func (s *Server) setupDatabase() error {
	db, err := database.Connect(s.Config)
	if err != nil {
		return err
	}

	s.Db = db

	migrator := migrations.NewMigrator(db)
	if err := migrator.RunMigrations(context.Background()); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	seeder := scripts.NewSeeder(db, s.passwordCfg)
	if err := seeder.SeedDatabase(context.Background()); err != nil {
		return fmt.Errorf("failed to seed database: %w", err)
	}

	return nil
}

func (s *Server) setupHandlers() error {
	mailer, err := service.NewEmailService(&s.Config.Email)
	if err != nil {
		// ForgotPassword degrades to an error response without a mailer.
		// Everything else keeps working, so only warn.
		log.Warn().Err(err).Msg("Email service unavailable, password reset emails disabled")
	}

	var mailerIface service.Mailer
	if mailer != nil {
		mailerIface = mailer
	}

	authService := service.NewAuthService(s.repos.users, s.jwtService, s.passwordCfg, mailerIface)
	userService := service.NewUserService(s.repos.users, s.passwordCfg)

	s.Handlers = &Handlers{
		AuthHandler:     handlers.NewAuthHandler(authService, &s.Config.App),
		BootcampHandler: handlers.NewBootcampHandler(s.repos.bootcamps, s.repos.courses, s.repos.reviews),
		CourseHandler:   handlers.NewCourseHandler(s.repos.courses),
		ReviewHandler:   handlers.NewReviewHandler(s.repos.reviews),
		UserHandler:     handlers.NewUserHandler(userService),
	}

	return nil
}

func (s *Server) setupRateLimiters() {
	s.limiters = ratelimit.NewStore(ratelimit.Rate{
		RequestsPerSecond: s.Config.RateLimit.RequestsPerSecond,
		Burst:             s.Config.RateLimit.Burst,
	}, constants.RateLimitCleanupInterval)

	s.limiters.SetRate("auth", ratelimit.Rate{
		RequestsPerSecond: s.Config.RateLimit.AuthRequestsPerSecond,
		Burst:             s.Config.RateLimit.AuthBurst,
	})
}

// Start runs the HTTP server and blocks until a fatal error or a
// shutdown signal, then shuts down gracefully.
func (s *Server) Start() error {
	serverErrors := make(chan error, 1)

	go func() {
		log.Info().
			Str("address", s.Config.Server.ServerAddress()).
			Msg("Starting server")

		serverErrors <- s.httpServer.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info().
			Str("signal", sig.String()).
			Msg("Shutdown signal received")

		ctx, cancel := context.WithTimeout(context.Background(), s.Config.Server.ShutdownTimeout)
		defer cancel()

		if err := s.Shutdown(ctx); err != nil {
			if closeErr := s.httpServer.Close(); closeErr != nil {
				log.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}

// Shutdown stops the HTTP server once in-flight requests complete and
// closes the database connection.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	log.Info().Msg("Server stopped gracefully")

	s.Db.Close()
	log.Info().Msg("Database connection closed")

	return nil
}
