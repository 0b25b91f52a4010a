package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/devcampdir/api/internal/auth"
	"github.com/devcampdir/api/internal/constants"
	"github.com/devcampdir/api/internal/middleware"
	"github.com/devcampdir/api/internal/utils"
)

// SetupRoutes builds the router: global middleware, the health
// endpoint, and the versioned API routes grouped by resource.
func (s *Server) SetupRoutes() {
	r := chi.NewRouter()

	r.Use(middleware.CORS(&s.Config.CORS))
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery())
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.RequestLogger(s.Config.Logging.RequestLog))
	r.Use(middleware.RateLimit(s.limiters, "default"))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.Error(w, http.StatusNotFound, constants.MsgRouteNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.Error(w, http.StatusMethodNotAllowed, constants.MsgMethodNotAllowed)
	})

	r.Get(constants.HealthPath, s.handleHealth)

	requireAuth := auth.RequireAuth(s.jwtService)
	requirePublisher := auth.RequireRole(constants.RolePublisher, constants.RoleAdmin)
	requireAdmin := auth.RequireRole(constants.RoleAdmin)

	r.Route(constants.APIBasePath, func(r chi.Router) {
		r.Route(constants.AuthBasePath, func(r chi.Router) {
			r.Use(middleware.RateLimit(s.limiters, "auth"))

			r.Post(constants.AuthRegisterPath, s.Handlers.AuthHandler.Register)
			r.Post(constants.AuthLoginPath, s.Handlers.AuthHandler.Login)
			r.Get(constants.AuthLogoutPath, s.Handlers.AuthHandler.Logout)
			r.Post(constants.AuthForgotPasswordPath, s.Handlers.AuthHandler.ForgotPassword)
			r.Put(constants.AuthResetPasswordPath, s.Handlers.AuthHandler.ResetPassword)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Get(constants.AuthMePath, s.Handlers.AuthHandler.Me)
				r.Put(constants.AuthUpdateMePath, s.Handlers.AuthHandler.UpdateMe)
				r.Put(constants.AuthUpdatePasswordPath, s.Handlers.AuthHandler.UpdatePassword)
			})
		})

		r.Route("/bootcamps", func(r chi.Router) {
			r.Get("/", s.Handlers.BootcampHandler.List)
			r.Get("/{id}", s.Handlers.BootcampHandler.Get)
			r.Get("/{id}/courses", s.Handlers.BootcampHandler.ListCourses)
			r.Get("/{id}/reviews", s.Handlers.BootcampHandler.ListReviews)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth, requirePublisher)
				r.Post("/", s.Handlers.BootcampHandler.Create)
				r.Put("/{id}", s.Handlers.BootcampHandler.Update)
				r.Delete("/{id}", s.Handlers.BootcampHandler.Delete)
				r.Post("/{id}/courses", s.Handlers.BootcampHandler.CreateCourse)
			})

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/{id}/reviews", s.Handlers.BootcampHandler.CreateReview)
			})
		})

		r.Route("/courses", func(r chi.Router) {
			r.Get("/", s.Handlers.CourseHandler.List)
			r.Get("/{id}", s.Handlers.CourseHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth, requirePublisher)
				r.Put("/{id}", s.Handlers.CourseHandler.Update)
				r.Delete("/{id}", s.Handlers.CourseHandler.Delete)
			})
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Get("/", s.Handlers.ReviewHandler.List)
			r.Get("/{id}", s.Handlers.ReviewHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Put("/{id}", s.Handlers.ReviewHandler.Update)
				r.Delete("/{id}", s.Handlers.ReviewHandler.Delete)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(requireAuth, requireAdmin)

			r.Get("/", s.Handlers.UserHandler.List)
			r.Post("/", s.Handlers.UserHandler.Create)
			r.Get("/{id}", s.Handlers.UserHandler.Get)
			r.Put("/{id}", s.Handlers.UserHandler.Update)
			r.Delete("/{id}", s.Handlers.UserHandler.Delete)
		})
	})

	s.router = r
}

// GetRouter returns the configured router, primarily for tests.
func (s *Server) GetRouter() chi.Router {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.Db.HealthCheck(r.Context()); err != nil {
		log.Error().Err(err).Msg("Health check failed")
		utils.Error(w, http.StatusServiceUnavailable, "Service is not healthy")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": s.Config.App.Version,
	})
}
