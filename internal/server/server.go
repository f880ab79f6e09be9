// Package server is the composition root: it opens the database, builds
// services and handlers, mounts routes and runs the HTTP server with
// graceful shutdown.
//
// Wiring order:
//
//	config → sqlite.DB → services → handlers → chi router
//
// Services receive repository interfaces (satisfied by *sqlite.DB);
// handlers receive services. Nothing below the handlers knows about HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/healthtrack/internal/auth"
	"github.com/sakif/healthtrack/internal/config"
	"github.com/sakif/healthtrack/internal/handler"
	"github.com/sakif/healthtrack/internal/middleware"
	sqliteRepo "github.com/sakif/healthtrack/internal/repository/sqlite"
	"github.com/sakif/healthtrack/internal/service"
)

// shutdownTimeout is how long in-flight requests get to finish.
const shutdownTimeout = 30 * time.Second

// Server owns the router and the database connection. The connection is
// closed when Start returns.
type Server struct {
	router *chi.Mux
	config *config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New opens and migrates the database at cfg.Database.Path and wires every
// route.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close releases the database. Start calls it on the way out.
func (s *Server) Close() error {
	return s.db.Close()
}

// setupRoutes mounts:
//
//	GET    /healthz
//	POST   /api/auth/register | login | logout
//	GET    /api/user/profile           PUT /api/user/profile
//	GET    /api/meals[?today=1]        POST /api/meals
//	GET    /api/moods[?today=1]        POST /api/moods
//	GET    /api/workouts[?today=1]     POST /api/workouts
//	GET    /api/medications            POST /api/medications   DELETE /api/medications[/{id}]
//	GET    /api/emergency              POST /api/emergency     DELETE /api/emergency[/{id}]
//	GET    /api/pregnancy              POST /api/pregnancy     PUT /api/pregnancy
//	GET    /api/dashboard
//
// Everything under /api except the auth endpoints requires a token.
//
// Middleware order matters: RequestID runs first so the logger can read
// it, and CORS answers preflights before auth would reject them.
func (s *Server) setupRoutes() error {
	tokens, err := auth.NewTokenService(s.config.JWT.Secret, s.config.JWT.Issuer, s.config.JWT.AccessTokenTTL)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService(s.config.Auth.BcryptCost)

	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.CORS(s.config.CORS.AllowedOrigins))

	// *sqlite.DB implements every repository interface.
	authService := service.NewAuthService(s.db, tokens, passwords, s.logger)
	userService := service.NewUserService(s.db, s.logger)
	mealService := service.NewMealService(s.db, s.logger)
	moodService := service.NewMoodService(s.db, s.logger)
	workoutService := service.NewWorkoutService(s.db, s.logger)
	medicationService := service.NewMedicationService(s.db, s.logger)
	contactService := service.NewEmergencyContactService(s.db, s.logger)
	pregnancyService := service.NewPregnancyService(s.db, s.db, s.logger)
	dashboardService := service.NewDashboardService(service.DashboardRepos{
		Users:       s.db,
		Meals:       s.db,
		Moods:       s.db,
		Workouts:    s.db,
		Medications: s.db,
		Pregnancy:   s.db,
	}, s.logger)

	authHandler := handler.NewAuthHandler(authService, tokens.TTL(), s.config.Auth.CookieSecure, s.logger)
	profileHandler := handler.NewProfileHandler(userService, s.logger)
	mealHandler := handler.NewMealHandler(mealService, s.logger)
	moodHandler := handler.NewMoodHandler(moodService, s.logger)
	workoutHandler := handler.NewWorkoutHandler(workoutService, s.logger)
	medicationHandler := handler.NewMedicationHandler(medicationService, s.logger)
	contactHandler := handler.NewEmergencyContactHandler(contactService, s.logger)
	pregnancyHandler := handler.NewPregnancyHandler(pregnancyService, s.logger)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)

	s.router.Get("/healthz", handler.HandleHealth(s.db, s.logger))

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandler.HandleRegister)
		r.Post("/auth/login", authHandler.HandleLogin)
		r.Post("/auth/logout", authHandler.HandleLogout)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(tokens))

			r.Get("/user/profile", profileHandler.HandleGet)
			r.Put("/user/profile", profileHandler.HandleUpdate)

			r.Get("/meals", mealHandler.HandleList)
			r.Post("/meals", mealHandler.HandleCreate)

			r.Get("/moods", moodHandler.HandleList)
			r.Post("/moods", moodHandler.HandleCreate)

			r.Get("/workouts", workoutHandler.HandleList)
			r.Post("/workouts", workoutHandler.HandleCreate)

			r.Get("/medications", medicationHandler.HandleList)
			r.Post("/medications", medicationHandler.HandleCreate)
			r.Delete("/medications", medicationHandler.HandleDelete)
			r.Delete("/medications/{id}", medicationHandler.HandleDelete)

			r.Get("/emergency", contactHandler.HandleList)
			r.Post("/emergency", contactHandler.HandleCreate)
			r.Delete("/emergency", contactHandler.HandleDelete)
			r.Delete("/emergency/{id}", contactHandler.HandleDelete)

			r.Get("/pregnancy", pregnancyHandler.HandleGet)
			r.Post("/pregnancy", pregnancyHandler.HandleCreate)
			r.Put("/pregnancy", pregnancyHandler.HandleUpdate)

			r.Get("/dashboard", dashboardHandler.HandleGet)
		})
	})

	return nil
}

// Start serves HTTP until SIGINT or SIGTERM, then drains in-flight
// requests for up to shutdownTimeout and closes the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.config.App.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.App.Port),
			slog.String("env", s.config.App.Env),
			slog.String("database", s.config.Database.Path),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
