package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"

	"github.com/portalbd/employee-portal-go/internal/config"
	"github.com/portalbd/employee-portal-go/internal/domain/session"
	"github.com/portalbd/employee-portal-go/internal/handler/http/middleware"
	"github.com/portalbd/employee-portal-go/internal/handler/http/response"
)

func NewRouter(
	cfg *config.Config,
	sessions session.Manager,
	authHandler AuthHandler,
	profileHandler ProfileHandler,
	attendanceHandler AttendanceHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "employee-portal"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.Message(w, "Service is healthy")
	})

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(sessions))

			r.Post("/auth/logout", authHandler.Logout)

			r.Route("/profile", func(r chi.Router) {
				r.Get("/", profileHandler.Get)
				r.Post("/setup", profileHandler.Setup)
				r.Get("/salary-breakdown", profileHandler.SalaryBreakdown)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/present", attendanceHandler.Present)
				r.Post("/absent", attendanceHandler.Absent)
				r.Post("/offday", attendanceHandler.Offday)
				r.Post("/leave", attendanceHandler.Leave)
				r.Post("/delete", attendanceHandler.Delete)
				r.Post("/cleanup", attendanceHandler.Cleanup)
				r.Get("/stats", attendanceHandler.Stats)
				r.Get("/history", attendanceHandler.History)
				r.Get("/months", attendanceHandler.Months)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})

	return r
}
