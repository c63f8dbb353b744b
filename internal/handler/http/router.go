package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hrms-lite-go/internal/config"
	"github.com/cmlabs-hris/hrms-lite-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hrms-lite-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"golang.org/x/time/rate"
)

func NewRouter(
	cfg *config.Config,
	logger *slog.Logger,
	employeeHandler EmployeeHandler,
	attendanceHandler AttendanceHandler,
	healthHandler HealthHandler,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.HTTP.CORSAllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RequestID)
	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.StripSlashes)
	r.Use(chiMiddleware.Recoverer)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})

	writeLimit := middleware.RateLimitByIP(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst)

	routes := func(r chi.Router) {
		r.Get("/health", healthHandler.Check)

		r.Route("/employees", func(r chi.Router) {
			r.Get("/", employeeHandler.ListEmployees)
			r.With(writeLimit).Post("/", employeeHandler.CreateEmployee)
			r.Get("/{employee_id}", employeeHandler.GetEmployee)
			r.With(writeLimit).Patch("/{employee_id}", employeeHandler.UpdateEmployee)
			r.With(writeLimit).Delete("/{employee_id}", employeeHandler.DeleteEmployee)
		})

		r.Route("/attendance", func(r chi.Router) {
			r.Get("/", attendanceHandler.List)
			r.With(writeLimit).Post("/", attendanceHandler.Mark)
			r.Get("/employee/{employee_id}", attendanceHandler.ListByEmployee)
			r.Get("/stats/{employee_id}", attendanceHandler.Stats)
		})
	}

	if cfg.HTTP.BasePath == "" || cfg.HTTP.BasePath == "/" {
		routes(r)
	} else {
		r.Route(cfg.HTTP.BasePath, routes)
	}

	return r
}
