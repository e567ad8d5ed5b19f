package api

import (
	"net/http"
	"time"

	"github.com/careerforge/interview-backend/internal/api/docs"
	intakeapi "github.com/careerforge/interview-backend/internal/api/intake"
	interviewapi "github.com/careerforge/interview-backend/internal/api/interview"
	"github.com/careerforge/interview-backend/internal/api/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// SetupRouter creates and configures the HTTP router
func SetupRouter(interviewHandler *interviewapi.Handler, intakeHandler *intakeapi.Handler, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS)
	r.Use(chimiddleware.Timeout(120 * time.Second))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// Swagger documentation endpoints
	docs.RegisterRoutes(r)

	// Register routes
	interviewapi.RegisterRoutes(r, interviewHandler)
	intakeapi.RegisterRoutes(r, intakeHandler)

	return r
}
