package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/satyam/medicare-backend/internal/api/handlers"
	"github.com/satyam/medicare-backend/internal/api/middleware"
	"github.com/satyam/medicare-backend/internal/metrics"
	"github.com/satyam/medicare-backend/internal/service"
)

// NewRouter wires the HTTP boundary. Paths match the mobile client verbatim;
// they are flat, unversioned routes at the root.
func NewRouter(services *service.Services, collector *metrics.Collector) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	r.Method(http.MethodGet, "/metrics", collector.Handler())

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth)
	triageHandler := handlers.NewTriageHandler(services.Triage)
	medicationHandler := handlers.NewMedicationHandler(services.Medication)
	periodHandler := handlers.NewPeriodHandler(services.Period)
	wsHandler := handlers.NewWebSocketHandler(services.Auth, services.Triage)

	// Credential endpoints, rate limited against brute force
	limiter := middleware.NewRateLimiter(30)
	r.Group(func(r chi.Router) {
		r.Use(limiter.Limit)
		r.Post("/signup", authHandler.Signup)
		r.Post("/login", authHandler.Login)
	})

	// Token probe keeps the original status-code contract, so it does its
	// own verification instead of using the auth middleware.
	r.Get("/protected", authHandler.Protected)

	// Triage chat: identity is the username body field, not a token
	r.Post("/generate-response", triageHandler.GenerateResponse)
	r.Get("/ws", wsHandler.Handle)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(services.Auth))

		r.Get("/medicines", medicationHandler.List)
		r.Post("/add-medicine", medicationHandler.Add)
		r.Patch("/update-medication-time/{id}", medicationHandler.UpdateTime)

		r.Post("/set-period", periodHandler.SetPeriod)
		r.Get("/get-next-period", periodHandler.GetNextPeriod)
	})

	return r
}
