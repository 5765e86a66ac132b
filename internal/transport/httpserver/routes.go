package httpserver

import (
	"net/http"
	"time"

	"sitetrack-go/internal/config"
	"sitetrack-go/internal/transport/httpserver/handler"
	authmw "sitetrack-go/internal/transport/httpserver/middleware"
	"sitetrack-go/pkg/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, profiles authmw.ProfileSaver, registry *prometheus.Registry, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(authmw.NewCORS(cfg.CORSOrigins))

	if registry != nil {
		metrics := authmw.NewMetrics(registry)
		r.Use(metrics.Middleware)
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	// Webhook sits outside the auth group: it authenticates with its own
	// HMAC signature, not a bearer token.
	r.Post("/webhooks/identity", handlers.IdentityWebhook)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		auth := authmw.NewIdentityAuth(cfg.Identity, profiles, log)
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			// The websocket outlives the request timeout, so it is routed
			// before the timeout middleware is applied.
			r.Get("/live", handlers.Live)

			r.Group(func(r chi.Router) {
				r.Use(chimw.Timeout(30 * time.Second))

				r.Get("/auth/me", handlers.AuthMe)

				r.Get("/clients", handlers.ListClients)
				r.Post("/clients", handlers.CreateClient)
				r.Get("/clients/{id}", handlers.GetClient)
				r.Patch("/clients/{id}", handlers.UpdateClient)
				r.Delete("/clients/{id}", handlers.DeleteClient)

				r.Get("/projects", handlers.ListProjects)
				r.Get("/projects/with-clients", handlers.ListProjectsWithClients)
				r.Post("/projects", handlers.CreateProject)
				r.Get("/projects/{id}", handlers.GetProject)
				r.Patch("/projects/{id}", handlers.UpdateProject)
				r.Delete("/projects/{id}", handlers.DeleteProject)
				r.Get("/projects/{id}/users", handlers.ListProjectUsers)

				r.Get("/visits", handlers.ListVisits)
				r.Post("/visits", handlers.CreateVisit)
				r.Get("/visits/{id}", handlers.GetVisit)
				r.Get("/visits/{id}/with-photos", handlers.GetVisitWithPhotos)
				r.Patch("/visits/{id}", handlers.UpdateVisit)
				r.Delete("/visits/{id}", handlers.DeleteVisit)

				r.Get("/photos", handlers.ListPhotos)
				r.Post("/photos", handlers.CreatePhoto)
				r.Get("/photos/{id}", handlers.GetPhoto)
				r.Patch("/photos/{id}", handlers.UpdatePhoto)
				r.Delete("/photos/{id}", handlers.DeletePhoto)

				r.Get("/assignments", handlers.ListAssignments)
				// Plain create and assign share the upsert: the unique
				// (user, project) pair makes them the same write.
				r.Post("/assignments", handlers.Assign)
				r.Post("/assignments/assign", handlers.Assign)
				r.Get("/assignments/{id}", handlers.GetAssignment)
				r.Patch("/assignments/{id}", handlers.UpdateAssignment)
				r.Delete("/assignments/{id}", handlers.DeleteAssignment)

				r.Get("/users/{user_id}/projects", handlers.ListUserProjects)

				r.Post("/uploads", handlers.CreateUpload)
			})
		})
	})

	return r
}
