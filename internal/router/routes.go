package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/jobee/jobee-api/internal/auth"
	"github.com/jobee/jobee-api/internal/handler"
	"github.com/jobee/jobee-api/internal/middleware"
	"github.com/jobee/jobee-api/internal/platform/metrics"
)

type Deps struct {
	Auth    *handler.AuthHandler
	Users   *handler.UserHandler
	Jobs    *handler.JobHandler
	JWT     *auth.JWTManager
	Fetcher middleware.UserFetcher
	Metrics *metrics.MetricsManager
	Logger  *zap.Logger
}

// New wires the full route table under /api/v1.
func New(d Deps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(d.Logger))
	r.Use(middleware.Metrics(d.Metrics))

	r.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Post("/register", d.Auth.Register)
		r.Post("/login", d.Auth.Login)
		r.Post("/password/forgot", d.Auth.ForgotPassword)
		r.Put("/password/reset/{token}", d.Auth.ResetPassword)

		r.Get("/jobs", d.Jobs.List)
		r.Get("/jobs/{zipcode}/{distance}", d.Jobs.InRadius)
		r.Get("/job/{id}/{slug}", d.Jobs.Get)
		r.Get("/stats/{topic}", d.Jobs.Stats)

		// Authenticated routes; role checks live in the usecases.
		r.Group(func(r chi.Router) {
			r.Use(middleware.JWTAuth(d.JWT, d.Fetcher, d.Logger))

			r.Get("/logout", d.Auth.Logout)

			r.Get("/me", d.Users.Profile)
			r.Put("/me/update", d.Users.UpdateProfile)
			r.Put("/password/update", d.Users.UpdatePassword)
			r.Delete("/me/delete", d.Users.DeleteAccount)

			r.Post("/job/new", d.Jobs.Create)
			r.Put("/job/{id}", d.Jobs.Update)
			r.Delete("/job/{id}", d.Jobs.Delete)
			r.Put("/job/{id}/apply", d.Jobs.Apply)

			r.Get("/jobs/applied", d.Jobs.Applied)
			r.Get("/jobs/published", d.Jobs.Published)

			r.Get("/users", d.Users.AdminListUsers)
			r.Delete("/user/{id}", d.Users.AdminDeleteUser)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handler.NotFound(w, r)
	})

	return r
}
