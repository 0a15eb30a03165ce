package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/riandyrn/otelchi"
)

func (app *Application) routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(otelchi.Middleware("cinema-booking-api", otelchi.WithChiRoutes(r)))
	r.Use(app.recoverPanic)
	r.Use(app.sessionManager.LoadAndSave)
	r.Use(app.requestLogger)

	r.Get("/healthcheck", app.HealthcheckHandler)

	r.Post("/users", app.RegisterUserHandler)
	r.Post("/auth/login", app.LoginHandler)
	r.Post("/auth/logout", app.LogoutHandler)

	r.Route("/movies", func(r chi.Router) {
		r.Get("/", app.ListMoviesHandler)
		r.Get("/{movieId}", app.GetMovieHandler)

		r.With(app.requireAdmin).Post("/", app.CreateMovieHandler)
		r.With(app.requireAdmin).Patch("/{movieId}", app.UpdateMovieHandler)
		r.With(app.requireAdmin).Delete("/{movieId}", app.DeleteMovieHandler)
	})

	r.Route("/halls", func(r chi.Router) {
		r.Get("/", app.ListHallsHandler)
		r.Get("/{hallId}", app.GetHallHandler)

		r.With(app.requireAdmin).Post("/", app.CreateHallHandler)
		r.With(app.requireAdmin).Patch("/{hallId}", app.UpdateHallHandler)
		r.With(app.requireAdmin).Delete("/{hallId}", app.DeleteHallHandler)
	})

	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", app.ListSessionsHandler)
		r.Get("/{sessionId}", app.GetSessionHandler)
		r.Get("/{sessionId}/booking", app.GetBookingPageHandler)
		r.Get("/{sessionId}/rows/{row}/seats", app.GetAvailableSeatsHandler)

		r.With(app.requireAuthentication).Post("/{sessionId}/tickets", app.BookTicketHandler)

		r.With(app.requireAdmin).Post("/", app.CreateSessionHandler)
		r.With(app.requireAdmin).Patch("/{sessionId}", app.UpdateSessionHandler)
		r.With(app.requireAdmin).Delete("/{sessionId}", app.DeleteSessionHandler)
	})

	r.With(app.requireAuthentication).Get("/users/me/tickets", app.GetMyTicketsHandler)

	r.Route("/tickets", func(r chi.Router) {
		r.With(app.requireAdmin).Get("/", app.ListTicketsHandler)
		r.With(app.requireAdmin).Patch("/{ticketId}", app.ReassignTicketHandler)
		r.With(app.requireAdmin).Delete("/{ticketId}", app.DeleteTicketHandler)
	})

	return r
}
