package httpserver

import (
	"net/http"
	"time"

	"potluck-app-go/internal/transport/httpserver/handler"
	authmw "potluck-app-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(handlers *handler.Handlers, auth *authmw.SessionAuth) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(authmw.NewCORS([]string{"http://localhost:5173"}))

	r.Get("/health", handlers.Health)

	r.Route("/auth", func(r chi.Router) {
		r.Get("/login", handlers.Login)
		r.Get("/callback", handlers.Callback)
		r.Post("/logout", handlers.Logout)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(auth.Middleware)

		r.Get("/me", handlers.Me)
		r.Get("/people", handlers.SearchPeople)

		r.Post("/people/{id}/signup", handlers.SignUpPerson)
		r.Post("/households/{id}/signup", handlers.SignUpHousehold)

		r.Get("/roster", handlers.ListRoster)
		r.Post("/roster/people/{id}/toggle-signup", handlers.TogglePersonSignup)
		r.Post("/roster/people/{id}/toggle-host", handlers.TogglePersonHost)
		r.Post("/roster/households/{id}/toggle-signup", handlers.ToggleHouseholdSignup)
		r.Post("/roster/households/{id}/toggle-host", handlers.ToggleHouseholdHost)

		r.Get("/series", handlers.ListSeries)
		r.Post("/series", handlers.CreateSeries)
		r.Get("/series/{series_id}/potlucks", handlers.ListPotlucks)
		r.Post("/series/{series_id}/potlucks", handlers.CreatePotluck)
		r.Get("/potlucks/{potluck_id}/attendance", handlers.ListAttendance)
		r.Post("/potlucks/{potluck_id}/attendance", handlers.RecordAttendance)
		r.Get("/potlucks/{potluck_id}/pairings", handlers.ListPairings)
		r.Post("/potlucks/{potluck_id}/pairings", handlers.RecordPairing)
	})

	return r
}
