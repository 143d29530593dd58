package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/linktracker/linktracker/internal/httpserver/deps"
	"github.com/linktracker/linktracker/internal/httpserver/handlers"
)

func init() { Register(registerLabels) }

func registerLabels(r chi.Router, d deps.Deps) {
	r.Route("/api/labels", func(r chi.Router) {
		r.Get("/", handlers.ListLabels(d))
		r.Post("/", handlers.CreateLabel(d))
	})
}
