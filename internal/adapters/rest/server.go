package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Server combines all handlers and mounts them on a router
type Server struct {
	*HealthHandler
	*EventsHandler
	*JournalHandler
}

// NewServer creates a new server from its handlers
func NewServer(
	healthHandler *HealthHandler,
	eventsHandler *EventsHandler,
	journalHandler *JournalHandler,
) *Server {
	return &Server{
		HealthHandler:  healthHandler,
		EventsHandler:  eventsHandler,
		JournalHandler: journalHandler,
	}
}

// Routes mounts the API under /api/v1. emitGuard wraps the emit route only; pass nil for none.
func (s *Server) Routes(r chi.Router, emitGuard func(http.Handler) http.Handler) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health/live", s.GetLiveness)
		r.Get("/health/ready", s.GetReadiness)

		r.Get("/events", s.ListEvents)
		r.Group(func(r chi.Router) {
			if emitGuard != nil {
				r.Use(emitGuard)
			}
			r.Post("/events/{name}", s.EmitEvent)
		})

		r.Get("/journal", s.ListJournal)
	})
}
