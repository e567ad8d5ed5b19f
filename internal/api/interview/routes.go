package interview

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers interview routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/api/interview", func(r chi.Router) {
		r.Post("/start", h.StartInterview)
		r.Get("/history", h.History)
		r.Get("/dashboard", h.Dashboard)
		r.Get("/{id}", h.GetSession)
		r.Post("/{id}/answer", h.SubmitAnswer)
		r.Post("/{id}/answer/audio", h.SubmitAudioAnswer)
		r.Post("/{id}/cancel", h.CancelSession)
		r.Get("/{id}/feedback", h.GetFeedback)
	})
}
