package handlers

import (
	"os"

	"github.com/go-chi/chi"
	"github.com/go-chi/jwtauth"
	log "github.com/sirupsen/logrus"
)

func (h *Handler) SetRoutes(r *chi.Mux) {
	// public routes
	r.Post("/signup", h.SignupHandler)
	r.Post("/login", h.LoginHandler)

	r.Route("/v1", func(r chi.Router) {

		// Secure routes
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(h.tokenAuth))
			r.Use(jwtauth.Authenticator)

			r.Get("/health", h.HealthHandler)

			r.Post("/players", h.CreatePlayerHandler)
			r.Delete("/players", h.DeletePlayerHandler)
			r.Get("/players", h.ListPlayersHandler)

			r.Post("/games", h.CreateGameTypeHandler)
			r.Delete("/games", h.DeleteGameTypeHandler)
			r.Get("/games", h.ListGameTypesHandler)

			r.Post("/matches", h.RecordMatchHandler)
			r.Put("/ratings", h.SetRatingHandler)
			r.Get("/history", h.ListHistoryHandler)

			r.Get("/live", h.LiveHandler)
		})
	})
}

func (h *Handler) InitAuth() {
	var jwtKey = os.Getenv("JWT_SECRET_KEY")
	if jwtKey == "" {
		log.Warn("JWT_SECRET_KEY not set, using an empty signing key")
	}
	h.tokenAuth = jwtauth.New("HS256", []byte(jwtKey), nil)
}
