package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

// NewRouter wires the handlers. loginRateLimit caps signup and login attempts
// per client IP per minute; zero disables the cap. The client IP is the peer
// address: forwarding headers are not trusted.
func NewRouter(h *Handler, loginRateLimit int) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/ping", h.Ping)

	r.Route("/api", func(r chi.Router) {
		r.Post("/sessions", h.CreateSession)

		r.Group(func(pr chi.Router) {
			pr.Use(h.sessionAuth)

			pr.Get("/session", h.GetSession)
			pr.Get("/languages", h.Languages)
			pr.Post("/navigate", h.Navigate)
			pr.Post("/logout", h.Logout)
			pr.Post("/input/text", h.TextInput)
			pr.Post("/input/speech", h.SpeechInput)
			pr.Post("/translate", h.Translate)

			pr.Group(func(lr chi.Router) {
				if loginRateLimit > 0 {
					lr.Use(httprate.LimitByIP(loginRateLimit, time.Minute))
				}
				lr.Post("/signup", h.Signup)
				lr.Post("/login", h.Login)
			})
		})
	})

	return r
}
