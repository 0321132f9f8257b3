package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"orcamento/go_backend/internal/app/config"
	"orcamento/go_backend/internal/app/http/handlers"
	"orcamento/go_backend/internal/app/http/middleware"
)

func NewRouter(cfg config.Config, h *handlers.Handlers, log *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(log))
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(cfg.CORSAllowOrigin))

	r.Get("/health", h.Health)
	r.Get("/", h.QuoteForm)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/quotes", h.CreateQuote)
	})

	return r
}
