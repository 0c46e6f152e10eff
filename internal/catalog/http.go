package catalog

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"Storefront/pkg/kit"
)

type Server struct {
	Catalog Catalog
	// Delay is held before every product list response.
	Delay time.Duration
	Log   *zap.Logger
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.GetHead)

	r.Get("/healthz", kit.Healthz)
	r.Get("/readyz", kit.Healthz)

	r.Get("/api/products", s.list)

	return r
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	if s.Delay > 0 {
		t := time.NewTimer(s.Delay)
		defer t.Stop()

		select {
		case <-t.C:
		case <-r.Context().Done():
			if s.Log != nil {
				s.Log.Debug("client gone during delay",
					zap.String("request_id", chimw.GetReqID(r.Context())),
					zap.Error(r.Context().Err()),
				)
			}
			return
		}
	}

	kit.WriteJSON(w, http.StatusOK, s.Catalog.List())
}
