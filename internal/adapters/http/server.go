// Package http exposes a read-only introspection surface for a running job:
// health, the adopted listener set, and Prometheus metrics.
package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Inspector is the view of a sequence the introspection surface needs.
type Inspector interface {
	Name() string
	Actors() []string
}

// SequenceView is the JSON shape of the /sequence endpoint.
type SequenceView struct {
	Name   string   `json:"name"`
	Actors []string `json:"actors"`
}

// NewHandler builds the introspection router. The gatherer may be nil, in
// which case /metrics is not mounted.
func NewHandler(seq Inspector, gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok\n"))
	})

	r.Get("/sequence", func(w http.ResponseWriter, req *http.Request) {
		view := SequenceView{
			Name:   seq.Name(),
			Actors: seq.Actors(),
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(view); err != nil {
			http.Error(w, "failed to encode sequence", http.StatusInternalServerError)
		}
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	return r
}
