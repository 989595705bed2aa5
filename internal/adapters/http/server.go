package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/metachem/internal/presentation/graph"
	metagraph "github.com/aretw0/metachem/pkg/graph"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Inspection is the read-only view served by NewHandler.
type Inspection struct {
	Chemistry string
	Version   string
	Graph     *metagraph.Graph
	Start     string
	// Gatherer backs /metrics. Nil disables the route.
	Gatherer prometheus.Gatherer
}

// NewHandler creates the inspection router.
func NewHandler(in Inspection) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]string{"status": "ok"})
	})

	r.Get("/info", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]string{
			"app":       "metachem",
			"version":   in.Version,
			"chemistry": in.Chemistry,
			"start":     in.Start,
		})
	})

	r.Route("/graph", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			if in.Graph == nil {
				http.Error(w, "no graph loaded", http.StatusNotFound)
				return
			}
			opts := graph.Options{Containers: r.URL.Query().Get("containers") != ""}
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			fmt.Fprint(w, graph.GenerateMermaid(in.Graph, opts))
		})
		r.Get("/warnings", func(w http.ResponseWriter, r *http.Request) {
			if in.Graph == nil {
				http.Error(w, "no graph loaded", http.StatusNotFound)
				return
			}
			type warning struct {
				Code    string `json:"code"`
				Node    string `json:"node"`
				Message string `json:"message"`
			}
			out := []warning{}
			for _, wn := range in.Graph.Check(in.Start) {
				out = append(out, warning{Code: string(wn.Code), Node: wn.NodeID, Message: wn.Message})
			}
			writeJSON(w, out)
		})
	})

	if in.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(in.Gatherer, promhttp.HandlerOpts{}))
	}

	return r
}

// Serve runs handler on addr until ctx is done, then shuts down gracefully.
func Serve(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("inspection server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Info("inspection server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
