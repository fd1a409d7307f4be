package server

import (
	"embed"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

//go:embed static
var staticFiles embed.FS

// NewRouter wires the HTTP routes of the web editor.
func NewRouter(logger *slog.Logger, api *APIHandlers) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFileFS(w, r, staticFiles, "static/index.html")
	})

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]any{"status": "ok"})
	})

	mux.HandleFunc("GET /api/grid", api.handleGrid)
	mux.HandleFunc("POST /api/mode", api.handleMode)
	mux.HandleFunc("POST /api/click", api.handleClick)
	mux.HandleFunc("POST /api/paint", api.handlePaint)
	mux.HandleFunc("POST /api/hover", api.handleHover)
	mux.HandleFunc("POST /api/rect", api.handleRect)
	mux.HandleFunc("POST /api/run", api.handleRun)
	mux.HandleFunc("POST /api/step", api.handleStep)
	mux.HandleFunc("POST /api/regenerate", api.handleRegenerate)
	mux.HandleFunc("POST /api/clear", api.handleClear)

	return loggingMiddleware(logger, mux)
}

func loggingMiddleware(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Debug("request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, err error) {
	respondJSON(w, status, map[string]string{"error": err.Error()})
}

type responseRecorder struct {
	http.ResponseWriter
	status int
}

func (r *responseRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
