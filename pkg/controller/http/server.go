package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/safevoice-lab/safevoice/pkg/usecase"
)

// Server represents the dashboard HTTP server
type Server struct {
	*http.Server
	router chi.Router
}

// NewServer creates a new HTTP server exposing the three presentation
// surfaces (table, analytics, board) plus summary, refresh and CSV export
func NewServer(
	ctx context.Context,
	addr string,
	store *usecase.Store,
	board *usecase.Board,
	views *usecase.Views,
) *Server {
	router := chi.NewRouter()

	// Apply global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(CORS)
	router.Use(middleware.Recoverer)

	h := newHandler(store, board, views)

	// Health check
	router.Get("/health", handleHealth)

	// API routes
	router.Route("/api", func(r chi.Router) {
		r.Get("/incidents", h.handleIncidents)
		r.Get("/table", h.handleTable)
		r.Get("/analytics", h.handleAnalytics)
		r.Get("/summary", h.handleSummary)
		r.Post("/refresh", h.handleRefresh)
		r.Post("/drilldown", h.handleDrilldown)
		r.Get("/export.csv", h.handleExportCSV)

		r.Route("/board", func(r chi.Router) {
			r.Get("/", h.handleBoard)
			r.Put("/{incidentID}/stage", h.handleSetStage)
			r.Put("/{incidentID}/note", h.handleSetNote)
			r.Put("/{incidentID}/move", h.handleMove)
		})
	})

	// The real front-end is an external collaborator; the root serves a
	// minimal landing page only.
	router.Get("/*", handleLandingPage)

	return &Server{
		Server: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
		router: router,
	}
}

// handleHealth handles health check requests
func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "safevoice",
	})
}

// handleLandingPage handles the root path
func handleLandingPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(`<!DOCTYPE html>
<html>
<head>
    <title>SafeVoice</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif;
            display: flex;
            justify-content: center;
            align-items: center;
            height: 100vh;
            margin: 0;
            background: linear-gradient(135deg, #0f172a 0%, #1e293b 100%);
            color: white;
        }
        .container {
            text-align: center;
            padding: 2rem;
            background: rgba(255, 255, 255, 0.05);
            border-radius: 10px;
        }
        h1 {
            margin: 0 0 1rem 0;
            font-size: 3rem;
        }
        p {
            margin: 0.5rem 0;
            font-size: 1.2rem;
        }
        code {
            color: #93c5fd;
        }
    </style>
</head>
<body>
    <div class="container">
        <h1>SafeVoice</h1>
        <p>Incident dashboard API</p>
        <p><code>/api/table</code> &middot; <code>/api/analytics</code> &middot; <code>/api/board</code></p>
    </div>
</body>
</html>`)); err != nil {
		ctxlog.From(r.Context()).Error("Failed to write landing page", "error", err)
	}
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		ctxlog.From(r.Context()).Error("Failed to encode response", "error", err)
	}
}

// writeError writes an error response
func writeError(w http.ResponseWriter, r *http.Request, err error, status int) {
	var message string
	if goErr := goerr.Unwrap(err); goErr != nil {
		message = goErr.Error()
	} else {
		message = err.Error()
	}

	writeJSON(w, r, status, map[string]string{
		"error": message,
	})
}
