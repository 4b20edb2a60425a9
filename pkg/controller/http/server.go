package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/ctxlog"
	"github.com/msp-lab/deskhawk/pkg/domain/model"
	"github.com/msp-lab/deskhawk/pkg/domain/types"
	"github.com/msp-lab/deskhawk/pkg/usecase"
)

// Server represents the HTTP server exposing analysis results
type Server struct {
	*http.Server
	router  chi.Router
	monitor *usecase.Monitor
}

// NewServer creates a new HTTP server. The monitor is injected once at
// construction; handlers hold no module-level state.
func NewServer(ctx context.Context, addr string, monitor *usecase.Monitor) *Server {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)

	s := &Server{
		Server: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
		router:  router,
		monitor: monitor,
	}

	router.Get("/health", handleHealth)

	router.Route("/api", func(r chi.Router) {
		r.Route("/patterns", func(r chi.Router) {
			r.Get("/user", s.handleUserPatterns)
			r.Get("/live", s.handleLivePatterns)
			r.Get("/member/{member}", s.handleMemberPatterns)
		})
		r.Get("/stats", s.handleStats)
	})

	return s
}

// patternsResponse is the payload of the pattern endpoints
type patternsResponse struct {
	Timestamp   time.Time        `json:"timestamp"`
	TicketCount *int             `json:"ticket_count,omitempty"`
	Patterns    []*model.Pattern `json:"patterns"`
}

// handleUserPatterns serves the kind-specific pattern analysis over the
// configured lookback window
func (s *Server) handleUserPatterns(w http.ResponseWriter, r *http.Request) {
	patterns, err := s.monitor.Patterns(r.Context())
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	writeJSON(r.Context(), w, patternsResponse{
		Timestamp: time.Now(),
		Patterns:  emptyIfNil(patterns),
	})
}

// handleLivePatterns serves the pattern analysis plus the trailing-hour
// ticket count
func (s *Server) handleLivePatterns(w http.ResponseWriter, r *http.Request) {
	live, err := s.monitor.Live(r.Context())
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	writeJSON(r.Context(), w, patternsResponse{
		Timestamp:   time.Now(),
		TicketCount: &live.TicketCount,
		Patterns:    emptyIfNil(live.Patterns),
	})
}

// handleMemberPatterns serves the member-centric generic analysis path
func (s *Server) handleMemberPatterns(w http.ResponseWriter, r *http.Request) {
	member := chi.URLParam(r, "member")
	if member == "" {
		http.Error(w, "member identifier is required", http.StatusBadRequest)
		return
	}

	patterns, err := s.monitor.MemberPatterns(r.Context(), types.MemberID(member))
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	writeJSON(r.Context(), w, patternsResponse{
		Timestamp: time.Now(),
		Patterns:  emptyIfNil(patterns),
	})
}

// handleStats serves aggregate ticket counts
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.monitor.Stats(r.Context())
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	writeJSON(r.Context(), w, stats)
}

// handleHealth handles health check requests
func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, map[string]string{
		"status":  "healthy",
		"service": "deskhawk",
	})
}

// writeJSON writes a JSON success response
func writeJSON(ctx context.Context, w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		ctxlog.From(ctx).Error("Failed to encode response", "error", err)
	}
}

// writeError converts a core-raised error into a JSON error body with a
// generic server-error status
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctxlog.From(ctx).Error("Request failed", "error", err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	if encErr := json.NewEncoder(w).Encode(map[string]string{
		"error": "internal server error",
	}); encErr != nil {
		ctxlog.From(ctx).Error("Failed to encode error response", "error", encErr)
	}
}

// emptyIfNil keeps the patterns field an empty array rather than null when
// no patterns were found
func emptyIfNil(patterns []*model.Pattern) []*model.Pattern {
	if patterns == nil {
		return []*model.Pattern{}
	}
	return patterns
}
