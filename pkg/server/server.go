// Package server exposes the solve pipeline over HTTP.
//
// The API mirrors the CLI solve command:
//
//	POST /api/solve   {"graph_type": "...", "n": 3, "solver": "backtracking", ...}
//	GET  /healthz     liveness probe
//
// Requests carry chi-generated request IDs and are logged on completion.
// Solves run synchronously on the request goroutine: the engine itself has no
// cancellation points, so callers bound runtime with client-side or proxy
// timeouts.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	apperrors "github.com/sganbold/tentlabel/pkg/errors"
	"github.com/sganbold/tentlabel/pkg/graphgen"
	"github.com/sganbold/tentlabel/pkg/labeling"
	"github.com/sganbold/tentlabel/pkg/pipeline"
)

// Server is the HTTP front end for the solve pipeline.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	router chi.Router
}

// New assembles a server around the given runner.
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	s := &Server{runner: runner, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Post("/api/solve", s.handleSolve)

	s.router = r
	return s
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe blocks serving HTTP on addr.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("listening", "addr", addr)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

// SolveRequest is the JSON body of POST /api/solve.
type SolveRequest struct {
	GraphType      string `json:"graph_type"`
	N              int    `json:"n"`
	R              int    `json:"r,omitempty"`
	Solver         string `json:"solver,omitempty"`
	Mode           string `json:"mode,omitempty"`
	Attempts       int    `json:"attempts,omitempty"`
	MaxKMultiplier int    `json:"max_k_multiplier,omitempty"`
	Seed           int64  `json:"seed,omitempty"`
}

// errorResponse is the JSON error shape.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req SolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, apperrors.New(apperrors.ErrCodeInvalidInput, "decode request: %v", err))
		return
	}

	res, err := s.runner.Solve(r.Context(), pipeline.Options{
		Kind:           graphgen.Kind(req.GraphType),
		Params:         graphgen.Params{N: req.N, R: req.R},
		Solver:         req.Solver,
		Mode:           labeling.Mode(req.Mode),
		Attempts:       req.Attempts,
		MaxKMultiplier: req.MaxKMultiplier,
		Seed:           req.Seed,
	})
	if err != nil {
		status := http.StatusInternalServerError
		switch apperrors.GetCode(err) {
		case apperrors.ErrCodeInvalidInput, apperrors.ErrCodeInvalidGraphKind,
			apperrors.ErrCodeInvalidSolver, apperrors.ErrCodeInvalidMode:
			status = http.StatusBadRequest
		}
		writeError(w, status, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// logRequests logs one line per completed request with the chi request ID.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Millisecond),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	code := string(apperrors.GetCode(err))
	if code == "" {
		code = string(apperrors.ErrCodeInternal)
	}
	writeJSON(w, status, errorResponse{Code: code, Message: apperrors.UserMessage(err)})
}
