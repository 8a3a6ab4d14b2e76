// Package api serves VPC reports over HTTP.
//
// Routes:
//
//	GET /health          liveness and build version
//	GET /vpcs            the VPC list
//	GET /vpcs/{vpcID}    the rendered tree of one VPC
//
// Both report routes answer text/plain by default and JSON with
// ?format=json.
package api

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/vpctree/pkg/buildinfo"
	"github.com/matzehuels/vpctree/pkg/pipeline"
	"github.com/matzehuels/vpctree/pkg/source"
	"github.com/matzehuels/vpctree/pkg/tree"
)

const shutdownTimeout = 10 * time.Second

// Server is the HTTP API server for vpctree.
type Server struct {
	router chi.Router
	runner *pipeline.Runner
	src    source.Source
	log    *log.Logger
}

// NewServer creates a server answering from src through runner.
func NewServer(runner *pipeline.Runner, src source.Source, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner: runner,
		src:    src,
		log:    logger,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)
	r.Get("/vpcs", s.handleListVPCs)
	r.Get("/vpcs/{vpcID}", s.handleVPC)

	s.router = r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		s.log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

func (s *Server) handleListVPCs(w http.ResponseWriter, r *http.Request) {
	format, ok := requestFormat(w, r)
	if !ok {
		return
	}

	lines, err := s.runner.ListVPCs(r.Context(), s.src)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if format == pipeline.FormatJSON {
		writeJSON(w, http.StatusOK, map[string]any{
			"id":   RequestIDFromContext(r.Context()),
			"vpcs": nonNil(lines),
		})
		return
	}
	writeText(w, lines)
}

func (s *Server) handleVPC(w http.ResponseWriter, r *http.Request) {
	format, ok := requestFormat(w, r)
	if !ok {
		return
	}

	vpcID := chi.URLParam(r, "vpcID")
	opts := pipeline.Options{
		VpcID:   vpcID,
		Refresh: r.URL.Query().Get("refresh") == "true",
	}
	result, err := s.runner.Execute(r.Context(), s.src, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if format == pipeline.FormatJSON {
		writeJSON(w, http.StatusOK, vpcResponse{
			ID:     RequestIDFromContext(r.Context()),
			VpcID:  vpcID,
			Lines:  result.Lines,
			Cached: result.CacheHit,
		})
		return
	}
	writeText(w, result.Lines)
}

type vpcResponse struct {
	ID     string   `json:"id"`
	VpcID  string   `json:"vpc_id"`
	Lines  []string `json:"lines"`
	Cached bool     `json:"cached"`
}

// requestFormat reads ?format=, defaulting to text. Invalid values are
// answered with 400 and ok=false.
func requestFormat(w http.ResponseWriter, r *http.Request) (string, bool) {
	format := r.URL.Query().Get("format")
	if format == "" {
		return pipeline.FormatText, true
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, err)
		return "", false
	}
	return format, true
}

func writeText(w http.ResponseWriter, lines []string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_ = tree.Fprint(w, lines)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func nonNil(lines []string) []string {
	if lines == nil {
		return []string{}
	}
	return lines
}
