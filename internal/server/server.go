// Package server implements the live preview server behind `dotviz serve`.
//
// Every request recomputes its response from the DOT source file, so editing
// the file and refreshing the browser shows the updated graph without a
// restart. The server holds no graph state of its own.
package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mlorenz/dotviz/pkg/dotviz"
	"github.com/mlorenz/dotviz/pkg/errors"
	"github.com/mlorenz/dotviz/pkg/render/html"
)

// Server serves a DOT file as a force-directed HTML page and as raw
// node-link JSON.
type Server struct {
	dg     *dotviz.DotGraph
	logger *log.Logger
}

// New creates a preview server for the given conversion facade.
// A nil logger falls back to the default logger.
func New(dg *dotviz.DotGraph, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{dg: dg, logger: logger}
}

// Handler returns the HTTP handler tree.
//
// Routes:
//
//	GET /            full HTML page with the rendered fragment
//	GET /graph.json  node-link JSON
//	GET /healthz     liveness probe
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", s.handleIndex)
	r.Get("/graph.json", s.handleJSON)
	r.Get("/healthz", s.handleHealthz)

	return r
}

func (s *Server) handleIndex(w http.ResponseWriter, req *http.Request) {
	fragment, err := s.dg.HTML()
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(html.Page(s.dg.Path(), fragment)))
}

func (s *Server) handleJSON(w http.ResponseWriter, req *http.Request) {
	data, err := s.dg.JSON()
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(data))
}

func (s *Server) handleHealthz(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

// writeError maps pipeline error codes onto HTTP statuses. The error text is
// returned as-is: the preview server is a local development tool, not a
// public surface.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeParse:
		status = http.StatusUnprocessableEntity
	}
	s.logger.Errorf("request failed: %v", err)
	http.Error(w, err.Error(), status)
}

// logRequests logs method, path, status, and duration for each request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
		next.ServeHTTP(ww, req)
		s.logger.Debugf("%s %s -> %d (%s)", req.Method, req.URL.Path, ww.Status(), time.Since(start).Round(time.Millisecond))
	})
}
