// Package server serves live diagrams of one profile over HTTP.
//
// Every request runs the full pipeline against the files on disk, so the
// browser always shows the current state of the profile. Rasterized output
// is cached by DOT hash through the runner's cache, which may be a Redis
// instance shared between server processes.
//
// # Endpoints
//
//	GET /healthz        liveness probe
//	GET /diagram.dot    Graphviz source
//	GET /diagram.svg    SVG diagram
//	GET /diagram.png    PNG diagram
//	GET /profile.json   built profile as JSON
//
// Diagram endpoints accept the query parameters label (id, title or both),
// and and or (comma separated tags) and color. Every diagram response carries
// an X-Render-ID header naming the pipeline run.
//
// # Errors
//
// Errors are returned as JSON {"code": ..., "error": ...}. A missing file or
// descriptor is 404, a broken profile or bad query is 422, anything else 500.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/alpsviz/pkg/errors"
	"github.com/matzehuels/alpsviz/pkg/observability"
	"github.com/matzehuels/alpsviz/pkg/pipeline"
)

// HeaderRenderID names the pipeline run that produced a response.
const HeaderRenderID = "X-Render-ID"

var contentTypes = map[string]string{
	pipeline.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatJSON: "application/json",
}

// Config configures a Server.
type Config struct {
	// Input is the root profile file.
	Input string

	// Runner executes the pipeline. Its cache holds rasterized artifacts.
	Runner *pipeline.Runner

	// Defaults are applied before query parameters, typically from the
	// config file. Input and Formats are ignored.
	Defaults pipeline.Options

	// Logger receives request logs. Defaults to the runner's logger.
	Logger *log.Logger
}

// Server is the preview HTTP server.
type Server struct {
	cfg    Config
	logger *log.Logger
	router chi.Router
}

// New creates a server for cfg.
func New(cfg Config) *Server {
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = cfg.Runner.Logger
	}

	s := &Server{cfg: cfg, logger: logger}
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.observe)
	r.Get("/healthz", s.handleHealth)
	r.Get("/diagram.dot", s.handleRender(pipeline.FormatDOT))
	r.Get("/diagram.svg", s.handleRender(pipeline.FormatSVG))
	r.Get("/diagram.png", s.handleRender(pipeline.FormatPNG))
	r.Get("/profile.json", s.handleRender(pipeline.FormatJSON))
	s.router = r
	return s
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handleRender(format string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts := s.options(r, format)
		result, err := s.cfg.Runner.Execute(r.Context(), opts)
		if err != nil {
			w.Header().Set(HeaderRenderID, uuid.NewString())
			s.writeError(w, r, err)
			return
		}

		w.Header().Set(HeaderRenderID, result.ID)
		w.Header().Set("Content-Type", contentTypes[format])
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write(result.Artifacts[format])
	}
}

// options merges the server defaults with the query of r.
func (s *Server) options(r *http.Request, format string) pipeline.Options {
	opts := s.cfg.Defaults
	opts.Input = s.cfg.Input
	opts.Formats = []string{format}
	opts.Logger = s.logger

	q := r.URL.Query()
	if v := q.Get("label"); v != "" {
		opts.Label = v
	}
	if q.Has("and") {
		opts.AndTags = splitList(q.Get("and"))
	}
	if q.Has("or") {
		opts.OrTags = splitList(q.Get("or"))
	}
	if v := q.Get("color"); v != "" {
		opts.Color = v
	}
	return opts
}

type errorBody struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("render failed", "path", r.URL.Path, "err", err)
	} else {
		s.logger.Warn("render rejected", "path", r.URL.Path, "code", code, "err", errors.UserMessage(err))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Code: string(code), Error: errors.UserMessage(err)})
}

// StatusFor maps a pipeline error to an HTTP status code.
func StatusFor(err error) int {
	switch {
	case errors.IsNotFound(err):
		return http.StatusNotFound
	case errors.IsInvalidProfile(err),
		errors.Is(err, errors.ErrCodeInvalidInput),
		errors.Is(err, errors.ErrCodeInvalidFormat):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// observe reports every request and its status to the HTTP hooks.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, time.Since(start))
	})
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
