package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/graphclip/pkg/blueprint"
	pkgio "github.com/matzehuels/graphclip/pkg/io"
	"github.com/matzehuels/graphclip/pkg/store"
)

// MaxBodyBytes caps the size of uploaded documents.
const MaxBodyBytes = 8 << 20

// Server serves the HTTP API.
type Server struct {
	store   store.Store
	library *blueprint.Library
	logger  *log.Logger
	codec   []pkgio.Option
	router  chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and codec logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCodecOptions passes options to every encoder and decoder the server
// creates.
func WithCodecOptions(opts ...pkgio.Option) Option {
	return func(s *Server) { s.codec = append(s.codec, opts...) }
}

// New creates a server over st. A nil lib uses the built-in library.
func New(st store.Store, lib *blueprint.Library, opts ...Option) *Server {
	if lib == nil {
		lib = blueprint.DefaultLibrary()
	}
	s := &Server{
		store:   st,
		library: lib,
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.codec = append([]pkgio.Option{pkgio.WithLogger(s.logger)}, s.codec...)
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.logger))

	r.Get("/health", s.health)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/validate", s.validate)
		r.Route("/snippets", func(r chi.Router) {
			r.Get("/", s.listSnippets)
			r.Route("/{name}", func(r chi.Router) {
				r.Get("/", s.getSnippet)
				r.Put("/", s.putSnippet)
				r.Delete("/", s.deleteSnippet)
				r.Post("/paste", s.pasteSnippet)
				r.Get("/dot", s.snippetDOT)
				r.Get("/svg", s.snippetSVG)
			})
		})
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return ctx.Err()
}
