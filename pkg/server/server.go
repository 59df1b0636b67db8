// Package server exposes diagram rendering over HTTP.
//
// # Routes
//
//	GET  /healthz       liveness, build version and event counters
//	GET  /v1/formats    supported artifact and overview formats
//	POST /v1/render     render a model into diagram text and artifacts
//	POST /v1/overview   render a model into one hierarchy overview image
//
// Every response carries an X-Request-ID header; a request id sent by the
// client is kept. Errors are JSON objects with the umldoc error code and
// a user-facing message, and the status follows [errors.HTTPStatus].
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/umldoc/pkg/cache"
	"github.com/matzehuels/umldoc/pkg/observability"
	"github.com/matzehuels/umldoc/pkg/uml"
)

// Defaults for Options.
const (
	DefaultMaxBodyBytes = 1 << 20
	DefaultTimeout      = 2 * time.Minute
)

// KeyPrefix scopes the cache keys written by the server.
const KeyPrefix = "server:"

// Options configures a Server.
type Options struct {
	MaxBodyBytes int64         // request body limit
	Timeout      time.Duration // per request
	Workers      int           // parallel diagram renders per request
	Logger       *log.Logger
	// Stats, if set, is reported by /healthz. The caller registers it as
	// observability hooks.
	Stats *observability.Counters
}

// Server renders models sent by clients. Each request renders into its own
// temporary directory using a copy of the base settings.
type Server struct {
	base   *uml.Settings
	cache  cache.Cache
	keyer  cache.Keyer
	opts   Options
	logger *log.Logger
}

// New returns a server rendering with base. A nil cache disables artifact
// caching for overviews.
func New(base *uml.Settings, c cache.Cache, opts Options) *Server {
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = base.Logger()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	return &Server{
		base:   base,
		cache:  c,
		keyer:  cache.NewScopedKeyer(cache.NewDefaultKeyer(), KeyPrefix),
		opts:   opts,
		logger: opts.Logger,
	}
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.opts.Timeout))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/formats", s.handleFormats)
		r.Post("/render", s.handleRender)
		r.Post("/overview", s.handleOverview)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, notFound(r))
	})
	return r
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
