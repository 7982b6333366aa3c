// Package api serves the text-to-graph pipeline over HTTP.
//
// The server exposes a small JSON API:
//
//	GET    /api/health          liveness and version
//	GET    /api/tokenize        tokenize query text
//	POST   /api/segment         sentence spans for posted text
//	POST   /api/analyze         per-token morphology for posted text
//	POST   /api/graphs          run the pipeline and archive the result
//	GET    /api/graphs          list archived runs, newest first
//	GET    /api/graphs/{id}     fetch one run (json, pgraph, dot, svg, png)
//	DELETE /api/graphs/{id}     drop an archived run
//	GET    /api/lexicon         dictionary lookup by surface form
//
// Every error body has the shape {"error": "...", "code": "..."} where
// code is one of the pkg/errors codes, so clients can branch without
// parsing messages.
package api

import (
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"

	"github.com/lingraph/lingraph/pkg/cache"
	"github.com/lingraph/lingraph/pkg/config"
	"github.com/lingraph/lingraph/pkg/lexicon"
	"github.com/lingraph/lingraph/pkg/pipeline"
	"github.com/lingraph/lingraph/pkg/store"
)

const (
	// DefaultListLimit caps GET /api/graphs when the request does not
	// carry its own limit.
	DefaultListLimit = 50

	// MaxBodyBytes bounds request bodies. Input text is capped at 1 MiB
	// by validation; the extra room covers JSON framing.
	MaxBodyBytes = 4 << 20
)

// Options configures a Server. The zero value serves from an in-memory
// store with caching disabled, which is what the tests use.
type Options struct {
	Runner  *pipeline.Runner
	Store   store.Store
	Lexicon *lexicon.Index
	Cache   cache.Cache
	Keyer   cache.Keyer
	Logger  *log.Logger

	// CORSOrigins lists the allowed cross-origin hosts. Empty allows
	// any origin.
	CORSOrigins []string

	// Defaults supplies graph header defaults for runs started over
	// the API. Requests may override them per call. The zero value
	// means config.Default().Pipeline.
	Defaults config.Pipeline
}

// Server handles HTTP requests for the pipeline, the run archive, and
// the dictionary.
type Server struct {
	runner   *pipeline.Runner
	store    store.Store
	lexicon  *lexicon.Index
	cache    cache.Cache
	keyer    cache.Keyer
	logger   *log.Logger
	origins  []string
	defaults config.Pipeline
}

// NewServer creates a server, filling in defaults for any dependency
// left nil.
func NewServer(opts Options) *Server {
	if opts.Cache == nil {
		opts.Cache = cache.NewNullCache()
	}
	if opts.Keyer == nil {
		opts.Keyer = cache.NewDefaultKeyer()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Runner == nil {
		opts.Runner = pipeline.NewRunner(opts.Cache, opts.Keyer, opts.Logger)
	}
	if opts.Store == nil {
		opts.Store = store.NewMemoryStore()
	}
	if opts.Defaults == (config.Pipeline{}) {
		opts.Defaults = config.Default().Pipeline
	}

	return &Server{
		runner:   opts.Runner,
		store:    opts.Store,
		lexicon:  opts.Lexicon,
		cache:    opts.Cache,
		keyer:    opts.Keyer,
		logger:   opts.Logger,
		origins:  opts.CORSOrigins,
		defaults: opts.Defaults,
	}
}

// Router builds the route tree with the standard middleware stack.
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()

	r.Use(s.requestID)
	r.Use(s.logRequests)
	r.Use(s.recoverPanics)
	r.Use(corsHandler(s.origins))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/tokenize", s.handleTokenize)
		r.Post("/segment", s.handleSegment)
		r.Post("/analyze", s.handleAnalyze)
		r.Get("/lexicon", s.handleLexicon)

		r.Route("/graphs", func(r chi.Router) {
			r.Post("/", s.handleCreateGraph)
			r.Get("/", s.handleListGraphs)
			r.Get("/{id}", s.handleGetGraph)
			r.Delete("/{id}", s.handleDeleteGraph)
		})
	})

	return r
}

// corsHandler builds the CORS middleware for the configured origins.
func corsHandler(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler
}
