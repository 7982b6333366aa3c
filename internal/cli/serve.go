package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/lingraph/lingraph/internal/api"
	"github.com/lingraph/lingraph/pkg/cache"
	"github.com/lingraph/lingraph/pkg/config"
	apperrors "github.com/lingraph/lingraph/pkg/errors"
	"github.com/lingraph/lingraph/pkg/lexicon"
	"github.com/lingraph/lingraph/pkg/pipeline"
	"github.com/lingraph/lingraph/pkg/store"
)

const (
	// redisConnectAttempts bounds the startup retry loop for the redis
	// cache backend.
	redisConnectAttempts = 3

	// shutdownTimeout bounds graceful shutdown of in-flight requests.
	shutdownTimeout = 10 * time.Second
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr    string // listen address (overrides config)
	dictDir string // dictionary directory served via /api/lexicon
}

// serveCommand creates the serve command, which runs the HTTP API.
// Backends come from the configuration: file, redis, or no cache, and
// a memory or mongo run archive.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the HTTP API server exposing the pipeline, the run archive, and
the dictionary under /api. Backends are taken from the file named by
--config, falling back to a file cache and an in-memory archive.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().StringVar(&opts.dictDir, "dict", "", "dictionary directory served via /api/lexicon")

	return cmd
}

// runServe wires the configured backends into an api.Server and runs it
// until the context is canceled or the listener fails.
func (c *CLI) runServe(ctx context.Context, opts *serveOpts) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	addr := cfg.Server.Addr
	if opts.addr != "" {
		addr = opts.addr
	}

	cch, err := c.buildCache(ctx, cfg.Cache)
	if err != nil {
		return err
	}
	defer cch.Close()

	st, err := c.buildStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			c.Logger.Warn("store close failed", "error", err)
		}
	}()

	var ix *lexicon.Index
	if opts.dictDir != "" {
		ix, err = loadLexicon(opts.dictDir)
		if err != nil {
			return err
		}
		c.Logger.Info("indexed dictionary", "entries", ix.Len(), "dir", opts.dictDir)
	}

	server := api.NewServer(api.Options{
		Runner:      pipeline.NewRunner(cch, nil, c.Logger),
		Store:       st,
		Lexicon:     ix,
		Cache:       cch,
		Logger:      c.Logger,
		CORSOrigins: cfg.Server.CORSOrigins,
		Defaults:    cfg.Pipeline,
	})

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return ctx.Err()
}

// buildCache constructs the cache backend named in the configuration.
// A file backend that cannot resolve or create its directory degrades
// to the null cache instead of failing startup.
func (c *CLI) buildCache(ctx context.Context, cfg config.Cache) (cache.Cache, error) {
	switch cfg.Backend {
	case config.CacheBackendNone:
		return cache.NewNullCache(), nil

	case config.CacheBackendRedis:
		var rc *cache.RedisCache
		err := cache.RetryWithBackoff(ctx, redisConnectAttempts, func() error {
			var err error
			rc, err = cache.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
			return err
		})
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeCacheError, err, "connect redis %s", cfg.Redis.Addr)
		}
		return rc, nil

	case config.CacheBackendFile:
		dir := cfg.Dir
		if dir == "" {
			d, err := cacheDir()
			if err != nil {
				c.Logger.Warn("cache disabled", "error", err)
				return cache.NewNullCache(), nil
			}
			dir = d
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			c.Logger.Warn("cache disabled", "error", err)
			return cache.NewNullCache(), nil
		}
		return fc, nil

	default:
		return nil, apperrors.New(apperrors.ErrCodeConfigInvalid, "unknown cache backend: %q", cfg.Backend)
	}
}

// buildStore constructs the archive backend named in the configuration.
func (c *CLI) buildStore(ctx context.Context, cfg config.Store) (store.Store, error) {
	switch cfg.Backend {
	case config.StoreBackendMemory:
		return store.NewMemoryStore(), nil

	case config.StoreBackendMongo:
		st, err := store.NewMongoStore(ctx, cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.Collection)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeStoreUnavailable, err, "connect mongo %s", cfg.Mongo.URI)
		}
		return st, nil

	default:
		return nil, apperrors.New(apperrors.ErrCodeConfigInvalid, "unknown store backend: %q", cfg.Backend)
	}
}
