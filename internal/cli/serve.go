package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphlens/internal/api"
	"github.com/matzehuels/graphlens/pkg/cache"
	"github.com/matzehuels/graphlens/pkg/pipeline"
	"github.com/matzehuels/graphlens/pkg/store"
)

// shutdownTimeout bounds graceful shutdown of in-flight requests.
const shutdownTimeout = 10 * time.Second

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr    string // listen address
	redis   string // Redis address, empty uses the file cache
	mongo   string // MongoDB URI, empty uses the in-memory store
	mongoDB string // MongoDB database name
	noCache bool   // disable the result cache
}

// newServeCmd creates the serve command.
func newServeCmd() *cobra.Command {
	opts := serveOpts{addr: ":8080", mongoDB: appName}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP analysis API",
		Long: `Run the HTTP analysis API.

Without flags the server caches results on the local filesystem and keeps
run history in memory. Point it at Redis and MongoDB to share cache and
history across instances:

  graphlens serve --addr :8080 --redis localhost:6379 --mongo mongodb://localhost:27017`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return runServe(c.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.redis, "redis", "", "Redis address for the shared result cache")
	cmd.Flags().StringVar(&opts.mongo, "mongo", "", "MongoDB URI for persistent run history")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-db", opts.mongoDB, "MongoDB database name")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")

	return cmd
}

// runServe starts the API server and blocks until ctx is cancelled.
func runServe(ctx context.Context, opts serveOpts) error {
	logger := loggerFromContext(ctx)

	c, err := serveCache(ctx, opts)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(c, logger)
	defer runner.Close()

	st, err := serveStore(ctx, opts)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := st.Close(closeCtx); err != nil {
			logger.Warn("close store", "error", err)
		}
	}()

	server := api.NewServer(runner, st, logger)
	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", opts.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// serveCache picks the cache backend: Redis when configured, otherwise the
// local file cache.
func serveCache(ctx context.Context, opts serveOpts) (cache.Cache, error) {
	if opts.noCache {
		return cache.NewNullCache(), nil
	}
	if opts.redis != "" {
		rc, err := cache.NewRedisCache(ctx, opts.redis)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		return rc, nil
	}
	return newCache(false)
}

// serveStore picks the run store backend: MongoDB when configured, otherwise
// in-memory.
func serveStore(ctx context.Context, opts serveOpts) (store.Store, error) {
	if opts.mongo != "" {
		ms, err := store.NewMongoStore(ctx, opts.mongo, opts.mongoDB)
		if err != nil {
			return nil, fmt.Errorf("mongo store: %w", err)
		}
		return ms, nil
	}
	return store.NewMemStore(), nil
}
