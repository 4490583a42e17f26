package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sagarc03/stowfront"
	"github.com/sagarc03/stowfront/config"
	"github.com/sagarc03/stowfront/filesystem"
	stowfronthttp "github.com/sagarc03/stowfront/http"
	"github.com/sagarc03/stowfront/metrics"
	"github.com/sagarc03/stowfront/s3store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Start the Stowfront HTTP server.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Int("port", 8080, "HTTP server port (env: STOWFRONT_SERVER_PORT)")

	rootCmd.AddCommand(serveCmd)
}

// openBackend builds the object reader selected by the storage config. The
// returned cleanup func must be called once the server has stopped.
func openBackend(ctx context.Context, cfg *config.Config) (stowfront.ObjectReader, func(), error) {
	switch cfg.Storage.Backend {
	case "s3":
		client, err := s3store.NewClient(ctx, cfg.S3())
		if err != nil {
			return nil, nil, fmt.Errorf("create s3 client: %w", err)
		}
		return s3store.New(client), func() {}, nil
	case "filesystem":
		root, err := os.OpenRoot(cfg.Storage.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open storage root: %w", err)
		}
		return filesystem.NewFileStorage(root), func() { _ = root.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

func newRouter(cfg *config.Config, reader stowfront.ObjectReader) http.Handler {
	service := stowfront.NewProxyService(cfg.Proxy(), reader)

	handlerConfig := stowfronthttp.HandlerConfig{
		CORS:      cfg.CORS,
		ChunkSize: cfg.Server.ChunkSize,
	}
	if cfg.Metrics.Enabled {
		handlerConfig.Metrics = metrics.New()
		handlerConfig.MetricsPath = cfg.Metrics.Path
	}

	return stowfronthttp.NewHandler(&handlerConfig, service).Router()
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	cfg, err := config.FromContext(ctx)
	if err != nil {
		return err
	}

	reader, closeBackend, err := openBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeBackend()

	addr := fmt.Sprintf(":%d", cfg.Server.Port)

	// No write timeout: bodies are streamed and may be arbitrarily large.
	server := &http.Server{
		Addr:              addr,
		Handler:           newRouter(cfg, reader),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-sigCh:
		case <-ctx.Done():
		}

		slog.Info("shutting down server...")
		timeout := time.Duration(cfg.Server.ShutdownTimeout) * time.Second
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "err", err)
		}
		cancel()
	}()

	proxy := cfg.Proxy()
	slog.Info("starting server",
		"addr", addr,
		"backend", cfg.Storage.Backend,
		"bucket", proxy.Bucket,
		"key_prefix", proxy.KeyPrefix,
	)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}
