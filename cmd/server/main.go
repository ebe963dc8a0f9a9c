package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/meur/pinboard/internal/api"
	"github.com/meur/pinboard/internal/config"
	"github.com/meur/pinboard/internal/logging"
	"github.com/meur/pinboard/internal/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	configPath string
	port       string
	dbPath     string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "pinboard",
	Short: "Pinboard API server",
	Long: `Serves the pinboard REST API: pins, collections, share links and
masonry feed layouts. Configuration comes from a YAML file, then the
environment, then flags.`,
	SilenceUsage: true,
	RunE:         runServer,
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "pinboard.yaml", "Config file path")
	rootCmd.Flags().StringVarP(&port, "port", "p", "", "Server port (overrides config)")
	rootCmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (overrides config)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if port != "" {
		cfg.Server.Port = port
	}
	if dbPath != "" {
		cfg.Storage.Driver = "sqlite"
		cfg.Storage.Path = dbPath
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger, err := logging.New(cfg.Logging, verbose)
	if err != nil {
		return err
	}
	defer logger.Sync()

	store, err := storage.New(cfg.Storage)
	if err != nil {
		logger.Error("failed to initialize storage", zap.Error(err))
		return err
	}
	defer store.Close()

	srv := api.New(store, api.Options{
		Logger:         logger,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Breakpoints:    cfg.Layout.Breakpoints,
		MaxColumns:     cfg.Layout.MaxColumns,
	})

	// Serve the built frontend alongside the API
	if cfg.Server.StaticDir != "" {
		dir, err := filepath.Abs(cfg.Server.StaticDir)
		if err != nil {
			return err
		}
		FileServer(srv.Router(), "/", http.Dir(dir))
		logger.Info("serving static files", zap.String("dir", dir))
	}

	httpServer := &http.Server{
		Addr:    cfg.Addr(),
		Handler: srv,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("pinboard API starting",
			zap.String("addr", httpServer.Addr),
			zap.String("driver", store.Driver()),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GetShutdownTimeout())
		defer cancel()
		logger.Info("shutting down")
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server failed", zap.Error(err))
		return err
	}
	return nil
}

// FileServer conveniently sets up a http.FileServer handler to serve
// static files from a http.FileSystem.
func FileServer(r chi.Router, path string, root http.FileSystem) {
	if strings.ContainsAny(path, "{}*") {
		panic("FileServer does not permit URL parameters.")
	}

	if path != "/" && path[len(path)-1] != '/' {
		r.Get(path, http.RedirectHandler(path+"/", http.StatusMovedPermanently).ServeHTTP)
		path += "/"
	}
	path += "*"

	r.Get(path, func(w http.ResponseWriter, req *http.Request) {
		rctx := chi.RouteContext(req.Context())
		pathPrefix := strings.TrimSuffix(rctx.RoutePattern(), "/*")
		fs := http.StripPrefix(pathPrefix, http.FileServer(root))
		fs.ServeHTTP(w, req)
	})
}
