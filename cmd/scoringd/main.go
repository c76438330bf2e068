package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/lattice/internal/api"
	"github.com/aretw0/lattice/internal/config"
	"github.com/aretw0/lattice/internal/logging"
	"github.com/aretw0/lattice/internal/scoring"
	"github.com/aretw0/lattice/internal/store"
	"github.com/aretw0/lattice/internal/store/memory"
	redisStore "github.com/aretw0/lattice/internal/store/redis"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

var rootCmd = &cobra.Command{
	Use:   "scoringd",
	Short: "scoringd is the scoring API server",
	Long: `Starts the scoring API: a JSON-over-HTTP service exposing POST /method
with the online_score and clients_interests methods. Scores are cached in
Redis when configured, in process memory otherwise.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := serve(cmd); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.Flags().StringP("config", "c", "scoringd.yaml", "Path to the configuration file")
	rootCmd.Flags().StringP("listen", "l", "", "Listen address (overrides config)")
	rootCmd.Flags().String("redis", "", "Redis address (overrides config)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serve(cmd *cobra.Command) error {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if listen, _ := cmd.Flags().GetString("listen"); listen != "" {
		cfg.Listen = listen
	}
	if addr, _ := cmd.Flags().GetString("redis"); addr != "" {
		cfg.Redis.Addr = addr
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	var logger *slog.Logger
	if cfg.LogFormat == "json" {
		logger = logging.NewJSON(level)
	} else {
		logger = logging.New(level)
	}

	st, err := buildStore(cfg, logger)
	if err != nil {
		return err
	}

	engine := scoring.New(st,
		scoring.WithCacheTTL(time.Duration(cfg.CacheTTL)),
		scoring.WithLogger(logger),
	)

	handler, err := api.NewHandler(engine,
		api.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    cfg.Listen,
		Handler: handler,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)

	go func() {
		logger.Info("starting scoring server", "addr", srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	// Channel to listen for interrupt or terminate signals.
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Blocking main and waiting for shutdown.
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info("starting shutdown", "signal", sig.String())

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Warn("graceful shutdown did not complete", "timeout", shutdownTimeout, "error", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("could not stop server: %w", err)
			}
		}
		logger.Info("scoring server stopped")
	}
	return nil
}

// buildStore selects the cache backend: Redis when configured, otherwise
// the in-process map.
func buildStore(cfg config.Config, logger *slog.Logger) (store.Store, error) {
	if cfg.Redis.Addr == "" {
		logger.Info("no redis configured, using in-memory store")
		return memory.New(), nil
	}

	rs := redisStore.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
		redisStore.WithPrefix(cfg.Redis.Prefix),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rs.Ping(ctx); err != nil {
		return nil, err
	}

	logger.Info("connected to redis", "addr", cfg.Redis.Addr)
	return rs, nil
}
