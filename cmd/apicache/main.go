package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/BhushanMisal/apicache/internal/cache"
	"github.com/BhushanMisal/apicache/internal/config"
	"github.com/BhushanMisal/apicache/internal/fetch"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logrus.Fatalf("%v", err)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "apicache",
		Short:         "File-backed cache for simulated API responses",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&configPath, "config", "configs/config.yaml", "Path to the YAML config file")

	root.AddCommand(newRunCmd(&configPath))
	root.AddCommand(newSweepCmd(&configPath))

	return root
}

// newRunCmd creates the run command: fetch every configured endpoint twice
// (the second round is served from cache), then sweep once
func newRunCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Fetch the configured endpoints through the cache",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, memoizer, err := setup(*configPath)
			if err != nil {
				return err
			}

			ttl, _ := cfg.GetCacheTTL() // validated during setup

			for round := 1; round <= 2; round++ {
				for _, endpoint := range cfg.Simulation.Endpoints {
					resp, err := memoizer.GetOrFetch(endpoint, ttl)
					if err != nil {
						logrus.Errorf("Failed to fetch %s: %v", endpoint, err)
						continue
					}
					logrus.Infof("Round %d: %s -> %d (fetched at %s)",
						round, endpoint, resp.Status, resp.FetchedAt.Format("15:04:05"))
				}
			}

			memoizer.Sweep()
			return nil
		},
	}
}

// newSweepCmd creates the sweep command: one maintenance pass over the
// cache directory
func newSweepCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Remove expired entries from the cache directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, memoizer, err := setup(*configPath)
			if err != nil {
				return err
			}

			memoizer.Sweep()
			logrus.Info("Sweep complete")
			return nil
		},
	}
}

// setup loads and validates the config, wires logging, and builds the
// memoizer over a file store
func setup(configPath string) (*config.Config, *fetch.Memoizer, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	setupLogging(cfg)

	ttl, err := cfg.GetCacheTTL()
	if err != nil {
		return nil, nil, fmt.Errorf("invalid cache TTL: %w", err)
	}

	store, err := cache.NewFileStore(cfg.Cache.Folder, ttl)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create cache store: %w", err)
	}

	latency, err := cfg.GetSimLatency()
	if err != nil {
		return nil, nil, fmt.Errorf("invalid simulation latency: %w", err)
	}

	logrus.Infof("Cache directory: %s", cfg.Cache.Folder)
	logrus.Infof("Cache TTL: %s", cfg.Cache.TTL)

	return cfg, fetch.NewMemoizer(fetch.NewClient(latency), store), nil
}

func setupLogging(cfg *config.Config) {
	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if cfg.Logging.File != "" {
		logrus.SetOutput(&lumberjack.Logger{
			Filename:   cfg.Logging.File,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
		})
	} else {
		logrus.SetOutput(os.Stderr)
	}
}
