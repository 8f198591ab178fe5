package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"videoplayer-service/internal/catalog"
	"videoplayer-service/internal/config"
	"videoplayer-service/internal/log"
	"videoplayer-service/internal/player"
	"videoplayer-service/internal/playlist"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "videoplayer",
	Short:         "Video catalog player",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file (default: $CONFIG_PATH or ./config.yaml)")
	rootCmd.AddCommand(serveCmd, replCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "videoplayer:", err)
		os.Exit(1)
	}
}

// setup loads config, configures logging and builds the player.
func setup(ctx context.Context) (*config.Config, *player.Player, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	log.Configure(log.Config{Level: cfg.Log.Level})

	cat, err := loadCatalog(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	logger := log.WithComponent("catalog")
	logger.Info().
		Str("source", cfg.Catalog.Source).
		Int("videos", cat.Len()).
		Msg("catalog loaded")

	return cfg, player.New(cat, playlist.NewStore()), nil
}

func loadCatalog(ctx context.Context, cfg *config.Config) (*catalog.Catalog, error) {
	switch cfg.Catalog.Source {
	case config.SourceFile:
		return catalog.LoadFile(cfg.Catalog.Path)

	case config.SourcePostgres:
		pool, err := pgxpool.New(ctx, cfg.Database.URL)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		defer pool.Close()
		if err := catalog.AutoMigrate(ctx, pool); err != nil {
			return nil, err
		}
		return catalog.LoadPostgres(ctx, pool)

	default:
		return catalog.Default()
	}
}
