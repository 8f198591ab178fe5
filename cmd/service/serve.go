package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"videoplayer-service/internal/api"
	"videoplayer-service/internal/log"
	"videoplayer-service/internal/realtime"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API and websocket events",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, p, err := setup(ctx)
		if err != nil {
			return err
		}
		logger := log.WithComponent("server")

		hub := realtime.NewHub()
		go hub.Run(ctx)

		// Without redis the hub receives events directly.
		var (
			rdb    *redis.Client
			events api.Publisher = hub
		)
		if cfg.Redis.URL != "" {
			opt, err := redis.ParseURL(cfg.Redis.URL)
			if err != nil {
				return fmt.Errorf("invalid redis.url: %w", err)
			}
			rdb = redis.NewClient(opt)
			defer rdb.Close()
			events = api.NewRedisPublisher(rdb, cfg.Redis.Channel)
		}

		rt := realtime.NewServer(hub, rdb, cfg.Redis.Channel, cfg.Server.CORSOrigins)
		if rdb != nil {
			go func() {
				if err := rt.RunRedisSubscriber(ctx); err != nil {
					logger.Error().Err(err).Msg("redis subscriber stopped")
				}
			}()
		}

		srv := api.NewServer(p, events, api.AuthConfig{
			Secret:        []byte(cfg.Auth.JWTSecret),
			ModeratorRole: cfg.Auth.ModeratorRole,
		})
		r := srv.Router(
			middleware.RequestID,
			middleware.RealIP,
			api.RequestLogger(log.WithComponent("http")),
			middleware.Recoverer,
			api.CORS(cfg.Server.CORSOrigins),
			api.RateLimit(cfg.Server.RateLimitRPS),
		)
		r.Get("/ws", rt.HandleWS)

		httpSrv := &http.Server{
			Addr:              ":" + strconv.Itoa(cfg.Server.Port),
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			logger.Info().Int("port", cfg.Server.Port).Msg("listening")
			errCh <- httpSrv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-ctx.Done():
		}

		logger.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	},
}
