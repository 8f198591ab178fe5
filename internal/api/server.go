// Package api exposes the player over HTTP.
package api

import (
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"videoplayer-service/internal/log"
	"videoplayer-service/internal/player"
)

type Server struct {
	// mu serializes every call into the player, which is not safe for
	// concurrent use.
	mu     sync.Mutex
	player *player.Player

	events Publisher
	auth   AuthConfig
	log    zerolog.Logger
}

// AuthConfig guards the moderation endpoints. An empty Secret disables the
// guard.
type AuthConfig struct {
	Secret        []byte
	ModeratorRole string
}

// NewServer wraps p. events may be nil, in which case nothing is published.
func NewServer(p *player.Player, events Publisher, auth AuthConfig) *Server {
	if auth.ModeratorRole == "" {
		auth.ModeratorRole = "moderator"
	}
	return &Server{
		player: p,
		events: events,
		auth:   auth,
		log:    log.WithComponent("api"),
	}
}

func (s *Server) Router(middlewares ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}

	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/videos", s.handleListVideos)
	r.Get("/videos/search", s.handleSearch)

	r.Get("/player", s.handleNowPlaying)
	r.Post("/player/play", s.handlePlay)
	r.Post("/player/stop", s.handleStop)
	r.Post("/player/pause", s.handlePause)
	r.Post("/player/continue", s.handleContinue)

	r.Group(func(r chi.Router) {
		r.Use(s.requireModerator)
		r.Post("/videos/{id}/flag", s.handleFlag)
		r.Post("/videos/{id}/allow", s.handleAllow)
	})

	r.Get("/playlists", s.handleListPlaylists)
	r.Post("/playlists", s.handleCreatePlaylist)
	r.Get("/playlists/{name}", s.handleShowPlaylist)
	r.Delete("/playlists/{name}", s.handleDeletePlaylist)
	r.Post("/playlists/{name}/clear", s.handleClearPlaylist)
	r.Post("/playlists/{name}/videos", s.handleAddToPlaylist)
	r.Delete("/playlists/{name}/videos/{videoId}", s.handleRemoveFromPlaylist)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "videoplayer-service",
	})
}

// locked runs fn while holding the player lock.
func (s *Server) locked(fn func(p *player.Player)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.player)
}
