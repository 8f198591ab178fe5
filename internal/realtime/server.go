package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"slices"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"videoplayer-service/internal/log"
)

type Server struct {
	hub      *Hub
	rdb      *redis.Client
	channel  string
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

// NewServer serves websocket clients from hub. rdb may be nil when events
// are published to the hub directly. An origins list containing "*"
// accepts any origin.
func NewServer(hub *Hub, rdb *redis.Client, channel string, origins []string) *Server {
	s := &Server{
		hub:     hub,
		rdb:     rdb,
		channel: channel,
		log:     log.WithComponent("realtime"),
	}
	s.upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || slices.Contains(origins, "*") || slices.Contains(origins, origin)
		},
	}
	return s
}

// RunRedisSubscriber forwards every message on the channel to the hub until
// ctx is done.
func (s *Server) RunRedisSubscriber(ctx context.Context) error {
	sub := s.rdb.Subscribe(ctx, s.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return err
	}
	s.log.Info().Str("channel", s.channel).Msg("subscribed")

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			if err := s.hub.Publish(ctx, []byte(msg.Payload)); err != nil {
				return nil
			}
		}
	}
}

// HandleWS upgrades the request and registers the connection with the hub.
// GET /ws
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("ws upgrade")
		return
	}

	client := newClient(s.hub, conn)

	welcome := map[string]any{
		"type": "welcome",
		"now":  time.Now().UTC().Format(time.RFC3339Nano),
	}
	if b, err := json.Marshal(welcome); err == nil {
		client.send <- b
	}

	if !s.hub.Register(client) {
		_ = conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}
