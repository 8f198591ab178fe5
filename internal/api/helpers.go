package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"videoplayer-service/internal/catalog"
	"videoplayer-service/internal/metrics"
	"videoplayer-service/internal/player"
	"videoplayer-service/internal/render"
)

var validate = validator.New()

type videoJSON struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Tags       []string `json:"tags"`
	Flagged    bool     `json:"flagged"`
	FlagReason string   `json:"flagReason,omitempty"`
}

func toVideo(v *catalog.Video) *videoJSON {
	if v == nil {
		return nil
	}
	tags := v.Tags()
	if tags == nil {
		tags = []string{}
	}
	return &videoJSON{
		ID:         v.ID(),
		Title:      v.Title(),
		Tags:       tags,
		Flagged:    v.Flagged(),
		FlagReason: v.FlagReason(),
	}
}

func toVideos(videos []*catalog.Video) []*videoJSON {
	out := make([]*videoJSON, 0, len(videos))
	for _, v := range videos {
		out = append(out, toVideo(v))
	}
	return out
}

type playbackJSON struct {
	Stopped *videoJSON `json:"stopped,omitempty"`
	Playing *videoJSON `json:"playing"`
}

func toPlayback(pb player.Playback) playbackJSON {
	return playbackJSON{Stopped: toVideo(pb.Stopped), Playing: toVideo(pb.Started)}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// statusFor maps a refusal kind to an HTTP status.
func statusFor(k player.Kind) int {
	switch k {
	case player.KindNotFound:
		return http.StatusNotFound
	case player.KindAlreadyExists, player.KindDuplicate, player.KindInvalidState,
		player.KindAlreadyFlagged, player.KindNotFlagged:
		return http.StatusConflict
	case player.KindFlagged:
		return http.StatusLocked
	case player.KindNotMember, player.KindEmpty:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// writeFailure answers with the console text of a player error.
func (s *Server) writeFailure(w http.ResponseWriter, err error) {
	var pe *player.Error
	if !errors.As(err, &pe) {
		s.log.Error().Err(err).Msg("unexpected error")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, statusFor(pe.Kind), map[string]string{
		"error":     render.Message(pe),
		"kind":      pe.Kind.String(),
		"operation": string(pe.Op),
	})
}

// decodeJSON reads a JSON body into dst and validates it.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	defer r.Body.Close()
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	if err := validate.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// pathParam returns a decoded URL parameter. chi routes on RawPath when
// it is set, and only then is the parameter still escaped.
func pathParam(r *http.Request, key string) string {
	v := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return v
	}
	if u, err := url.PathUnescape(v); err == nil {
		return u
	}
	return v
}

// Publisher delivers encoded events to listeners.
type Publisher interface {
	Publish(ctx context.Context, data []byte) error
}

// RedisPublisher publishes events on a redis channel.
type RedisPublisher struct {
	rdb     *redis.Client
	channel string
}

func NewRedisPublisher(rdb *redis.Client, channel string) *RedisPublisher {
	return &RedisPublisher{rdb: rdb, channel: channel}
}

func (p *RedisPublisher) Publish(ctx context.Context, data []byte) error {
	return p.rdb.Publish(ctx, p.channel, data).Err()
}

// Event is the envelope sent to realtime listeners.
type Event struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

func (s *Server) publishEvent(ctx context.Context, typ string, payload any) {
	if s.events == nil {
		return
	}
	data, err := json.Marshal(Event{ID: uuid.NewString(), Type: typ, Payload: payload})
	if err != nil {
		s.log.Error().Err(err).Str("type", typ).Msg("marshal event")
		metrics.EventsPublished.WithLabelValues(typ, "error").Inc()
		return
	}
	if err := s.events.Publish(ctx, data); err != nil {
		s.log.Warn().Err(err).Str("type", typ).Msg("publish event")
		metrics.EventsPublished.WithLabelValues(typ, "error").Inc()
		return
	}
	metrics.EventsPublished.WithLabelValues(typ, "ok").Inc()
}
