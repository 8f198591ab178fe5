package api

import (
	"errors"
	"net/http"

	"videoplayer-service/internal/catalog"
	"videoplayer-service/internal/metrics"
	"videoplayer-service/internal/player"
)

type playRequest struct {
	VideoID   string `json:"videoId"`
	Random    bool   `json:"random"`
	Query     string `json:"query"`
	Tag       string `json:"tag"`
	Selection string `json:"selection"`
}

// handleNowPlaying reports the cursor. A stopped player is not an error here.
// GET /player
func (s *Server) handleNowPlaying(w http.ResponseWriter, r *http.Request) {
	var (
		st    player.Status
		state player.State
		err   error
		video *videoJSON
	)
	s.locked(func(p *player.Player) {
		st, err = p.NowPlaying()
		state = p.State()
		video = toVideo(st.Video)
	})
	metrics.ObserveOperation(string(player.OpShowPlaying), err)

	if err != nil && !errors.Is(err, player.ErrInvalidState) {
		s.writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"state":  state.String(),
		"video":  video,
		"paused": st.Paused,
	})
}

// handlePlay starts a video by id, at random, or from a search result.
// POST /player/play
func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	var req playRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var (
		pb   player.Playback
		err  error
		body playbackJSON
	)
	switch {
	case req.Random:
		s.locked(func(p *player.Player) {
			pb, err = p.PlayRandom()
			body = toPlayback(pb)
		})
		metrics.ObserveOperation(string(player.OpPlayRandom), err)

	case req.Query != "" || req.Tag != "":
		var ok bool
		s.locked(func(p *player.Player) {
			res := p.SearchByTitle(req.Query)
			if req.Tag != "" {
				res = p.SearchByTag(req.Tag)
			}
			pb, ok = p.PlaySelected(res, req.Selection)
			body = toPlayback(pb)
		})
		if !ok {
			metrics.Operations.WithLabelValues("play_selected", "declined").Inc()
			writeError(w, http.StatusUnprocessableEntity, "selection does not match a playable result")
			return
		}
		metrics.ObserveOperation("play_selected", nil)

	case req.VideoID != "":
		s.locked(func(p *player.Player) {
			pb, err = p.Play(req.VideoID)
			body = toPlayback(pb)
		})
		metrics.ObserveOperation(string(player.OpPlay), err)

	default:
		writeError(w, http.StatusBadRequest, "one of videoId, random, query or tag is required")
		return
	}

	if err != nil {
		s.writeFailure(w, err)
		return
	}
	s.publishEvent(r.Context(), "video.playing", body)
	writeJSON(w, http.StatusOK, body)
}

// POST /player/stop
func (s *Server) handleStop(w http.ResponseWriter, r *http.Request) {
	s.cursorOp(w, r, player.OpStop, "video.stopped", (*player.Player).Stop)
}

// POST /player/pause
func (s *Server) handlePause(w http.ResponseWriter, r *http.Request) {
	s.cursorOp(w, r, player.OpPause, "video.paused", (*player.Player).Pause)
}

// POST /player/continue
func (s *Server) handleContinue(w http.ResponseWriter, r *http.Request) {
	s.cursorOp(w, r, player.OpContinue, "video.continued", (*player.Player).Continue)
}

func (s *Server) cursorOp(w http.ResponseWriter, r *http.Request, op player.Op, event string,
	fn func(*player.Player) (*catalog.Video, error)) {
	var (
		video *videoJSON
		err   error
	)
	s.locked(func(p *player.Player) {
		var v *catalog.Video
		v, err = fn(p)
		video = toVideo(v)
	})
	metrics.ObserveOperation(string(op), err)
	if err != nil {
		s.writeFailure(w, err)
		return
	}
	body := map[string]any{"video": video}
	s.publishEvent(r.Context(), event, body)
	writeJSON(w, http.StatusOK, body)
}
