package api

import (
	"net/http"
	"strings"

	"videoplayer-service/internal/catalog"
	"videoplayer-service/internal/metrics"
	"videoplayer-service/internal/player"
)

const maxQueryLen = 200

type flagRequest struct {
	Reason string `json:"reason" validate:"max=200"`
}

// GET /videos
func (s *Server) handleListVideos(w http.ResponseWriter, r *http.Request) {
	var (
		count  int
		videos []*videoJSON
	)
	s.locked(func(p *player.Player) {
		count = p.VideoCount()
		videos = toVideos(p.Videos())
	})
	writeJSON(w, http.StatusOK, map[string]any{
		"count":  count,
		"videos": videos,
	})
}

// handleSearch searches titles (?q=) or tags (?tag=). Flagged videos are
// never returned.
// GET /videos/search
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	term, tag := strings.TrimSpace(q.Get("q")), strings.TrimSpace(q.Get("tag"))
	if term == "" && tag == "" {
		writeError(w, http.StatusBadRequest, "q or tag is required")
		return
	}
	if len(term) > maxQueryLen || len(tag) > maxQueryLen {
		writeError(w, http.StatusBadRequest, "query is too long")
		return
	}

	var (
		query   string
		results []*videoJSON
	)
	s.locked(func(p *player.Player) {
		var res player.Results
		if tag != "" {
			res = p.SearchByTag(tag)
		} else {
			res = p.SearchByTitle(term)
		}
		query = res.Query
		results = toVideos(res.Videos)
	})
	writeJSON(w, http.StatusOK, map[string]any{
		"query":   query,
		"results": results,
	})
}

// POST /videos/{id}/flag
func (s *Server) handleFlag(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "id")

	var req flagRequest
	if r.ContentLength != 0 {
		if !decodeJSON(w, r, &req) {
			return
		}
	}

	var (
		res  player.FlagResult
		err  error
		body map[string]any
	)
	s.locked(func(p *player.Player) {
		res, err = p.Flag(id, req.Reason)
		body = map[string]any{
			"video":   toVideo(res.Video),
			"reason":  res.Reason,
			"stopped": toVideo(res.Stopped),
		}
	})
	metrics.ObserveOperation(string(player.OpFlag), err)
	if err != nil {
		s.writeFailure(w, err)
		return
	}
	if res.Stopped != nil {
		s.publishEvent(r.Context(), "video.stopped", map[string]any{"video": body["stopped"]})
	}
	s.publishEvent(r.Context(), "video.flagged", body)
	writeJSON(w, http.StatusOK, body)
}

// POST /videos/{id}/allow
func (s *Server) handleAllow(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "id")

	var (
		video *videoJSON
		err   error
	)
	s.locked(func(p *player.Player) {
		var v *catalog.Video
		v, err = p.Allow(id)
		video = toVideo(v)
	})
	metrics.ObserveOperation(string(player.OpAllow), err)
	if err != nil {
		s.writeFailure(w, err)
		return
	}
	body := map[string]any{"video": video}
	s.publishEvent(r.Context(), "video.allowed", body)
	writeJSON(w, http.StatusOK, body)
}
