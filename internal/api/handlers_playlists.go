package api

import (
	"net/http"
	"strings"
	"unicode"

	"videoplayer-service/internal/catalog"
	"videoplayer-service/internal/metrics"
	"videoplayer-service/internal/player"
)

type createPlaylistRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type addVideoRequest struct {
	VideoID string `json:"videoId" validate:"required"`
}

// GET /playlists
func (s *Server) handleListPlaylists(w http.ResponseWriter, r *http.Request) {
	var names []string
	s.locked(func(p *player.Player) {
		names = p.ListPlaylists()
	})
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"playlists": names})
}

// POST /playlists
func (s *Server) handleCreatePlaylist(w http.ResponseWriter, r *http.Request) {
	var req createPlaylistRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.ContainsFunc(req.Name, unicode.IsSpace) {
		writeError(w, http.StatusBadRequest, "playlist name must not contain whitespace")
		return
	}

	var (
		name string
		err  error
	)
	s.locked(func(p *player.Player) {
		name, err = p.CreatePlaylist(req.Name)
	})
	metrics.ObserveOperation(string(player.OpCreatePlaylist), err)
	if err != nil {
		s.writeFailure(w, err)
		return
	}
	body := map[string]any{"name": name}
	s.publishEvent(r.Context(), "playlist.created", body)
	writeJSON(w, http.StatusCreated, body)
}

// GET /playlists/{name}
func (s *Server) handleShowPlaylist(w http.ResponseWriter, r *http.Request) {
	name := pathParam(r, "name")

	var (
		view   player.PlaylistView
		videos []*videoJSON
		err    error
	)
	s.locked(func(p *player.Player) {
		view, err = p.ShowPlaylist(name)
		videos = toVideos(view.Videos)
	})
	metrics.ObserveOperation(string(player.OpShowPlaylist), err)
	if err != nil {
		s.writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"name":   view.Name,
		"videos": videos,
	})
}

// DELETE /playlists/{name}
func (s *Server) handleDeletePlaylist(w http.ResponseWriter, r *http.Request) {
	s.playlistOp(w, r, player.OpDeletePlaylist, "playlist.deleted", (*player.Player).DeletePlaylist)
}

// POST /playlists/{name}/clear
func (s *Server) handleClearPlaylist(w http.ResponseWriter, r *http.Request) {
	s.playlistOp(w, r, player.OpClearPlaylist, "playlist.cleared", (*player.Player).ClearPlaylist)
}

func (s *Server) playlistOp(w http.ResponseWriter, r *http.Request, op player.Op, event string,
	fn func(*player.Player, string) error) {
	name := pathParam(r, "name")

	var err error
	s.locked(func(p *player.Player) {
		err = fn(p, name)
	})
	metrics.ObserveOperation(string(op), err)
	if err != nil {
		s.writeFailure(w, err)
		return
	}
	body := map[string]any{"name": name}
	s.publishEvent(r.Context(), event, body)
	writeJSON(w, http.StatusOK, body)
}

// POST /playlists/{name}/videos
func (s *Server) handleAddToPlaylist(w http.ResponseWriter, r *http.Request) {
	name := pathParam(r, "name")

	var req addVideoRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	s.membershipOp(w, r, name, req.VideoID, player.OpAddToPlaylist, "playlist.video_added",
		(*player.Player).AddToPlaylist)
}

// DELETE /playlists/{name}/videos/{videoId}
func (s *Server) handleRemoveFromPlaylist(w http.ResponseWriter, r *http.Request) {
	s.membershipOp(w, r, pathParam(r, "name"), pathParam(r, "videoId"), player.OpRemoveFromPlaylist,
		"playlist.video_removed", (*player.Player).RemoveFromPlaylist)
}

func (s *Server) membershipOp(w http.ResponseWriter, r *http.Request, name, id string, op player.Op, event string,
	fn func(*player.Player, string, string) (*catalog.Video, error)) {
	var (
		video *videoJSON
		err   error
	)
	s.locked(func(p *player.Player) {
		var v *catalog.Video
		v, err = fn(p, name, id)
		video = toVideo(v)
	})
	metrics.ObserveOperation(string(op), err)
	if err != nil {
		s.writeFailure(w, err)
		return
	}
	body := map[string]any{"playlist": name, "video": video}
	s.publishEvent(r.Context(), event, body)
	writeJSON(w, http.StatusOK, body)
}
