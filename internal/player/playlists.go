package player

import (
	"cmp"
	"slices"
	"strings"

	"videoplayer-service/internal/catalog"
)

// PlaylistView is the content of a playlist resolved against the catalog.
type PlaylistView struct {
	Name   string
	Videos []*catalog.Video
}

func (p *Player) CreatePlaylist(name string) (string, error) {
	if p.playlists.Exists(name) {
		return "", &Error{Op: OpCreatePlaylist, Kind: KindAlreadyExists, Target: TargetPlaylist, Playlist: name}
	}
	if err := p.playlists.Create(name); err != nil {
		return "", &Error{Op: OpCreatePlaylist, Kind: KindAlreadyExists, Target: TargetPlaylist, Playlist: name}
	}
	return name, nil
}

func (p *Player) AddToPlaylist(name, id string) (*catalog.Video, error) {
	if !p.playlists.Exists(name) {
		return nil, playlistNotFound(OpAddToPlaylist, name)
	}
	v, ok := p.catalog.Get(id)
	if !ok {
		e := videoNotFound(OpAddToPlaylist, id)
		e.Playlist = name
		return nil, e
	}
	if v.Flagged() {
		e := flaggedError(OpAddToPlaylist, v)
		e.Playlist = name
		return nil, e
	}
	added, err := p.playlists.Add(name, id)
	if err != nil {
		return nil, playlistNotFound(OpAddToPlaylist, name)
	}
	if !added {
		return nil, &Error{Op: OpAddToPlaylist, Kind: KindDuplicate, Playlist: name, VideoID: id, Video: v}
	}
	return v, nil
}

func (p *Player) RemoveFromPlaylist(name, id string) (*catalog.Video, error) {
	if !p.playlists.Exists(name) {
		return nil, playlistNotFound(OpRemoveFromPlaylist, name)
	}
	v, ok := p.catalog.Get(id)
	if !ok {
		e := videoNotFound(OpRemoveFromPlaylist, id)
		e.Playlist = name
		return nil, e
	}
	removed, err := p.playlists.Remove(name, id)
	if err != nil {
		return nil, playlistNotFound(OpRemoveFromPlaylist, name)
	}
	if !removed {
		return nil, &Error{Op: OpRemoveFromPlaylist, Kind: KindNotMember, Playlist: name, VideoID: id, Video: v}
	}
	return v, nil
}

func (p *Player) ClearPlaylist(name string) error {
	if err := p.playlists.Clear(name); err != nil {
		return playlistNotFound(OpClearPlaylist, name)
	}
	return nil
}

func (p *Player) DeletePlaylist(name string) error {
	if !p.playlists.Delete(name) {
		return playlistNotFound(OpDeletePlaylist, name)
	}
	return nil
}

// ShowPlaylist returns the playlist videos in insertion order. Flagged
// videos stay listed; callers decide how to mark them.
func (p *Player) ShowPlaylist(name string) (PlaylistView, error) {
	ids, ok := p.playlists.Members(name)
	if !ok {
		return PlaylistView{}, playlistNotFound(OpShowPlaylist, name)
	}
	display, _ := p.playlists.DisplayName(name)
	view := PlaylistView{Name: display, Videos: make([]*catalog.Video, 0, len(ids))}
	for _, id := range ids {
		if v, ok := p.catalog.Get(id); ok {
			view.Videos = append(view.Videos, v)
		}
	}
	return view, nil
}

// ListPlaylists returns the playlist display names sorted without regard
// to case. The slice is empty when no playlist exists.
func (p *Player) ListPlaylists() []string {
	names := p.playlists.Names()
	slices.SortFunc(names, func(a, b string) int {
		if c := cmp.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	return names
}
