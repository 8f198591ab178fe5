// Package playlist keeps named, ordered, duplicate free lists of video ids.
// Names are matched case-insensitively but stored with their original casing.
package playlist

import (
	"errors"
	"slices"
	"strings"
)

var (
	ErrExists   = errors.New("playlist already exists")
	ErrNotFound = errors.New("playlist not found")
)

// playlist holds video ids in insertion order. Videos themselves stay in
// the catalog.
type playlist struct {
	name     string
	videoIDs []string
}

// Store owns every playlist, keyed by the folded name.
type Store struct {
	playlists map[string]*playlist
}

func NewStore() *Store {
	return &Store{playlists: make(map[string]*playlist)}
}

func key(name string) string {
	return strings.ToLower(name)
}

func (s *Store) get(name string) (*playlist, bool) {
	p, ok := s.playlists[key(name)]
	return p, ok
}

func (s *Store) Exists(name string) bool {
	_, ok := s.get(name)
	return ok
}

// Create adds an empty playlist. It fails with ErrExists when a playlist
// with the same name in any casing is already present.
func (s *Store) Create(name string) error {
	if s.Exists(name) {
		return ErrExists
	}
	s.playlists[key(name)] = &playlist{name: name}
	return nil
}

// DisplayName returns the name as it was given on creation.
func (s *Store) DisplayName(name string) (string, bool) {
	p, ok := s.get(name)
	if !ok {
		return "", false
	}
	return p.name, true
}

// Names returns the display names of all playlists in no particular order.
func (s *Store) Names() []string {
	out := make([]string, 0, len(s.playlists))
	for _, p := range s.playlists {
		out = append(out, p.name)
	}
	return out
}

// Members returns the ordered video ids of a playlist. The bool is false
// when the playlist does not exist.
func (s *Store) Members(name string) ([]string, bool) {
	p, ok := s.get(name)
	if !ok {
		return nil, false
	}
	return slices.Clone(p.videoIDs), true
}

// Add appends id to the playlist. It returns false without changing
// anything when the id is already a member.
func (s *Store) Add(name, id string) (bool, error) {
	p, ok := s.get(name)
	if !ok {
		return false, ErrNotFound
	}
	if slices.Contains(p.videoIDs, id) {
		return false, nil
	}
	p.videoIDs = append(p.videoIDs, id)
	return true, nil
}

// Remove drops id from the playlist and reports whether it was a member.
func (s *Store) Remove(name, id string) (bool, error) {
	p, ok := s.get(name)
	if !ok {
		return false, ErrNotFound
	}
	i := slices.Index(p.videoIDs, id)
	if i < 0 {
		return false, nil
	}
	p.videoIDs = slices.Delete(p.videoIDs, i, i+1)
	return true, nil
}

// Clear empties the playlist but keeps it.
func (s *Store) Clear(name string) error {
	p, ok := s.get(name)
	if !ok {
		return ErrNotFound
	}
	p.videoIDs = nil
	return nil
}

// Delete removes the playlist and reports whether it existed.
func (s *Store) Delete(name string) bool {
	k := key(name)
	if _, ok := s.playlists[k]; !ok {
		return false
	}
	delete(s.playlists, k)
	return true
}
