// Package catalog owns the fixed set of videos known to the player and
// their moderation state.
package catalog

import (
	"errors"
	"fmt"
)

// ErrDuplicateID is returned by Add when a video id is already taken.
var ErrDuplicateID = errors.New("duplicate video id")

// Catalog maps video ids to videos. It is populated once by a loader and
// only flag state changes afterwards.
type Catalog struct {
	videos map[string]*Video
}

// New returns a catalog holding the given videos. Videos with an id that
// is already present are skipped; use Add to observe the collision.
func New(videos ...*Video) *Catalog {
	c := &Catalog{videos: make(map[string]*Video, len(videos))}
	for _, v := range videos {
		_ = c.Add(v)
	}
	return c
}

// Add registers v. Ids are never reassigned.
func (c *Catalog) Add(v *Video) error {
	if v == nil {
		return errors.New("nil video")
	}
	if _, ok := c.videos[v.id]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateID, v.id)
	}
	c.videos[v.id] = v
	return nil
}

// Get looks a video up by its exact (case-sensitive) id.
func (c *Catalog) Get(id string) (*Video, bool) {
	v, ok := c.videos[id]
	return v, ok
}

// All returns every video in no particular order.
func (c *Catalog) All() []*Video {
	out := make([]*Video, 0, len(c.videos))
	for _, v := range c.videos {
		out = append(out, v)
	}
	return out
}

func (c *Catalog) Len() int {
	return len(c.videos)
}

// SetFlag updates the moderation state of a video in place. Keeping the
// reason consistent with the flag is the caller's job. It reports false
// when no video has that id.
func (c *Catalog) SetFlag(id string, flagged bool, reason string) bool {
	v, ok := c.videos[id]
	if !ok {
		return false
	}
	v.setFlag(flagged, reason)
	return true
}
