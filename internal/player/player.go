// Package player implements the playback cursor and every user facing
// operation on top of the catalog and the playlist store.
//
// A Player is not safe for concurrent use. Hosts that serve several callers
// must serialise calls with a single lock.
package player

import (
	"cmp"
	"math/rand"
	"slices"
	"strings"
	"unicode"

	"videoplayer-service/internal/catalog"
	"videoplayer-service/internal/playlist"
)

// DefaultFlagReason is stored when a video is flagged without a reason.
const DefaultFlagReason = "Not supplied"

// State of the playback cursor.
type State int

const (
	StateStopped State = iota
	StatePlaying
	StatePaused
)

func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	default:
		return "stopped"
	}
}

// Chooser returns an index into the n eligible videos. It decides which
// video PlayRandom starts; values outside [0, n) wrap around.
type Chooser func(n int) int

type Option func(*Player)

// WithChooser replaces the default uniform random selection.
func WithChooser(c Chooser) Option {
	return func(p *Player) {
		if c != nil {
			p.choose = c
		}
	}
}

type Player struct {
	catalog   *catalog.Catalog
	playlists *playlist.Store
	choose    Chooser

	current *catalog.Video
	paused  bool
}

func New(cat *catalog.Catalog, store *playlist.Store, opts ...Option) *Player {
	p := &Player{
		catalog:   cat,
		playlists: store,
		choose:    rand.Intn,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Playback describes a started video. Stopped is set when another video
// had to be stopped first.
type Playback struct {
	Stopped *catalog.Video
	Started *catalog.Video
}

// Status is a snapshot of the playback cursor.
type Status struct {
	Video  *catalog.Video
	Paused bool
}

// FlagResult is returned by Flag. Stopped is set when the flagged video
// was loaded and had to be stopped.
type FlagResult struct {
	Video   *catalog.Video
	Reason  string
	Stopped *catalog.Video
}

func (p *Player) State() State {
	switch {
	case p.current == nil:
		return StateStopped
	case p.paused:
		return StatePaused
	default:
		return StatePlaying
	}
}

// VideoCount returns the number of videos in the catalog, flagged or not.
func (p *Player) VideoCount() int {
	return p.catalog.Len()
}

// Videos returns every catalog video sorted by title.
func (p *Player) Videos() []*catalog.Video {
	videos := p.catalog.All()
	sortByTitle(videos)
	return videos
}

func (p *Player) start(v *catalog.Video) Playback {
	pb := Playback{Stopped: p.current, Started: v}
	p.current = v
	p.paused = false
	return pb
}

func (p *Player) Play(id string) (Playback, error) {
	v, ok := p.catalog.Get(id)
	if !ok {
		return Playback{}, videoNotFound(OpPlay, id)
	}
	if v.Flagged() {
		return Playback{}, flaggedError(OpPlay, v)
	}
	return p.start(v), nil
}

// PlayRandom starts one of the unflagged videos picked by the Chooser.
func (p *Player) PlayRandom() (Playback, error) {
	eligible := p.eligible()
	if len(eligible) == 0 {
		return Playback{}, &Error{Op: OpPlayRandom, Kind: KindEmpty}
	}
	return p.start(eligible[p.pick(len(eligible))]), nil
}

// pick calls the Chooser and folds its answer into [0, n).
func (p *Player) pick(n int) int {
	i := p.choose(n) % n
	if i < 0 {
		i += n
	}
	return i
}

// eligible returns the unflagged videos ordered by id, so a given Chooser
// always maps to the same video.
func (p *Player) eligible() []*catalog.Video {
	var out []*catalog.Video
	for _, v := range p.catalog.All() {
		if !v.Flagged() {
			out = append(out, v)
		}
	}
	slices.SortFunc(out, func(a, b *catalog.Video) int {
		return cmp.Compare(a.ID(), b.ID())
	})
	return out
}

func (p *Player) Stop() (*catalog.Video, error) {
	if p.current == nil {
		return nil, &Error{Op: OpStop, Kind: KindInvalidState, State: StateStopped}
	}
	v := p.current
	p.current = nil
	p.paused = false
	return v, nil
}

func (p *Player) Pause() (*catalog.Video, error) {
	switch p.State() {
	case StateStopped:
		return nil, &Error{Op: OpPause, Kind: KindInvalidState, State: StateStopped}
	case StatePaused:
		return nil, &Error{Op: OpPause, Kind: KindInvalidState, State: StatePaused, Video: p.current}
	}
	p.paused = true
	return p.current, nil
}

func (p *Player) Continue() (*catalog.Video, error) {
	switch p.State() {
	case StateStopped:
		return nil, &Error{Op: OpContinue, Kind: KindInvalidState, State: StateStopped}
	case StatePlaying:
		return nil, &Error{Op: OpContinue, Kind: KindInvalidState, State: StatePlaying, Video: p.current}
	}
	p.paused = false
	return p.current, nil
}

func (p *Player) NowPlaying() (Status, error) {
	if p.current == nil {
		return Status{}, &Error{Op: OpShowPlaying, Kind: KindInvalidState, State: StateStopped}
	}
	return Status{Video: p.current, Paused: p.paused}, nil
}

// Flag marks a video as flagged. An empty reason is stored as
// DefaultFlagReason; whitespace in a given reason becomes underscores.
// The loaded video is stopped when it is the one being flagged.
func (p *Player) Flag(id, reason string) (FlagResult, error) {
	v, ok := p.catalog.Get(id)
	if !ok {
		return FlagResult{}, videoNotFound(OpFlag, id)
	}
	if v.Flagged() {
		return FlagResult{}, &Error{Op: OpFlag, Kind: KindAlreadyFlagged, Target: TargetVideo, VideoID: id, Video: v}
	}

	var res FlagResult
	if p.current != nil && p.current.ID() == v.ID() {
		res.Stopped, _ = p.Stop()
	}

	res.Reason = normalizeReason(reason)
	p.catalog.SetFlag(id, true, res.Reason)
	res.Video = v
	return res, nil
}

func normalizeReason(reason string) string {
	if reason == "" {
		return DefaultFlagReason
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '_'
		}
		return r
	}, reason)
}

func (p *Player) Allow(id string) (*catalog.Video, error) {
	v, ok := p.catalog.Get(id)
	if !ok {
		return nil, videoNotFound(OpAllow, id)
	}
	if !v.Flagged() {
		return nil, &Error{Op: OpAllow, Kind: KindNotFlagged, Target: TargetVideo, VideoID: id, Video: v}
	}
	p.catalog.SetFlag(id, false, "")
	return v, nil
}

func sortByTitle(videos []*catalog.Video) {
	slices.SortStableFunc(videos, func(a, b *catalog.Video) int {
		if c := cmp.Compare(a.Title(), b.Title()); c != 0 {
			return c
		}
		return cmp.Compare(a.ID(), b.ID())
	})
}
