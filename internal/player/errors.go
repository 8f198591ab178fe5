package player

import (
	"fmt"

	"videoplayer-service/internal/catalog"
)

// Kind classifies why an operation was refused. Every kind is an expected,
// recoverable outcome.
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindAlreadyExists
	KindInvalidState
	KindFlagged
	KindNotFlagged
	KindAlreadyFlagged
	KindDuplicate
	KindNotMember
	KindEmpty
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindAlreadyExists:
		return "already_exists"
	case KindInvalidState:
		return "invalid_state"
	case KindFlagged:
		return "flagged"
	case KindNotFlagged:
		return "not_flagged"
	case KindAlreadyFlagged:
		return "already_flagged"
	case KindDuplicate:
		return "duplicate"
	case KindNotMember:
		return "not_member"
	case KindEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

// Op names the player operation that produced an error.
type Op string

const (
	OpPlay               Op = "play"
	OpPlayRandom         Op = "play_random"
	OpStop               Op = "stop"
	OpPause              Op = "pause"
	OpContinue           Op = "continue"
	OpShowPlaying        Op = "show_playing"
	OpFlag               Op = "flag"
	OpAllow              Op = "allow"
	OpCreatePlaylist     Op = "create_playlist"
	OpAddToPlaylist      Op = "add_to_playlist"
	OpRemoveFromPlaylist Op = "remove_from_playlist"
	OpClearPlaylist      Op = "clear_playlist"
	OpDeletePlaylist     Op = "delete_playlist"
	OpShowPlaylist       Op = "show_playlist"
)

// Target tells which entity a KindNotFound error refers to.
type Target int

const (
	TargetNone Target = iota
	TargetVideo
	TargetPlaylist
)

// Error is the typed failure returned by every player operation.
type Error struct {
	Op     Op
	Kind   Kind
	Target Target

	// Playlist and VideoID echo the arguments of the failed call.
	Playlist string
	VideoID  string

	// Reason is the flag reason for KindFlagged.
	Reason string

	// State is the cursor state for KindInvalidState.
	State State

	// Video is the video involved, when there is one.
	Video *catalog.Video
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	switch {
	case e.Kind == KindNotFound && e.Target == TargetPlaylist:
		msg += fmt.Sprintf(" (playlist %q)", e.Playlist)
	case e.Kind == KindNotFound && e.Target == TargetVideo:
		msg += fmt.Sprintf(" (video %q)", e.VideoID)
	case e.Kind == KindFlagged:
		msg += fmt.Sprintf(" (reason: %s)", e.Reason)
	case e.Kind == KindInvalidState:
		msg += fmt.Sprintf(" (%s)", e.State)
	}
	return msg
}

// Is matches errors of the same kind, so errors.Is(err, ErrFlagged) works
// regardless of the operation.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrNotFound       = &Error{Kind: KindNotFound}
	ErrAlreadyExists  = &Error{Kind: KindAlreadyExists}
	ErrInvalidState   = &Error{Kind: KindInvalidState}
	ErrFlagged        = &Error{Kind: KindFlagged}
	ErrNotFlagged     = &Error{Kind: KindNotFlagged}
	ErrAlreadyFlagged = &Error{Kind: KindAlreadyFlagged}
	ErrDuplicate      = &Error{Kind: KindDuplicate}
	ErrNotMember      = &Error{Kind: KindNotMember}
	ErrEmpty          = &Error{Kind: KindEmpty}
)

func videoNotFound(op Op, id string) *Error {
	return &Error{Op: op, Kind: KindNotFound, Target: TargetVideo, VideoID: id}
}

func playlistNotFound(op Op, name string) *Error {
	return &Error{Op: op, Kind: KindNotFound, Target: TargetPlaylist, Playlist: name}
}

func flaggedError(op Op, v *catalog.Video) *Error {
	return &Error{Op: op, Kind: KindFlagged, Target: TargetVideo, VideoID: v.ID(), Reason: v.FlagReason(), Video: v}
}
