// Package render turns player outcomes into console text.
package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"videoplayer-service/internal/catalog"
	"videoplayer-service/internal/player"
)

const (
	SelectionPrompt = "Would you like to play any of the above? If yes, specify the number of the video."
	SelectionHint   = "If your answer is not a valid number, we will assume it's a no."
)

// Printer writes one line per message to w.
type Printer struct {
	w io.Writer
}

func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

func (p *Printer) line(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

// VideoLine formats a video as "Title (id) [#a #b]", with a flag suffix
// for flagged videos.
func VideoLine(v *catalog.Video) string {
	s := fmt.Sprintf("%s (%s) [%s]", v.Title(), v.ID(), strings.Join(v.Tags(), " "))
	if v.Flagged() {
		s += fmt.Sprintf(" - FLAGGED (reason: %s)", v.FlagReason())
	}
	return s
}

func (p *Printer) VideoCount(n int) {
	p.line("%d videos in the library", n)
}

func (p *Printer) AllVideos(videos []*catalog.Video) {
	p.line("Here's a list of all available videos:")
	for _, v := range videos {
		p.line("  %s", VideoLine(v))
	}
}

func (p *Printer) Playback(pb player.Playback) {
	if pb.Stopped != nil {
		p.line("Stopping video: %s", pb.Stopped.Title())
	}
	p.line("Playing video: %s", pb.Started.Title())
}

func (p *Printer) Stopped(v *catalog.Video) {
	p.line("Stopping video: %s", v.Title())
}

func (p *Printer) Paused(v *catalog.Video) {
	p.line("Pausing video: %s", v.Title())
}

func (p *Printer) Continued(v *catalog.Video) {
	p.line("Continuing video: %s", v.Title())
}

func (p *Printer) NowPlaying(st player.Status) {
	s := "Currently playing: " + VideoLine(st.Video)
	if st.Paused {
		s += " - PAUSED"
	}
	p.line("%s", s)
}

func (p *Printer) Flagged(res player.FlagResult) {
	if res.Stopped != nil {
		p.Stopped(res.Stopped)
	}
	p.line("Successfully flagged video: %s (reason: %s)", res.Video.Title(), res.Reason)
}

func (p *Printer) Allowed(v *catalog.Video) {
	p.line("Successfully removed flag from video: %s", v.Title())
}

func (p *Printer) PlaylistCreated(name string) {
	p.line("Successfully created new playlist: %s", name)
}

func (p *Printer) AddedToPlaylist(name string, v *catalog.Video) {
	p.line("Added video to %s: %s", name, v.Title())
}

func (p *Printer) RemovedFromPlaylist(name string, v *catalog.Video) {
	p.line("Removed video from %s: %s", name, v.Title())
}

func (p *Printer) PlaylistCleared(name string) {
	p.line("Successfully removed all videos from %s", name)
}

func (p *Printer) PlaylistDeleted(name string) {
	p.line("Deleted playlist: %s", name)
}

// Playlist prints the content of a playlist under the name the user typed.
func (p *Printer) Playlist(requested string, view player.PlaylistView) {
	p.line("Showing playlist: %s", requested)
	if len(view.Videos) == 0 {
		p.line("  No videos here yet")
		return
	}
	for _, v := range view.Videos {
		p.line("  %s", VideoLine(v))
	}
}

func (p *Printer) Playlists(names []string) {
	if len(names) == 0 {
		p.line("No playlists exist yet")
		return
	}
	p.line("Showing all playlists:")
	for _, n := range names {
		p.line("  %s", n)
	}
}

// SearchResults prints numbered results. It reports whether a selection
// prompt was printed, i.e. whether the caller should read a selection.
func (p *Printer) SearchResults(res player.Results) bool {
	if len(res.Videos) == 0 {
		p.line("No search results for %s", res.Query)
		return false
	}
	p.line("Here are the results for %s:", res.Query)
	for i, v := range res.Videos {
		p.line("  %d) %s", i+1, VideoLine(v))
	}
	p.line(SelectionPrompt)
	p.line(SelectionHint)
	return true
}

// Failure prints the message for a failed operation. Errors that are not
// player errors are printed verbatim.
func (p *Printer) Failure(err error) {
	var e *player.Error
	if !errors.As(err, &e) {
		p.line("Error: %v", err)
		return
	}
	p.line("%s", Message(e))
}

// Message returns the console text for a player error.
func Message(e *player.Error) string {
	switch e.Op {
	case player.OpPlay:
		return "Cannot play video: " + videoProblem(e)
	case player.OpPlayRandom:
		return "No videos available"
	case player.OpStop:
		return "Cannot stop video: No video is currently playing"
	case player.OpPause:
		if e.State == player.StatePaused && e.Video != nil {
			return "Video already paused: " + e.Video.Title()
		}
		return "Cannot pause video: No video is currently playing"
	case player.OpContinue:
		if e.State == player.StatePlaying {
			return "Cannot continue video: Video is not paused"
		}
		return "Cannot continue video: No video is currently playing"
	case player.OpShowPlaying:
		return "No video is currently playing"
	case player.OpFlag:
		return "Cannot flag video: " + videoProblem(e)
	case player.OpAllow:
		return "Cannot remove flag from video: " + videoProblem(e)
	case player.OpCreatePlaylist:
		return "Cannot create playlist: A playlist with the same name already exists"
	case player.OpAddToPlaylist:
		return fmt.Sprintf("Cannot add video to %s: %s", e.Playlist, videoProblem(e))
	case player.OpRemoveFromPlaylist:
		return fmt.Sprintf("Cannot remove video from %s: %s", e.Playlist, videoProblem(e))
	case player.OpClearPlaylist:
		return fmt.Sprintf("Cannot clear playlist %s: Playlist does not exist", e.Playlist)
	case player.OpDeletePlaylist:
		return fmt.Sprintf("Cannot delete playlist %s: Playlist does not exist", e.Playlist)
	case player.OpShowPlaylist:
		return fmt.Sprintf("Cannot show playlist %s: Playlist does not exist", e.Playlist)
	}
	return e.Error()
}

func videoProblem(e *player.Error) string {
	switch e.Kind {
	case player.KindNotFound:
		if e.Target == player.TargetPlaylist {
			return "Playlist does not exist"
		}
		return "Video does not exist"
	case player.KindFlagged:
		return fmt.Sprintf("Video is currently flagged (reason: %s)", e.Reason)
	case player.KindAlreadyFlagged:
		return "Video is already flagged"
	case player.KindNotFlagged:
		return "Video is not flagged"
	case player.KindDuplicate:
		return "Video already added"
	case player.KindNotMember:
		return "Video is not in playlist"
	}
	return e.Kind.String()
}
