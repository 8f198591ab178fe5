// Package command reads text commands, runs them against a Player and
// prints the outcome.
package command

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"videoplayer-service/internal/metrics"
	"videoplayer-service/internal/player"
	"videoplayer-service/internal/render"
)

const (
	Prompt   = "VP> "
	Welcome  = "Hello and welcome to the video player, what would you like to do?\nEnter HELP for list of available commands or EXIT to terminate."
	Goodbye  = "The video player has now terminated its execution. Thank you and goodbye!"
	Invalid  = "Please enter a valid command, type HELP for a list of available commands."
	helpText = `Available commands:
    NUMBER_OF_VIDEOS - Shows how many videos are in the library.
    SHOW_ALL_VIDEOS - Lists all videos from the library.
    PLAY <video_id> - Plays specified video.
    PLAY_RANDOM - Plays a random video from the library.
    STOP - Stop the current video.
    PAUSE - Pause the current video.
    CONTINUE - Resume the current paused video.
    SHOW_PLAYING - Displays the title, video_id, video tags and paused status of the video that is currently playing (or paused).
    CREATE_PLAYLIST <playlist_name> - Creates a new (empty) playlist with the provided name.
    ADD_TO_PLAYLIST <playlist_name> <video_id> - Adds the requested video to the playlist.
    REMOVE_FROM_PLAYLIST <playlist_name> <video_id> - Removes the specified video from the specified playlist
    CLEAR_PLAYLIST <playlist_name> - Removes all videos from the playlist.
    DELETE_PLAYLIST <playlist_name> - Deletes the playlist.
    SHOW_PLAYLIST <playlist_name> - List all the videos in this playlist.
    SHOW_ALL_PLAYLISTS - Display all the available playlists.
    SEARCH_VIDEOS <search_term> - Display all the videos whose titles contain the search_term.
    SEARCH_VIDEOS_WITH_TAG <tag_name> - Display all videos whose tags contains the provided tag.
    FLAG_VIDEO <video_id> <flag_reason> - Mark a video as flagged.
    ALLOW_VIDEO <video_id> - Removes a flag from a video.
    HELP - Displays help.
    EXIT - Terminates the program execution.`
)

// Shell is a line oriented command loop. It owns the player for its
// lifetime and is not safe for concurrent use.
type Shell struct {
	player *player.Player
	out    *render.Printer
	w      io.Writer
	in     *bufio.Scanner

	// lines and done are set while Run is active, so a blocked read can be
	// abandoned when the context ends.
	lines chan string
	done  <-chan struct{}
}

func NewShell(p *player.Player, r io.Reader, w io.Writer) *Shell {
	return &Shell{
		player: p,
		out:    render.NewPrinter(w),
		w:      w,
		in:     bufio.NewScanner(r),
	}
}

// Run prints the welcome banner and executes commands until EXIT, end of
// input or cancellation of ctx. Input is read on a separate goroutine so a
// cancellation does not wait for the next line.
func (s *Shell) Run(ctx context.Context) error {
	stop := make(chan struct{})
	s.lines = make(chan string)
	s.done = ctx.Done()
	defer func() {
		close(stop)
		s.lines, s.done = nil, nil
	}()
	go s.scan(s.lines, stop)

	fmt.Fprintln(s.w, Welcome)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(s.w, Prompt)
		line, ok := s.readLine()
		if !ok {
			fmt.Fprintln(s.w)
			if err := ctx.Err(); err != nil {
				return err
			}
			fmt.Fprintln(s.w, Goodbye)
			return s.in.Err()
		}
		if s.Execute(line) {
			fmt.Fprintln(s.w, Goodbye)
			return nil
		}
	}
}

func (s *Shell) scan(lines chan<- string, stop <-chan struct{}) {
	defer close(lines)
	for s.in.Scan() {
		select {
		case lines <- s.in.Text():
		case <-stop:
			return
		}
	}
}

func (s *Shell) readLine() (string, bool) {
	if s.lines == nil {
		if !s.in.Scan() {
			return "", false
		}
		return s.in.Text(), true
	}
	select {
	case line, ok := <-s.lines:
		return line, ok
	case <-s.done:
		return "", false
	}
}

// Execute runs a single command line. It returns true when the line asks
// the shell to exit.
func (s *Shell) Execute(line string) (exit bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	verb := strings.ToUpper(fields[0])
	args := fields[1:]

	switch {
	case verb == "EXIT":
		return true
	case verb == "HELP" && len(args) == 0:
		fmt.Fprintln(s.w, helpText)
	case verb == "NUMBER_OF_VIDEOS" && len(args) == 0:
		s.out.VideoCount(s.player.VideoCount())
	case verb == "SHOW_ALL_VIDEOS" && len(args) == 0:
		s.out.AllVideos(s.player.Videos())
	case verb == "PLAY" && len(args) == 1:
		pb, err := s.player.Play(args[0])
		s.playback(player.OpPlay, pb, err)
	case verb == "PLAY_RANDOM" && len(args) == 0:
		pb, err := s.player.PlayRandom()
		s.playback(player.OpPlayRandom, pb, err)
	case verb == "STOP" && len(args) == 0:
		v, err := s.player.Stop()
		if s.check(player.OpStop, err) {
			s.out.Stopped(v)
		}
	case verb == "PAUSE" && len(args) == 0:
		v, err := s.player.Pause()
		if s.check(player.OpPause, err) {
			s.out.Paused(v)
		}
	case verb == "CONTINUE" && len(args) == 0:
		v, err := s.player.Continue()
		if s.check(player.OpContinue, err) {
			s.out.Continued(v)
		}
	case verb == "SHOW_PLAYING" && len(args) == 0:
		st, err := s.player.NowPlaying()
		if s.check(player.OpShowPlaying, err) {
			s.out.NowPlaying(st)
		}
	case verb == "CREATE_PLAYLIST" && len(args) == 1:
		name, err := s.player.CreatePlaylist(args[0])
		if s.check(player.OpCreatePlaylist, err) {
			s.out.PlaylistCreated(name)
		}
	case verb == "ADD_TO_PLAYLIST" && len(args) == 2:
		v, err := s.player.AddToPlaylist(args[0], args[1])
		if s.check(player.OpAddToPlaylist, err) {
			s.out.AddedToPlaylist(args[0], v)
		}
	case verb == "REMOVE_FROM_PLAYLIST" && len(args) == 2:
		v, err := s.player.RemoveFromPlaylist(args[0], args[1])
		if s.check(player.OpRemoveFromPlaylist, err) {
			s.out.RemovedFromPlaylist(args[0], v)
		}
	case verb == "CLEAR_PLAYLIST" && len(args) == 1:
		if s.check(player.OpClearPlaylist, s.player.ClearPlaylist(args[0])) {
			s.out.PlaylistCleared(args[0])
		}
	case verb == "DELETE_PLAYLIST" && len(args) == 1:
		if s.check(player.OpDeletePlaylist, s.player.DeletePlaylist(args[0])) {
			s.out.PlaylistDeleted(args[0])
		}
	case verb == "SHOW_PLAYLIST" && len(args) == 1:
		view, err := s.player.ShowPlaylist(args[0])
		if s.check(player.OpShowPlaylist, err) {
			s.out.Playlist(args[0], view)
		}
	case verb == "SHOW_ALL_PLAYLISTS" && len(args) == 0:
		s.out.Playlists(s.player.ListPlaylists())
	case verb == "SEARCH_VIDEOS" && len(args) == 1:
		s.search(s.player.SearchByTitle(args[0]))
	case verb == "SEARCH_VIDEOS_WITH_TAG" && len(args) == 1:
		s.search(s.player.SearchByTag(args[0]))
	case verb == "FLAG_VIDEO" && len(args) >= 1:
		res, err := s.player.Flag(args[0], strings.Join(args[1:], " "))
		if s.check(player.OpFlag, err) {
			s.out.Flagged(res)
		}
	case verb == "ALLOW_VIDEO" && len(args) == 1:
		v, err := s.player.Allow(args[0])
		if s.check(player.OpAllow, err) {
			s.out.Allowed(v)
		}
	default:
		fmt.Fprintln(s.w, Invalid)
	}
	return false
}

// check records the outcome and prints the failure message, if any. It
// reports whether the operation succeeded.
func (s *Shell) check(op player.Op, err error) bool {
	metrics.ObserveOperation(string(op), err)
	if err != nil {
		s.out.Failure(err)
		return false
	}
	return true
}

func (s *Shell) playback(op player.Op, pb player.Playback, err error) {
	if s.check(op, err) {
		s.out.Playback(pb)
	}
}

// search prints the results and, when there are any, reads one more line
// as the result number to play. Anything but a valid number is a no.
func (s *Shell) search(res player.Results) {
	if !s.out.SearchResults(res) {
		return
	}
	answer, ok := s.readLine()
	if !ok {
		return
	}
	if pb, ok := s.player.PlaySelected(res, answer); ok {
		metrics.ObserveOperation("play_selected", nil)
		s.out.Playback(pb)
	}
}
