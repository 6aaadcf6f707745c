//go:build linux

package mpris

import (
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/llehouerou/flipplayer/internal/logger"
	"github.com/llehouerou/flipplayer/internal/playback"
)

const (
	minRate = 0.25
	maxRate = 2.0
)

var mimeTypes = []string{
	"video/mp4",
	"video/webm",
	"application/vnd.apple.mpegurl",
	"application/dash+xml",
}

// New creates a session and starts serving it on the session bus.
func New() (*Session, error) {
	s := newSession()

	srv := server.NewServer("flipplayer", &rootAdapter{}, &playerAdapter{session: s})
	s.closer = srv.Stop

	go func() {
		if err := srv.Listen(); err != nil {
			logger.Log.Debug().Err(err).Msg("mpris server stopped")
		}
	}()

	return s, nil
}

// rootAdapter answers the org.mpris.MediaPlayer2 interface. The window is
// mpv's, so raising and quitting are not offered.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error                { return nil }
func (r *rootAdapter) Quit() error                 { return nil }
func (r *rootAdapter) CanQuit() (bool, error)      { return false, nil }
func (r *rootAdapter) CanRaise() (bool, error)     { return false, nil }
func (r *rootAdapter) HasTrackList() (bool, error) { return false, nil }
func (r *rootAdapter) Identity() (string, error)   { return "flipplayer", nil }

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) { return []string{"http", "https"}, nil }
func (r *rootAdapter) SupportedMimeTypes() ([]string, error)  { return mimeTypes, nil }

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter on top of the
// session's action handlers.
type playerAdapter struct {
	session *Session
}

func (p *playerAdapter) Next() error     { return nil }
func (p *playerAdapter) Previous() error { return nil }

func (p *playerAdapter) Pause() error {
	p.session.invoke(playback.ActionPause, playback.ActionDetails{})
	return nil
}

func (p *playerAdapter) PlayPause() error {
	p.session.playPause()
	return nil
}

func (p *playerAdapter) Stop() error { return p.Pause() }

func (p *playerAdapter) Play() error {
	p.session.invoke(playback.ActionPlay, playback.ActionDetails{})
	return nil
}

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	p.session.seekBy(microsToSeconds(offset))
	return nil
}

func (p *playerAdapter) SetPosition(_ string, position types.Microseconds) error {
	p.session.seekTo(microsToSeconds(position))
	return nil
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error { return nil }

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	_, status, _, _ := p.session.snapshot()
	return playbackStatus(status), nil
}

func (p *playerAdapter) Rate() (float64, error) {
	_, _, _, rate := p.session.snapshot()
	return rate, nil
}

func (p *playerAdapter) SetRate(_ float64) error { return nil }

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	video, _, duration, _ := p.session.snapshot()
	if video.ID == "" && video.Title == "" {
		return types.Metadata{}, nil
	}

	meta := types.Metadata{
		TrackId: dbus.ObjectPath(formatTrackID(video.ID)),
		Length:  secondsToMicros(duration),
		Title:   video.Title,
		ArtUrl:  video.Thumbnail,
	}
	if video.Author != "" {
		meta.Artist = []string{video.Author}
	}

	return meta, nil
}

func (p *playerAdapter) Volume() (float64, error)      { return 1.0, nil }
func (p *playerAdapter) SetVolume(_ float64) error     { return nil }
func (p *playerAdapter) Position() (int64, error)      { return int64(secondsToMicros(p.session.currentPosition())), nil }
func (p *playerAdapter) MinimumRate() (float64, error) { return minRate, nil }
func (p *playerAdapter) MaximumRate() (float64, error) { return maxRate, nil }
func (p *playerAdapter) CanGoNext() (bool, error)      { return false, nil }
func (p *playerAdapter) CanGoPrevious() (bool, error)  { return false, nil }

func (p *playerAdapter) CanPlay() (bool, error) {
	_, status, _, _ := p.session.snapshot()
	return status != playback.StatusFailed, nil
}

func (p *playerAdapter) CanPause() (bool, error)   { return true, nil }
func (p *playerAdapter) CanSeek() (bool, error)    { return true, nil }
func (p *playerAdapter) CanControl() (bool, error) { return true, nil }

func playbackStatus(s playback.Status) types.PlaybackStatus {
	switch s {
	case playback.StatusPlaying, playback.StatusBuffering:
		return types.PlaybackStatusPlaying
	case playback.StatusPaused:
		return types.PlaybackStatusPaused
	case playback.StatusIdle, playback.StatusEnded, playback.StatusFailed:
		return types.PlaybackStatusStopped
	}
	return types.PlaybackStatusStopped
}

func microsToSeconds(us types.Microseconds) float64 {
	return (time.Duration(us) * time.Microsecond).Seconds()
}

func secondsToMicros(s float64) types.Microseconds {
	return types.Microseconds(time.Duration(s * float64(time.Second)).Microseconds())
}
