package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/llehouerou/flipplayer/internal/adapter"
	"github.com/llehouerou/flipplayer/internal/app"
	"github.com/llehouerou/flipplayer/internal/auth"
	"github.com/llehouerou/flipplayer/internal/chapters"
	"github.com/llehouerou/flipplayer/internal/config"
	"github.com/llehouerou/flipplayer/internal/errmsg"
	"github.com/llehouerou/flipplayer/internal/history"
	"github.com/llehouerou/flipplayer/internal/interaction"
	"github.com/llehouerou/flipplayer/internal/logger"
	"github.com/llehouerou/flipplayer/internal/media/mpv"
	"github.com/llehouerou/flipplayer/internal/mpris"
	"github.com/llehouerou/flipplayer/internal/notify"
	"github.com/llehouerou/flipplayer/internal/playback"
	"github.com/llehouerou/flipplayer/internal/runloop"
	"github.com/llehouerou/flipplayer/internal/sponsorblock"
	"github.com/llehouerou/flipplayer/internal/state"
)

type runOptions struct {
	URL         string
	SourceType  adapter.SourceType
	StartTime   string
	VideoID     string
	Title       string
	Author      string
	Description string
	Length      float64
	Live        bool
	Embed       bool
}

func (o runOptions) media() playback.Media {
	return playback.Media{
		Video: playback.Video{
			ID:          o.VideoID,
			Title:       o.Title,
			Author:      o.Author,
			Description: o.Description,
			Length:      o.Length,
		},
		Source: adapter.Source{
			Type: o.SourceType,
			URL:  o.URL,
			Live: o.Live,
		},
	}
}

// collaborators are the optional services around the player. Each one that
// fails to start is left out and the player runs without it.
type collaborators struct {
	volumes  *state.Manager
	session  *auth.Session
	history  *history.Client
	reporter *notify.Reporter
	mpris    *mpris.Session
}

func openCollaborators(cfg *config.Config) collaborators {
	var c collaborators

	if m, err := state.Open(); err != nil {
		logger.Log.Warn().Err(err).Msg(errmsg.OpStateOpen.Failed())
	} else {
		c.volumes = m
	}

	s, err := auth.LoadSession()
	if err != nil {
		logger.Log.Warn().Err(err).Msg(errmsg.OpSessionLoad.Failed())
	}
	c.session = s

	if cfg.HasAPI() {
		c.history = history.NewClient(cfg.API.URL, c.session)
	}

	if n, err := notify.New(); err == nil {
		c.reporter = notify.NewReporter(n)
	}

	if ms, err := mpris.New(); err != nil {
		logger.Log.Warn().Err(err).Msg(errmsg.OpMediaKeys.Failed())
	} else {
		c.mpris = ms
	}
	return c
}

func (c collaborators) close() {
	if c.mpris != nil {
		_ = c.mpris.Close()
	}
	if c.reporter != nil {
		c.reporter.Wait()
	}
	if c.volumes != nil {
		if err := c.volumes.Close(); err != nil {
			logger.Log.Warn().Err(err).Msg(errmsg.OpVolumeSave.Failed())
		}
	}
}

// playbackOptions sets the collaborators that started. Missing ones stay nil
// interfaces.
func (c collaborators) playbackOptions(opts *playback.Options) {
	if c.volumes != nil {
		opts.Volumes = c.volumes
	}
	if c.session != nil {
		opts.Session = c.session
	}
	if c.history != nil {
		opts.History = c.history
	}
	if c.reporter != nil {
		opts.Reporter = c.reporter
	}
	if c.mpris != nil {
		opts.MediaSession = c.mpris
	}
}

func run(ctx context.Context, opts runOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load()
	if err != nil {
		return errmsg.Wrap(errmsg.OpConfigLoad, err)
	}
	logCloser, err := logger.Init(cfg.Log.Level, cfg.Log.Pretty, nil)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logCloser.Close()

	embed := opts.Embed || cfg.Player.Embed
	logger.Log.Info().
		Str("url", opts.URL).
		Str("type", opts.SourceType.String()).
		Bool("embed", embed).
		Msg("starting")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loop := runloop.New()
	el, err := mpv.Launch(ctx, loop, mpv.Options{
		Binary:    cfg.MPV.Binary,
		Title:     lo.CoalesceOrEmpty(opts.Title, "flipplayer"),
		ExtraArgs: cfg.MPV.Args,
	})
	if err != nil {
		return errmsg.Wrap(errmsg.OpLaunchMPV, err)
	}
	defer el.Close()

	collab := openCollaborators(cfg)
	defer collab.close()

	pbOpts := playback.Options{
		Loop:     loop,
		Element:  el,
		Settings: cfg,
		Fetcher:  adapter.NewHTTPFetcher(),
		Embedded: embed,
	}
	collab.playbackOptions(&pbOpts)
	player := playback.New(pbOpts)
	sub := player.Subscribe()

	bridge := app.NewUIBridge()
	ctrl := interaction.New(interaction.Options{
		Loop:       loop,
		Player:     player,
		Fullscreen: el,
		Captions:   el,
		Policies:   cfg,
		OnChange:   bridge.Publish,
	})

	m := opts.media()
	chs := chapters.Parse(m.Video.Description, m.Video.Length)

	badges := []string{}
	if embed {
		badges = append(badges, "embed")
	}
	if collab.session.LoggedIn() {
		badges = append(badges, "signed in")
	} else {
		badges = append(badges, "guest")
	}

	program := tea.NewProgram(
		app.New(app.Options{
			Loop:         loop,
			Player:       player,
			Controls:     ctrl,
			Window:       ctrl.Window(),
			Subscription: sub,
			Bridge:       bridge,
			Video:        m.Video,
			Chapters:     chs,
			Badges:       badges,
		}),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithReportFocus(),
		tea.WithContext(ctx),
	)

	loop.Post(func() {
		player.Mount(m)
		ctrl.Mount()
		ctrl.SetVideo(chs)
		if opts.StartTime != "" {
			player.HandleRoute(url.Values{"t": {opts.StartTime}})
		}
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := loop.Run(gctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		defer cancel()
		_, err := program.Run()
		// Also reached when mpv exits on its own.
		loop.Do(func() {
			ctrl.Unmount()
			player.Unmount()
			player.Close()
		})
		loop.Close()
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		select {
		case <-el.Done():
			logger.Log.Info().Msg("mpv exited")
			program.Quit()
		case <-gctx.Done():
		}
		return nil
	})
	if cfg.SponsorBlockEnabled() && opts.VideoID != "" && !opts.Live {
		g.Go(func() error {
			loadSegments(gctx, cfg, opts.VideoID, loop, ctrl, player, program)
			return nil
		})
	}

	err = g.Wait()
	player.WaitSaves()
	return err
}

// loadSegments fetches the skip segments and hands them to the controller.
// Failures only cost the skip feature.
func loadSegments(
	ctx context.Context,
	cfg *config.Config,
	videoID string,
	loop *runloop.Loop,
	ctrl *interaction.Controller,
	player *playback.Orchestrator,
	program *tea.Program,
) {
	categories := lo.Filter(sponsorblock.Categories, func(c sponsorblock.Category, _ int) bool {
		return sponsorblock.ResolvePolicy(cfg, c) != sponsorblock.PolicyNone
	})
	if len(categories) == 0 {
		return
	}

	raw, err := sponsorblock.NewClient(cfg.API.SponsorBlockURL).SkipSegments(ctx, videoID, categories)
	if err != nil {
		logger.Log.Warn().Err(err).Str("video", videoID).Msg(errmsg.OpSegmentsLoad.Failed())
		return
	}
	logger.Log.Debug().Int("count", len(raw)).Str("video", videoID).Msg("skip segments loaded")

	loop.Post(func() {
		s := player.State()
		duration := player.Media().Video.Length
		if s.DurationKnown {
			duration = s.Duration
		}
		segs := sponsorblock.NewSegments(raw, duration)
		ctrl.SetSegments(segs)
		go program.Send(app.SegmentsLoadedMsg{Segments: segs.All()})
	})
}
