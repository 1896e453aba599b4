package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/avindel/handcast/audio"
	"github.com/avindel/handcast/config"
	"github.com/avindel/handcast/core"
	"github.com/avindel/handcast/engine"
	"github.com/avindel/handcast/event"
	"github.com/avindel/handcast/logger"
	"github.com/avindel/handcast/parameter"
	"github.com/avindel/handcast/pose"
	"github.com/avindel/handcast/render"
	"github.com/avindel/handcast/service"
	"github.com/avindel/handcast/spell"
	"github.com/avindel/handcast/system"
)

var (
	flagConfig   string
	flagListen   string
	flagScript   bool
	flagLogLevel string
	flagMute     bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Run the game",
	Long: `Starts the simulation and renderer. By default a TCP listener
accepts pose frames from an external hand-tracking process; --script
replays a built-in gesture sequence instead.

Keys: q/Esc quit, p pause, r reset session, m mute.`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVarP(&flagConfig, "config", "c", "", "config file path")
	playCmd.Flags().StringVar(&flagListen, "listen", "", "pose feed listen address")
	playCmd.Flags().BoolVar(&flagScript, "script", false, "use the built-in demo gesture script")
	playCmd.Flags().StringVar(&flagLogLevel, "log-level", "", "log level (debug, info, warn, error)")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "disable audio")
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	// Flags outrank the file
	if cmd.Flags().Changed("listen") {
		cfg.Feed.Listen = flagListen
	}
	if cmd.Flags().Changed("script") {
		cfg.Game.Script = flagScript
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level = flagLogLevel
	}
	if cmd.Flags().Changed("mute") {
		cfg.Audio.Enabled = !flagMute
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	// Console logging stays off, the game owns the terminal
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile, false); err != nil {
		return err
	}
	defer logger.Sync()

	catalog := spell.Default()
	if len(cfg.Spells) > 0 {
		catalog, err = catalog.WithOverrides(cfg.Spells)
		if err != nil {
			return fmt.Errorf("spell overrides: %w", err)
		}
	}

	world := engine.NewWorld()
	world.Resources.Config.MinConfidence = cfg.Game.MinConfidence

	hub := service.NewHub()

	audioSvc := audio.NewService(cfg.Audio.Enabled, logger.Log)
	if err := hub.Register(audioSvc); err != nil {
		return err
	}

	var src pose.Source
	if cfg.Game.Script {
		src = pose.NewScript(world, nil, 0)
	} else {
		src = pose.NewFeed(cfg.Feed.Listen, world, logger.Log)
	}
	if err := hub.Register(src); err != nil {
		return err
	}

	if err := hub.InitAll(); err != nil {
		return err
	}
	defer hub.StopAll()

	world.AddSystem(system.NewCastSystem(world, catalog))
	world.AddSystem(system.NewCombatSystem(world))
	world.AddSystem(system.NewLedgerSystem(world))
	world.AddSystem(system.NewAudioSystem(world, catalog, audioSvc.Sounds()))

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	core.CrashHook = screen.Fini
	defer func() {
		core.CrashHook = nil
		screen.Fini()
	}()

	clock := engine.NewPausableClock(engine.NewMonotonicTimeProvider())
	scheduler, updateDone := engine.NewClockScheduler(world, clock, parameter.TickInterval)
	scheduler.RegisterHandlers()

	if err := hub.StartAll(); err != nil {
		return err
	}

	scheduler.Start()
	defer scheduler.Stop()

	logger.Info("session started",
		zap.Bool("script", cfg.Game.Script),
		zap.String("source", src.Name()))

	runLoop(screen, world, scheduler, audioSvc, updateDone)

	logger.Info("session ended",
		zap.Uint64("ticks", scheduler.TickCount()),
		zap.Uint64("frames", src.FramesProduced()),
		zap.Uint64("dropped", src.FramesDropped()))

	return nil
}

// runLoop drives rendering and input until quit
// Frames render after each completed tick; input is handled between frames
func runLoop(screen tcell.Screen, world *engine.World, scheduler *engine.ClockScheduler, audioSvc *audio.Service, updateDone <-chan struct{}) {
	renderer := render.NewSceneRenderer(screen)
	paused := false

	eventChan := make(chan tcell.Event, 100)
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	})

	for {
		select {
		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				switch {
				case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
					return
				case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
					return
				case ev.Key() == tcell.KeyRune && ev.Rune() == 'p':
					if paused {
						scheduler.Resume()
					} else {
						scheduler.Pause()
					}
					paused = !paused
					world.RunSafe(func() {
						renderer.RenderFrame(world, paused)
					})
				case ev.Key() == tcell.KeyRune && ev.Rune() == 'r':
					world.PushEvent(event.EventSessionReset, nil)
				case ev.Key() == tcell.KeyRune && ev.Rune() == 'm':
					if sm := audioSvc.Sounds(); sm != nil {
						sm.ToggleMute()
					}
				}
			case *tcell.EventResize:
				renderer.Resize()
				screen.Sync()
			}

		case <-updateDone:
			world.RunSafe(func() {
				renderer.RenderFrame(world, paused)
			})
		}
	}
}
