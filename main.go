package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/PixPMusic/gopher-soundboard/internal/audio"
	"github.com/PixPMusic/gopher-soundboard/internal/board"
	"github.com/PixPMusic/gopher-soundboard/internal/config"
	"github.com/PixPMusic/gopher-soundboard/internal/layout"
	"github.com/PixPMusic/gopher-soundboard/internal/logging"
	"github.com/PixPMusic/gopher-soundboard/internal/midi"
	"github.com/PixPMusic/gopher-soundboard/internal/tracks"
	"github.com/PixPMusic/gopher-soundboard/internal/tray"
	"github.com/PixPMusic/gopher-soundboard/internal/window"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

type options struct {
	configPath  string
	init        bool
	listDevices bool
	dryRun      bool
	headless    bool
	layout      bool
	legend      string
	logLevel    string
}

func parseFlags() options {
	var o options
	flag.StringVar(&o.configPath, "config", "", "Path to the YAML config (defaults to the user config directory)")
	flag.BoolVar(&o.init, "init", false, "Write a default config and exit")
	flag.BoolVar(&o.listDevices, "list-devices", false, "List MIDI ports and exit")
	flag.BoolVar(&o.dryRun, "dry-run", false, "Run without a Launchpad attached")
	flag.BoolVar(&o.headless, "headless", false, "Run without the system tray")
	flag.BoolVar(&o.layout, "layout", false, "Print the board layout and exit")
	flag.StringVar(&o.legend, "legend", "", "Render the board layout to a PNG file and exit")
	flag.StringVar(&o.logLevel, "log-level", "", "Override the configured log level")
	flag.Parse()
	return o
}

func main() {
	opts := parseFlags()

	// Bootstrap logger until the config says otherwise
	rootLogger, _ := logging.New(os.Stderr, "info", "console")
	logger := logging.Module(rootLogger, "Main")

	path := opts.configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			logger.Fatal().Err(err).Msg("Could not locate config directory")
		}
		path = p
	}

	if opts.init {
		if err := writeDefaultConfig(path); err != nil {
			logger.Fatal().Err(err).Msg("Could not write config")
		}
		fmt.Println(path)
		return
	}

	if opts.listDevices {
		listDevices()
		return
	}

	cfg, err := config.Load(path)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load config")
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}

	rootLogger, err = logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		logger.Fatal().Err(err).Msg("Invalid log settings")
	}
	l := rootLogger.With().Str(logging.LogKey.Run, uuid.NewString()).Logger()
	rootLogger = &l
	logger = logging.Module(rootLogger, "Main")

	if opts.layout || opts.legend != "" {
		if err := renderLayout(cfg, opts, logger); err != nil {
			logger.Fatal().Err(err).Msg("Could not render layout")
		}
		return
	}

	if err := run(cfg, opts, rootLogger); err != nil {
		logger.Fatal().Err(err).Msg("Soundboard stopped")
	}
	logger.Info().Msg("Done")
}

func run(cfg *config.Config, opts options, rootLogger *zerolog.Logger) error {
	logger := logging.Module(rootLogger, "Main")
	logger.Info().Str("config", cfg.Path()).Str("device", cfg.Device).Msg("Starting soundboard")

	speaker, err := audio.OpenSpeaker(cfg.Audio.SampleRate, cfg.Audio.Buffer, logging.Module(rootLogger, "Audio"))
	if err != nil {
		return err
	}
	defer speaker.Close()

	ctrl, err := midi.NewController(cfg.Device, opts.dryRun, logging.Module(rootLogger, "Launchpad"))
	if err != nil {
		return err
	}
	defer midi.CloseDriver()
	defer ctrl.Close()

	b := board.New(ctrl, logging.Module(rootLogger, "Board"), board.WithRegisterPolicy(cfg.Registration))
	defer func() {
		if err := b.Clear(); err != nil {
			logger.Warn().Err(err).Msg("Could not clear LEDs")
		}
	}()

	if err := registerTracks(cfg, b, speaker, rootLogger); err != nil {
		return err
	}
	logger.Info().Int("tracks", b.Len()).Msg("Tracks registered")

	loop, err := board.NewLoop(b, cfg.FPS, logging.Module(rootLogger, "Loop"))
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if opts.headless {
		return loop.Run(ctx)
	}
	return runWithTray(ctx, cancel, cfg, loop, b, rootLogger)
}

// registerTracks builds a track for every configured button. Tracks whose
// sound cannot be loaded or whose name is not a button are skipped.
func registerTracks(cfg *config.Config, b *board.Board, speaker *audio.Speaker, rootLogger *zerolog.Logger) error {
	trackLogger := logging.Module(rootLogger, "Track")

	for _, name := range cfg.TrackNames() {
		tc := cfg.Tracks[name]
		log := trackLogger.With().Str(logging.LogKey.Button, name).Logger()

		source, err := audio.NewSource(cfg.TrackPath(name), tc.Buffered, speaker.SampleRate())
		if err != nil {
			log.Error().Err(err).Msg("Skipping track")
			continue
		}

		t, err := tracks.New(tracks.Options{
			Name:      name,
			Mode:      tc.Mode,
			Source:    source,
			Output:    speaker,
			Loop:      tc.Loop,
			LongPress: cfg.ToggleLongPress,
			Logger:    trackLogger,
		})
		if err != nil {
			log.Error().Err(err).Msg("Skipping track")
			continue
		}

		err = b.Register(name, t, t.Color())
		var unknown *midi.UnknownButtonError
		switch {
		case err == nil:
		case errors.As(err, &unknown), errors.Is(err, board.ErrOccupied):
			log.Warn().Err(err).Msg("Skipping track")
		default:
			return err
		}
	}
	return nil
}

func runWithTray(ctx context.Context, cancel context.CancelFunc, cfg *config.Config, loop *board.Loop, b *board.Board, rootLogger *zerolog.Logger) error {
	logger := logging.Module(rootLogger, "Main")
	fyneApp := app.NewWithID("com.pixpmusic.gopher-soundboard")
	layoutWindow := window.NewLayoutWindow(fyneApp, cfg, logging.Module(rootLogger, "Window"))

	ok := tray.Setup(fyneApp, cfg, logging.Module(rootLogger, "Tray"), tray.Callbacks{
		OnShowLayout: layoutWindow.Show,
		OnStopAll: func() {
			if !loop.Submit(b.StopAll) {
				logger.Warn().Msg("Loop busy, stop all dropped")
			}
		},
		OnQuit: cancel,
	})
	if !ok {
		logger.Warn().Msg("No system tray available, running headless")
		return loop.Run(ctx)
	}

	done := make(chan error, 1)
	go func() {
		done <- loop.Run(ctx)
		fyne.Do(fyneApp.Quit)
	}()

	// Run the Fyne app (this blocks until app.Quit is called)
	fyneApp.Run()
	cancel()
	return <-done
}

func writeDefaultConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return errors.Errorf("%s already exists", path)
	}
	return config.Default().Save(path)
}

func listDevices() {
	ins, outs := midi.Ports()
	defer midi.CloseDriver()

	fmt.Println("MIDI inputs:")
	for _, p := range ins {
		fmt.Printf("  %s\n", p)
	}
	fmt.Println("MIDI outputs:")
	for _, p := range outs {
		fmt.Printf("  %s\n", p)
	}
}

func renderLayout(cfg *config.Config, opts options, logger *zerolog.Logger) error {
	pads, unknown := layout.FromConfig(cfg)
	for _, name := range unknown {
		logger.Warn().Str(logging.LogKey.Button, name).Msg("Not a Launchpad button")
	}

	if opts.layout {
		fmt.Println(layout.Terminal(pads))
	}
	if opts.legend == "" {
		return nil
	}

	f, err := os.Create(opts.legend)
	if err != nil {
		return err
	}
	if err := layout.WritePNG(f, pads); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
