package tray

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/PixPMusic/gopher-soundboard/internal/config"
	"github.com/PixPMusic/gopher-soundboard/internal/startup"
	"github.com/rs/zerolog"
)

// Callbacks for tray menu actions
type Callbacks struct {
	OnShowLayout func()
	OnStopAll    func()
	OnQuit       func()
}

// Setup initializes the system tray using Fyne's built-in support.
// It returns false when the app has no system tray.
func Setup(app fyne.App, cfg *config.Config, logger *zerolog.Logger, callbacks Callbacks) bool {
	desk, ok := app.(desktop.App)
	if !ok {
		return false
	}

	layoutItem := fyne.NewMenuItem("Show Layout", func() {
		if callbacks.OnShowLayout != nil {
			callbacks.OnShowLayout()
		}
	})

	stopItem := fyne.NewMenuItem("Stop All Tracks", func() {
		if callbacks.OnStopAll != nil {
			callbacks.OnStopAll()
		}
	})

	startupItem := fyne.NewMenuItem("Open at Startup", nil)
	startupItem.Checked = cfg.OpenAtStartup

	quitItem := fyne.NewMenuItem("Quit", func() {
		if callbacks.OnQuit != nil {
			callbacks.OnQuit()
		}
	})

	menu := fyne.NewMenu("Gopher Soundboard",
		layoutItem,
		stopItem,
		fyne.NewMenuItemSeparator(),
		startupItem,
		fyne.NewMenuItemSeparator(),
		quitItem,
	)

	// Set the action after menu is created so we can refresh it
	startupItem.Action = func() {
		enable := !startupItem.Checked
		if err := setStartup(enable, cfg); err != nil {
			logger.Error().Err(err).Bool("enable", enable).Msg("Could not change startup registration")
			return
		}
		startupItem.Checked = enable
		cfg.OpenAtStartup = enable
		if cfg.Path() != "" {
			if err := cfg.Save(cfg.Path()); err != nil {
				logger.Error().Err(err).Msg("Could not save config")
			}
		}
		menu.Refresh()
	}

	desk.SetSystemTrayMenu(menu)
	desk.SetSystemTrayIcon(fyne.NewStaticResource("icon.png", iconPNG()))
	return true
}

func setStartup(enable bool, cfg *config.Config) error {
	if !enable {
		return startup.Disable()
	}
	var args []string
	if cfg.Path() != "" {
		args = append(args, "-config", cfg.Path())
	}
	return startup.Enable(args...)
}
