package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getlantern/systray"
	"github.com/petems/keybinder-tray/internal/app"
	"github.com/petems/keybinder-tray/internal/audio"
	"github.com/petems/keybinder-tray/internal/config"
	"github.com/petems/keybinder-tray/internal/inject"
	"github.com/petems/keybinder-tray/internal/logging"
	"github.com/petems/keybinder-tray/internal/permissions"
	"github.com/petems/keybinder-tray/internal/tray"
)

var (
	// Version is set via ldflags at build time
	Version = "dev"
	// Commit is set via ldflags at build time
	Commit = "unknown"
)

func main() {
	// Load config from XDG/Library/AppData
	cfg, err := config.Load()
	if err != nil {
		// Use default logger if config fails to load
		log := logging.New()
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	// Initialize logger with configured level
	log := logging.NewWithLevel(cfg.LogLevel)

	// macOS requires explicit accessibility approval before hotkeys work
	if err := permissions.EnsurePermissions(); err != nil {
		log.Fatal().Err(err).Msg("Required permissions not granted")
	}

	var feedback audio.Feedback = audio.Silent{}
	if cfg.Feedback.Beep {
		beeper, err := audio.New(cfg.Feedback)
		if err != nil {
			log.Warn().Err(err).Msg("Audio feedback disabled")
		} else {
			feedback = beeper
		}
	}
	defer feedback.Close()

	// Create tray UI first (we'll pass it to app)
	trayUI := tray.New(nil, Version, Commit, log)

	application := app.New(app.Config{
		Injector:      inject.New(cfg.Inject),
		Feedback:      feedback,
		Config:        cfg,
		Logger:        log,
		StatusUpdater: trayUI,
	})

	// Set app reference in tray
	trayUI.SetApp(application)

	log.Info().Str("version", Version).Int("bindings", len(cfg.Bindings)).Msg("keybinder-tray starting...")

	// Setup shutdown signal handling. systray.Quit returns from Run through
	// onExit, which releases every binding.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info().Msg("Shutting down...")
		systray.Quit()
		time.Sleep(5 * time.Second)
		log.Warn().Msg("Tray did not exit in time")
		os.Exit(1)
	}()

	// Start tray UI - MUST run on main thread
	if err := trayUI.Run(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Tray error")
	}
}
