package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/petems/keybinder-tray/internal/audio"
	"github.com/petems/keybinder-tray/internal/config"
	"github.com/petems/keybinder-tray/internal/hotkey"
	"github.com/petems/keybinder-tray/internal/inject"
	"github.com/rs/zerolog"
)

const actionTimeout = 5 * time.Second

// StatusUpdater is an interface for updating status (e.g., tray icon)
type StatusUpdater interface {
	SetIdle()
	SetFired(keystring string)
	SetError()
}

type Config struct {
	Injector      inject.Injector
	Feedback      audio.Feedback // Optional - nil means silent
	Config        *config.Config
	Logger        zerolog.Logger
	StatusUpdater StatusUpdater // Optional - can be nil

	// HotkeyOptions are passed to every hotkey.New call.
	HotkeyOptions []hotkey.Option

	// OnMainThread runs Binder work on the native dispatch thread. Defaults
	// to hotkey.OnMainThread.
	OnMainThread func(func())

	// Save persists config changes made from the tray. Defaults to
	// (*config.Config).Save.
	Save func(*config.Config) error
}

// BindingStatus describes one configured binding as seen by the tray.
type BindingStatus struct {
	config.Binding
	Bound   bool // accepted by the native library
	Presses int
}

type App struct {
	inj      inject.Injector
	feedback audio.Feedback
	log      zerolog.Logger
	status   StatusUpdater
	hkOpts   []hotkey.Option
	now      func() time.Time
	onMain   func(func())
	save     func(*config.Config) error

	// mu serializes Binder work between Go goroutines, and onMain runs that
	// work on the dispatch thread. Dispatch does not take mu.
	mu       sync.Mutex
	cfg      *config.Config
	binder   *hotkey.Binder[config.Binding]
	accepted map[string]bool

	statsMu sync.Mutex
	presses map[string]int

	actions sync.WaitGroup
}

func New(cfg Config) *App {
	fb := cfg.Feedback
	if fb == nil {
		fb = audio.Silent{}
	}
	onMain := cfg.OnMainThread
	if onMain == nil {
		onMain = hotkey.OnMainThread
	}
	save := cfg.Save
	if save == nil {
		save = (*config.Config).Save
	}
	return &App{
		inj:      cfg.Injector,
		feedback: fb,
		log:      cfg.Logger,
		status:   cfg.StatusUpdater,
		hkOpts:   cfg.HotkeyOptions,
		now:      time.Now,
		onMain:   onMain,
		save:     save,
		cfg:      cfg.Config,
		accepted: make(map[string]bool),
		presses:  make(map[string]int),
	}
}

// Start binds every configured hotkey. Bindings the native library rejects
// are logged and reported through Bindings; they are not an error.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	var err error
	a.onMain(func() { err = a.startLocked() })
	return err
}

func (a *App) startLocked() error {
	if a.binder != nil {
		return errors.New("hotkeys already started")
	}

	opts := append([]hotkey.Option{
		hotkey.WithLogger(a.log),
		hotkey.WithUnbindAll(a.cfg.UnbindAll),
	}, a.hkOpts...)

	binder, err := hotkey.New[config.Binding](a.cfg.UseCookedAccelerators, opts...)
	if err != nil {
		return fmt.Errorf("failed to initialize hotkeys: %w", err)
	}
	a.binder = binder
	a.accepted = make(map[string]bool, len(a.cfg.Bindings))

	for _, b := range a.cfg.Bindings {
		ok := binder.Bind(b.Keystring, a.OnHotkey, b)
		a.accepted[b.Keystring] = ok
		if !ok {
			a.log.Warn().Str("keystring", b.Keystring).Msg("Hotkey could not be grabbed")
		}
	}

	a.log.Info().
		Int("bindings", binder.Len()).
		Bool("cooked", a.cfg.UseCookedAccelerators).
		Msg("Hotkeys bound")
	return nil
}

func (a *App) stopLocked() error {
	if a.binder == nil {
		return nil
	}
	err := a.binder.Close()
	a.binder = nil
	return err
}

// OnHotkey runs on the native dispatch thread. The action itself runs on its
// own goroutine so the toolkit main loop is never blocked.
func (a *App) OnHotkey(keystring string, b *config.Binding) {
	binding := *b

	a.statsMu.Lock()
	a.presses[keystring]++
	a.statsMu.Unlock()

	a.log.Info().Str("keystring", keystring).Str("action", binding.Action).Msg("Hotkey pressed")

	a.actions.Add(1)
	go func() {
		defer a.actions.Done()
		a.perform(keystring, binding)
	}()
}

func (a *App) perform(keystring string, b config.Binding) {
	ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
	defer cancel()

	if err := a.feedback.Beep(ctx); err != nil {
		a.log.Debug().Err(err).Msg("Feedback tone failed")
	}

	var err error
	switch b.Action {
	case config.ActionCopy:
		text := inject.Expand(b.Text, keystring, a.now())
		err = a.inj.Deliver(ctx, text)
	case config.ActionLog:
		// Already logged by OnHotkey.
	default:
		err = fmt.Errorf("unknown action %q", b.Action)
	}

	if err != nil {
		a.log.Error().Err(err).Str("keystring", keystring).Msg("Hotkey action failed")
		if a.status != nil {
			a.status.SetError()
		}
		return
	}
	if a.status != nil {
		a.status.SetFired(keystring)
	}
}

// Reload swaps in cfg and rebinds everything.
func (a *App) Reload(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	return a.reloadLocked(cfg)
}

func (a *App) reloadLocked(cfg *config.Config) error {
	var err error
	a.onMain(func() {
		if stopErr := a.stopLocked(); stopErr != nil {
			a.log.Error().Err(stopErr).Msg("Failed to release previous bindings")
		}
		a.cfg = cfg
		err = a.startLocked()
	})
	return err
}

// SetCookedAccelerators changes the accelerator mode, rebinding so the new
// mode applies, and persists it.
func (a *App) SetCookedAccelerators(useCooked bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	cfg := *a.cfg
	cfg.UseCookedAccelerators = useCooked
	if err := a.reloadLocked(&cfg); err != nil {
		return err
	}
	if err := a.save(&cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

func (a *App) CookedAccelerators() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cfg.UseCookedAccelerators
}

// Bindings returns the configured bindings with their bind state.
func (a *App) Bindings() []BindingStatus {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.statsMu.Lock()
	defer a.statsMu.Unlock()

	out := make([]BindingStatus, 0, len(a.cfg.Bindings))
	for _, b := range a.cfg.Bindings {
		out = append(out, BindingStatus{
			Binding: b,
			Bound:   a.binder != nil && a.binder.IsBound(b.Keystring) && a.accepted[b.Keystring],
			Presses: a.presses[b.Keystring],
		})
	}
	return out
}

// Shutdown waits for running actions and releases every binding.
func (a *App) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		a.actions.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		a.log.Warn().Msg("Shutting down with hotkey actions still running")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	var err error
	a.onMain(func() { err = a.stopLocked() })
	return err
}
