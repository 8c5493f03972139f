package tray

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/getlantern/systray"
	"github.com/petems/keybinder-tray/internal/app"
	"github.com/petems/keybinder-tray/internal/config"
	"github.com/petems/keybinder-tray/internal/hotkey"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 5 * time.Second

type UI struct {
	app     *app.App
	version string
	commit  string
	log     zerolog.Logger

	// Menu items
	mBindings *systray.MenuItem
	mCooked   *systray.MenuItem

	mu           sync.Mutex
	bindingItems []*systray.MenuItem
}

// Status update methods for the app to call
func (u *UI) SetIdle() {
	u.updateStatus("idle")
}

func (u *UI) SetFired(keystring string) {
	u.updateStatus("fired")
	systray.SetTooltip("Last hotkey: " + keystring)
}

func (u *UI) SetError() {
	u.updateStatus("error")
}

func New(application *app.App, version, commit string, log zerolog.Logger) *UI {
	return &UI{
		app:     application,
		version: version,
		commit:  commit,
		log:     log,
	}
}

// SetApp sets the app reference (for circular dependency resolution)
func (u *UI) SetApp(application *app.App) {
	u.app = application
}

// Run blocks on the toolkit main loop. On Linux systray initializes GTK here,
// which keybinder needs before any hotkey is bound, so hotkeys are started
// from onReady rather than before Run.
func (u *UI) Run(ctx context.Context) error {
	systray.Run(u.onReady, u.onExit)
	return nil
}

func (u *UI) onReady() {
	u.updateStatus("idle")
	systray.SetTooltip("Global hotkey snippets")

	if err := u.app.Start(); err != nil {
		if errors.Is(err, hotkey.ErrUnsupported) {
			// Nothing useful to show without global hotkeys.
			u.log.Error().Err(err).Msg("Global hotkeys unavailable in this session")
			systray.Quit()
			return
		}
		u.log.Error().Err(err).Msg("Failed to start hotkeys")
		u.SetError()
	}

	u.mBindings = systray.AddMenuItem("Bindings", "Configured hotkeys")
	u.buildBindingMenu()
	systray.AddSeparator()

	u.mCooked = systray.AddMenuItemCheckbox("Cooked Accelerators", "Match keys after keyboard layout translation", u.app.CookedAccelerators())
	mReload := systray.AddMenuItem("Reload Config", "Re-read "+config.Path())

	systray.AddSeparator()
	mAbout := systray.AddMenuItem("About", "About keybinder-tray")
	mQuit := systray.AddMenuItem("Quit", "Exit application")

	go u.handleEvents(mReload, mAbout, mQuit)
}

func (u *UI) handleEvents(mReload, mAbout, mQuit *systray.MenuItem) {
	for {
		select {
		case <-u.mCooked.ClickedCh:
			u.toggleCooked()
		case <-mReload.ClickedCh:
			u.reload()
		case <-mAbout.ClickedCh:
			u.showAbout()
		case <-mQuit.ClickedCh:
			systray.Quit()
			return
		}
	}
}

// buildBindingMenu replaces the binding submenu. systray cannot remove items,
// so stale ones are hidden.
func (u *UI) buildBindingMenu() {
	u.mu.Lock()
	defer u.mu.Unlock()

	for _, item := range u.bindingItems {
		item.Hide()
	}
	u.bindingItems = u.bindingItems[:0]

	for _, st := range u.app.Bindings() {
		item := u.mBindings.AddSubMenuItem(bindingLabel(st), st.Text)
		item.Disable()
		u.bindingItems = append(u.bindingItems, item)
	}
}

func (u *UI) toggleCooked() {
	useCooked := !u.app.CookedAccelerators()
	if err := u.app.SetCookedAccelerators(useCooked); err != nil {
		u.log.Error().Err(err).Msg("Failed to change accelerator mode")
		u.SetError()
		return
	}
	if useCooked {
		u.mCooked.Check()
	} else {
		u.mCooked.Uncheck()
	}
	u.buildBindingMenu()
	u.log.Info().Bool("cooked", useCooked).Msg("Changed accelerator mode")
}

func (u *UI) reload() {
	cfg, err := config.Load()
	if err != nil {
		u.log.Error().Err(err).Msg("Failed to load config")
		u.SetError()
		return
	}
	if err := u.app.Reload(cfg); err != nil {
		u.log.Error().Err(err).Msg("Failed to reload hotkeys")
		u.SetError()
		return
	}
	u.buildBindingMenu()
	u.SetIdle()
	u.log.Info().Int("bindings", len(cfg.Bindings)).Msg("Reloaded config")
}

func (u *UI) showAbout() {
	// TODO: Show about dialog with native UI
	fmt.Printf("keybinder-tray %s (%s)\nGlobal hotkey snippets\n", u.version, u.commit)
}

func (u *UI) onExit() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := u.app.Shutdown(ctx); err != nil {
		u.log.Error().Err(err).Msg("Failed to release hotkeys")
	}
}

// updateStatus sets the tray title with keyboard emoji and status indicator
func (u *UI) updateStatus(status string) {
	systray.SetTitle(fmt.Sprintf("⌨ %s", emojiForStatus(status)))
}

// emojiForStatus returns the appropriate status emoji
func emojiForStatus(status string) string {
	switch status {
	case "fired":
		return "🔵" // Blue - a hotkey just fired
	case "idle":
		return "🟢" // Green - ready/idle
	case "error":
		return "⚪️" // White - error
	default:
		return "🟢" // Green - default to ready
	}
}

// bindingLabel renders a binding for the menu, marking ones the native
// library refused.
func bindingLabel(st app.BindingStatus) string {
	label := fmt.Sprintf("%s → %s", st.Keystring, st.Action)
	if !st.Bound {
		label += " (not grabbed)"
	}
	if st.Presses > 0 {
		label += fmt.Sprintf(" ×%d", st.Presses)
	}
	return label
}
