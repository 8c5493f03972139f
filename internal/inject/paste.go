package inject

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/petems/keybinder-tray/internal/config"
)

var errPasteUnsupported = errors.New("paste shortcut not supported on this platform")

type clipboardIO interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

type systemClipboard struct{}

func (systemClipboard) ReadAll() (string, error)   { return clipboard.ReadAll() }
func (systemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

type clipboardInjector struct {
	cfg       config.InjectConfig
	clip      clipboardIO
	sendPaste func() error
	settle    time.Duration
}

// New creates a new text injector
func New(cfg config.InjectConfig) Injector {
	return &clipboardInjector{
		cfg:       cfg,
		clip:      systemClipboard{},
		sendPaste: sendPasteShortcut,
		settle:    50 * time.Millisecond,
	}
}

func (p *clipboardInjector) Copy(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := p.clip.WriteAll(text); err != nil {
		return fmt.Errorf("failed to write clipboard: %w", err)
	}
	return nil
}

func (p *clipboardInjector) Paste(ctx context.Context, text string) error {
	// If clipboard read fails, proceed anyway
	oldClip, err := p.clip.ReadAll()
	if err != nil {
		oldClip = ""
	}

	if err := p.Copy(ctx, text); err != nil {
		return err
	}

	if err := p.wait(ctx); err != nil {
		return err
	}

	if err := p.sendPaste(); err != nil {
		return fmt.Errorf("failed to send paste shortcut: %w", err)
	}

	if err := p.wait(ctx); err != nil {
		return err
	}

	// Restore only if the user hasn't changed the clipboard in the meantime
	if currentClip, _ := p.clip.ReadAll(); currentClip == text {
		if err := p.clip.WriteAll(oldClip); err != nil {
			return fmt.Errorf("failed to restore clipboard: %w", err)
		}
	}
	return nil
}

func (p *clipboardInjector) Deliver(ctx context.Context, text string) error {
	if p.cfg.PreferPaste {
		err := p.Paste(ctx, text)
		if err == nil || !errors.Is(err, errPasteUnsupported) {
			return err
		}
	}
	return p.Copy(ctx, text)
}

func (p *clipboardInjector) wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(p.settle):
		return nil
	}
}
