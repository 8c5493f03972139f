package inject

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/petems/keybinder-tray/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClipboard struct {
	content string
	writes  []string
	failW   error
	failOn  map[string]error
}

func (f *fakeClipboard) ReadAll() (string, error) { return f.content, nil }

func (f *fakeClipboard) WriteAll(text string) error {
	if f.failW != nil {
		return f.failW
	}
	if err := f.failOn[text]; err != nil {
		return err
	}
	f.writes = append(f.writes, text)
	f.content = text
	return nil
}

func newTestInjector(preferPaste bool, clip *fakeClipboard, paste func() error) *clipboardInjector {
	return &clipboardInjector{
		cfg:       config.InjectConfig{PreferPaste: preferPaste},
		clip:      clip,
		sendPaste: paste,
		settle:    time.Millisecond,
	}
}

func TestCopyWritesClipboard(t *testing.T) {
	clip := &fakeClipboard{}
	inj := newTestInjector(false, clip, nil)

	require.NoError(t, inj.Copy(context.Background(), "hello"))
	assert.Equal(t, "hello", clip.content)
}

func TestCopyWrapsClipboardError(t *testing.T) {
	boom := errors.New("no display")
	inj := newTestInjector(false, &fakeClipboard{failW: boom}, nil)

	err := inj.Copy(context.Background(), "x")
	assert.ErrorIs(t, err, boom)
}

func TestPasteRestoresPreviousClipboard(t *testing.T) {
	clip := &fakeClipboard{content: "previous"}
	pastes := 0
	inj := newTestInjector(true, clip, func() error {
		pastes++
		return nil
	})

	require.NoError(t, inj.Paste(context.Background(), "snippet"))
	assert.Equal(t, 1, pastes)
	assert.Equal(t, []string{"snippet", "previous"}, clip.writes)
	assert.Equal(t, "previous", clip.content)
}

func TestPasteReportsRestoreFailure(t *testing.T) {
	boom := errors.New("clipboard owner gone")
	clip := &fakeClipboard{content: "previous", failOn: map[string]error{"previous": boom}}
	inj := newTestInjector(true, clip, func() error { return nil })

	err := inj.Paste(context.Background(), "snippet")
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "restore clipboard")
	assert.Equal(t, "snippet", clip.content)
}

func TestDeliverFallsBackToCopy(t *testing.T) {
	clip := &fakeClipboard{content: "previous"}
	inj := newTestInjector(true, clip, func() error { return errPasteUnsupported })

	require.NoError(t, inj.Deliver(context.Background(), "snippet"))
	assert.Equal(t, "snippet", clip.content)
}

func TestDeliverWithoutPastePreference(t *testing.T) {
	clip := &fakeClipboard{}
	inj := newTestInjector(false, clip, func() error {
		t.Fatal("paste shortcut must not be sent")
		return nil
	})

	require.NoError(t, inj.Deliver(context.Background(), "snippet"))
	assert.Equal(t, []string{"snippet"}, clip.writes)
}

func TestPasteHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	inj := newTestInjector(true, &fakeClipboard{}, func() error { return nil })

	assert.ErrorIs(t, inj.Paste(ctx, "x"), context.Canceled)
}

func TestExpand(t *testing.T) {
	now := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	got := Expand("{{date}} {{time}} via {{keystring}}", "<Ctrl>d", now)
	assert.Equal(t, "2026-03-04 05:06:07 via <Ctrl>d", got)
}
