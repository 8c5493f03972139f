//go:build (darwin && cgo) || windows

package hotkey

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.design/x/hotkey"
)

// xhotkeyNative registers hotkeys through golang.design/x/hotkey. Every
// press is funneled through one dispatch goroutine so handlers never run
// concurrently with each other.
type xhotkeyNative struct{}

type registration interface {
	Unregister() error
}

type xbinding struct {
	hk   registration
	stop chan struct{}
}

// xevent is either a key press or, when call is set, work handed to the
// dispatch goroutine by onMainThread.
type xevent struct {
	keystring string
	handler   Trampoline
	data      Handle
	call      func()
}

var xh = struct {
	dispatch  sync.Once
	mu        sync.Mutex
	bound     map[string]*xbinding
	events    chan xevent
	cooked    atomic.Bool
	lastEvent atomic.Uint32
}{
	bound:  map[string]*xbinding{},
	events: make(chan xevent, 16),
}

func platformNative() Native {
	return xhotkeyNative{}
}

func (xhotkeyNative) Supported() bool {
	return true
}

func (xhotkeyNative) Init() {
	startDispatch()
}

func startDispatch() {
	xh.dispatch.Do(func() {
		go func() {
			for ev := range xh.events {
				if ev.call != nil {
					ev.call()
					continue
				}
				xh.lastEvent.Store(uint32(time.Now().UnixMilli()))
				ev.handler(ev.keystring, ev.data)
			}
		}()
	})
}

// onMainThread runs fn on the dispatch goroutine, between presses.
func onMainThread(fn func()) {
	startDispatch()
	done := make(chan struct{})
	xh.events <- xevent{call: func() {
		defer close(done)
		fn()
	}}
	<-done
}

// SetUseCookedAccelerators is recorded for parity with keybinder; cooked
// accelerators are an X11 concept.
func (xhotkeyNative) SetUseCookedAccelerators(useCooked bool) {
	xh.cooked.Store(useCooked)
}

func (xhotkeyNative) Bind(keystring string, handler Trampoline, data Handle) bool {
	mods, key, err := parseAccelerator(keystring)
	if err != nil {
		return false
	}

	xh.mu.Lock()
	defer xh.mu.Unlock()
	if _, ok := xh.bound[keystring]; ok {
		return false
	}

	hk := hotkey.New(mods, key)
	if err := hk.Register(); err != nil {
		return false
	}
	b := &xbinding{hk: hk, stop: make(chan struct{})}
	xh.bound[keystring] = b

	go func() {
		for {
			select {
			case <-b.stop:
				return
			case <-hk.Keydown():
				select {
				case xh.events <- xevent{keystring: keystring, handler: handler, data: data}:
				case <-b.stop:
					return
				}
			}
		}
	}()
	return true
}

func (xhotkeyNative) Unbind(keystring string) {
	xh.mu.Lock()
	b, ok := xh.bound[keystring]
	delete(xh.bound, keystring)
	xh.mu.Unlock()
	if !ok {
		return
	}
	close(b.stop)
	if err := b.hk.Unregister(); err != nil {
		log.Warn().Err(err).Str("keystring", keystring).Msg("Failed to unregister hotkey")
	}
}

// UnbindAll is Unbind: this backend holds at most one binding per keystring.
func (n xhotkeyNative) UnbindAll(keystring string) {
	n.Unbind(keystring)
}

func (xhotkeyNative) CurrentEventTime() uint32 {
	return xh.lastEvent.Load()
}

// parseAccelerator understands keybinder syntax ("<Ctrl><Alt>space") and plus
// syntax ("Ctrl+Alt+Space").
func parseAccelerator(accel string) ([]hotkey.Modifier, hotkey.Key, error) {
	var names []string
	rest := strings.TrimSpace(accel)
	for strings.HasPrefix(rest, "<") {
		end := strings.IndexByte(rest, '>')
		if end < 0 {
			return nil, 0, fmt.Errorf("unterminated modifier in %q", accel)
		}
		names = append(names, rest[1:end])
		rest = rest[end+1:]
	}

	parts := strings.Split(rest, "+")
	names = append(names, parts[:len(parts)-1]...)
	keyName := strings.ToLower(strings.TrimSpace(parts[len(parts)-1]))

	key, ok := keyNames[keyName]
	if !ok {
		return nil, 0, fmt.Errorf("unsupported key %q in %q", keyName, accel)
	}

	mods := make([]hotkey.Modifier, 0, len(names))
	for _, name := range names {
		mod, ok := modifierNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, 0, fmt.Errorf("unsupported modifier %q in %q", name, accel)
		}
		mods = append(mods, mod)
	}
	return mods, key, nil
}

var keyNames = map[string]hotkey.Key{
	"a": hotkey.KeyA, "b": hotkey.KeyB, "c": hotkey.KeyC, "d": hotkey.KeyD,
	"e": hotkey.KeyE, "f": hotkey.KeyF, "g": hotkey.KeyG, "h": hotkey.KeyH,
	"i": hotkey.KeyI, "j": hotkey.KeyJ, "k": hotkey.KeyK, "l": hotkey.KeyL,
	"m": hotkey.KeyM, "n": hotkey.KeyN, "o": hotkey.KeyO, "p": hotkey.KeyP,
	"q": hotkey.KeyQ, "r": hotkey.KeyR, "s": hotkey.KeyS, "t": hotkey.KeyT,
	"u": hotkey.KeyU, "v": hotkey.KeyV, "w": hotkey.KeyW, "x": hotkey.KeyX,
	"y": hotkey.KeyY, "z": hotkey.KeyZ,

	"0": hotkey.Key0, "1": hotkey.Key1, "2": hotkey.Key2, "3": hotkey.Key3,
	"4": hotkey.Key4, "5": hotkey.Key5, "6": hotkey.Key6, "7": hotkey.Key7,
	"8": hotkey.Key8, "9": hotkey.Key9,

	"f1": hotkey.KeyF1, "f2": hotkey.KeyF2, "f3": hotkey.KeyF3, "f4": hotkey.KeyF4,
	"f5": hotkey.KeyF5, "f6": hotkey.KeyF6, "f7": hotkey.KeyF7, "f8": hotkey.KeyF8,
	"f9": hotkey.KeyF9, "f10": hotkey.KeyF10, "f11": hotkey.KeyF11, "f12": hotkey.KeyF12,

	"space":  hotkey.KeySpace,
	"return": hotkey.KeyReturn,
	"enter":  hotkey.KeyReturn,
	"escape": hotkey.KeyEscape,
	"esc":    hotkey.KeyEscape,
	"tab":    hotkey.KeyTab,
	"delete": hotkey.KeyDelete,
	"left":   hotkey.KeyLeft,
	"right":  hotkey.KeyRight,
	"up":     hotkey.KeyUp,
	"down":   hotkey.KeyDown,
}
