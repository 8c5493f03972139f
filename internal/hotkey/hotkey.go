// Package hotkey owns the callback state handed to a native global hotkey
// library. The native side only ever sees an opaque Handle; the Binder keeps
// the typed state alive until the binding is retired.
//
// Binder methods are not safe for concurrent use. They are expected to run on
// the same thread that drives native dispatch (the GTK main loop on Linux);
// OnMainThread gets them there. Calling Unbind while the native library may be
// delivering a callback on another thread is a caller error.
package hotkey

import (
	"errors"

	"github.com/rs/zerolog"
)

// ErrUnsupported is returned by New when global hotkeys are not available on
// this platform or session.
var ErrUnsupported = errors.New("hotkey: global hotkeys not supported")

// Handler is called with the pressed keystring and the data given to Bind.
type Handler[T any] func(keystring string, data *T)

// Trampoline is the fixed entry point a Native invokes when a bound key is
// pressed. data is the Handle passed to Native.Bind.
type Trampoline func(keystring string, data Handle)

// Native is the global hotkey facility the Binder drives. Implementations
// never free or inspect the Handle they are given.
type Native interface {
	Supported() bool
	// Init must run at most once per process, before any Bind.
	Init()
	SetUseCookedAccelerators(useCooked bool)
	Bind(keystring string, handler Trampoline, data Handle) bool
	Unbind(keystring string)
	// UnbindAll drops every native binding sharing keystring.
	UnbindAll(keystring string)
	CurrentEventTime() uint32
}

type options struct {
	native    Native
	log       zerolog.Logger
	unbindAll bool
}

// Option configures New.
type Option func(*options)

// WithNative replaces the platform native library.
func WithNative(n Native) Option {
	return func(o *options) { o.native = n }
}

// WithLogger sets the logger for bind and release events.
func WithLogger(log zerolog.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithUnbindAll makes releases call Native.UnbindAll instead of Native.Unbind.
func WithUnbindAll(all bool) Option {
	return func(o *options) { o.unbindAll = all }
}

// Supported reports whether the platform native library can bind hotkeys.
func Supported() bool {
	return platformNative().Supported()
}

// CurrentEventTime returns the timestamp of the event being dispatched by the
// platform native library.
func CurrentEventTime() uint32 {
	return platformNative().CurrentEventTime()
}

// OnMainThread runs fn on the thread that dispatches native hotkey events and
// waits for it to return. Binder calls made from other goroutines go through
// it so they never race a dispatch. On Linux that is the GLib main loop; when
// no loop owns the default context, fn runs directly on the caller.
//
// Handlers must not call OnMainThread: on backends with a dispatch goroutine
// it would wait on itself.
func OnMainThread(fn func()) {
	onMainThread(fn)
}
