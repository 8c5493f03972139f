package hotkey

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"
)

// initOnce guards Native.Init for every Binder in the process, whatever its
// data type.
var initOnce = new(sync.Once)

// Binder binds keystrings to handlers carrying data of type T.
type Binder[T any] struct {
	native    Native
	log       zerolog.Logger
	unbindAll bool
	active    map[string]Handle
}

// New checks that global hotkeys are supported, initializes the native
// library on first use and applies the cooked accelerator mode. The mode is
// process-wide; the most recent New wins.
func New[T any](useCooked bool, opts ...Option) (*Binder[T], error) {
	o := options{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.native == nil {
		o.native = platformNative()
	}

	if !o.native.Supported() {
		return nil, ErrUnsupported
	}

	initOnce.Do(o.native.Init)
	o.native.SetUseCookedAccelerators(useCooked)

	return &Binder[T]{
		native:    o.native,
		log:       o.log,
		unbindAll: o.unbindAll,
		active:    make(map[string]Handle),
	}, nil
}

// Bind registers handler for keystring, replacing any existing binding for the
// same keystring. It reports whether the native library accepted the binding.
//
// The binding is recorded even when the native library refuses it, so a later
// Unbind or Close is still required to release data.
func (b *Binder[T]) Bind(keystring string, handler Handler[T], data T) bool {
	if handler == nil {
		panic("hotkey: nil handler")
	}

	b.Unbind(keystring)

	h := alloc(&payload[T]{handler: handler, data: data})
	b.active[keystring] = h

	ok := b.native.Bind(keystring, trampoline, h)
	if !ok {
		b.log.Warn().Str("keystring", keystring).Msg("Native library rejected binding")
	} else {
		b.log.Debug().Str("keystring", keystring).Msg("Bound hotkey")
	}
	return ok
}

// Unbind removes the binding for keystring. It does nothing if keystring is
// not bound.
func (b *Binder[T]) Unbind(keystring string) {
	h, ok := b.active[keystring]
	if !ok {
		return
	}
	if err := b.release(keystring, h); err != nil {
		b.log.Error().Err(err).Str("keystring", keystring).Msg("Failed to close binding data")
	}
}

// Close releases every binding. The Binder is empty, and still usable,
// afterwards.
func (b *Binder[T]) Close() error {
	var errs []error
	for _, keystring := range b.Keystrings() {
		if err := b.release(keystring, b.active[keystring]); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// release is the only path that frees a Handle. The native library drops the
// keystring before the storage goes away so no dispatch can reach it.
func (b *Binder[T]) release(keystring string, h Handle) error {
	if b.unbindAll {
		b.native.UnbindAll(keystring)
	} else {
		b.native.Unbind(keystring)
	}
	delete(b.active, keystring)

	e, ok := free(h)
	if !ok {
		panic(fmt.Sprintf("hotkey: handle %d for %q released twice", h, keystring))
	}
	b.log.Debug().Str("keystring", keystring).Msg("Unbound hotkey")

	if err := e.release(); err != nil {
		return fmt.Errorf("release %q: %w", keystring, err)
	}
	return nil
}

// IsBound reports whether keystring has a binding, accepted or not.
func (b *Binder[T]) IsBound(keystring string) bool {
	_, ok := b.active[keystring]
	return ok
}

// Keystrings returns the bound keystrings in sorted order.
func (b *Binder[T]) Keystrings() []string {
	keys := make([]string, 0, len(b.active))
	for k := range b.active {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of bindings.
func (b *Binder[T]) Len() int {
	return len(b.active)
}

// CurrentEventTime returns the timestamp of the event being dispatched.
func (b *Binder[T]) CurrentEventTime() uint32 {
	return b.native.CurrentEventTime()
}
