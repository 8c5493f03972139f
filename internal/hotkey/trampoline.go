package hotkey

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
)

type payload[T any] struct {
	handler Handler[T]
	data    T
}

func (p *payload[T]) dispatch(keystring string) {
	p.handler(keystring, &p.data)
}

// release runs the data's Close method, if it has one.
func (p *payload[T]) release() error {
	if c, ok := any(p.data).(io.Closer); ok {
		return c.Close()
	}
	if c, ok := any(&p.data).(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// trampoline is handed to every Native.Bind call. It never frees the entry it
// recovers; only Binder.Unbind and Binder.Close do that.
func trampoline(keystring string, data Handle) {
	if data == 0 {
		panic("hotkey: native dispatch with nil handle")
	}
	if !utf8.ValidString(keystring) {
		panic(fmt.Sprintf("hotkey: native dispatch with malformed keystring %q", keystring))
	}

	e, ok := lookup(data)
	if !ok {
		log.Warn().
			Str("keystring", keystring).
			Uint64("handle", uint64(data)).
			Msg("Dropped dispatch for released binding")
		return
	}

	e.dispatch(keystring)
}
