package audio

import "context"

// Feedback plays the acknowledgement sound when a hotkey fires
type Feedback interface {
	Beep(ctx context.Context) error
	Close() error
}

// Silent is a Feedback that does nothing; used when beeping is disabled or
// no output device is available.
type Silent struct{}

func (Silent) Beep(context.Context) error { return nil }
func (Silent) Close() error               { return nil }
