package audio

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gordonklaus/portaudio"
	"github.com/petems/keybinder-tray/internal/config"
)

const (
	sampleRate      = 44100
	framesPerBuffer = 512
	fadeDuration    = 5 * time.Millisecond
)

type portAudioBeeper struct {
	mu   sync.Mutex
	tone []float32
}

// New creates a PortAudio-backed beeper for the configured tone
func New(cfg config.FeedbackConfig) (Feedback, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize PortAudio: %w", err)
	}
	duration := time.Duration(cfg.DurationMs) * time.Millisecond
	return &portAudioBeeper{
		tone: synthTone(cfg.FrequencyHz, sampleRate, duration, cfg.Volume),
	}, nil
}

// Beep plays the tone on the default output device and blocks until it has
// been written or ctx is done.
func (p *portAudioBeeper) Beep(ctx context.Context) error {
	// Overlapping presses would fight over the device
	p.mu.Lock()
	defer p.mu.Unlock()

	buffer := make([]float32, framesPerBuffer)
	stream, err := portaudio.OpenDefaultStream(0, 1, sampleRate, len(buffer), buffer)
	if err != nil {
		return fmt.Errorf("failed to open output stream: %w", err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return fmt.Errorf("failed to start output stream: %w", err)
	}
	defer stream.Stop()

	for off := 0; off < len(p.tone); off += len(buffer) {
		if err := ctx.Err(); err != nil {
			return err
		}
		n := copy(buffer, p.tone[off:])
		clear(buffer[n:])
		if err := stream.Write(); err != nil {
			return fmt.Errorf("failed to write tone: %w", err)
		}
	}
	return nil
}

func (p *portAudioBeeper) Close() error {
	return portaudio.Terminate()
}

// synthTone renders a mono sine wave with a short linear fade at both ends so
// the speaker doesn't click.
func synthTone(freq float64, rate int, duration time.Duration, volume float32) []float32 {
	n := int(float64(rate) * duration.Seconds())
	if n <= 0 || freq <= 0 {
		return nil
	}
	if volume < 0 {
		volume = 0
	} else if volume > 1 {
		volume = 1
	}

	fade := int(float64(rate) * fadeDuration.Seconds())
	if fade > n/2 {
		fade = n / 2
	}

	out := make([]float32, n)
	for i := range out {
		gain := float64(volume)
		switch {
		case i < fade:
			gain *= float64(i) / float64(fade)
		case i >= n-fade:
			gain *= float64(n-1-i) / float64(fade)
		}
		out[i] = float32(gain * math.Sin(2*math.Pi*freq*float64(i)/float64(rate)))
	}
	return out
}
