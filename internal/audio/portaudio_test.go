package audio

import (
	"math"
	"testing"
	"time"
)

func TestSynthToneLength(t *testing.T) {
	got := synthTone(440, 1000, 250*time.Millisecond, 0.5)
	if len(got) != 250 {
		t.Fatalf("expected 250 samples, got %d", len(got))
	}
}

func TestSynthToneStaysWithinVolume(t *testing.T) {
	got := synthTone(440, 44100, 100*time.Millisecond, 0.25)
	for i, s := range got {
		if math.Abs(float64(s)) > 0.25+1e-6 {
			t.Fatalf("sample %d = %f exceeds volume", i, s)
		}
	}
}

func TestSynthToneFadesAtEdges(t *testing.T) {
	got := synthTone(1000, 44100, 50*time.Millisecond, 1)
	if got[0] != 0 {
		t.Fatalf("expected silent first sample, got %f", got[0])
	}
	if got[len(got)-1] != 0 {
		t.Fatalf("expected silent last sample, got %f", got[len(got)-1])
	}
}

func TestSynthToneClampsVolume(t *testing.T) {
	got := synthTone(440, 8000, 100*time.Millisecond, 3)
	for i, s := range got {
		if math.Abs(float64(s)) > 1 {
			t.Fatalf("sample %d = %f exceeds full scale", i, s)
		}
	}
}

func TestSynthToneDegenerateInput(t *testing.T) {
	if got := synthTone(440, 44100, 0, 1); got != nil {
		t.Fatalf("expected nil for zero duration, got %d samples", len(got))
	}
	if got := synthTone(0, 44100, time.Second, 1); got != nil {
		t.Fatalf("expected nil for zero frequency, got %d samples", len(got))
	}
}
