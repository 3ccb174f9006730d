// Package synth computes short 8-bit sound effects from closed-form functions
// of time. Every sample depends only on its index, so output is identical
// across runs and platforms.
package synth

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// DefaultSampleRate is used for all shipped effects.
const DefaultSampleRate = 22050

// Errors returned by Synthesize.
var (
	ErrUnknownEffect = errors.New("synth: unknown effect")
	ErrInvalidParams = errors.New("synth: invalid parameters")
)

// Effect identifies one sound.
type Effect int

const (
	Place Effect = iota
	Slide
	Flatten
	Win
)

// Effects lists every effect in a stable order.
var Effects = []Effect{Place, Slide, Flatten, Win}

var effectNames = [...]string{
	Place:   "place",
	Slide:   "slide",
	Flatten: "flatten",
	Win:     "win",
}

// Durations in seconds.
var defaultDurations = [...]float64{
	Place:   0.15,
	Slide:   0.25,
	Flatten: 0.2,
	Win:     1.0,
}

func (e Effect) String() string {
	if e < 0 || int(e) >= len(effectNames) {
		return fmt.Sprintf("Effect(%d)", int(e))
	}
	return effectNames[e]
}

// Duration returns the shipped length of e in seconds.
func (e Effect) Duration() float64 {
	if e < 0 || int(e) >= len(defaultDurations) {
		return 0
	}
	return defaultDurations[e]
}

// ParseEffect maps a name such as "place" to its Effect.
func ParseEffect(name string) (Effect, error) {
	for i, n := range effectNames {
		if strings.EqualFold(n, name) {
			return Effect(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownEffect, name)
}

// SampleCount returns round(sampleRate·duration).
func SampleCount(sampleRate int, duration float64) int {
	return int(math.Round(float64(sampleRate) * duration))
}

// Synthesize renders e as unsigned 8-bit PCM (128 = silence).
func Synthesize(e Effect, sampleRate int, duration float64) ([]byte, error) {
	if err := checkParams(sampleRate, duration); err != nil {
		return nil, err
	}
	var fn func(i int, t float64) float64
	switch e {
	case Place:
		fn = place
	case Slide:
		fn = func(i int, t float64) float64 { return slide(i, t, duration) }
	case Flatten:
		fn = flatten
	case Win:
		fn = win
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownEffect, e)
	}

	out := make([]byte, SampleCount(sampleRate, duration))
	for i := range out {
		t := float64(i) / float64(sampleRate)
		out[i] = quantize(fn(i, t))
	}
	return out, nil
}

// Silence returns round(sampleRate·duration) samples at the 128 bias.
func Silence(sampleRate int, duration float64) ([]byte, error) {
	if err := checkParams(sampleRate, duration); err != nil {
		return nil, err
	}
	out := make([]byte, SampleCount(sampleRate, duration))
	for i := range out {
		out[i] = 128
	}
	return out, nil
}

func checkParams(sampleRate int, duration float64) error {
	if sampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", ErrInvalidParams, sampleRate)
	}
	if !(duration >= 0) || math.IsInf(duration, 0) {
		return fmt.Errorf("%w: duration %v", ErrInvalidParams, duration)
	}
	return nil
}

// quantize maps [-1, 1] onto 1..255 with 128 as the zero level.
func quantize(v float64) byte {
	v = math.Max(-1, math.Min(1, v))
	// float64() blocks FMA fusion so rounding matches on every architecture.
	return byte(math.Round(float64(v*127) + 128))
}

func sine(freq, t float64) float64 {
	return math.Sin(2 * math.Pi * freq * t)
}

// place is a soft tap: fast attack, quick decay, low thud with noise texture.
func place(i int, t float64) float64 {
	env := math.Exp(-t*40) * (1 - math.Exp(-t*500))
	wave := sine(150, t)*0.6 + sine(300, t)*0.3 + sine(80, t)*0.2
	noise := (Jitter(uint64(i)) - 0.5) * 0.1
	return (wave + noise) * env
}

// slide is a whoosh: phase-scrambled partials under a rise-and-fall envelope
// plus an upward pitch sweep.
func slide(i int, t, duration float64) float64 {
	env := math.Sqrt(math.Sin(math.Pi*t/duration)) * 0.8
	if duration == 0 {
		env = 0
	}
	var noise float64
	for _, f := range [...]float64{400, 600, 800, 1000, 1200} {
		phase := Jitter(uint64(i)*uint64(f)) * 2 * math.Pi
		noise += math.Sin(2*math.Pi*f*t+phase) / f
	}
	sweep := math.Sin(2*math.Pi*(200+t*400)*t) * 0.3
	return (noise*3 + sweep) * env
}

// flatten is a lower thunk with an impact burst in the first 20ms.
func flatten(i int, t float64) float64 {
	env := math.Exp(-t*25) * (1 - math.Exp(-t*800))
	wave := sine(100, t)*0.5 + sine(60, t)*0.4 + sine(200, t)*0.2
	var noise float64
	if t < 0.02 {
		noise = (Jitter(uint64(i)) - 0.5) * 0.5
	}
	return (wave + noise) * env
}

// C major arpeggio: C5, E5, G5, C6.
var winNotes = [...]float64{523.25, 659.25, 783.99, 1046.50}

const winNoteGap = 0.15

// win is a bell-like arpeggio; notes overlap once started.
func win(_ int, t float64) float64 {
	var sum float64
	for idx, f := range winNotes {
		start := float64(idx) * winNoteGap
		if t < start {
			continue
		}
		n := t - start
		env := math.Exp(-n*3) * (1 - math.Exp(-n*100))
		wave := sine(f, n)*0.5 + sine(f*2, n)*0.25 + sine(f*3, n)*0.1
		sum += wave * env * 0.4
	}
	return sum
}
