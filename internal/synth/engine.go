// Package synth renders symbolic tracks into stereo float64 PCM by additive
// sine synthesis: vibrato-modulated oscillators with linear attack/release
// envelopes for pitched material, decaying sine and filtered noise for
// percussion. Rendering is sample-accurate and deterministic for a given
// random source.
package synth

import (
	"math"
	"math/rand"

	"github.com/Ocean82/BurntBeats/internal/score"
)

const (
	vibratoDepth = 0.02 // +/- 2% frequency excursion
	vibratoRate  = 5.0  // Hz
	headroom     = 0.8
)

// Buffer holds one rendered stereo signal in the -1..1 range.
type Buffer struct {
	L, R []float64
}

// Frames returns the per-channel sample count.
func (b *Buffer) Frames() int { return len(b.L) }

// Engine renders compositions at a fixed sample rate.
type Engine struct {
	sampleRate int
	silenced   int
}

func New(sampleRate int) *Engine {
	return &Engine{sampleRate: sampleRate}
}

// Silenced reports how many non-finite samples were zeroed during the last
// Render call.
func (e *Engine) Silenced() int { return e.silenced }

// Render mixes all tracks into a stereo buffer of exactly
// durationSec*sampleRate frames. Events past the end of the buffer are
// truncated. The rng drives the snare noise source only.
func (e *Engine) Render(tracks []score.Track, tempoBPM, durationSec int, rng *rand.Rand) *Buffer {
	frames := durationSec * e.sampleRate
	buf := &Buffer{
		L: make([]float64, frames),
		R: make([]float64, frames),
	}
	secPerBeat := 60.0 / float64(tempoBPM)

	for _, track := range tracks {
		for _, ev := range track.Events {
			if ev.Rest {
				continue
			}
			start := int(ev.StartBeat * secPerBeat * float64(e.sampleRate))
			n := int(ev.DurationBeats * secPerBeat * float64(e.sampleRate))
			if start >= frames || n <= 0 {
				continue
			}
			if start+n > frames {
				n = frames - start
			}
			if track.Role == score.RoleDrum {
				e.addPercussion(buf, track.Gain, ev, start, n, rng)
				continue
			}
			e.addTone(buf, track.Gain, ev, start, n)
		}
	}

	e.finalize(buf)
	return buf
}

// addTone renders one pitched note: a sine oscillator with 5 Hz vibrato and
// a linear attack over the first tenth of the note and release over the
// last three tenths.
func (e *Engine) addTone(buf *Buffer, gain score.Gain, ev score.NoteEvent, start, n int) {
	attack := n / 10
	release := 3 * n / 10
	phase := 0.0
	sr := float64(e.sampleRate)

	for j := 0; j < n; j++ {
		t := float64(j) / sr
		inst := ev.Freq * (1 + vibratoDepth*math.Sin(2*math.Pi*vibratoRate*t))
		phase += 2 * math.Pi * inst / sr
		s := math.Sin(phase) * ev.Velocity * envelope(j, n, attack, release)
		buf.L[start+j] += s * gain.Left
		buf.R[start+j] += s * gain.Right
	}
}

func envelope(j, n, attack, release int) float64 {
	if attack > 0 && j < attack {
		return float64(j) / float64(attack)
	}
	if release > 0 && j >= n-release {
		return float64(n-j) / float64(release)
	}
	return 1.0
}

// addPercussion dispatches on the event frequency: the kick is a decaying
// low sine, the snare a noise burst blended with a 200 Hz tone.
func (e *Engine) addPercussion(buf *Buffer, gain score.Gain, ev score.NoteEvent, start, n int, rng *rand.Rand) {
	sr := float64(e.sampleRate)
	for j := 0; j < n; j++ {
		t := float64(j) / sr
		decay := 1 - float64(j)/float64(n)
		var s float64
		if ev.Freq == score.SnareFreq {
			noise := rng.Float64()*2 - 1
			s = (0.7*noise + 0.3*math.Sin(2*math.Pi*score.SnareFreq*t)) * decay * decay
		} else {
			s = math.Sin(2*math.Pi*ev.Freq*t) * decay * decay
		}
		s *= ev.Velocity
		buf.L[start+j] += s * gain.Left
		buf.R[start+j] += s * gain.Right
	}
}

// finalize applies the output headroom, zeroes any non-finite samples and
// hard-clips to -1..1.
func (e *Engine) finalize(buf *Buffer) {
	e.silenced = 0
	for _, ch := range [][]float64{buf.L, buf.R} {
		for i, s := range ch {
			s *= headroom
			if math.IsNaN(s) || math.IsInf(s, 0) {
				s = 0
				e.silenced++
			} else if s > 1 {
				s = 1
			} else if s < -1 {
				s = -1
			}
			ch[i] = s
		}
	}
}
