package synth

import (
	"math"
	"math/rand"
	"testing"

	"github.com/Ocean82/BurntBeats/internal/score"
)

const testRate = 44100

func melodyTrack(events ...score.NoteEvent) score.Track {
	return score.Track{
		Role:   score.RoleMelody,
		Gain:   score.MixGain(score.RoleMelody),
		Events: events,
	}
}

func TestRenderExactFrameCount(t *testing.T) {
	e := New(testRate)
	buf := e.Render(nil, 120, 3, rand.New(rand.NewSource(1)))
	if buf.Frames() != 3*testRate {
		t.Fatalf("got %d frames, want %d", buf.Frames(), 3*testRate)
	}
	if len(buf.L) != len(buf.R) {
		t.Fatalf("channel lengths differ: %d vs %d", len(buf.L), len(buf.R))
	}
}

func TestRenderBoundsAndEnergy(t *testing.T) {
	e := New(testRate)
	tracks := []score.Track{melodyTrack(
		score.NoteEvent{Freq: 440, StartBeat: 0, DurationBeats: 2, Velocity: 0.9},
		score.NoteEvent{Freq: 330, StartBeat: 2, DurationBeats: 2, Velocity: 0.7},
	)}
	buf := e.Render(tracks, 120, 2, rand.New(rand.NewSource(1)))

	var energy float64
	for i := range buf.L {
		if buf.L[i] < -1 || buf.L[i] > 1 || buf.R[i] < -1 || buf.R[i] > 1 {
			t.Fatalf("sample %d out of range: L=%v R=%v", i, buf.L[i], buf.R[i])
		}
		energy += buf.L[i]*buf.L[i] + buf.R[i]*buf.R[i]
	}
	if energy < 1.0 {
		t.Fatalf("rendered energy %v too low for a sustained tone", energy)
	}
}

func TestRenderEmptyTracksAreSilent(t *testing.T) {
	e := New(testRate)
	buf := e.Render(nil, 100, 1, rand.New(rand.NewSource(1)))
	for i := range buf.L {
		if buf.L[i] != 0 || buf.R[i] != 0 {
			t.Fatalf("sample %d non-zero in empty render", i)
		}
	}
	if e.Silenced() != 0 {
		t.Fatalf("silenced count %d, want 0", e.Silenced())
	}
}

func TestRenderRestsProduceNoSignal(t *testing.T) {
	e := New(testRate)
	tracks := []score.Track{melodyTrack(
		score.NoteEvent{StartBeat: 0, DurationBeats: 4, Rest: true},
	)}
	buf := e.Render(tracks, 120, 2, rand.New(rand.NewSource(1)))
	for i := range buf.L {
		if buf.L[i] != 0 {
			t.Fatalf("rest rendered signal at sample %d", i)
		}
	}
}

func TestRenderTruncatesPastBufferEnd(t *testing.T) {
	e := New(testRate)
	tracks := []score.Track{melodyTrack(
		score.NoteEvent{Freq: 440, StartBeat: 0, DurationBeats: 100, Velocity: 0.8},
		score.NoteEvent{Freq: 440, StartBeat: 1000, DurationBeats: 1, Velocity: 0.8},
	)}
	buf := e.Render(tracks, 120, 1, rand.New(rand.NewSource(1)))
	if buf.Frames() != testRate {
		t.Fatalf("got %d frames, want %d", buf.Frames(), testRate)
	}
}

func TestRenderAttackStartsQuiet(t *testing.T) {
	e := New(testRate)
	tracks := []score.Track{melodyTrack(
		score.NoteEvent{Freq: 440, StartBeat: 0, DurationBeats: 4, Velocity: 1.0},
	)}
	buf := e.Render(tracks, 120, 2, rand.New(rand.NewSource(1)))

	var head float64
	for i := 0; i < 20; i++ {
		head += math.Abs(buf.L[i])
	}
	var body float64
	for i := testRate / 2; i < testRate/2+20; i++ {
		body += math.Abs(buf.L[i])
	}
	if head >= body {
		t.Fatalf("attack ramp missing: head %v, body %v", head, body)
	}
}

func TestRenderPercussionDecays(t *testing.T) {
	e := New(testRate)
	tracks := []score.Track{{
		Role: score.RoleDrum,
		Gain: score.Gain{Left: 1, Right: 1},
		Events: []score.NoteEvent{
			{Freq: score.KickFreq, StartBeat: 0, DurationBeats: 2, Velocity: 0.9},
		},
	}}
	buf := e.Render(tracks, 60, 2, rand.New(rand.NewSource(1)))

	var early, late float64
	for i := 0; i < testRate/10; i++ {
		early += buf.L[i] * buf.L[i]
	}
	for i := buf.Frames() - testRate/10; i < buf.Frames(); i++ {
		late += buf.L[i] * buf.L[i]
	}
	if late >= early {
		t.Fatalf("kick did not decay: early %v, late %v", early, late)
	}
}

func TestRenderDeterministicForSeed(t *testing.T) {
	tracks := []score.Track{{
		Role: score.RoleDrum,
		Gain: score.MixGain(score.RoleDrum),
		Events: []score.NoteEvent{
			{Freq: score.SnareFreq, StartBeat: 0, DurationBeats: 1, Velocity: 0.8},
			{Freq: score.SnareFreq, StartBeat: 2, DurationBeats: 1, Velocity: 0.8},
		},
	}}
	a := New(testRate).Render(tracks, 120, 2, rand.New(rand.NewSource(8)))
	b := New(testRate).Render(tracks, 120, 2, rand.New(rand.NewSource(8)))
	for i := range a.L {
		if a.L[i] != b.L[i] || a.R[i] != b.R[i] {
			t.Fatalf("sample %d differs between identical renders", i)
		}
	}
}
