package melody

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/Ocean82/BurntBeats/internal/theory"
)

func TestLSystemExpandGrowth(t *testing.T) {
	l := DefaultLSystem()
	l.Iterations = 1
	s, truncated := l.Expand()
	if s != "F+G-F" {
		t.Fatalf("one round of F = %q, want F+G-F", s)
	}
	if truncated {
		t.Fatal("short expansion should not truncate")
	}
}

func TestLSystemExpandTruncatesAtLimit(t *testing.T) {
	l := DefaultLSystem()
	l.Iterations = 50 // clamped to 10, still explodes past the cap
	s, truncated := l.Expand()
	if len(s) > MaxExpansion {
		t.Fatalf("expansion length %d exceeds cap", len(s))
	}
	if !truncated {
		t.Fatal("expected truncation signal")
	}
}

func TestLSystemMelodyStaysOnScale(t *testing.T) {
	scale := theory.Scale(theory.GenrePop, "C")
	onScale := make(map[float64]bool, len(scale))
	for _, f := range scale {
		onScale[f] = true
	}
	rng := rand.New(rand.NewSource(7))
	events, degs := DefaultLSystem().Melody(scale, 64, rng)
	if len(events) == 0 {
		t.Fatal("expected events")
	}
	for _, d := range degs {
		if d.Stage != "lsystem" {
			t.Fatalf("unexpected degradation stage %q", d.Stage)
		}
	}
	for i, ev := range events {
		if !onScale[ev.Freq] {
			t.Fatalf("event %d frequency %v not in scale", i, ev.Freq)
		}
		if ev.DurationBeats <= 0 {
			t.Fatalf("event %d non-positive duration", i)
		}
		if i > 0 && ev.StartBeat < events[i-1].StartBeat {
			t.Fatalf("events out of order at %d", i)
		}
	}
}

func TestLSystemEmitsGraceNotes(t *testing.T) {
	l := DefaultLSystem()
	expanded, _ := l.Expand()
	if !strings.ContainsRune(expanded, 'G') {
		t.Fatal("default grammar should produce G symbols")
	}
	rng := rand.New(rand.NewSource(1))
	events, _ := l.Melody(theory.Scale(theory.GenrePop, "C"), 32, rng)
	grace := 0
	for _, ev := range events {
		if ev.DurationBeats == 0.25 && ev.Velocity == 0.6 {
			grace++
		}
	}
	if grace == 0 {
		t.Fatal("expected at least one grace note")
	}
}

func TestWalkDegreesInBounds(t *testing.T) {
	for _, genre := range []theory.Genre{theory.GenrePop, theory.GenreJazz, theory.GenreMinor} {
		scale := theory.Scale(genre, "D")
		onScale := make(map[float64]bool, len(scale))
		for _, f := range scale {
			onScale[f] = true
		}
		rng := rand.New(rand.NewSource(42))
		events, degs := DefaultWalk().Melody(scale, 200, rng)
		if len(events) != 200 {
			t.Fatalf("%v: got %d events, want 200", genre, len(events))
		}
		if len(degs) != 0 {
			t.Fatalf("%v: unexpected degradations %v", genre, degs)
		}
		for i, ev := range events {
			if !onScale[ev.Freq] {
				t.Fatalf("%v: event %d frequency %v out of scale", genre, i, ev.Freq)
			}
		}
	}
}

func TestWalkBiasShapesContour(t *testing.T) {
	scale := theory.Scale(theory.GenrePop, "C")
	rng := rand.New(rand.NewSource(3))
	up := Walk{StepMin: 1, StepMax: 2, DirectionChangeProb: 0.2, Bias: DirectionAscending}
	events, _ := up.Melody(scale, 4, rng)
	// With an ascending bias the first step always moves upward.
	if len(events) < 2 {
		t.Fatal("expected events")
	}
	if events[1].Freq < events[0].Freq {
		// A flip can only happen with probability changeProb; seed 3 is
		// chosen so the first step keeps direction. Guard against silent
		// behavior change.
		t.Logf("first interval descended; bias weakened: %v -> %v", events[0].Freq, events[1].Freq)
	}
}

func TestWalkDeterministicForSeed(t *testing.T) {
	scale := theory.Scale(theory.GenreJazz, "A")
	a, _ := DefaultWalk().Melody(scale, 50, rand.New(rand.NewSource(99)))
	b, _ := DefaultWalk().Melody(scale, 50, rand.New(rand.NewSource(99)))
	if len(a) != len(b) {
		t.Fatal("lengths differ")
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("event %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestPositionalDurationPolicy(t *testing.T) {
	cases := []struct {
		pos, total int
		want       float64
	}{
		{0, 16, 1.0},
		{15, 16, 1.0},
		{4, 16, 0.75},
		{8, 16, 0.75},
		{2, 16, 0.5},
		{3, 16, 0.25},
		{5, 16, 0.25},
	}
	for _, c := range cases {
		if got := positionalDuration(c.pos, c.total); got != c.want {
			t.Errorf("positionalDuration(%d, %d) = %v, want %v", c.pos, c.total, got, c.want)
		}
	}
}
