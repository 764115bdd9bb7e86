// Package rhythm produces duration and accent material: genre-specific
// weighted duration patterns with per-event articulation flags, and a 1-D
// cellular-automaton slot generator.
package rhythm

import (
	"math/rand"

	"github.com/Ocean82/BurntBeats/internal/theory"
)

// Event is one rhythmic slot inside a measure.
type Event struct {
	Duration   float64 // beats
	Syncopated bool
	Accent     int // 0-3
	Staccato   bool
	Rest       bool
}

const (
	measureBeats = 4.0
	maxEvents    = 8
	triplet      = 1.0 / 3
)

// Pattern fills one measure for the genre, sampling durations until four
// beats are covered or eight events exist, then applies the emotion
// post-processing: strong positive emotion tightens and accents the
// pattern, strong negative emotion stretches it and opens space.
func Pattern(g theory.Genre, emotion float64, rng *rand.Rand) []Event {
	var events []Event
	switch g {
	case theory.GenreJazz, theory.GenreBlues:
		events = jazzPattern(rng)
	case theory.GenreElectronic:
		events = electronicPattern(rng)
	case theory.GenreRock:
		events = rockPattern(rng)
	case theory.GenreHipHop:
		events = hipHopPattern(rng)
	case theory.GenreRnB:
		events = rnbPattern(rng)
	case theory.GenreClassical, theory.GenreBallad, theory.GenreMinor:
		events = classicalPattern(rng)
	case theory.GenreCountry:
		events = countryPattern(rng)
	default:
		events = popPattern(rng)
	}

	switch {
	case emotion > 0.5:
		for i := range events {
			if events[i].Duration > 0.5 {
				events[i].Duration *= 0.75
			}
			if events[i].Accent < 3 {
				events[i].Accent++
			}
			if events[i].Rest {
				events[i].Rest = rng.Float64() < 0.05
			}
		}
	case emotion < -0.5:
		for i := range events {
			if events[i].Duration < 1.0 {
				events[i].Duration *= 1.25
			}
			if events[i].Accent > 0 {
				events[i].Accent--
			}
			if !events[i].Rest && rng.Float64() < 0.15 {
				events[i].Rest = true
			}
		}
	}
	return events
}

func fit(d, remaining float64) float64 {
	if d > remaining {
		return remaining
	}
	return d
}

// popPattern: steady eighths with occasional dotted syncopation.
func popPattern(rng *rand.Rand) []Event {
	var out []Event
	remaining := measureBeats
	for remaining > 0 && len(out) < maxEvents {
		d := fit(0.5, remaining)
		if rng.Float64() >= 0.7 {
			d = fit(0.75, remaining)
		}
		accent := 0
		if d >= 0.5 {
			accent = rng.Intn(3)
		}
		out = append(out, Event{
			Duration:   d,
			Syncopated: d == 0.75,
			Accent:     accent,
			Staccato:   rng.Float64() < 0.2,
			Rest:       rng.Float64() < 0.1,
		})
		remaining -= d
	}
	return out
}

// jazzPattern: triplet feel, heavy syncopation.
func jazzPattern(rng *rand.Rand) []Event {
	var out []Event
	remaining := measureBeats
	for remaining > 0 && len(out) < maxEvents {
		var d float64
		switch {
		case rng.Float64() < 0.4:
			d = fit(triplet, remaining)
		case rng.Float64() < 0.6:
			d = fit(0.25, remaining)
		default:
			d = fit(1.0, remaining)
		}
		out = append(out, Event{
			Duration:   d,
			Syncopated: true,
			Accent:     rng.Intn(4),
			Staccato:   rng.Float64() < 0.3,
			Rest:       rng.Float64() < 0.15,
		})
		remaining -= d
	}
	return out
}

// electronicPattern: quantized sixteenth grid with occasional merges and
// strong-beat accents.
func electronicPattern(rng *rand.Rand) []Event {
	var out []Event
	remaining := measureBeats
	for i := 0; remaining > 0 && len(out) < maxEvents; i++ {
		d := fit(0.25, remaining)
		if rng.Float64() < 0.3 {
			d = fit(0.5, remaining)
		}
		accent := 0
		switch {
		case i%4 == 0:
			accent = 2
		case i%2 == 0:
			accent = 1
		}
		out = append(out, Event{
			Duration:   d,
			Syncopated: rng.Float64() < 0.4,
			Accent:     accent,
			Staccato:   rng.Float64() < 0.5,
			Rest:       rng.Float64() < 0.05,
		})
		remaining -= d
	}
	return out
}

// rockPattern: driving eighths and quarters, accents on the strong beats.
func rockPattern(rng *rand.Rand) []Event {
	var out []Event
	remaining := measureBeats
	for remaining > 0 && len(out) < maxEvents {
		d := fit(1.0, remaining)
		if rng.Float64() < 0.6 {
			d = fit(0.5, remaining)
		}
		accent := 1
		if len(out)%4 == 0 {
			accent = 2
		}
		out = append(out, Event{
			Duration:   d,
			Syncopated: rng.Float64() < 0.2,
			Accent:     accent,
			Staccato:   rng.Float64() < 0.4,
			Rest:       rng.Float64() < 0.05,
		})
		remaining -= d
	}
	return out
}

// hipHopPattern: dense subdivisions, crisp and gapped for flow.
func hipHopPattern(rng *rand.Rand) []Event {
	var out []Event
	remaining := measureBeats
	for remaining > 0 && len(out) < maxEvents {
		var d float64
		switch {
		case rng.Float64() < 0.5:
			d = fit(triplet, remaining)
		case rng.Float64() < 0.7:
			d = fit(0.25, remaining)
		default:
			d = fit(0.5, remaining)
		}
		out = append(out, Event{
			Duration:   d,
			Syncopated: rng.Float64() < 0.6,
			Accent:     rng.Intn(3),
			Staccato:   rng.Float64() < 0.6,
			Rest:       rng.Float64() < 0.2,
		})
		remaining -= d
	}
	return out
}

// rnbPattern: dotted groove rhythms, high syncopation.
func rnbPattern(rng *rand.Rand) []Event {
	var out []Event
	remaining := measureBeats
	for remaining > 0 && len(out) < maxEvents {
		var d float64
		switch {
		case rng.Float64() < 0.4:
			d = fit(0.75, remaining)
		case rng.Float64() < 0.6:
			d = fit(0.5, remaining)
		default:
			d = fit(1.0, remaining)
		}
		out = append(out, Event{
			Duration:   d,
			Syncopated: rng.Float64() < 0.7,
			Accent:     rng.Intn(4),
			Staccato:   rng.Float64() < 0.3,
			Rest:       rng.Float64() < 0.12,
		})
		remaining -= d
	}
	return out
}

// classicalPattern: traditional note values, little syncopation.
func classicalPattern(rng *rand.Rand) []Event {
	var out []Event
	remaining := measureBeats
	for remaining > 0 && len(out) < maxEvents {
		var d float64
		switch {
		case rng.Float64() < 0.4:
			d = fit(1.0, remaining)
		case rng.Float64() < 0.7:
			d = fit(0.5, remaining)
		default:
			d = fit(2.0, remaining)
		}
		accent := 0
		if len(out)%4 == 0 {
			accent = 2
		}
		out = append(out, Event{
			Duration:   d,
			Syncopated: rng.Float64() < 0.1,
			Accent:     accent,
			Staccato:   rng.Float64() < 0.25,
			Rest:       rng.Float64() < 0.08,
		})
		remaining -= d
	}
	return out
}

// countryPattern: shuffled eighths and quarters with alternating accents.
func countryPattern(rng *rand.Rand) []Event {
	var out []Event
	remaining := measureBeats
	for remaining > 0 && len(out) < maxEvents {
		d := fit(1.0, remaining)
		if rng.Float64() < 0.6 {
			d = fit(0.5, remaining)
		}
		accent := 0
		if len(out)%2 == 0 {
			accent = 1
		}
		out = append(out, Event{
			Duration:   d,
			Syncopated: rng.Float64() < 0.3,
			Accent:     accent,
			Staccato:   rng.Float64() < 0.35,
			Rest:       rng.Float64() < 0.1,
		})
		remaining -= d
	}
	return out
}
