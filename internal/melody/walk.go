package melody

import (
	"math/rand"

	"github.com/Ocean82/BurntBeats/internal/score"
)

// Direction biases a random walk toward a melodic contour.
type Direction int

const (
	DirectionWave Direction = iota
	DirectionAscending
	DirectionDescending
)

// Walk is a constrained random-walk melody generator. Overshoots at the
// scale boundary are mirrored back into range rather than clamped, which
// avoids pitch repetition at the edges.
type Walk struct {
	StepMin             int
	StepMax             int
	DirectionChangeProb float64
	Bias                Direction
}

// DefaultWalk returns the stock walk configuration.
func DefaultWalk() Walk {
	return Walk{StepMin: 1, StepMax: 3, DirectionChangeProb: 0.3}
}

// Melody emits length note events. A failing step never aborts the run: the
// event is substituted with a safe mid-scale note and reported as a
// degradation.
func (w Walk) Melody(scale []float64, length int, rng *rand.Rand) ([]score.NoteEvent, []score.Degradation) {
	if len(scale) == 0 || length <= 0 {
		return nil, nil
	}
	var degs []score.Degradation

	hi := 5
	if len(scale) < hi {
		hi = len(scale)
	}
	degree := 3
	if hi >= 3 {
		degree = 3 + rng.Intn(hi-2) // [3, hi]
	} else {
		degree = 1 + rng.Intn(hi)
	}

	direction := 1
	if rng.Intn(2) == 0 {
		direction = -1
	}
	switch w.Bias {
	case DirectionAscending:
		direction = 1
	case DirectionDescending:
		direction = -1
	}

	events := make([]score.NoteEvent, 0, length)
	beat := 0.0
	for i := 0; i < length; i++ {
		degree = clampDegree(degree, len(scale))
		if degree < 1 || degree > len(scale) {
			// Should be unreachable after the clamp; degrade locally.
			degs = append(degs, score.Degradation{Stage: "walk", Detail: "degree out of range"})
			degree = len(scale)/2 + 1
		}
		d := positionalDuration(i, length)
		events = append(events, score.NoteEvent{
			Freq:          scale[degree-1],
			StartBeat:     beat,
			DurationBeats: d,
			Velocity:      0.75,
		})
		beat += d

		if rng.Float64() < w.changeProb(direction) {
			direction = -direction
		}
		step := w.StepMin
		if w.StepMax > w.StepMin {
			step += rng.Intn(w.StepMax - w.StepMin + 1)
		}
		next := degree + direction*step
		switch {
		case next > len(scale):
			// Mirror the overshoot back inside and head downward.
			degree = clampDegree(len(scale)-(next-len(scale)), len(scale))
			direction = -1
		case next < 1:
			degree = clampDegree(1+(1-next), len(scale))
			direction = 1
		default:
			degree = next
		}
	}
	return events, degs
}

// changeProb skews the direction-flip probability toward the configured
// contour: a biased walk flips back eagerly when drifting the wrong way and
// reluctantly when drifting the right way.
func (w Walk) changeProb(direction int) float64 {
	p := w.DirectionChangeProb
	switch {
	case w.Bias == DirectionAscending && direction < 0,
		w.Bias == DirectionDescending && direction > 0:
		p *= 2
	case w.Bias == DirectionAscending && direction > 0,
		w.Bias == DirectionDescending && direction < 0:
		p *= 0.5
	}
	if p > 1 {
		p = 1
	}
	return p
}
