// Package melody generates symbolic melodic lines over a scale table: an
// L-system string-rewriting generator and a constrained random-walk
// generator. Both emit events on a local beat timeline starting at zero;
// the assembler offsets them into the composition.
package melody

import (
	"math/rand"

	"github.com/Ocean82/BurntBeats/internal/score"
)

// MaxExpansion caps the rewritten string. Rewriting stops and the string is
// hard-truncated after any round that exceeds it.
const MaxExpansion = 10000

const maxIterations = 10

// LSystem is a string-rewriting grammar walked symbol by symbol to produce
// a melody. F emits a note at the current degree, + and - move the degree,
// G emits a short grace note without moving.
type LSystem struct {
	Axiom      string
	Rules      map[rune]string
	Iterations int
}

// DefaultLSystem returns the stock grammar.
func DefaultLSystem() LSystem {
	return LSystem{
		Axiom: "F",
		Rules: map[rune]string{
			'F': "F+G-F",
			'G': "G-F+G",
			'+': "+",
			'-': "-",
		},
		Iterations: 3,
	}
}

// Expand rewrites the axiom for min(Iterations, 10) rounds. It reports
// whether the result was truncated at MaxExpansion.
func (l LSystem) Expand() (string, bool) {
	current := l.Axiom
	rounds := l.Iterations
	if rounds > maxIterations {
		rounds = maxIterations
	}
	for i := 0; i < rounds; i++ {
		var next []rune
		for _, sym := range current {
			if repl, ok := l.Rules[sym]; ok {
				next = append(next, []rune(repl)...)
			} else {
				next = append(next, sym)
			}
		}
		current = string(next)
		if len(current) > MaxExpansion {
			return current[:MaxExpansion], true
		}
	}
	return current, false
}

// Melody walks the expanded string up to length symbols and emits note
// events over the scale. The truncation flag from Expand is surfaced as a
// degradation so the caller can log it.
func (l LSystem) Melody(scale []float64, length int, rng *rand.Rand) ([]score.NoteEvent, []score.Degradation) {
	var degs []score.Degradation
	expanded, truncated := l.Expand()
	if truncated {
		degs = append(degs, score.Degradation{Stage: "lsystem", Detail: "expansion truncated at limit"})
	}
	if len(scale) == 0 || length <= 0 {
		return nil, degs
	}

	degree := 3 + rng.Intn(3) // start in the middle range [3,5]
	degree = clampDegree(degree, len(scale))

	var events []score.NoteEvent
	beat := 0.0
	symbols := []rune(expanded)
	if len(symbols) > length {
		symbols = symbols[:length]
	}
	for i, sym := range symbols {
		switch sym {
		case 'F':
			d := positionalDuration(i, len(symbols))
			events = append(events, score.NoteEvent{
				Freq:          scale[degree-1],
				StartBeat:     beat,
				DurationBeats: d,
				Velocity:      0.75,
			})
			beat += d
		case '+':
			degree = clampDegree(degree+1, len(scale))
		case '-':
			degree = clampDegree(degree-1, len(scale))
		case 'G':
			// Grace note: short, does not move the degree.
			events = append(events, score.NoteEvent{
				Freq:          scale[degree-1],
				StartBeat:     beat,
				DurationBeats: 0.25,
				Velocity:      0.6,
			})
			beat += 0.25
		}
	}
	return events, degs
}

// positionalDuration is the shared position-dependent duration policy:
// phrase edges get full beats, every fourth position a dotted eighth,
// even positions eighths, the rest sixteenths.
func positionalDuration(pos, total int) float64 {
	switch {
	case total <= 0:
		return 1.0
	case pos == 0 || pos == total-1:
		return 1.0
	case pos%4 == 0:
		return 0.75
	case pos%2 == 0:
		return 0.5
	default:
		return 0.25
	}
}

func clampDegree(d, scaleLen int) int {
	if d < 1 {
		return 1
	}
	if d > scaleLen {
		return scaleLen
	}
	return d
}
