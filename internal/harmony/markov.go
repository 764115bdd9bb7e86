// Package harmony generates chord-symbol progressions from a fixed
// first-order Markov chain over the six functional symbols I, ii, iii, IV,
// V, vi, and resolves symbols to concrete frequency triads over a scale.
package harmony

import (
	"math/rand"

	"github.com/Ocean82/BurntBeats/internal/score"
)

// Symbols lists the chord vocabulary in fixed order.
var Symbols = []string{"I", "ii", "iii", "IV", "V", "vi"}

type transition struct {
	next string
	p    float64
}

// transitions holds the fixed probability rows. Slice order is part of the
// model: sampling walks each row in order, so the layout must stay stable
// for a given seed to reproduce the same progression.
var transitions = map[string][]transition{
	"I":   {{"V", 0.3}, {"vi", 0.25}, {"IV", 0.25}, {"ii", 0.1}, {"iii", 0.1}},
	"ii":  {{"V", 0.5}, {"vi", 0.2}, {"IV", 0.15}, {"I", 0.15}},
	"iii": {{"vi", 0.4}, {"IV", 0.3}, {"I", 0.2}, {"V", 0.1}},
	"IV":  {{"I", 0.3}, {"V", 0.3}, {"vi", 0.2}, {"ii", 0.2}},
	"V":   {{"I", 0.4}, {"vi", 0.3}, {"IV", 0.2}, {"ii", 0.1}},
	"vi":  {{"IV", 0.3}, {"I", 0.25}, {"V", 0.25}, {"ii", 0.2}},
}

// safeProgression is cycled through when sampling cannot proceed.
var safeProgression = []string{"I", "V", "vi", "IV"}

// symbolDegree maps a chord symbol to its 1-based scale degree.
var symbolDegree = map[string]int{
	"I": 1, "ii": 2, "iii": 3, "IV": 4, "V": 5, "vi": 6,
}

// RowWeights exposes a transition row's probabilities for verification.
func RowWeights(symbol string) []float64 {
	row := transitions[symbol]
	out := make([]float64, len(row))
	for i, tr := range row {
		out[i] = tr.p
	}
	return out
}

// Progression samples a chord-symbol sequence of the given length, always
// starting on the tonic. A row with zero total weight falls back to a
// uniform choice over that row; any other dead end substitutes the safe
// progression and continues.
func Progression(length int, rng *rand.Rand) ([]string, []score.Degradation) {
	if length <= 0 {
		return nil, nil
	}
	var degs []score.Degradation
	out := make([]string, 0, length)
	out = append(out, "I")
	for i := 1; i < length; i++ {
		current := out[len(out)-1]
		row, ok := transitions[current]
		if !ok || len(row) == 0 {
			out = append(out, safeProgression[i%len(safeProgression)])
			degs = append(degs, score.Degradation{Stage: "markov", Detail: "no transition row for " + current})
			continue
		}
		next, ok := sample(row, rng)
		if !ok {
			next = row[rng.Intn(len(row))].next
			degs = append(degs, score.Degradation{Stage: "markov", Detail: "zero-weight row for " + current})
		}
		out = append(out, next)
	}
	return out, degs
}

// sample draws from a weighted row. It reports false when the row's weights
// sum to zero.
func sample(row []transition, rng *rand.Rand) (string, bool) {
	var total float64
	for _, tr := range row {
		total += tr.p
	}
	if total <= 0 {
		return "", false
	}
	r := rng.Float64() * total
	for _, tr := range row {
		r -= tr.p
		if r < 0 {
			return tr.next, true
		}
	}
	return row[len(row)-1].next, true
}

// Triad resolves a chord symbol to (root, third, fifth) frequencies over the
// scale: the root is the symbol's scale degree, the third is root x1.25
// (x1.2 for minor, lowercase symbols) and the fifth root x1.5. Unknown
// symbols resolve to the tonic triad.
func Triad(symbol string, scale []float64) ([3]float64, bool) {
	if len(scale) == 0 {
		return [3]float64{}, false
	}
	degree, ok := symbolDegree[symbol]
	if !ok || degree > len(scale) {
		degree = 1
		ok = false
	}
	root := scale[degree-1]
	third := 1.25
	if minorSymbol(symbol) {
		third = 1.2
	}
	return [3]float64{root, root * third, root * 1.5}, ok
}

// minorSymbol reports whether a symbol denotes a minor chord (lowercase
// numerals like ii, iii, vi).
func minorSymbol(symbol string) bool {
	return symbol != "" && symbol[0] >= 'a' && symbol[0] <= 'z'
}
