package rhythm

// Rule30 is the default elementary cellular-automaton rule.
const Rule30 = 30

// Evolve runs an elementary cellular automaton: a row of n binary cells
// seeded with a single active cell at the center, evolved for min(5, n/2)
// generations. Boundary cells are treated as inactive. The final generation
// is returned.
func Evolve(n int, rule uint8) []int {
	if n <= 0 {
		return nil
	}
	cells := make([]int, n)
	cells[n/2] = 1

	generations := n / 2
	if generations > 5 {
		generations = 5
	}
	for g := 0; g < generations; g++ {
		next := make([]int, n)
		for i := 1; i < n-1; i++ {
			pattern := cells[i-1]<<2 | cells[i]<<1 | cells[i+1]
			next[i] = int(rule>>pattern) & 1
		}
		cells = next
	}
	return cells
}

// AutomatonEvents maps a final cell row to rhythmic slots of 4/n beats:
// active cells become full-length notes, inactive cells a half-length note
// followed by an implicit half-length rest.
func AutomatonEvents(n int, rule uint8) []Event {
	cells := Evolve(n, rule)
	if len(cells) == 0 {
		return nil
	}
	base := measureBeats / float64(len(cells))
	out := make([]Event, 0, 2*len(cells))
	for _, c := range cells {
		if c == 1 {
			out = append(out, Event{Duration: base, Accent: 1})
			continue
		}
		out = append(out, Event{Duration: base * 0.5})
		out = append(out, Event{Duration: base * 0.5, Rest: true})
	}
	return out
}
