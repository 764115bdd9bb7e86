// Package compose assembles the four symbolic tracks of a song: melody,
// bass, chords and percussion, all on a shared beat timeline. It is the one
// place that decides how generator degradations are handled: they are
// collected on the composition for the caller to log, never raised.
package compose

import (
	"math/rand"

	"github.com/Ocean82/BurntBeats/internal/harmony"
	"github.com/Ocean82/BurntBeats/internal/melody"
	"github.com/Ocean82/BurntBeats/internal/prosody"
	"github.com/Ocean82/BurntBeats/internal/rhythm"
	"github.com/Ocean82/BurntBeats/internal/score"
	"github.com/Ocean82/BurntBeats/internal/theory"
)

const beatsPerMeasure = 4.0

// Params carries the musical inputs of one composition request.
type Params struct {
	Genre       theory.Genre
	Key         string
	TempoBPM    int
	DurationSec int
}

// Composition is the symbolic result: four tracks on a shared timeline plus
// everything the synthesizer and metadata need.
type Composition struct {
	Tracks       []score.Track
	Measures     int
	Scale        []float64
	Degradations []score.Degradation
}

// Measures converts a duration at a tempo into a measure count, minimum 8.
func Measures(durationSec, tempoBPM int) int {
	beats := float64(durationSec) * float64(tempoBPM) / 60.0
	m := int(beats/beatsPerMeasure + 0.5)
	if m < 8 {
		m = 8
	}
	return m
}

// Assemble builds the full symbolic composition. All randomness comes from
// rng; identical inputs and seed produce identical tracks.
func Assemble(p Params, lyrics prosody.Analysis, rng *rand.Rand) *Composition {
	c := &Composition{
		Measures: Measures(p.DurationSec, p.TempoBPM),
		Scale:    theory.Scale(p.Genre, p.Key),
	}
	c.Tracks = []score.Track{
		c.melodyTrack(p, lyrics, rng),
		c.bassTrack(p),
		c.chordTrack(p, rng),
		c.drumTrack(p),
	}
	return c
}

// direction derives the melodic contour bias from a line's emotion.
func direction(emotion float64) melody.Direction {
	switch {
	case emotion > 0.3:
		return melody.DirectionAscending
	case emotion < -0.3:
		return melody.DirectionDescending
	default:
		return melody.DirectionWave
	}
}

// velocity shapes dynamics from emotion and accent the way the lyric
// analysis intends: bright lines push louder, dark lines pull back.
func velocity(emotion float64, accent int) float64 {
	var v float64
	switch {
	case emotion > 0.3:
		v = float64(90+accent*20) / 127
	case emotion < -0.3:
		v = float64(60-accent*10) / 127
	default:
		v = float64(75+accent*15) / 127
	}
	if v > 1 {
		v = 1
	}
	if v < 0.2 {
		v = 0.2
	}
	return v
}

// melodyTrack walks the lyric lines measure by measure. Phrase-start
// measures use the L-system generator for a recurring motif; the rest use
// the direction-biased random walk. Electronic and hip-hop alternate in the
// cellular-automaton slot grid in place of the genre pattern.
func (c *Composition) melodyTrack(p Params, lyrics prosody.Analysis, rng *rand.Rand) score.Track {
	track := score.Track{Role: score.RoleMelody, Gain: score.MixGain(score.RoleMelody)}
	lsys := melody.DefaultLSystem()

	for m := 0; m < c.Measures; m++ {
		line := lyrics.Lines[m%len(lyrics.Lines)]
		pattern := c.measurePattern(p.Genre, m, line.Emotion, rng)
		if len(pattern) == 0 {
			continue
		}

		var notes []score.NoteEvent
		var degs []score.Degradation
		if m%4 == 0 {
			notes, degs = lsys.Melody(c.Scale, len(pattern), rng)
		} else {
			w := melody.DefaultWalk()
			w.Bias = direction(line.Emotion)
			notes, degs = w.Melody(c.Scale, len(pattern), rng)
		}
		c.Degradations = append(c.Degradations, degs...)
		if len(notes) == 0 {
			continue
		}

		// Merge: frequency from the melodic generator, timing and
		// articulation from the rhythm pattern.
		measureStart := float64(m) * beatsPerMeasure
		beat := 0.0
		for i, slot := range pattern {
			if beat >= beatsPerMeasure {
				break
			}
			dur := slot.Duration
			if beat+dur > beatsPerMeasure {
				dur = beatsPerMeasure - beat
			}
			if dur <= 0 {
				break
			}
			if slot.Rest {
				track.Events = append(track.Events, score.NoteEvent{
					StartBeat:     measureStart + beat,
					DurationBeats: dur,
					Rest:          true,
				})
				beat += slot.Duration
				continue
			}
			noteDur := dur
			if slot.Staccato {
				noteDur = dur * 0.7
			}
			track.Events = append(track.Events, score.NoteEvent{
				Freq:          notes[i%len(notes)].Freq,
				StartBeat:     measureStart + beat,
				DurationBeats: noteDur,
				Velocity:      velocity(line.Emotion, slot.Accent),
			})
			beat += slot.Duration
		}
	}
	return track
}

// measurePattern picks the rhythmic material for one measure.
func (c *Composition) measurePattern(g theory.Genre, measure int, emotion float64, rng *rand.Rand) []rhythm.Event {
	if (g == theory.GenreElectronic || g == theory.GenreHipHop) && measure%2 == 1 {
		return rhythm.AutomatonEvents(8, rhythm.Rule30)
	}
	return rhythm.Pattern(g, emotion, rng)
}

// bassTrack lays a quarter-note bass line an octave below the scale root:
// rock alternates root and fifth, jazz walks root-third-fifth-second, the
// default is root-root-fifth-root.
func (c *Composition) bassTrack(p Params) score.Track {
	track := score.Track{Role: score.RoleBass, Gain: score.MixGain(score.RoleBass)}
	root := c.Scale[0] * 0.5

	var ratios []float64
	switch p.Genre {
	case theory.GenreRock:
		ratios = []float64{1.0, 1.5, 1.0, 1.5}
	case theory.GenreJazz, theory.GenreBlues:
		ratios = []float64{1.0, 1.25, 1.5, 1.125}
	default:
		ratios = []float64{1.0, 1.0, 1.5, 1.0}
	}

	for m := 0; m < c.Measures; m++ {
		measureStart := float64(m) * beatsPerMeasure
		for beat, r := range ratios {
			v := 0.65
			if beat%2 == 0 {
				v = 0.75 // lean on beats one and three
			}
			track.Events = append(track.Events, score.NoteEvent{
				Freq:          root * r,
				StartBeat:     measureStart + float64(beat),
				DurationBeats: 1.0,
				Velocity:      v,
			})
		}
	}
	return track
}

// chordTrack samples the Markov chain once per measure and lays each triad
// as three simultaneous whole-measure events.
func (c *Composition) chordTrack(p Params, rng *rand.Rand) score.Track {
	track := score.Track{Role: score.RoleChord, Gain: score.MixGain(score.RoleChord)}
	symbols, degs := harmony.Progression(c.Measures, rng)
	c.Degradations = append(c.Degradations, degs...)

	for m, sym := range symbols {
		triad, ok := harmony.Triad(sym, c.Scale)
		if !ok {
			c.Degradations = append(c.Degradations, score.Degradation{
				Stage:  "chords",
				Detail: "fallback triad for symbol " + sym,
			})
		}
		measureStart := float64(m) * beatsPerMeasure
		for _, f := range triad {
			track.Events = append(track.Events, score.NoteEvent{
				Freq:          f,
				StartBeat:     measureStart,
				DurationBeats: beatsPerMeasure,
				Velocity:      0.6,
			})
		}
	}
	return track
}

// Drum hit grids: eight half-beat slots per measure.
var drumGrids = map[theory.Genre]struct{ kick, snare [8]bool }{
	theory.GenrePop:        {kick: slots(0, 4), snare: slots(2, 6)},
	theory.GenreRock:       {kick: slots(0, 3, 4), snare: slots(2, 6)},
	theory.GenreElectronic: {kick: slots(0, 2, 4, 6), snare: slots(2, 6)},
	theory.GenreHipHop:     {kick: slots(0, 5), snare: slots(2, 6)},
	theory.GenreJazz:       {kick: slots(0), snare: slots(6)},
	theory.GenreBlues:      {kick: slots(0, 4), snare: slots(2, 6)},
	theory.GenreCountry:    {kick: slots(0, 4), snare: slots(2, 6)},
	theory.GenreRnB:        {kick: slots(0, 5), snare: slots(2, 6)},
	theory.GenreClassical:  {kick: slots(0), snare: [8]bool{}},
	theory.GenreBallad:     {kick: slots(0), snare: slots(4)},
	theory.GenreMinor:      {kick: slots(0, 4), snare: slots(6)},
}

func slots(active ...int) [8]bool {
	var s [8]bool
	for _, i := range active {
		s[i] = true
	}
	return s
}

// drumTrack repeats the genre's kick/snare grid every measure.
func (c *Composition) drumTrack(p Params) score.Track {
	track := score.Track{Role: score.RoleDrum, Gain: score.MixGain(score.RoleDrum)}
	grid, ok := drumGrids[p.Genre]
	if !ok {
		grid = drumGrids[theory.GenrePop]
	}
	for m := 0; m < c.Measures; m++ {
		measureStart := float64(m) * beatsPerMeasure
		for slot := 0; slot < 8; slot++ {
			at := measureStart + float64(slot)*0.5
			if grid.kick[slot] {
				track.Events = append(track.Events, score.NoteEvent{
					Freq:          score.KickFreq,
					StartBeat:     at,
					DurationBeats: 0.5,
					Velocity:      0.9,
				})
			}
			if grid.snare[slot] {
				track.Events = append(track.Events, score.NoteEvent{
					Freq:          score.SnareFreq,
					StartBeat:     at,
					DurationBeats: 0.5,
					Velocity:      0.8,
				})
			}
		}
	}
	return track
}
