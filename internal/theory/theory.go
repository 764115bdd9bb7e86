// Package theory derives frequency material from (key, genre): the scale
// table a composition draws its pitches from and the root progression its
// harmony cycles through. All tables are fixed; unknown inputs fall back to
// defaults instead of failing.
package theory

import "strings"

// MiddleC is the fallback root frequency for unknown key names.
const MiddleC = 261.63

// Genre is the closed set of supported styles. Unknown strings map to
// GenrePop, mirroring the lookup-with-default behavior callers rely on.
type Genre int

const (
	GenrePop Genre = iota
	GenreRock
	GenreJazz
	GenreElectronic
	GenreClassical
	GenreHipHop
	GenreCountry
	GenreRnB
	GenreBlues
	GenreBallad
	GenreMinor
)

var genreNames = map[string]Genre{
	"pop":        GenrePop,
	"rock":       GenreRock,
	"jazz":       GenreJazz,
	"electronic": GenreElectronic,
	"classical":  GenreClassical,
	"hip-hop":    GenreHipHop,
	"hiphop":     GenreHipHop,
	"country":    GenreCountry,
	"r&b":        GenreRnB,
	"rnb":        GenreRnB,
	"blues":      GenreBlues,
	"ballad":     GenreBallad,
	"minor":      GenreMinor,
}

// ParseGenre maps a genre string to its enum value, case-insensitively.
// Unknown genres return (GenrePop, false).
func ParseGenre(s string) (Genre, bool) {
	g, ok := genreNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return GenrePop, false
	}
	return g, true
}

func (g Genre) String() string {
	switch g {
	case GenrePop:
		return "pop"
	case GenreRock:
		return "rock"
	case GenreJazz:
		return "jazz"
	case GenreElectronic:
		return "electronic"
	case GenreClassical:
		return "classical"
	case GenreHipHop:
		return "hip-hop"
	case GenreCountry:
		return "country"
	case GenreRnB:
		return "r&b"
	case GenreBlues:
		return "blues"
	case GenreBallad:
		return "ballad"
	case GenreMinor:
		return "minor"
	}
	return "pop"
}

// Genres lists the supported genres in declaration order.
func Genres() []Genre {
	return []Genre{
		GenrePop, GenreRock, GenreJazz, GenreElectronic, GenreClassical,
		GenreHipHop, GenreCountry, GenreRnB, GenreBlues, GenreBallad, GenreMinor,
	}
}

// Pitch-class root frequencies at the fourth octave.
var keyFreqs = map[string]float64{
	"c": 261.63, "c#": 277.18, "db": 277.18,
	"d": 293.66, "d#": 311.13, "eb": 311.13,
	"e": 329.63,
	"f": 349.23, "f#": 369.99, "gb": 369.99,
	"g": 392.00, "g#": 415.30, "ab": 415.30,
	"a": 440.00, "a#": 466.16, "bb": 466.16,
	"b": 493.88,
}

// KeyFrequency resolves a key name (optionally a minor variant like "Am" or
// "a minor") to its root frequency. Unknown names default to middle C.
func KeyFrequency(name string) float64 {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.TrimSuffix(n, " minor")
	n = strings.TrimSuffix(n, " major")
	if f, ok := keyFreqs[n]; ok {
		return f
	}
	// Minor variants like "am" or "c#m": strip the suffix if the remainder
	// is a pitch class.
	if stripped := strings.TrimSuffix(n, "m"); stripped != n {
		if f, ok := keyFreqs[stripped]; ok {
			return f
		}
	}
	return MiddleC
}

// Scale ratio families. Major is the default; blues/jazz inserts blue-note
// ratios; minor is the natural-minor series.
var (
	majorRatios = []float64{1.0, 9.0 / 8, 5.0 / 4, 4.0 / 3, 3.0 / 2, 5.0 / 3, 15.0 / 8, 2.0}
	bluesRatios = []float64{1.0, 9.0 / 8, 6.0 / 5, 5.0 / 4, 4.0 / 3, 7.0 / 5, 3.0 / 2, 5.0 / 3, 9.0 / 5, 15.0 / 8, 2.0}
	minorRatios = []float64{1.0, 9.0 / 8, 6.0 / 5, 4.0 / 3, 3.0 / 2, 8.0 / 5, 9.0 / 5, 2.0}
)

// Scale returns the frequency table for (genre, key): root frequency times
// the genre family's ratio series. The result is freshly allocated per call.
func Scale(g Genre, keyName string) []float64 {
	root := KeyFrequency(keyName)
	var ratios []float64
	switch g {
	case GenreBlues, GenreJazz:
		ratios = bluesRatios
	case GenreMinor, GenreBallad:
		ratios = minorRatios
	default:
		ratios = majorRatios
	}
	out := make([]float64, len(ratios))
	for i, r := range ratios {
		out[i] = root * r
	}
	return out
}

// Chord-root progression ratio sets, four roots each, relative to the key
// root. Degrees follow the classic progressions for each family:
// pop I-V-vi-IV, rock vi-IV-I-V, blues I-IV-V-IV, jazz ii-V-I-vi,
// country I-IV-V-I.
var (
	popProgression     = []float64{1.0, 3.0 / 2, 5.0 / 3, 4.0 / 3}
	rockProgression    = []float64{5.0 / 3, 4.0 / 3, 1.0, 3.0 / 2}
	bluesProgression   = []float64{1.0, 4.0 / 3, 3.0 / 2, 4.0 / 3}
	jazzProgression    = []float64{9.0 / 8, 3.0 / 2, 1.0, 5.0 / 3}
	countryProgression = []float64{1.0, 4.0 / 3, 3.0 / 2, 1.0}
)

// ChordRoots returns the four-root progression for (genre, key).
func ChordRoots(g Genre, keyName string) []float64 {
	root := KeyFrequency(keyName)
	var ratios []float64
	switch g {
	case GenreRock, GenreMinor:
		ratios = rockProgression
	case GenreBlues:
		ratios = bluesProgression
	case GenreJazz, GenreRnB:
		ratios = jazzProgression
	case GenreCountry, GenreClassical:
		ratios = countryProgression
	default:
		ratios = popProgression
	}
	out := make([]float64, len(ratios))
	for i, r := range ratios {
		out[i] = root * r
	}
	return out
}
