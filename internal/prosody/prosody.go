// Package prosody scores lyric lines for emotional valence and syllable
// density. The analysis is a pure function of the lyric text and drives
// melodic direction, rhythm shaping and dynamics downstream.
package prosody

import "strings"

// emotionWeights is the fixed keyword table. Unknown words score 0.
var emotionWeights = map[string]float64{
	"love": 0.9, "joy": 0.8, "happy": 0.7, "beautiful": 0.6,
	"amazing": 0.7, "wonderful": 0.8, "dream": 0.5, "bright": 0.5,
	"sad": -0.7, "pain": -0.8, "hurt": -0.6, "broken": -0.7,
	"dark": -0.5, "lonely": -0.6, "tears": -0.6, "goodbye": -0.5,
}

// defaultSyllables is used for the synthetic line substituted when no lyrics
// are supplied: two syllables per beat of a 4/4 measure.
const defaultSyllables = 8

// Line is one analyzed lyric line. Immutable once computed.
type Line struct {
	Text      string
	Emotion   float64 // [-1, 1]
	Syllables int
}

// Analysis holds per-line scores for a whole lyric.
type Analysis struct {
	Lines []Line
	// Synthetic is true when the lyric was empty and a default line was
	// substituted so downstream generators never see an empty set.
	Synthetic bool
}

// Analyze splits lyrics into non-empty trimmed lines and scores each one.
// Empty input yields a single synthetic line with emotion 0.5.
func Analyze(lyrics string) Analysis {
	var out Analysis
	for _, raw := range strings.Split(lyrics, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		words := strings.Fields(strings.ToLower(line))
		n := len(words)
		if n == 0 {
			n = 1
		}
		var emotion float64
		syllables := 0
		for _, w := range words {
			emotion += emotionWeights[w]
			syllables += Syllables(w)
		}
		out.Lines = append(out.Lines, Line{
			Text:      line,
			Emotion:   emotion / float64(n),
			Syllables: syllables,
		})
	}
	if len(out.Lines) == 0 {
		out.Lines = []Line{{Emotion: 0.5, Syllables: defaultSyllables}}
		out.Synthetic = true
	}
	return out
}

// AverageEmotion returns the mean emotion over all lines.
func (a Analysis) AverageEmotion() float64 {
	if len(a.Lines) == 0 {
		return 0
	}
	var sum float64
	for _, l := range a.Lines {
		sum += l.Emotion
	}
	return sum / float64(len(a.Lines))
}

// Syllables estimates the syllable count of a word by counting vowel-group
// transitions. Consecutive vowels count once; every word counts at least one.
func Syllables(word string) int {
	count := 0
	prevVowel := false
	for _, r := range word {
		v := isVowel(r)
		if v && !prevVowel {
			count++
		}
		prevVowel = v
	}
	if count < 1 {
		count = 1
	}
	return count
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'A', 'E', 'I', 'O', 'U':
		return true
	}
	return false
}
