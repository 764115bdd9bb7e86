// Package burntbeats generates complete songs from lyrics and a handful of
// musical parameters: prosody analysis of the lyric text drives procedural
// melody, harmony, rhythm and percussion generators, and an additive
// synthesizer renders the result to a 16-bit stereo WAV. The whole pipeline
// is deterministic for a fixed seed.
package burntbeats

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/Ocean82/BurntBeats/internal/compose"
	"github.com/Ocean82/BurntBeats/internal/prosody"
	"github.com/Ocean82/BurntBeats/internal/synth"
	"github.com/Ocean82/BurntBeats/internal/theory"
)

// SampleRate is the fixed output rate in Hz.
const SampleRate = 44100

// Tempo and duration limits for Generate.
const (
	MinTempoBPM    = 40
	MaxTempoBPM    = 300
	MaxDurationSec = 600
)

var (
	ErrInvalidTempo    = errors.New("tempo out of range")
	ErrInvalidDuration = errors.New("duration out of range")
)

// ValidationError wraps a sentinel with the offending field and value.
type ValidationError struct {
	Field string
	Value int
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %d: %v", e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Request describes one song to generate. Genre and Key fall back to
// defaults when unrecognized; Tempo and Duration are validated strictly.
type Request struct {
	Title       string `json:"title"`
	Lyrics      string `json:"lyrics"`
	Genre       string `json:"genre"`
	TempoBPM    int    `json:"tempo"`
	Key         string `json:"key"`
	DurationSec int    `json:"duration"`
	// Seed pins the random source; nil picks one from the clock.
	Seed *int64 `json:"seed,omitempty"`
}

// Metadata summarizes a generated song.
type Metadata struct {
	Title           string  `json:"title"`
	Genre           string  `json:"genre"`
	TempoBPM        int     `json:"tempo"`
	Key             string  `json:"key"`
	DurationSec     int     `json:"duration"`
	Seed            int64   `json:"seed"`
	LineCount       int     `json:"line_count"`
	AverageEmotion  float64 `json:"average_emotion"`
	MeasureCount    int     `json:"measure_count"`
	SilencedSamples int     `json:"silenced_samples"`
}

// Result is a finished song: the WAV file bytes plus its metadata.
type Result struct {
	WAV      []byte
	Metadata Metadata
}

// Generate runs the full pipeline: lyric analysis, symbolic composition,
// PCM synthesis and WAV encoding. Unrecognized genres and keys degrade to
// pop and middle C with a warning; only tempo and duration reject the
// request outright.
func Generate(req Request) (*Result, error) {
	buf, meta, err := RenderBuffer(req)
	if err != nil {
		return nil, err
	}
	return &Result{
		WAV:      EncodeWAV(buf.L, buf.R, SampleRate),
		Metadata: *meta,
	}, nil
}

// RenderBuffer runs the pipeline up to raw stereo PCM, for callers that
// want to play the song directly instead of writing a file.
func RenderBuffer(req Request) (*synth.Buffer, *Metadata, error) {
	if req.TempoBPM < MinTempoBPM || req.TempoBPM > MaxTempoBPM {
		return nil, nil, &ValidationError{Field: "tempo", Value: req.TempoBPM, Err: ErrInvalidTempo}
	}
	if req.DurationSec <= 0 || req.DurationSec > MaxDurationSec {
		return nil, nil, &ValidationError{Field: "duration", Value: req.DurationSec, Err: ErrInvalidDuration}
	}

	seed := time.Now().UnixNano()
	if req.Seed != nil {
		seed = *req.Seed
	}
	rng := rand.New(rand.NewSource(seed))

	genre, known := theory.ParseGenre(req.Genre)
	if !known && req.Genre != "" {
		slog.Warn("unknown genre, using pop", "genre", req.Genre)
	}

	lyrics := prosody.Analyze(req.Lyrics)
	if lyrics.Synthetic {
		slog.Info("no lyrics supplied, composing instrumental")
	}

	comp := compose.Assemble(compose.Params{
		Genre:       genre,
		Key:         req.Key,
		TempoBPM:    req.TempoBPM,
		DurationSec: req.DurationSec,
	}, lyrics, rng)
	for _, d := range comp.Degradations {
		slog.Warn("composition degraded", "stage", d.Stage, "detail", d.Detail)
	}

	engine := synth.New(SampleRate)
	buf := engine.Render(comp.Tracks, req.TempoBPM, req.DurationSec, rng)
	if n := engine.Silenced(); n > 0 {
		slog.Warn("silenced non-finite samples", "count", n)
	}

	return buf, &Metadata{
		Title:           req.Title,
		Genre:           genre.String(),
		TempoBPM:        req.TempoBPM,
		Key:             req.Key,
		DurationSec:     req.DurationSec,
		Seed:            seed,
		LineCount:       len(lyrics.Lines),
		AverageEmotion:  lyrics.AverageEmotion(),
		MeasureCount:    comp.Measures,
		SilencedSamples: engine.Silenced(),
	}, nil
}
