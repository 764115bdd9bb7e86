// Package audio bridges rendered stereo buffers to the platform audio
// device through ebiten's audio context.
package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	ebitaudio "github.com/hajimehoshi/ebiten/v2/audio"
)

// BufferSource streams a pre-rendered stereo buffer exactly once, padding
// with silence after the end.
type BufferSource struct {
	l, r []float64
	pos  int
}

func NewBufferSource(l, r []float64) *BufferSource {
	return &BufferSource{l: l, r: r}
}

// Process fills dst with interleaved stereo float32 frames.
func (s *BufferSource) Process(dst []float32) {
	for i := 0; i+1 < len(dst); i += 2 {
		if s.pos >= len(s.l) {
			dst[i] = 0
			dst[i+1] = 0
			continue
		}
		dst[i] = float32(s.l[s.pos])
		dst[i+1] = float32(s.r[s.pos])
		s.pos++
	}
}

// Finished reports whether the whole buffer has been consumed.
func (s *BufferSource) Finished() bool {
	return s.pos >= len(s.l)
}

type streamReader struct {
	mu     sync.Mutex
	source *BufferSource
	buf    []float32
}

// Read produces interleaved stereo float32 LE frames and returns io.EOF
// once the source is exhausted.
func (r *streamReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	frames := len(p) / 8
	if frames == 0 {
		return 0, nil
	}
	need := frames * 2
	if cap(r.buf) < need {
		r.buf = make([]float32, need)
	}
	r.buf = r.buf[:need]
	r.source.Process(r.buf)
	for i := 0; i < need; i++ {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(r.buf[i]))
	}
	n := frames * 8
	if r.source.Finished() {
		return n, io.EOF
	}
	return n, nil
}

func (r *streamReader) Close() error { return nil }

// Player plays one rendered buffer through the shared audio context.
type Player struct {
	player *ebitaudio.Player
	reader io.ReadCloser
	frames int
	rate   int
}

var (
	contextOnce sync.Once
	context     *ebitaudio.Context
	contextRate int
)

func sharedContext(sampleRate int) (*ebitaudio.Context, error) {
	contextOnce.Do(func() {
		contextRate = sampleRate
		context = ebitaudio.NewContext(sampleRate)
	})
	if contextRate != sampleRate {
		return nil, fmt.Errorf("audio context already initialized at %d Hz (requested %d Hz)", contextRate, sampleRate)
	}
	return context, nil
}

// NewPlayer wires a stereo buffer to the device. The buffer channels must
// have equal length.
func NewPlayer(sampleRate int, l, r []float64) (*Player, error) {
	if len(l) != len(r) {
		return nil, fmt.Errorf("channel lengths differ: %d vs %d", len(l), len(r))
	}
	ctx, err := sharedContext(sampleRate)
	if err != nil {
		return nil, err
	}
	reader := &streamReader{source: NewBufferSource(l, r)}
	pl, err := ctx.NewPlayerF32(reader)
	if err != nil {
		return nil, err
	}
	return &Player{player: pl, reader: reader, frames: len(l), rate: sampleRate}, nil
}

func (p *Player) Play()           { p.player.Play() }
func (p *Player) Pause()          { p.player.Pause() }
func (p *Player) IsPlaying() bool { return p.player.IsPlaying() }

// Position returns the playback position the listener actually hears.
func (p *Player) Position() time.Duration {
	return p.player.Position()
}

// Duration returns the total length of the buffer being played.
func (p *Player) Duration() time.Duration {
	return time.Duration(float64(p.frames) / float64(p.rate) * float64(time.Second))
}

func (p *Player) Stop() error {
	p.player.Pause()
	p.player.Close()
	return p.reader.Close()
}
