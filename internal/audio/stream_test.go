package audio

import (
	"io"
	"testing"
)

func ramp(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i) / float64(n)
	}
	return out
}

func TestBufferSourcePlaysOnceThenSilence(t *testing.T) {
	src := NewBufferSource(ramp(4), ramp(4))

	dst := make([]float32, 8)
	src.Process(dst)
	if !src.Finished() {
		t.Fatal("source should be finished after consuming all frames")
	}
	if dst[0] != 0 || dst[6] != 0.75 {
		t.Fatalf("unexpected frames: %v", dst)
	}

	src.Process(dst)
	for i, s := range dst {
		if s != 0 {
			t.Fatalf("sample %d = %v after end, want silence", i, s)
		}
	}
}

func TestBufferSourceInterleaving(t *testing.T) {
	l := []float64{0.1, 0.2}
	r := []float64{-0.1, -0.2}
	src := NewBufferSource(l, r)

	dst := make([]float32, 4)
	src.Process(dst)
	want := []float32{0.1, -0.1, 0.2, -0.2}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("dst[%d] = %v, want %v", i, dst[i], want[i])
		}
	}
}

func TestStreamReaderSignalsEOF(t *testing.T) {
	r := &streamReader{source: NewBufferSource(ramp(8), ramp(8))}

	p := make([]byte, 8*8)
	n, err := r.Read(p)
	if n != 8*8 {
		t.Fatalf("read %d bytes, want %d", n, 8*8)
	}
	if err != io.EOF {
		t.Fatalf("err = %v, want io.EOF", err)
	}
}

func TestStreamReaderPartialRead(t *testing.T) {
	r := &streamReader{source: NewBufferSource(ramp(8), ramp(8))}

	p := make([]byte, 4*8)
	n, err := r.Read(p)
	if n != 4*8 || err != nil {
		t.Fatalf("first read: n=%d err=%v", n, err)
	}
	n, err = r.Read(p)
	if n != 4*8 || err != io.EOF {
		t.Fatalf("second read: n=%d err=%v, want EOF", n, err)
	}
}
