package burntbeats

import (
	"encoding/binary"
	"testing"
)

func TestEncodeWAVHeader(t *testing.T) {
	frames := 1000
	l := make([]float64, frames)
	r := make([]float64, frames)
	out := EncodeWAV(l, r, SampleRate)

	wantData := frames * 4
	if len(out) != 44+wantData {
		t.Fatalf("total size %d, want %d", len(out), 44+wantData)
	}
	if string(out[0:4]) != "RIFF" || string(out[8:12]) != "WAVE" || string(out[12:16]) != "fmt " || string(out[36:40]) != "data" {
		t.Fatal("chunk markers missing")
	}
	if got := binary.LittleEndian.Uint32(out[4:]); got != uint32(36+wantData) {
		t.Fatalf("RIFF chunk size %d, want %d", got, 36+wantData)
	}
	if got := binary.LittleEndian.Uint16(out[20:]); got != 1 {
		t.Fatalf("audio format %d, want 1 (integer PCM)", got)
	}
	if got := binary.LittleEndian.Uint16(out[22:]); got != 2 {
		t.Fatalf("channels %d, want 2", got)
	}
	if got := binary.LittleEndian.Uint32(out[24:]); got != SampleRate {
		t.Fatalf("sample rate %d, want %d", got, SampleRate)
	}
	if got := binary.LittleEndian.Uint32(out[28:]); got != uint32(SampleRate*4) {
		t.Fatalf("byte rate %d, want %d", got, SampleRate*4)
	}
	if got := binary.LittleEndian.Uint16(out[32:]); got != 4 {
		t.Fatalf("block align %d, want 4", got)
	}
	if got := binary.LittleEndian.Uint16(out[34:]); got != 16 {
		t.Fatalf("bits per sample %d, want 16", got)
	}
	if got := binary.LittleEndian.Uint32(out[40:]); got != uint32(wantData) {
		t.Fatalf("data size %d, want %d", got, wantData)
	}
}

func TestEncodeWAVQuantization(t *testing.T) {
	l := []float64{0, 1, -1, 0.5, 2.0, -3.0}
	r := []float64{0, 0, 0, 0, 0, 0}
	out := EncodeWAV(l, r, SampleRate)

	want := []int16{0, 32767, -32767, 16384, 32767, -32767}
	for i, w := range want {
		got := int16(binary.LittleEndian.Uint16(out[44+i*4:]))
		if got != w {
			t.Fatalf("frame %d left = %d, want %d", i, got, w)
		}
		if right := int16(binary.LittleEndian.Uint16(out[46+i*4:])); right != 0 {
			t.Fatalf("frame %d right = %d, want 0", i, right)
		}
	}
}

func TestEncodeWAVUsesShorterChannel(t *testing.T) {
	out := EncodeWAV(make([]float64, 10), make([]float64, 6), SampleRate)
	if got := binary.LittleEndian.Uint32(out[40:]); got != 6*4 {
		t.Fatalf("data size %d, want %d", got, 6*4)
	}
}
