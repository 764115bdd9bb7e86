package burntbeats

import (
	"encoding/binary"
	"math"
)

// EncodeWAV serializes a stereo float64 signal as a 16-bit PCM RIFF/WAVE
// file. Samples are clamped to -1..1 before quantization.
func EncodeWAV(left, right []float64, sampleRate int) []byte {
	frames := len(left)
	if len(right) < frames {
		frames = len(right)
	}
	const channels = 2
	dataSize := frames * channels * 2
	byteRate := sampleRate * channels * 2
	blockAlign := channels * 2
	chunkSize := 36 + dataSize

	out := make([]byte, 44+dataSize)
	copy(out[0:], []byte("RIFF"))
	binary.LittleEndian.PutUint32(out[4:], uint32(chunkSize))
	copy(out[8:], []byte("WAVE"))
	copy(out[12:], []byte("fmt "))
	binary.LittleEndian.PutUint32(out[16:], 16)
	binary.LittleEndian.PutUint16(out[20:], 1) // integer PCM
	binary.LittleEndian.PutUint16(out[22:], channels)
	binary.LittleEndian.PutUint32(out[24:], uint32(sampleRate))
	binary.LittleEndian.PutUint32(out[28:], uint32(byteRate))
	binary.LittleEndian.PutUint16(out[32:], uint16(blockAlign))
	binary.LittleEndian.PutUint16(out[34:], 16)
	copy(out[36:], []byte("data"))
	binary.LittleEndian.PutUint32(out[40:], uint32(dataSize))

	for i := 0; i < frames; i++ {
		binary.LittleEndian.PutUint16(out[44+i*4:], uint16(quantize(left[i])))
		binary.LittleEndian.PutUint16(out[46+i*4:], uint16(quantize(right[i])))
	}
	return out
}

func quantize(s float64) int16 {
	if s > 1 {
		s = 1
	} else if s < -1 {
		s = -1
	}
	return int16(math.Round(s * 32767))
}
