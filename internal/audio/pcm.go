package audio

import (
	"encoding/binary"
	"fmt"
	"time"
)

// bytesPerSample is fixed by the 16-bit PCM format.
const bytesPerSample = 2

// Buffer holds decoded audio as one float sample slice per channel.
type Buffer struct {
	SampleRate int
	Channels   int
	Data       [][]float32
}

// FrameCount returns the number of samples in each channel.
func (b *Buffer) FrameCount() int {
	if len(b.Data) == 0 {
		return 0
	}
	return len(b.Data[0])
}

// Duration returns the playback length of the buffer.
func (b *Buffer) Duration() time.Duration {
	if b.SampleRate <= 0 {
		return 0
	}
	return time.Duration(b.FrameCount()) * time.Second / time.Duration(b.SampleRate)
}

// Channel returns the samples of channel c.
func (b *Buffer) Channel(c int) []float32 {
	return b.Data[c]
}

// Decode interprets pcm as interleaved signed 16-bit little-endian samples and
// splits it into channels. Every sample is divided by 32768, so -32768 maps to
// exactly -1 and 32767 to just below 1. A trailing partial frame is dropped.
func Decode(pcm []byte, sampleRate, channels int) (*Buffer, error) {
	if channels < 1 {
		return nil, fmt.Errorf("channels must be at least 1, got %d", channels)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %d", sampleRate)
	}

	frameCount := len(pcm) / bytesPerSample / channels

	buf := &Buffer{
		SampleRate: sampleRate,
		Channels:   channels,
		Data:       make([][]float32, channels),
	}
	for c := 0; c < channels; c++ {
		data := make([]float32, frameCount)
		for i := 0; i < frameCount; i++ {
			offset := (i*channels + c) * bytesPerSample
			sample := int16(binary.LittleEndian.Uint16(pcm[offset:]))
			data[i] = float32(sample) / 32768.0
		}
		buf.Data[c] = data
	}

	return buf, nil
}
