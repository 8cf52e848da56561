package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// WAVHeader is the canonical 44-byte RIFF/WAVE header for PCM data.
type WAVHeader struct {
	ChunkID       [4]byte // "RIFF"
	ChunkSize     uint32  // File size - 8 bytes
	Format        [4]byte // "WAVE"
	Subchunk1ID   [4]byte // "fmt "
	Subchunk1Size uint32  // 16 for PCM
	AudioFormat   uint16  // 1 for PCM
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32 // SampleRate * NumChannels * BitsPerSample / 8
	BlockAlign    uint16 // NumChannels * BitsPerSample / 8
	BitsPerSample uint16
	Subchunk2ID   [4]byte // "data"
	Subchunk2Size uint32  // Number of bytes in the data
}

const wavHeaderSize = 44

// EncodeWAV writes the buffer as interleaved 16-bit PCM inside a WAV container.
// Samples produced by Decode are converted back to their original integers.
func EncodeWAV(buf *Buffer) ([]byte, error) {
	if buf == nil || buf.FrameCount() == 0 {
		return nil, fmt.Errorf("cannot encode empty audio buffer")
	}
	if buf.SampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %d", buf.SampleRate)
	}
	if buf.Channels != len(buf.Data) {
		return nil, fmt.Errorf("buffer declares %d channels but holds %d", buf.Channels, len(buf.Data))
	}

	frames := buf.FrameCount()
	numChannels := uint16(buf.Channels)
	bitsPerSample := uint16(16)
	dataSize := uint32(frames * buf.Channels * bytesPerSample)

	header := WAVHeader{
		ChunkID:       [4]byte{'R', 'I', 'F', 'F'},
		ChunkSize:     36 + dataSize,
		Format:        [4]byte{'W', 'A', 'V', 'E'},
		Subchunk1ID:   [4]byte{'f', 'm', 't', ' '},
		Subchunk1Size: 16,
		AudioFormat:   1,
		NumChannels:   numChannels,
		SampleRate:    uint32(buf.SampleRate),
		ByteRate:      uint32(buf.SampleRate) * uint32(numChannels) * uint32(bitsPerSample) / 8,
		BlockAlign:    numChannels * bitsPerSample / 8,
		BitsPerSample: bitsPerSample,
		Subchunk2ID:   [4]byte{'d', 'a', 't', 'a'},
		Subchunk2Size: dataSize,
	}

	samples := make([]int16, 0, frames*buf.Channels)
	for i := 0; i < frames; i++ {
		for c := 0; c < buf.Channels; c++ {
			samples = append(samples, toInt16(buf.Data[c][i]))
		}
	}

	out := bytes.NewBuffer(make([]byte, 0, wavHeaderSize+int(dataSize)))
	if err := binary.Write(out, binary.LittleEndian, header); err != nil {
		return nil, fmt.Errorf("failed to write WAV header: %w", err)
	}
	if err := binary.Write(out, binary.LittleEndian, samples); err != nil {
		return nil, fmt.Errorf("failed to write audio data: %w", err)
	}

	return out.Bytes(), nil
}

// WAVInfo describes the header of a WAV file.
type WAVInfo struct {
	SampleRate    uint32  `json:"sample_rate"`
	Channels      uint16  `json:"channels"`
	BitsPerSample uint16  `json:"bits_per_sample"`
	Duration      float64 `json:"duration_seconds"`
	DataSize      uint32  `json:"data_size_bytes"`
}

// ReadWAVInfo parses and validates a canonical PCM WAV header.
func ReadWAVInfo(data []byte) (*WAVInfo, error) {
	if len(data) < wavHeaderSize {
		return nil, fmt.Errorf("WAV data too short: need at least %d bytes, got %d", wavHeaderSize, len(data))
	}

	var header WAVHeader
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read WAV header: %w", err)
	}

	switch {
	case string(header.ChunkID[:]) != "RIFF":
		return nil, fmt.Errorf("invalid WAV file: missing RIFF header")
	case string(header.Format[:]) != "WAVE":
		return nil, fmt.Errorf("invalid WAV file: missing WAVE format")
	case string(header.Subchunk1ID[:]) != "fmt ":
		return nil, fmt.Errorf("invalid WAV file: missing fmt chunk")
	case string(header.Subchunk2ID[:]) != "data":
		return nil, fmt.Errorf("invalid WAV file: missing data chunk")
	case header.AudioFormat != 1:
		return nil, fmt.Errorf("unsupported audio format: %d (only PCM is supported)", header.AudioFormat)
	case header.SampleRate == 0 || header.BlockAlign == 0:
		return nil, fmt.Errorf("invalid WAV file: zero sample rate or block align")
	}

	frames := header.Subchunk2Size / uint32(header.BlockAlign)
	return &WAVInfo{
		SampleRate:    header.SampleRate,
		Channels:      header.NumChannels,
		BitsPerSample: header.BitsPerSample,
		Duration:      float64(frames) / float64(header.SampleRate),
		DataSize:      header.Subchunk2Size,
	}, nil
}

func toInt16(v float32) int16 {
	s := math.Round(float64(v) * 32768.0)
	if s > math.MaxInt16 {
		return math.MaxInt16
	}
	if s < math.MinInt16 {
		return math.MinInt16
	}
	return int16(s)
}
