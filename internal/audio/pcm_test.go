package audio

import (
	"encoding/binary"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pcmFromSamples(samples ...int16) []byte {
	out := make([]byte, 2*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[2*i:], uint16(s))
	}
	return out
}

func TestDecodeValues(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  float32
	}{
		{"zero", []byte{0x00, 0x00}, 0},
		{"max positive", []byte{0xFF, 0x7F}, 32767.0 / 32768.0},
		{"min negative", []byte{0x00, 0x80}, -1},
		{"minus one", []byte{0xFF, 0xFF}, -1.0 / 32768.0},
		{"half", []byte{0x00, 0x40}, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, err := Decode(tt.input, 24000, 1)
			require.NoError(t, err)
			require.Equal(t, 1, buf.FrameCount())
			assert.Equal(t, tt.want, buf.Channel(0)[0])
		})
	}
}

func TestDecodePositiveExtremeStaysBelowOne(t *testing.T) {
	buf, err := Decode([]byte{0xFF, 0x7F}, 24000, 1)
	require.NoError(t, err)

	v := buf.Channel(0)[0]
	assert.Less(t, v, float32(1))
	assert.InDelta(t, 0.99997, v, 1e-5)
}

func TestDecodeShape(t *testing.T) {
	for _, channels := range []int{1, 2, 3, 6} {
		for _, k := range []int{0, 6, 60, 600} {
			pcm := make([]byte, 2*k)
			buf, err := Decode(pcm, 24000, channels)
			require.NoError(t, err)

			assert.Equal(t, channels, buf.Channels)
			assert.Equal(t, 24000, buf.SampleRate)
			require.Len(t, buf.Data, channels)
			for c := 0; c < channels; c++ {
				assert.Len(t, buf.Channel(c), k/channels, "channels=%d k=%d", channels, k)
			}
		}
	}
}

func TestDecodeInterleaving(t *testing.T) {
	pcm := pcmFromSamples(1, -1, 2, -2, 3, -3)

	buf, err := Decode(pcm, 48000, 2)
	require.NoError(t, err)

	assert.Equal(t, []float32{1.0 / 32768, 2.0 / 32768, 3.0 / 32768}, buf.Channel(0))
	assert.Equal(t, []float32{-1.0 / 32768, -2.0 / 32768, -3.0 / 32768}, buf.Channel(1))
}

func TestDecodeTruncatesDanglingByte(t *testing.T) {
	pcm := append(pcmFromSamples(100, 200, 300), 0x7F)

	buf, err := Decode(pcm, 24000, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, buf.FrameCount())
}

func TestDecodeDropsPartialFrame(t *testing.T) {
	// Five samples across two channels leave one sample without a partner.
	pcm := pcmFromSamples(1, 2, 3, 4, 5)

	buf, err := Decode(pcm, 24000, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, buf.FrameCount())
	assert.Len(t, buf.Channel(1), 2)
}

func TestDecodeEmpty(t *testing.T) {
	for _, pcm := range [][]byte{nil, {}, {0x01}} {
		buf, err := Decode(pcm, 24000, 1)
		require.NoError(t, err)
		assert.Equal(t, 0, buf.FrameCount())
		assert.Equal(t, time.Duration(0), buf.Duration())
	}
}

func TestDecodeDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	pcm := make([]byte, 4096)
	rng.Read(pcm)

	first, err := Decode(pcm, 24000, 2)
	require.NoError(t, err)
	second, err := Decode(pcm, 24000, 2)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestDecodeInvalidParameters(t *testing.T) {
	_, err := Decode([]byte{0, 0}, 24000, 0)
	assert.Error(t, err)

	_, err = Decode([]byte{0, 0}, 0, 1)
	assert.Error(t, err)
}

func TestBufferDuration(t *testing.T) {
	buf, err := Decode(make([]byte, 2*24000), 24000, 1)
	require.NoError(t, err)
	assert.Equal(t, time.Second, buf.Duration())
}
