// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"encoding/binary"

	goaudio "github.com/go-audio/audio"
)

// SampleFormat is the layout of one decoded PCM sample as handed to the mixer.
type SampleFormat int

const (
	FormatUnknown SampleFormat = iota
	U8
	S8
	S16LSB
	S16MSB
	S32LSB
	S32MSB
	F32LSB
	F32MSB
)

// BytesPerSample returns the width of a single sample, 0 for FormatUnknown.
func (f SampleFormat) BytesPerSample() int {
	switch f {
	case U8, S8:
		return 1
	case S16LSB, S16MSB:
		return 2
	case S32LSB, S32MSB, F32LSB, F32MSB:
		return 4
	default:
		return 0
	}
}

// ByteOrder of multi-byte samples. Single byte formats report little endian.
func (f SampleFormat) ByteOrder() binary.ByteOrder {
	switch f {
	case S16MSB, S32MSB, F32MSB:
		return binary.BigEndian
	default:
		return binary.LittleEndian
	}
}

func (f SampleFormat) IsFloat() bool { return f == F32LSB || f == F32MSB }

func (f SampleFormat) String() string {
	switch f {
	case U8:
		return "U8"
	case S8:
		return "S8"
	case S16LSB:
		return "S16LSB"
	case S16MSB:
		return "S16MSB"
	case S32LSB:
		return "S32LSB"
	case S32MSB:
		return "S32MSB"
	case F32LSB:
		return "F32LSB"
	case F32MSB:
		return "F32MSB"
	default:
		return "unknown"
	}
}

// Spec describes the canonical PCM a Stream produces.
type Spec struct {
	Format     SampleFormat
	Channels   int
	SampleRate int
}

// FrameSize is the number of bytes per interleaved frame.
func (s Spec) FrameSize() int {
	return s.Format.BytesPerSample() * s.Channels
}

// AudioFormat converts the spec to the go-audio format description.
func (s Spec) AudioFormat() *goaudio.Format {
	return &goaudio.Format{
		NumChannels: s.Channels,
		SampleRate:  s.SampleRate,
	}
}
