// SPDX-License-Identifier: EPL-2.0

package container

import (
	"fmt"

	"github.com/ik5/pcmstream/audio"
	"github.com/ik5/pcmstream/codec"
	"github.com/ik5/pcmstream/metadata"
)

// DefaultFrames is the number of output frames decoded per fetch.
const DefaultFrames = 4096

// MaxChunkAlloc bounds the size of a chunk payload read into memory and of
// the decode scratch buffer.
const MaxChunkAlloc = 16 << 20

// Encoding is the sample encoding code declared by a container.
type Encoding uint16

const (
	EncodingPCM        Encoding = 0x0001
	EncodingADPCM      Encoding = 0x0002
	EncodingFloat      Encoding = 0x0003
	EncodingALaw       Encoding = 0x0006
	EncodingMuLaw      Encoding = 0x0007
	EncodingExtensible Encoding = 0xFFFE
)

func (e Encoding) String() string {
	switch e {
	case EncodingPCM:
		return "PCM"
	case EncodingADPCM:
		return "ADPCM"
	case EncodingFloat:
		return "IEEE float"
	case EncodingALaw:
		return "A-law"
	case EncodingMuLaw:
		return "μ-law"
	case EncodingExtensible:
		return "extensible"
	default:
		return fmt.Sprintf("unknown(%#04x)", uint16(e))
	}
}

// Descriptor is the decoded stream layout of a container.
type Descriptor struct {
	Encoding      Encoding
	Channels      int
	Frequency     int
	BitsPerSample int
	// FrameSize is channels × bytes per encoded sample.
	FrameSize int
	// Format is the sample layout after decoding.
	Format   audio.SampleFormat
	Strategy codec.Strategy
	// BufferSize is the scratch buffer size in output bytes.
	BufferSize int
}

// NewDescriptor fills the derived fields of a descriptor.
func NewDescriptor(enc Encoding, channels, frequency, bits int, format audio.SampleFormat, strategy codec.Strategy) (Descriptor, error) {
	d := Descriptor{
		Encoding:      enc,
		Channels:      channels,
		Frequency:     frequency,
		BitsPerSample: bits,
		Format:        format,
		Strategy:      strategy,
	}

	d.FrameSize = channels * (bits / 8)
	if d.FrameSize <= 0 || format.BytesPerSample() == 0 {
		return Descriptor{}, fmt.Errorf("%w: %d channels of %d bits", ErrMalformedContainer, channels, bits)
	}

	d.BufferSize = DefaultFrames * d.OutputFrameSize()
	if d.BufferSize > MaxChunkAlloc {
		return Descriptor{}, fmt.Errorf("%w: %d channels need a %d byte buffer", ErrOutOfMemory, channels, d.BufferSize)
	}

	return d, nil
}

// OutputFrameSize is the size of one frame after decoding.
func (d Descriptor) OutputFrameSize() int {
	return d.Channels * d.Format.BytesPerSample()
}

// Spec is the output layout for the mixer.
func (d Descriptor) Spec() audio.Spec {
	return audio.Spec{
		Format:     d.Format,
		Channels:   d.Channels,
		SampleRate: d.Frequency,
	}
}

// Engine binds the descriptor's strategy to its frame size.
func (d Descriptor) Engine() codec.Engine {
	return codec.Engine{
		Strategy:  d.Strategy,
		FrameSize: d.FrameSize,
		Order:     d.Format.ByteOrder(),
	}
}

// Region is the absolute byte range of the sample data.
type Region struct {
	Start int64
	Stop  int64
}

func (r Region) Len() int64 { return r.Stop - r.Start }

// LoopPoint is a repeated sub range of the region. Start and Stop are byte
// offsets relative to Region.Start. A count <= 0 loops forever.
type LoopPoint struct {
	Start     int64
	Stop      int64
	Initial   int
	Remaining int
	Active    bool
}

// Rearm restores the loop to its initial count.
func (l *LoopPoint) Rearm() {
	l.Remaining = l.Initial
	l.Active = true
}

// Container is the result of parsing a file header.
type Container struct {
	Descriptor Descriptor
	Region     Region
	Loops      []LoopPoint
	Tags       metadata.Tags
}
