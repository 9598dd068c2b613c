// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/go-audio/riff"
	gowav "github.com/go-audio/wav"
	"github.com/ik5/pcmstream/audio"
	"github.com/ik5/pcmstream/codec"
	"github.com/ik5/pcmstream/container"
	"github.com/ik5/pcmstream/metadata"
)

var (
	id3ID      = [4]byte{'i', 'd', '3', ' '}
	id3UpperID = [4]byte{'I', 'D', '3', ' '}
)

const (
	fmtChunkMinSize = 16
	smplHeaderSize  = 36
	smplLoopSize    = 24
	loopForward     = 0
)

// sampleLoop is a forward loop in sample frames; end is inclusive.
type sampleLoop struct {
	playCount  uint32
	start, end uint32
}

type formatEntry struct {
	format   audio.SampleFormat
	strategy codec.Strategy
}

type formatKey struct {
	encoding container.Encoding
	bits     int
}

var formats = map[formatKey]formatEntry{
	{container.EncodingPCM, 8}:    {audio.U8, codec.Copy},
	{container.EncodingPCM, 16}:   {audio.S16LSB, codec.Copy},
	{container.EncodingPCM, 32}:   {audio.S32LSB, codec.Copy},
	{container.EncodingFloat, 32}: {audio.F32LSB, codec.Copy},
	{container.EncodingMuLaw, 8}:  {audio.S16LSB, codec.MuLaw},
	{container.EncodingALaw, 8}:   {audio.S16LSB, codec.ALaw},
}

// Decoder parses RIFF/WAVE headers.
type Decoder struct {
	// ID3 reads embedded id3 chunks. Nil selects metadata.DefaultID3Reader.
	ID3 metadata.ID3Reader
}

// Parse reads a WAVE header with the default ID3 reader.
func Parse(rs io.ReadSeeker) (*container.Container, error) {
	return Decoder{}.Parse(rs)
}

// Parse reads the header of a WAVE file from rs, which must be positioned
// just after the 4-byte "RIFF" magic. On success rs sits somewhere past
// the last chunk read; callers seek to the region before decoding.
func (d Decoder) Parse(rs io.ReadSeeker) (*container.Container, error) {
	var hdr [8]byte
	if _, err := io.ReadFull(rs, hdr[:]); err != nil {
		return nil, fmt.Errorf("%w: %w", container.ErrIO, err)
	}

	if [4]byte(hdr[4:8]) != riff.WavFormatID {
		return nil, ErrNotWavFile
	}

	c := &container.Container{}

	var (
		foundFmt, foundData bool
		loops               []sampleLoop
	)

	p := riff.New(rs)
	for {
		// A read failure here means end of stream, which ends the chunk
		// list the same way a zero length does.
		id, size, err := p.IDnSize()
		if err != nil || size == 0 {
			break
		}

		switch id {
		case riff.FmtID:
			desc, err := parseFmt(rs, size)
			if err != nil {
				return nil, err
			}
			c.Descriptor = desc
			foundFmt = true

		case riff.DataFormatID:
			start, err := container.Tell(rs)
			if err != nil {
				return nil, err
			}
			c.Region = container.Region{Start: start, Stop: start + int64(size)}
			if err := container.Skip(rs, int64(size)); err != nil {
				return nil, err
			}
			foundData = true

		case gowav.CIDSmpl:
			payload, err := container.ReadPayload(rs, size)
			if err != nil {
				return nil, err
			}
			loops = append(loops, parseSmpl(payload)...)

		case gowav.CIDList:
			payload, err := container.ReadPayload(rs, size)
			if err != nil {
				return nil, err
			}
			metadata.ParseInfoList(payload, &c.Tags)

		case id3ID, id3UpperID:
			payload, err := container.ReadPayload(rs, size)
			if err != nil {
				return nil, err
			}
			// A broken ID3 block leaves the tags unset.
			_ = metadata.ParseID3(payload, &c.Tags, d.ID3)

		default:
			if err := container.Skip(rs, int64(size)); err != nil {
				return nil, err
			}
		}
	}

	if !foundFmt {
		return nil, ErrNoFmtChunk
	}

	if !foundData {
		return nil, ErrNoDataChunk
	}

	c.Loops = scaleLoops(loops, c.Descriptor.FrameSize)

	return c, nil
}

func parseFmt(rs io.ReadSeeker, size uint32) (container.Descriptor, error) {
	if size < fmtChunkMinSize {
		return container.Descriptor{}, fmt.Errorf("%w: %d bytes", ErrFmtChunkTooSmall, size)
	}

	var raw [fmtChunkMinSize]byte
	if _, err := io.ReadFull(rs, raw[:]); err != nil {
		return container.Descriptor{}, fmt.Errorf("%w: %w", container.ErrIO, err)
	}

	if err := container.Skip(rs, int64(size-fmtChunkMinSize)); err != nil {
		return container.Descriptor{}, err
	}

	enc := container.Encoding(binary.LittleEndian.Uint16(raw[0:2]))
	channels := int(binary.LittleEndian.Uint16(raw[2:4]))
	frequency := int(binary.LittleEndian.Uint32(raw[4:8]))
	bits := int(binary.LittleEndian.Uint16(raw[14:16]))

	switch enc {
	case container.EncodingPCM, container.EncodingFloat, container.EncodingMuLaw, container.EncodingALaw:
	default:
		return container.Descriptor{}, fmt.Errorf("%w: %s", ErrUnknownEncoding, enc)
	}

	entry, ok := formats[formatKey{enc, bits}]
	if !ok {
		return container.Descriptor{}, fmt.Errorf("%w: %s with %d bits", ErrUnsupportedBitDepth, enc, bits)
	}

	return container.NewDescriptor(enc, channels, frequency, bits, entry.format, entry.strategy)
}

func parseSmpl(payload []byte) []sampleLoop {
	if len(payload) < smplHeaderSize {
		return nil
	}

	count := int(binary.LittleEndian.Uint32(payload[28:32]))
	count = min(count, (len(payload)-smplHeaderSize)/smplLoopSize)

	var loops []sampleLoop
	for i := range count {
		rec := payload[smplHeaderSize+i*smplLoopSize:]
		if binary.LittleEndian.Uint32(rec[4:8]) != loopForward {
			continue
		}

		loops = append(loops, sampleLoop{
			start:     binary.LittleEndian.Uint32(rec[8:12]),
			end:       binary.LittleEndian.Uint32(rec[12:16]),
			playCount: binary.LittleEndian.Uint32(rec[20:24]),
		})
	}

	return loops
}

// scaleLoops converts frame loops to byte loops relative to the region.
func scaleLoops(loops []sampleLoop, frameSize int) []container.LoopPoint {
	if len(loops) == 0 {
		return nil
	}

	out := make([]container.LoopPoint, len(loops))
	for i, l := range loops {
		out[i] = container.LoopPoint{
			Start:     int64(l.start) * int64(frameSize),
			Stop:      (int64(l.end) + 1) * int64(frameSize),
			Initial:   int(int32(l.playCount)),
			Remaining: int(int32(l.playCount)),
			Active:    true,
		}
	}

	return out
}
