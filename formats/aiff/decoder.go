// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ik5/pcmstream/audio"
	"github.com/ik5/pcmstream/codec"
	"github.com/ik5/pcmstream/container"
	"github.com/ik5/pcmstream/metadata"
)

var (
	aiffID = [4]byte{'A', 'I', 'F', 'F'}
	aifcID = [4]byte{'A', 'I', 'F', 'C'}
	commID = [4]byte{'C', 'O', 'M', 'M'}
	ssndID = [4]byte{'S', 'S', 'N', 'D'}
	fverID = [4]byte{'F', 'V', 'E', 'R'}
	nameID = [4]byte{'N', 'A', 'M', 'E'}
	authID = [4]byte{'A', 'U', 'T', 'H'}
	copyID = [4]byte{'(', 'c', ')', ' '}
	id3ID  = [4]byte{'I', 'D', '3', ' '}
)

const (
	commSize     = 18
	commSizeAIFC = 22
	ssndHeader   = 8
)

// Compression types of AIFC files. Plain AIFF files use compressionAIFF.
const (
	compressionAIFF = ""
	compressionNone = "NONE"
	compressionRaw  = "raw "
	compressionSowt = "sowt"
	compressionULaw = "ulaw"
	compressionALaw = "alaw"
	compressionFl32 = "fl32"
)

type formatEntry struct {
	encoding container.Encoding
	format   audio.SampleFormat
	strategy codec.Strategy
}

type formatKey struct {
	bits        int
	compression string
}

var formats = map[formatKey]formatEntry{
	{8, compressionAIFF}: {container.EncodingPCM, audio.S8, codec.Copy},
	{8, compressionNone}: {container.EncodingPCM, audio.S8, codec.Copy},
	{8, compressionRaw}:  {container.EncodingPCM, audio.U8, codec.Copy},
	{8, compressionSowt}: {container.EncodingPCM, audio.S8, codec.Copy},
	{8, compressionULaw}: {container.EncodingMuLaw, audio.S16LSB, codec.MuLaw},
	{8, compressionALaw}: {container.EncodingALaw, audio.S16LSB, codec.ALaw},

	{16, compressionAIFF}: {container.EncodingPCM, audio.S16MSB, codec.Copy},
	{16, compressionNone}: {container.EncodingPCM, audio.S16MSB, codec.Copy},
	{16, compressionSowt}: {container.EncodingPCM, audio.S16LSB, codec.Copy},

	{24, compressionAIFF}: {container.EncodingPCM, audio.S32MSB, codec.Expand24},
	{24, compressionNone}: {container.EncodingPCM, audio.S32MSB, codec.Expand24},
	{24, compressionSowt}: {container.EncodingPCM, audio.S32LSB, codec.Expand24},

	{32, compressionAIFF}: {container.EncodingPCM, audio.S32MSB, codec.Copy},
	{32, compressionNone}: {container.EncodingPCM, audio.S32MSB, codec.Copy},
	{32, compressionSowt}: {container.EncodingPCM, audio.S32LSB, codec.Copy},
	{32, compressionFl32}: {container.EncodingFloat, audio.F32MSB, codec.Copy},
}

var compressions = map[string]bool{
	compressionNone: true,
	compressionRaw:  true,
	compressionSowt: true,
	compressionULaw: true,
	compressionALaw: true,
	compressionFl32: true,
}

var textChunks = map[[4]byte]metadata.Kind{
	nameID: metadata.Title,
	authID: metadata.Artist,
	copyID: metadata.Copyright,
}

// comm holds the fields of a COMM chunk.
type comm struct {
	channels    int
	frames      uint32
	bits        int
	rate        int
	compression string
}

// Decoder parses FORM/AIFF and FORM/AIFC headers.
type Decoder struct {
	// ID3 reads embedded "ID3 " chunks. Nil selects metadata.DefaultID3Reader.
	ID3 metadata.ID3Reader
}

// Parse reads an AIFF header with the default ID3 reader.
func Parse(rs io.ReadSeeker) (*container.Container, error) {
	return Decoder{}.Parse(rs)
}

// Parse reads the header of an AIFF or AIFC file from rs, which must be
// positioned just after the 4-byte "FORM" magic.
//
// The chunk walk stops as soon as SSND and COMM (and FVER for AIFC) have
// been seen, so chunks after them are never read.
func (d Decoder) Parse(rs io.ReadSeeker) (*container.Container, error) {
	var hdr [8]byte
	if _, err := io.ReadFull(rs, hdr[:]); err != nil {
		return nil, fmt.Errorf("%w: %w", container.ErrIO, err)
	}

	form := [4]byte(hdr[4:8])
	if form != aiffID && form != aifcID {
		return nil, ErrNotAiffFile
	}
	isAIFC := form == aifcID

	c := &container.Container{}

	var (
		foundSSND, foundCOMM, foundFVER bool
		info                            comm
	)

	for {
		var chunk [8]byte
		if _, err := io.ReadFull(rs, chunk[:]); err != nil {
			break
		}

		id := [4]byte(chunk[0:4])
		size := binary.BigEndian.Uint32(chunk[4:8])
		if size == 0 {
			break
		}

		pos, err := container.Tell(rs)
		if err != nil {
			return nil, err
		}
		next := pos + int64(size)

		switch id {
		case ssndID:
			var raw [ssndHeader]byte
			if _, err := io.ReadFull(rs, raw[:]); err != nil {
				return nil, fmt.Errorf("%w: %w", container.ErrIO, err)
			}
			offset := binary.BigEndian.Uint32(raw[0:4])
			c.Region.Start = pos + ssndHeader + int64(offset)
			foundSSND = true

		case fverID:
			foundFVER = true

		case commID:
			info, err = parseComm(rs, size, isAIFC)
			if err != nil {
				return nil, err
			}
			foundCOMM = true

		case nameID, authID, copyID:
			payload, err := container.ReadPayload(rs, size)
			if err != nil {
				return nil, err
			}
			c.Tags.Set(textChunks[id], cutNUL(payload))

		case id3ID:
			payload, err := container.ReadPayload(rs, size)
			if err != nil {
				return nil, err
			}
			_ = metadata.ParseID3(payload, &c.Tags, d.ID3)
		}

		if foundSSND && foundCOMM && (!isAIFC || foundFVER) {
			break
		}

		if _, err := rs.Seek(next, io.SeekStart); err != nil {
			break
		}
	}

	if !foundSSND {
		return nil, ErrNoSsndChunk
	}

	if !foundCOMM {
		return nil, ErrNoCommChunk
	}

	entry, ok := formats[formatKey{info.bits, info.compression}]
	if !ok {
		if info.compression != compressionAIFF && !compressions[info.compression] {
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedCompression, info.compression)
		}
		return nil, fmt.Errorf("%w: %d bits", ErrUnsupportedBitDepth, info.bits)
	}

	desc, err := container.NewDescriptor(entry.encoding, info.channels, info.rate, info.bits, entry.format, entry.strategy)
	if err != nil {
		return nil, err
	}

	c.Descriptor = desc
	c.Region.Stop = c.Region.Start + int64(info.channels)*int64(info.frames)*int64(info.bits/8)

	return c, nil
}

func parseComm(rs io.Reader, size uint32, isAIFC bool) (comm, error) {
	need := commSize
	if isAIFC {
		need = commSizeAIFC
	}

	if int(size) < need {
		return comm{}, fmt.Errorf("%w: %d bytes", ErrCommChunkTooSmall, size)
	}

	raw := make([]byte, need)
	if _, err := io.ReadFull(rs, raw); err != nil {
		return comm{}, fmt.Errorf("%w: %w", container.ErrIO, err)
	}

	info := comm{
		channels: int(binary.BigEndian.Uint16(raw[0:2])),
		frames:   binary.BigEndian.Uint32(raw[2:6]),
		bits:     int(binary.BigEndian.Uint16(raw[6:8])),
		rate:     saneToRate([10]byte(raw[8:18])),
	}

	if isAIFC {
		info.compression = string(raw[18:22])
	}

	return info, nil
}

func cutNUL(p []byte) string {
	if i := bytes.IndexByte(p, 0); i >= 0 {
		p = p[:i]
	}

	return string(p)
}
