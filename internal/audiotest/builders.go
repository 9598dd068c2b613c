// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	"encoding/binary"

	goaudio "github.com/go-audio/audio"
)

// ChunkFile assembles a RIFF or FORM container byte by byte. Chunks are
// written exactly as given, without pad bytes, so tests control every
// byte the parser sees.
type ChunkFile struct {
	magic  string
	form   string
	order  binary.ByteOrder
	chunks bytes.Buffer
	size   *uint32
}

// NewRIFF starts a little-endian "RIFF"/"WAVE" file.
func NewRIFF() *ChunkFile {
	return &ChunkFile{magic: "RIFF", form: "WAVE", order: binary.LittleEndian}
}

// NewFORM starts a big-endian "FORM" file of the given form type,
// normally "AIFF" or "AIFC".
func NewFORM(form string) *ChunkFile {
	return &ChunkFile{magic: "FORM", form: form, order: binary.BigEndian}
}

// Chunk appends a chunk whose declared length matches its payload.
func (f *ChunkFile) Chunk(id string, payload []byte) *ChunkFile {
	return f.ChunkWithSize(id, uint32(len(payload)), payload)
}

// ChunkWithSize appends a chunk header declaring size followed by payload.
func (f *ChunkFile) ChunkWithSize(id string, size uint32, payload []byte) *ChunkFile {
	f.chunks.WriteString(id)
	_ = binary.Write(&f.chunks, f.order, size)
	f.chunks.Write(payload)

	return f
}

// Raw appends bytes outside of any chunk.
func (f *ChunkFile) Raw(p []byte) *ChunkFile {
	f.chunks.Write(p)

	return f
}

// DeclaredSize overrides the container size field.
func (f *ChunkFile) DeclaredSize(size uint32) *ChunkFile {
	f.size = &size

	return f
}

// Bytes returns the whole file.
func (f *ChunkFile) Bytes() []byte {
	var out bytes.Buffer

	size := uint32(4 + f.chunks.Len())
	if f.size != nil {
		size = *f.size
	}

	out.WriteString(f.magic)
	_ = binary.Write(&out, f.order, size)
	out.WriteString(f.form)
	out.Write(f.chunks.Bytes())

	return out.Bytes()
}

// Reader returns the file behind a fresh bytes.Reader.
func (f *ChunkFile) Reader() *bytes.Reader {
	return bytes.NewReader(f.Bytes())
}

// FmtPayload builds a 16-byte WAVE fmt chunk payload.
func FmtPayload(encoding, channels, rate, bits int) []byte {
	p := make([]byte, 16)
	blockAlign := channels * bits / 8

	binary.LittleEndian.PutUint16(p[0:], uint16(encoding))
	binary.LittleEndian.PutUint16(p[2:], uint16(channels))
	binary.LittleEndian.PutUint32(p[4:], uint32(rate))
	binary.LittleEndian.PutUint32(p[8:], uint32(rate*blockAlign))
	binary.LittleEndian.PutUint16(p[12:], uint16(blockAlign))
	binary.LittleEndian.PutUint16(p[14:], uint16(bits))

	return p
}

// SmplLoop is one sampler loop record. End is the last frame in the loop.
type SmplLoop struct {
	ID        uint32
	Type      uint32
	Start     uint32
	End       uint32
	Fraction  uint32
	PlayCount uint32
}

// SmplPayload builds a smpl chunk payload holding loops.
func SmplPayload(loops ...SmplLoop) []byte {
	var b bytes.Buffer

	header := [9]uint32{0, 0, 22675, 60, 0, 0, 0, uint32(len(loops)), 0}
	_ = binary.Write(&b, binary.LittleEndian, header)

	for _, l := range loops {
		_ = binary.Write(&b, binary.LittleEndian, l)
	}

	return b.Bytes()
}

// InfoField is one LIST/INFO sub-record.
type InfoField struct {
	ID    string
	Value string
}

// InfoPayload builds a LIST payload of type INFO. Each value is written
// with a trailing NUL and a length that counts it.
func InfoPayload(fields ...InfoField) []byte {
	var b bytes.Buffer

	b.WriteString("INFO")
	for _, f := range fields {
		b.WriteString(f.ID)
		_ = binary.Write(&b, binary.LittleEndian, uint32(len(f.Value)+1))
		b.WriteString(f.Value)
		b.WriteByte(0)
	}

	return b.Bytes()
}

// CommPayload builds an AIFF COMM payload. A non-empty compression tag
// produces the 22-byte AIFC layout.
func CommPayload(channels, frames, bits, rate int, compression string) []byte {
	var b bytes.Buffer

	_ = binary.Write(&b, binary.BigEndian, uint16(channels))
	_ = binary.Write(&b, binary.BigEndian, uint32(frames))
	_ = binary.Write(&b, binary.BigEndian, uint16(bits))

	ext := goaudio.IntToIEEEFloat(rate)
	b.Write(ext[:])

	if compression != "" {
		b.WriteString(compression)
	}

	return b.Bytes()
}

// SsndPayload builds an AIFF SSND payload with offset bytes of padding
// before data.
func SsndPayload(offset uint32, data []byte) []byte {
	var b bytes.Buffer

	_ = binary.Write(&b, binary.BigEndian, offset)
	_ = binary.Write(&b, binary.BigEndian, uint32(0))
	b.Write(make([]byte, offset))
	b.Write(data)

	return b.Bytes()
}

// Ramp returns n bytes counting up from 0 and wrapping at 256.
func Ramp(n int) []byte {
	p := make([]byte, n)
	for i := range p {
		p[i] = byte(i)
	}

	return p
}
