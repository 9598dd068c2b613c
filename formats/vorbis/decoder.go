// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/ik5/pcmstream/audio"
	"github.com/ik5/pcmstream/container"
	"github.com/ik5/pcmstream/metadata"
	"github.com/jfreymuth/oggvorbis"
	"github.com/jfreymuth/vorbis"
)

const (
	sampleSize     = 4
	defaultSamples = 4096
)

// commentKinds maps Vorbis comment field names to tag kinds.
var commentKinds = map[string]metadata.Kind{
	"TITLE":     metadata.Title,
	"ARTIST":    metadata.Artist,
	"ALBUM":     metadata.Album,
	"COPYRIGHT": metadata.Copyright,
}

// oggReader is the part of oggvorbis.Reader the stream uses.
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
	Position() int64
	Length() int64
	SetPosition(pos int64) error
	CommentHeader() vorbis.CommentHeader
}

// Stream plays an Ogg Vorbis file as little-endian float32 PCM. It
// implements audio.Stream.
type Stream struct {
	dec   oggReader
	src   io.Reader
	owned bool
	tags  metadata.Tags

	samples []float32
	buf     []byte
	volume  int

	repeat  audio.Repeat
	playing bool
	closed  bool
}

var _ audio.Stream = (*Stream)(nil)

// Open starts a Vorbis decoder on rs. When owned is true, Close also
// closes rs if it is an io.Closer.
func Open(rs io.ReadSeeker, owned bool) (*Stream, error) {
	dec, err := oggvorbis.NewReader(rs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", container.ErrMalformedContainer, err)
	}

	return newStream(dec, rs, owned), nil
}

// Opener adapts Open to an audio.Registry.
var Opener = audio.OpenerFunc(func(rs io.ReadSeeker, owned bool) (audio.Stream, error) {
	s, err := Open(rs, owned)
	if err != nil {
		return nil, err
	}

	return s, nil
})

func newStream(dec oggReader, src io.Reader, owned bool) *Stream {
	s := &Stream{
		dec:     dec,
		src:     src,
		owned:   owned,
		samples: make([]float32, defaultSamples),
		buf:     make([]byte, defaultSamples*sampleSize),
		volume:  audio.MaxVolume,
	}

	readComments(dec.CommentHeader(), &s.tags)

	return s
}

// readComments copies the known "FIELD=value" comments into tags. Field
// names are matched case-insensitively; the last occurrence wins.
func readComments(h vorbis.CommentHeader, tags *metadata.Tags) {
	for _, c := range h.Comments {
		field, value, ok := strings.Cut(c, "=")
		if !ok || value == "" {
			continue
		}

		if kind, ok := commentKinds[strings.ToUpper(field)]; ok {
			tags.Set(kind, value)
		}
	}
}

func (s *Stream) Spec() audio.Spec {
	return audio.Spec{Format: audio.F32LSB, Channels: s.dec.Channels(), SampleRate: s.dec.SampleRate()}
}

func (s *Stream) SetVolume(volume int) { s.volume = audio.ClampVolume(volume) }
func (s *Stream) Volume() int          { return s.volume }

func (s *Stream) Tag(kind metadata.Kind) (string, bool) { return s.tags.Get(kind) }

func (s *Stream) frameSize() int { return s.dec.Channels() * sampleSize }

// Play rewinds to the first sample. repeat <= 0 plays forever.
func (s *Stream) Play(repeat int) error {
	if s.closed {
		return audio.ErrClosed
	}

	if err := s.setPosition(0); err != nil {
		return err
	}

	s.repeat = audio.NewRepeat(repeat)
	s.playing = true

	return nil
}

// GetChunk decodes up to budget bytes of float32 PCM. The end of the
// stream finishes a pass; the call that hits it may return no bytes.
func (s *Stream) GetChunk(budget int) ([]byte, bool, error) {
	switch {
	case s.closed:
		return nil, false, audio.ErrClosed
	case !s.playing:
		return nil, false, audio.ErrNotPlaying
	case budget < s.frameSize():
		return nil, false, fmt.Errorf("%w: %d bytes", audio.ErrInvalidBudget, budget)
	}

	if s.repeat.Done() {
		return nil, true, nil
	}

	want := min(budget, len(s.buf)) / s.frameSize() * s.dec.Channels()

	n, err := s.dec.Read(s.samples[:want])
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, false, fmt.Errorf("%w: %w", container.ErrIO, err)
	}

	for i, v := range s.samples[:n] {
		binary.LittleEndian.PutUint32(s.buf[i*sampleSize:], math.Float32bits(v))
	}

	if n == 0 {
		if s.repeat.Last() {
			s.repeat.Next()
		} else {
			if err := s.setPosition(0); err != nil {
				return nil, false, err
			}
			s.repeat.Next()
		}
	}

	return s.buf[:n*sampleSize], false, nil
}

func (s *Stream) setPosition(frame int64) error {
	if err := s.dec.SetPosition(frame); err != nil {
		return fmt.Errorf("%w: %w", container.ErrIO, err)
	}

	return nil
}

// Seek moves to seconds from the start, rounded down to a whole frame.
// Targets past the end are rejected when the length is known.
func (s *Stream) Seek(seconds float64) error {
	if s.closed {
		return audio.ErrClosed
	}

	if !(seconds >= 0) || math.IsInf(seconds, 1) {
		return fmt.Errorf("%w: %.3fs", audio.ErrSeekOutOfRange, seconds)
	}

	limit := int64(math.MaxInt64)
	if length := s.dec.Length(); length > 0 {
		limit = length
	}

	frames := math.Floor(seconds * float64(s.dec.SampleRate()))
	if frames >= float64(math.MaxInt64) || frames > float64(limit) {
		return fmt.Errorf("%w: %.3fs", audio.ErrSeekOutOfRange, seconds)
	}

	return s.setPosition(int64(frames))
}

func (s *Stream) Tell() float64 { return s.seconds(s.dec.Position()) }

// Length is zero when the source cannot report its size.
func (s *Stream) Length() float64 { return s.seconds(s.dec.Length()) }

func (s *Stream) seconds(frames int64) float64 {
	rate := s.dec.SampleRate()
	if rate <= 0 {
		return 0
	}

	return float64(frames) / float64(rate)
}

// Close releases the buffers and tags, and closes the source when owned.
func (s *Stream) Close() error {
	if s.closed {
		return nil
	}

	s.closed = true
	s.playing = false
	s.samples = nil
	s.buf = nil
	s.tags.Reset()

	if !s.owned {
		return nil
	}

	if c, ok := s.src.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	return nil
}
