// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/dhowden/tag"
	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/pcmstream/audio"
	"github.com/ik5/pcmstream/container"
	"github.com/ik5/pcmstream/metadata"
)

// go-mp3 always produces 16-bit little-endian stereo.
const (
	channels  = 2
	frameSize = 4
)

const defaultBufSize = 4096 * frameSize

// mp3Reader is the part of gomp3.Decoder the stream uses.
type mp3Reader interface {
	io.ReadSeeker
	SampleRate() int
	Length() int64
}

// Stream plays an MP3 file through go-mp3. It implements audio.Stream.
type Stream struct {
	dec   mp3Reader
	src   io.ReadSeeker
	owned bool
	tags  metadata.Tags

	buf    []byte
	volume int

	// pos is the PCM byte offset of the next read.
	pos     int64
	repeat  audio.Repeat
	playing bool
	closed  bool
}

var _ audio.Stream = (*Stream)(nil)

// Open reads ID3 tags from rs and starts an MP3 decoder at its first
// frame. When owned is true, Close also closes rs if it is an io.Closer.
func Open(rs io.ReadSeeker, owned bool) (*Stream, error) {
	var tags metadata.Tags
	readTags(rs, &tags)

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: %w", container.ErrIO, err)
	}

	dec, err := gomp3.NewDecoder(rs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", container.ErrMalformedContainer, err)
	}

	return newStream(dec, rs, owned, tags), nil
}

// Opener adapts Open to an audio.Registry.
var Opener = audio.OpenerFunc(func(rs io.ReadSeeker, owned bool) (audio.Stream, error) {
	s, err := Open(rs, owned)
	if err != nil {
		return nil, err
	}

	return s, nil
})

func newStream(dec mp3Reader, src io.ReadSeeker, owned bool, tags metadata.Tags) *Stream {
	return &Stream{
		dec:    dec,
		src:    src,
		owned:  owned,
		tags:   tags,
		buf:    make([]byte, defaultBufSize),
		volume: audio.MaxVolume,
	}
}

// readTags fills tags from a leading ID3v2 tag, falling back to a
// trailing ID3v1 tag. Missing or broken tags are ignored.
func readTags(rs io.ReadSeeker, tags *metadata.Tags) {
	var head [3]byte
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return
	}

	if _, err := io.ReadFull(rs, head[:]); err == nil && metadata.IsID3v2(head[:]) {
		if _, err := rs.Seek(0, io.SeekStart); err == nil {
			if err := metadata.DefaultID3Reader.ReadID3(rs, tags); err == nil {
				return
			}
		}
	}

	m, err := tag.ReadID3v1Tags(rs)
	if err != nil {
		return
	}

	for kind, v := range map[metadata.Kind]string{
		metadata.Title:  m.Title(),
		metadata.Artist: m.Artist(),
		metadata.Album:  m.Album(),
	} {
		if v = string(bytes.TrimRight([]byte(v), " \x00")); v != "" {
			tags.Set(kind, v)
		}
	}
}

func (s *Stream) Spec() audio.Spec {
	return audio.Spec{Format: audio.S16LSB, Channels: channels, SampleRate: s.dec.SampleRate()}
}

func (s *Stream) SetVolume(volume int) { s.volume = audio.ClampVolume(volume) }
func (s *Stream) Volume() int          { return s.volume }

func (s *Stream) Tag(kind metadata.Kind) (string, bool) { return s.tags.Get(kind) }

// Play rewinds to the first frame. repeat <= 0 plays forever.
func (s *Stream) Play(repeat int) error {
	if s.closed {
		return audio.ErrClosed
	}

	if err := s.seek(0); err != nil {
		return err
	}

	s.repeat = audio.NewRepeat(repeat)
	s.playing = true

	return nil
}

// GetChunk decodes up to budget bytes of PCM. The end of the file
// finishes a pass; the call that hits it may return no bytes.
func (s *Stream) GetChunk(budget int) ([]byte, bool, error) {
	switch {
	case s.closed:
		return nil, false, audio.ErrClosed
	case !s.playing:
		return nil, false, audio.ErrNotPlaying
	case budget < frameSize:
		return nil, false, fmt.Errorf("%w: %d bytes", audio.ErrInvalidBudget, budget)
	}

	if s.repeat.Done() {
		return nil, true, nil
	}

	want := min(budget, len(s.buf))
	want -= want % frameSize

	n, err := io.ReadFull(s.dec, s.buf[:want])
	atEnd := errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
	if err != nil && !atEnd {
		if serr := s.seek(s.pos); serr != nil {
			return nil, false, serr
		}

		return nil, false, fmt.Errorf("%w: %w", container.ErrIO, err)
	}

	n -= n % frameSize
	s.pos += int64(n)

	if atEnd {
		if s.repeat.Last() {
			s.repeat.Next()
		} else {
			if err := s.seek(0); err != nil {
				return nil, false, err
			}
			s.repeat.Next()
		}
	}

	return s.buf[:n], false, nil
}

func (s *Stream) seek(pos int64) error {
	if _, err := s.dec.Seek(pos, io.SeekStart); err != nil {
		return fmt.Errorf("%w: %w", container.ErrIO, err)
	}
	s.pos = pos

	return nil
}

// Seek moves to seconds from the start, rounded down to a whole frame.
func (s *Stream) Seek(seconds float64) error {
	if s.closed {
		return audio.ErrClosed
	}

	if !(seconds >= 0) || math.IsInf(seconds, 1) {
		return fmt.Errorf("%w: %.3fs", audio.ErrSeekOutOfRange, seconds)
	}

	limit := int64(math.MaxInt64 / frameSize)
	if length := s.dec.Length(); length >= 0 {
		limit = length / frameSize
	}

	frames := math.Floor(seconds * float64(s.dec.SampleRate()))
	if frames > float64(limit) {
		return fmt.Errorf("%w: %.3fs", audio.ErrSeekOutOfRange, seconds)
	}

	return s.seek(int64(frames) * frameSize)
}

func (s *Stream) Tell() float64 { return s.seconds(s.pos) }

// Length is zero when the source cannot report its size.
func (s *Stream) Length() float64 { return s.seconds(max(s.dec.Length(), 0)) }

func (s *Stream) seconds(n int64) float64 {
	rate := float64(s.dec.SampleRate()) * frameSize
	if rate <= 0 {
		return 0
	}

	return float64(n) / rate
}

// Close releases the buffer and tags, and closes the source when owned.
func (s *Stream) Close() error {
	if s.closed {
		return nil
	}

	s.closed = true
	s.playing = false
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
