// SPDX-License-Identifier: EPL-2.0

package music

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/go-audio/riff"
	"github.com/ik5/pcmstream/audio"
	"github.com/ik5/pcmstream/codec"
	"github.com/ik5/pcmstream/container"
	"github.com/ik5/pcmstream/formats/aiff"
	"github.com/ik5/pcmstream/formats/wav"
	"github.com/ik5/pcmstream/metadata"
)

var (
	formID = [4]byte{'F', 'O', 'R', 'M'}
)

// Music plays the sample region of a parsed WAVE or AIFF file, honouring
// its loop points and an overall repeat count.
//
// Music is not safe for concurrent use.
type Music struct {
	src   io.ReadSeeker
	owned bool

	desc   container.Descriptor
	region container.Region
	loops  []container.LoopPoint
	tags   metadata.Tags
	engine codec.Engine

	buf    []byte
	volume int

	// pos is the absolute source offset of the next byte to decode.
	pos     int64
	repeat  audio.Repeat
	playing bool
	closed  bool
}

var _ audio.Stream = (*Music)(nil)

// Options configures Open.
type Options struct {
	// ID3 reads embedded ID3 chunks. Nil selects metadata.DefaultID3Reader.
	ID3 metadata.ID3Reader
}

// Open reads the container magic from rs and parses a WAVE or AIFF header.
// When owned is true, Close also closes rs if it is an io.Closer. On error
// rs is left open for the caller.
func Open(rs io.ReadSeeker, owned bool) (*Music, error) {
	return Options{}.Open(rs, owned)
}

// Open is like the package level Open with the given options.
func (o Options) Open(rs io.ReadSeeker, owned bool) (*Music, error) {
	var magic [4]byte
	if _, err := io.ReadFull(rs, magic[:]); err != nil {
		return nil, fmt.Errorf("%w: %w", container.ErrIO, err)
	}

	var (
		c   *container.Container
		err error
	)

	switch magic {
	case riff.RiffID, riff.WavFormatID:
		c, err = wav.Decoder{ID3: o.ID3}.Parse(rs)
	case formID:
		c, err = aiff.Decoder{ID3: o.ID3}.Parse(rs)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMagic, magic[:])
	}

	if err != nil {
		return nil, err
	}

	return New(c, rs, owned)
}

// Opener adapts Open to an audio.Registry.
var Opener = audio.OpenerFunc(func(rs io.ReadSeeker, owned bool) (audio.Stream, error) {
	m, err := Open(rs, owned)
	if err != nil {
		return nil, err
	}

	return m, nil
})

// New builds a Music over an already parsed container. The loop points are
// copied; c is not retained.
func New(c *container.Container, rs io.ReadSeeker, owned bool) (*Music, error) {
	if c.Descriptor.FrameSize <= 0 || c.Descriptor.BufferSize <= 0 {
		return nil, fmt.Errorf("%w: frame size %d", container.ErrMalformedContainer, c.Descriptor.FrameSize)
	}

	m := &Music{
		src:    rs,
		owned:  owned,
		desc:   c.Descriptor,
		region: c.Region,
		loops:  append([]container.LoopPoint(nil), c.Loops...),
		tags:   c.Tags,
		engine: c.Descriptor.Engine(),
		volume: audio.MaxVolume,
		pos:    c.Region.Start,
	}

	m.buf = make([]byte, m.desc.BufferSize)

	return m, nil
}

func (m *Music) Spec() audio.Spec { return m.desc.Spec() }

func (m *Music) SetVolume(volume int) { m.volume = audio.ClampVolume(volume) }

func (m *Music) Volume() int { return m.volume }

// Descriptor returns the decoded stream layout.
func (m *Music) Descriptor() container.Descriptor { return m.desc }

// Region returns the absolute byte range of the samples.
func (m *Music) Region() container.Region { return m.region }

// Loops returns a copy of the loop points with their current counters.
func (m *Music) Loops() []container.LoopPoint {
	return append([]container.LoopPoint(nil), m.loops...)
}

func (m *Music) Tag(kind metadata.Kind) (string, bool) { return m.tags.Get(kind) }

// Play rearms every loop, sets the repeat count and seeks to the start of
// the region. repeat <= 0 plays forever.
func (m *Music) Play(repeat int) error {
	if m.closed {
		return ErrClosed
	}

	if err := m.seek(m.region.Start); err != nil {
		return err
	}

	m.rearm()
	m.repeat = audio.NewRepeat(repeat)
	m.playing = true

	return nil
}

// GetChunk decodes at most budget output bytes. It stops at the next loop
// or region boundary and handles that boundary before returning, so a
// call may return no bytes while playback continues. done is reported
// once every repeat has been played.
//
// The returned slice aliases an internal buffer that is overwritten by
// the next call.
func (m *Music) GetChunk(budget int) ([]byte, bool, error) {
	switch {
	case m.closed:
		return nil, false, ErrClosed
	case !m.playing:
		return nil, false, ErrNotPlaying
	case budget < m.desc.OutputFrameSize():
		return nil, false, fmt.Errorf("%w: %d bytes", ErrInvalidBudget, budget)
	}

	if m.repeat.Done() {
		return nil, true, nil
	}

	from := m.pos
	loop, stop := m.boundary()

	produced, consumed, err := m.engine.Fetch(m.src, m.buf, budget, stop-m.pos)
	if err != nil {
		return nil, false, m.rewind(from, err)
	}
	m.pos += int64(consumed)

	var (
		looped bool
		// last is a loop on its final pass; it is switched off only once
		// every seek of this call succeeded.
		last *container.LoopPoint
	)

	if loop != nil && m.pos >= stop {
		if loop.Remaining == 1 {
			last = loop
		} else {
			if err := m.seek(m.region.Start + loop.Start); err != nil {
				return nil, false, m.rewind(from, err)
			}
			if loop.Remaining > 0 {
				loop.Remaining--
			}
			looped = true
		}
	}

	if !looped && (produced <= 0 || m.pos >= m.region.Stop) {
		if m.repeat.Last() {
			m.repeat.Next()
		} else {
			if err := m.seek(m.region.Start); err != nil {
				return nil, false, m.rewind(from, err)
			}
			last = nil
			m.rearm()
			m.repeat.Next()
		}
	}

	if last != nil {
		last.Active = false
	}

	return m.buf[:max(produced, 0)], false, nil
}

// boundary returns the active loop holding the cursor, if any, and the
// offset the next read must stop at: the end of that loop, otherwise the
// start of the next active loop or the end of the region.
func (m *Music) boundary() (*container.LoopPoint, int64) {
	ceiling := m.region.Stop

	for i := range m.loops {
		l := &m.loops[i]
		if !l.Active {
			continue
		}

		start := m.region.Start + l.Start
		stop := min(m.region.Start+l.Stop, m.region.Stop)
		if m.pos >= start && m.pos < stop {
			return l, stop
		}

		if start > m.pos && start < ceiling {
			ceiling = start
		}
	}

	return nil, ceiling
}

func (m *Music) rearm() {
	for i := range m.loops {
		m.loops[i].Rearm()
	}
}

func (m *Music) seek(pos int64) error {
	if _, err := m.src.Seek(pos, io.SeekStart); err != nil {
		return fmt.Errorf("%w: %w", container.ErrIO, err)
	}
	m.pos = pos

	return nil
}

// rewind restores the cursor after a failed call and returns err as an
// I/O error.
func (m *Music) rewind(from int64, err error) error {
	if _, serr := m.src.Seek(from, io.SeekStart); serr == nil {
		m.pos = from
	}

	if errors.Is(err, container.ErrIO) {
		return err
	}

	return fmt.Errorf("%w: %w", container.ErrIO, err)
}

// Seek moves playback to seconds from the start of the region, rounded
// down to a whole frame. Loop and repeat counters are left alone.
func (m *Music) Seek(seconds float64) error {
	if m.closed {
		return ErrClosed
	}

	if !(seconds >= 0) || math.IsInf(seconds, 1) {
		return fmt.Errorf("%w: %.3fs", ErrSeekOutOfRange, seconds)
	}

	frames := math.Floor(seconds * float64(m.desc.Frequency))
	if frames > float64(m.region.Len()/int64(m.desc.FrameSize)) {
		return fmt.Errorf("%w: %.3fs", ErrSeekOutOfRange, seconds)
	}

	target := m.region.Start + int64(frames)*int64(m.desc.FrameSize)

	return m.seek(target)
}

func (m *Music) Tell() float64 { return m.seconds(m.pos - m.region.Start) }

func (m *Music) Length() float64 { return m.seconds(m.region.Len()) }

func (m *Music) seconds(n int64) float64 {
	rate := float64(m.desc.Frequency) * float64(m.desc.FrameSize)
	if rate <= 0 {
		return 0
	}

	return float64(n) / rate
}

// Close releases the buffer, loops and tags, and closes the source when
// it is owned. Close is idempotent.
func (m *Music) Close() error {
	if m.closed {
		return nil
	}

	m.closed = true
	m.playing = false
	m.buf = nil
	m.loops = nil
	m.tags.Reset()

	if !m.owned {
		return nil
	}

	if c, ok := m.src.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	return nil
}
