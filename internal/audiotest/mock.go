// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"io"
	"math"

	"github.com/ik5/pcmstream/audio"
	"github.com/ik5/pcmstream/metadata"
)

// MockSource generates frames from a waveform function. It implements
// audio.Source.
type MockSource struct {
	sampleRate int
	channels   int
	frames     int
	pos        int
	waveform   func(frame, channel int) float32
}

// NewMockSource creates a source of frames frames.
func NewMockSource(sampleRate, channels, frames int, waveform func(frame, channel int) float32) *MockSource {
	return &MockSource{
		sampleRate: sampleRate,
		channels:   channels,
		frames:     frames,
		waveform:   waveform,
	}
}

// NewConstantSource creates a source where every sample is value.
func NewConstantSource(sampleRate, channels, frames int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(int, int) float32 { return value })
}

// NewSineSource creates a source of a sine wave at frequency Hz.
func NewSineSource(sampleRate, channels, frames int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(frame, _ int) float32 {
		return float32(math.Sin(2 * math.Pi * frequency * float64(frame) / float64(sampleRate)))
	})
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }
func (m *MockSource) Close() error    { return nil }

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.pos >= m.frames {
		return 0, io.EOF
	}

	n := min(len(dst)/m.channels, m.frames-m.pos)
	for f := range n {
		for c := range m.channels {
			dst[f*m.channels+c] = m.waveform(m.pos+f, c)
		}
	}

	m.pos += n
	if m.pos >= m.frames {
		return n * m.channels, io.EOF
	}

	return n * m.channels, nil
}

// MockStream replays scripted chunks. It implements audio.Stream. Once
// the chunks are used up it reports done, unless Endless is set, in which
// case it keeps returning empty chunks.
type MockStream struct {
	StreamSpec audio.Spec
	Chunks     [][]byte
	Endless    bool
	Err        error
	Tags       metadata.Tags

	next    int
	volume  int
	Repeat  int
	Playing bool
	Closed  bool
}

func NewMockStream(spec audio.Spec, chunks ...[]byte) *MockStream {
	return &MockStream{StreamSpec: spec, Chunks: chunks, volume: audio.MaxVolume}
}

func (m *MockStream) Spec() audio.Spec     { return m.StreamSpec }
func (m *MockStream) SetVolume(volume int) { m.volume = audio.ClampVolume(volume) }
func (m *MockStream) Volume() int          { return m.volume }
func (m *MockStream) Seek(float64) error   { return nil }
func (m *MockStream) Tell() float64        { return 0 }
func (m *MockStream) Length() float64      { return 0 }

func (m *MockStream) Tag(kind metadata.Kind) (string, bool) { return m.Tags.Get(kind) }

func (m *MockStream) Play(repeat int) error {
	m.Repeat = repeat
	m.Playing = true
	m.next = 0

	return nil
}

func (m *MockStream) GetChunk(budget int) ([]byte, bool, error) {
	if m.Err != nil {
		return nil, false, m.Err
	}

	if m.next >= len(m.Chunks) {
		return nil, !m.Endless, nil
	}

	c := m.Chunks[m.next]
	m.next++

	return c[:min(len(c), budget)], false, nil
}

func (m *MockStream) Close() error {
	m.Closed = true

	return nil
}
