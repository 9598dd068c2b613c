// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"math"

	goaudio "github.com/go-audio/audio"
)

// DefaultChunkFrames is the number of frames StreamSource requests per chunk.
const DefaultChunkFrames = 4096

// maxEmptyChunks bounds consecutive empty chunks before a stream counts as stalled.
const maxEmptyChunks = 10

// StreamSource adapts a Stream to the float32 Source interface. It pulls
// chunks, converts them from the stream's sample format, applies the
// stream volume and keeps partial samples queued between calls.
type StreamSource struct {
	stream Stream
	spec   Spec
	bps    int
	budget int

	queue   []byte
	pending []byte

	done  bool
	empty int
}

// NewStreamSource wraps stream. frames <= 0 selects DefaultChunkFrames.
// The stream must already be playing.
func NewStreamSource(stream Stream, frames int) (*StreamSource, error) {
	spec := stream.Spec()
	if spec.Format.BytesPerSample() == 0 || spec.Channels <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSampleFormat, spec.Format)
	}

	if frames <= 0 {
		frames = DefaultChunkFrames
	}

	budget := frames * spec.FrameSize()

	return &StreamSource{
		stream: stream,
		spec:   spec,
		bps:    spec.Format.BytesPerSample(),
		budget: budget,
		queue:  make([]byte, 0, budget+spec.FrameSize()),
	}, nil
}

func (s *StreamSource) SampleRate() int { return s.spec.SampleRate }
func (s *StreamSource) Channels() int   { return s.spec.Channels }
func (s *StreamSource) BufSize() int    { return s.budget / s.bps }
func (s *StreamSource) Close() error {
	err := s.stream.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

func (s *StreamSource) fill() error {
	for !s.done {
		chunk, done, err := s.stream.GetChunk(s.budget)
		if err != nil {
			return fmt.Errorf("%w", err)
		}

		s.done = done

		if len(chunk) == 0 {
			if done {
				return nil
			}

			s.empty++
			if s.empty >= maxEmptyChunks {
				return ErrStreamStalled
			}

			continue
		}

		s.empty = 0
		// chunk aliases the stream's scratch buffer and must be copied out.
		s.queue = append(append(s.queue[:0], s.pending...), chunk...)
		s.pending = s.queue

		return nil
	}

	return nil
}

// ReadSamples fills dst with volume-scaled samples.
func (s *StreamSource) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	n := 0
	for n < len(dst) {
		if len(s.pending) < s.bps {
			if s.done {
				break
			}

			if err := s.fill(); err != nil {
				s.scale(dst[:n])
				return n, err
			}

			continue
		}

		k := min(len(s.pending)/s.bps, len(dst)-n)
		for i := range k {
			dst[n+i] = decodeSample(s.spec.Format, s.pending[i*s.bps:])
		}

		s.pending = s.pending[k*s.bps:]
		n += k
	}

	s.scale(dst[:n])

	if s.done && len(s.pending) < s.bps {
		return n, io.EOF
	}

	return n, nil
}

// ReadBuffer fills buf.Data and stamps the buffer with the stream format.
func (s *StreamSource) ReadBuffer(buf *goaudio.Float32Buffer) (int, error) {
	buf.Format = s.spec.AudioFormat()
	buf.SourceBitDepth = s.bps * 8

	return s.ReadSamples(buf.Data)
}

func (s *StreamSource) scale(dst []float32) {
	vol := s.stream.Volume()
	if vol >= MaxVolume {
		return
	}

	gain := float32(vol) / MaxVolume
	for i := range dst {
		dst[i] *= gain
	}
}

func decodeSample(f SampleFormat, b []byte) float32 {
	switch f {
	case U8:
		return float32(int(b[0])-128) / 128.0
	case S8:
		return float32(int8(b[0])) / 128.0
	case S16LSB, S16MSB:
		return float32(int16(f.ByteOrder().Uint16(b))) / 32768.0
	case S32LSB, S32MSB:
		return float32(float64(int32(f.ByteOrder().Uint32(b))) / 2147483648.0)
	case F32LSB, F32MSB:
		return math.Float32frombits(f.ByteOrder().Uint32(b))
	default:
		return 0
	}
}
