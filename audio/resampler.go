// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/pcmstream/utils"
)

const resamplerBatchFrames = 512

// Resampler streams from src to target sample rate using cubic interpolation.
// Works on interleaved samples; preserves channel count. A one-pole low-pass
// filter is applied to the input when downsampling.
type Resampler struct {
	src      Source
	dstRate  int
	step     float64 // source frames per output frame
	channels int

	// hist holds 4 frames, oldest first. Output is interpolated between
	// frame 1 and frame 2 at frac.
	hist   []float32
	tail   int // trailing frames in hist that repeat the last real frame
	frac   float64
	primed bool

	in           []float32
	inPos, inLen int
	eof          bool

	lowPass bool
	state   []float32
	seeded  bool
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	step := float64(src.SampleRate()) / float64(dstRate)

	return &Resampler{
		src:      src,
		dstRate:  dstRate,
		step:     step,
		channels: channels,
		hist:     make([]float32, 4*channels),
		in:       make([]float32, resamplerBatchFrames*channels),
		lowPass:  step > 1.0,
		state:    make([]float32, channels),
	}
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }
func (r *Resampler) Close() error {
	err := r.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

func (r *Resampler) frame(i int) []float32 {
	return r.hist[i*r.channels : (i+1)*r.channels]
}

// pull copies the next source frame into dst. It reports false once the
// source is exhausted.
func (r *Resampler) pull(dst []float32) (bool, error) {
	for r.inLen-r.inPos < r.channels {
		if r.eof {
			return false, nil
		}

		r.inLen = copy(r.in, r.in[r.inPos:r.inLen])
		r.inPos = 0

		n, err := r.src.ReadSamples(r.in[r.inLen:])
		r.inLen += n

		if err == io.EOF {
			r.eof = true
		} else if err != nil {
			return false, fmt.Errorf("%w", err)
		}
	}

	copy(dst, r.in[r.inPos:r.inPos+r.channels])
	r.inPos += r.channels

	if r.lowPass {
		if !r.seeded {
			copy(r.state, dst)
			r.seeded = true
		}

		for c := range dst {
			dst[c] = 0.5*dst[c] + 0.5*r.state[c]
			r.state[c] = dst[c]
		}
	}

	return true, nil
}

// advance shifts the history by one frame.
func (r *Resampler) advance() error {
	copy(r.hist, r.hist[r.channels:])

	last := r.frame(3)
	if r.tail == 0 {
		ok, err := r.pull(last)
		if err != nil {
			return err
		}

		if ok {
			return nil
		}
	}

	copy(last, r.frame(2))
	r.tail++

	return nil
}

func (r *Resampler) prime() (bool, error) {
	r.primed = true

	ok, err := r.pull(r.frame(1))
	if err != nil || !ok {
		return false, err
	}

	copy(r.frame(0), r.frame(1))

	for i := 2; i < 4; i++ {
		if r.tail == 0 {
			ok, err = r.pull(r.frame(i))
			if err != nil {
				return false, err
			}

			if ok {
				continue
			}
		}

		copy(r.frame(i), r.frame(i-1))
		r.tail++
	}

	return true, nil
}

// ReadSamples produces dst samples at the destination rate.
// dst length must be a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		ok, err := r.prime()
		if err != nil {
			return 0, err
		}

		if !ok {
			r.tail = 4
		}
	}

	written := 0
	for written < len(dst) {
		for r.frac >= 1.0 {
			r.frac -= 1.0
			if err := r.advance(); err != nil {
				return written, err
			}
		}

		// Frame 1 is padding once three trailing copies accumulated.
		if r.tail >= 3 {
			return written, io.EOF
		}

		x := float32(r.frac)
		for c := range r.channels {
			dst[written+c] = utils.CubicInterpolate(
				r.hist[c],
				r.hist[r.channels+c],
				r.hist[2*r.channels+c],
				r.hist[3*r.channels+c],
				x,
			)
		}

		written += r.channels
		r.frac += r.step
	}

	return written, nil
}
