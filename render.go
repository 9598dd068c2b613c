// SPDX-License-Identifier: EPL-2.0

package pcmstream

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/pcmstream/audio"
	"github.com/ik5/pcmstream/utils"
)

// ErrEndlessRender indicates Render was asked to play a stream forever.
var ErrEndlessRender = errors.New("cannot render an endless stream")

// Render plays stream repeat times and returns the result as mono 16-bit
// samples at rate. The stream volume is applied. The stream is left open.
func Render(stream audio.Stream, repeat, rate int) ([]int16, error) {
	if repeat <= 0 {
		return nil, ErrEndlessRender
	}

	if err := stream.Play(repeat); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	src, err := audio.NewStreamSource(stream, 0)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	pcm16, _, err := ResampleToMono16(src, rate, src.BufSize())

	return pcm16, err
}

// ResampleToMono16 pulls src through a resampler to targetRate and a mono
// mixer, and collects every sample as int16. It returns the output rate.
// Reaching io.EOF is not an error.
func ResampleToMono16(src audio.Source, targetRate int, bufferSize int) ([]int16, int, error) {
	mono := audio.NewMonoMixer(audio.NewResampler(src, targetRate))

	// About two seconds up front; AppendInt16 grows from there.
	pcm16 := make([]int16, 0, targetRate*2)
	buf := make([]float32, bufferSize)

	for {
		n, err := mono.ReadSamples(buf)
		pcm16 = utils.AppendInt16(pcm16, buf[:n])

		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, targetRate, fmt.Errorf("%w", err)
		}
	}

	return pcm16, targetRate, nil
}
