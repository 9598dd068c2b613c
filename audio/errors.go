// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")

	// ErrUnknownFormat indicates no registered format accepted the input.
	ErrUnknownFormat = errors.New("unknown audio format")

	// ErrStreamStalled indicates a stream kept returning empty chunks
	// without signalling completion.
	ErrStreamStalled = errors.New("stream produced no data")

	// ErrUnsupportedSampleFormat indicates a Spec with FormatUnknown.
	ErrUnsupportedSampleFormat = errors.New("unsupported sample format")

	// ErrNotPlaying indicates GetChunk was called before Play.
	ErrNotPlaying = errors.New("stream is not playing")

	ErrClosed = errors.New("stream is closed")

	// ErrSeekOutOfRange indicates a seek target outside the stream.
	ErrSeekOutOfRange = errors.New("seek position out of range")

	// ErrInvalidBudget indicates a chunk budget smaller than one frame.
	ErrInvalidBudget = errors.New("chunk budget smaller than one frame")
)
