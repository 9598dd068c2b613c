// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"

	"github.com/ik5/pcmstream/container"
)

var (
	ErrNotWavFile          = fmt.Errorf("%w: not a WAV file", container.ErrMalformedContainer)
	ErrNoFmtChunk          = fmt.Errorf("%w: no fmt chunk", container.ErrMalformedContainer)
	ErrNoDataChunk         = fmt.Errorf("%w: no data chunk", container.ErrMalformedContainer)
	ErrFmtChunkTooSmall    = fmt.Errorf("%w: fmt chunk too small", container.ErrMalformedContainer)
	ErrUnknownEncoding     = fmt.Errorf("%w: unknown WAVE data format", container.ErrUnsupportedFormat)
	ErrUnsupportedBitDepth = fmt.Errorf("%w: unsupported bits per sample", container.ErrUnsupportedFormat)
)
