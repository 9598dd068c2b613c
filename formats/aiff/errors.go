// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"

	"github.com/ik5/pcmstream/container"
)

var (
	// ErrNotAiffFile indicates the FORM type is neither AIFF nor AIFC
	ErrNotAiffFile = fmt.Errorf("%w: not an AIFF file", container.ErrMalformedContainer)

	ErrNoCommChunk       = fmt.Errorf("%w: no COMM chunk", container.ErrMalformedContainer)
	ErrNoSsndChunk       = fmt.Errorf("%w: no SSND chunk", container.ErrMalformedContainer)
	ErrCommChunkTooSmall = fmt.Errorf("%w: COMM chunk too small", container.ErrMalformedContainer)

	// ErrUnsupportedCompression indicates an AIFC compression type with no decoder
	ErrUnsupportedCompression = fmt.Errorf("%w: unsupported AIFC compression", container.ErrUnsupportedFormat)
	ErrUnsupportedBitDepth    = fmt.Errorf("%w: unsupported sample size", container.ErrUnsupportedFormat)
)
