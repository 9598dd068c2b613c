// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Engine runs one Strategy against a byte source. It keeps no state
// between calls; the caller owns the buffer.
type Engine struct {
	Strategy Strategy
	// FrameSize is the size of one encoded frame in the source.
	FrameSize int
	// Order is the byte order of Expand24 input and output.
	Order binary.ByteOrder
}

// Fetch reads encoded bytes from r into buf and decodes them in place.
//
// budget bounds the output bytes; it is converted to a source byte count
// for the strategy and capped by limit, the source bytes left before the
// next boundary. Expanding strategies only read whole frames. A short
// read is not an error: produced and consumed simply come back smaller,
// down to zero at end of data.
func (e Engine) Fetch(r io.Reader, buf []byte, budget int, limit int64) (produced, consumed int, err error) {
	if e.FrameSize <= 0 {
		return 0, 0, ErrInvalidFrameSize
	}

	want := e.Strategy.SourceBytes(min(budget, len(buf)))
	if limit < int64(want) {
		want = int(max(limit, 0))
	}

	want -= want % e.FrameSize
	if want <= 0 {
		return 0, 0, nil
	}

	n, err := io.ReadFull(r, buf[:want])
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return 0, n, fmt.Errorf("%w", err)
	}

	return e.decode(buf, n), n, nil
}

func (e Engine) decode(buf []byte, n int) int {
	n -= n % e.FrameSize

	switch e.Strategy {
	case Expand24:
		return ExpandPCM24(buf, n, e.Order)
	case MuLaw:
		return ExpandMuLaw(buf, n)
	case ALaw:
		return ExpandALaw(buf, n)
	default:
		return n
	}
}
