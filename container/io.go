// SPDX-License-Identifier: EPL-2.0

package container

import (
	"fmt"
	"io"
)

// ReadPayload reads a whole chunk payload of size bytes.
func ReadPayload(r io.Reader, size uint32) ([]byte, error) {
	if size > MaxChunkAlloc {
		return nil, fmt.Errorf("%w: %d bytes", ErrOutOfMemory, size)
	}

	data := make([]byte, size)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}

	return data, nil
}

// Skip advances rs by n bytes.
func Skip(rs io.Seeker, n int64) error {
	if _, err := rs.Seek(n, io.SeekCurrent); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}

	return nil
}

// Tell returns the current offset of rs.
func Tell(rs io.Seeker) (int64, error) {
	pos, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrIO, err)
	}

	return pos, nil
}
