// SPDX-License-Identifier: EPL-2.0

package container

import "errors"

var (
	// ErrMalformedContainer indicates a structurally invalid file.
	ErrMalformedContainer = errors.New("malformed container")

	// ErrUnsupportedFormat indicates a valid file in an encoding that
	// cannot be decoded.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrIO indicates the byte source failed to read or seek.
	ErrIO = errors.New("i/o error")

	// ErrOutOfMemory indicates a chunk or scratch buffer too large to allocate.
	ErrOutOfMemory = errors.New("chunk too large")
)
