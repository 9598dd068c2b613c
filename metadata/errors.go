// SPDX-License-Identifier: EPL-2.0

package metadata

import "errors"

var (
	// ErrID3 indicates an ID3 block could not be parsed.
	ErrID3 = errors.New("invalid ID3 tag")
)
