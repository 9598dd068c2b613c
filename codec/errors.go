// SPDX-License-Identifier: EPL-2.0

package codec

import "errors"

var (
	ErrInvalidFrameSize = errors.New("frame size must be positive")
)
