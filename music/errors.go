// SPDX-License-Identifier: EPL-2.0

package music

import (
	"fmt"

	"github.com/ik5/pcmstream/audio"
	"github.com/ik5/pcmstream/container"
)

var (
	ErrNotPlaying     = audio.ErrNotPlaying
	ErrClosed         = audio.ErrClosed
	ErrSeekOutOfRange = audio.ErrSeekOutOfRange
	ErrInvalidBudget  = audio.ErrInvalidBudget

	// ErrUnknownMagic indicates the input is neither RIFF nor FORM.
	ErrUnknownMagic = fmt.Errorf("%w: unknown container magic", container.ErrMalformedContainer)
)
