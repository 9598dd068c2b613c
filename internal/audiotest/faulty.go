// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	"errors"
	"io"
)

// ErrInjected is returned by FaultyReader once a fault triggers.
var ErrInjected = errors.New("injected fault")

// FaultyReader is an io.ReadSeeker over a byte slice that can be told to
// fail reads past an offset or to fail seeks. It records every seek target
// so tests can assert on repositioning.
type FaultyReader struct {
	r *bytes.Reader

	// FailReadsFrom makes any read starting at or beyond this offset fail.
	// Negative disables it.
	FailReadsFrom int64
	// FailSeeks makes every Seek fail.
	FailSeeks bool

	Seeks  []int64
	Closed bool
}

func NewFaultyReader(data []byte) *FaultyReader {
	return &FaultyReader{r: bytes.NewReader(data), FailReadsFrom: -1}
}

func (f *FaultyReader) Read(p []byte) (int, error) {
	if f.FailReadsFrom >= 0 {
		pos, _ := f.r.Seek(0, io.SeekCurrent)
		if pos >= f.FailReadsFrom {
			return 0, ErrInjected
		}

		if room := f.FailReadsFrom - pos; int64(len(p)) > room {
			p = p[:room]
		}
	}

	return f.r.Read(p)
}

func (f *FaultyReader) Seek(offset int64, whence int) (int64, error) {
	if f.FailSeeks {
		return 0, ErrInjected
	}

	pos, err := f.r.Seek(offset, whence)
	if err == nil && !(offset == 0 && whence == io.SeekCurrent) {
		f.Seeks = append(f.Seeks, pos)
	}

	return pos, err
}

func (f *FaultyReader) Close() error {
	f.Closed = true

	return nil
}

// SeeksTo counts the recorded seeks that landed on pos.
func (f *FaultyReader) SeeksTo(pos int64) int {
	n := 0
	for _, s := range f.Seeks {
		if s == pos {
			n++
		}
	}

	return n
}
