// SPDX-License-Identifier: EPL-2.0

package metadata

import (
	"bytes"
	"fmt"
	"io"

	"github.com/dhowden/tag"
)

// ID3Reader extracts tags from an ID3v2 block starting at the current
// position of r.
type ID3Reader interface {
	ReadID3(r io.ReadSeeker, tags *Tags) error
}

// ID3ReaderFunc adapts a function to the ID3Reader interface.
type ID3ReaderFunc func(r io.ReadSeeker, tags *Tags) error

func (f ID3ReaderFunc) ReadID3(r io.ReadSeeker, tags *Tags) error { return f(r, tags) }

// DefaultID3Reader parses ID3v2 with github.com/dhowden/tag.
var DefaultID3Reader ID3Reader = ID3ReaderFunc(readID3v2)

// copyrightFrames are the ID3v2.3/2.4 and ID3v2.2 copyright frame ids.
var copyrightFrames = [...]string{"TCOP", "TCR"}

func readID3v2(r io.ReadSeeker, tags *Tags) error {
	m, err := tag.ReadID3v2Tags(r)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrID3, err)
	}

	setNonEmpty(tags, Title, m.Title())
	setNonEmpty(tags, Artist, m.Artist())
	setNonEmpty(tags, Album, m.Album())

	raw := m.Raw()
	for _, id := range copyrightFrames {
		if v, ok := raw[id].(string); ok && v != "" {
			tags.Set(Copyright, v)
			break
		}
	}

	return nil
}

func setNonEmpty(tags *Tags, kind Kind, value string) {
	if value != "" {
		tags.Set(kind, value)
	}
}

// IsID3v2 reports whether data starts with an ID3v2 header.
func IsID3v2(data []byte) bool {
	return len(data) >= 3 && string(data[:3]) == "ID3"
}

// ParseID3 hands an embedded ID3 chunk payload to reader. Payloads that do
// not start with an ID3v2 header are ignored. A nil reader selects
// DefaultID3Reader.
func ParseID3(data []byte, tags *Tags, reader ID3Reader) error {
	if !IsID3v2(data) {
		return nil
	}

	if reader == nil {
		reader = DefaultID3Reader
	}

	return reader.ReadID3(bytes.NewReader(data), tags)
}
