// SPDX-License-Identifier: EPL-2.0

package pcmstream

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/ik5/pcmstream/audio"
	"github.com/ik5/pcmstream/container"
	"github.com/ik5/pcmstream/formats/mp3"
	"github.com/ik5/pcmstream/formats/vorbis"
	"github.com/ik5/pcmstream/music"
)

// sniffLen is the number of leading bytes handed to the sniffers.
const sniffLen = 12

// Format keys of DefaultRegistry.
const (
	FormatWAV    = "wav"
	FormatAIFF   = "aiff"
	FormatMP3    = "mp3"
	FormatVorbis = "ogg vorbis"
)

// DefaultRegistry knows every format this module can play.
var DefaultRegistry = NewRegistry()

// NewRegistry returns a registry with the WAVE, AIFF, MP3 and Ogg Vorbis
// openers registered.
func NewRegistry() *audio.Registry {
	r := audio.NewRegistry()
	r.Register(FormatWAV, isWAV, music.Opener)
	r.Register(FormatAIFF, isAIFF, music.Opener)
	r.Register(FormatVorbis, isOgg, vorbis.Opener)
	r.Register(FormatMP3, isMP3, mp3.Opener)

	return r
}

func isWAV(head []byte) bool {
	return bytes.HasPrefix(head, []byte("RIFF")) || bytes.HasPrefix(head, []byte("WAVE"))
}

func isAIFF(head []byte) bool {
	return bytes.HasPrefix(head, []byte("FORM"))
}

func isOgg(head []byte) bool {
	return bytes.HasPrefix(head, []byte("OggS"))
}

// isMP3 accepts a leading ID3v2 tag or an MPEG frame sync.
func isMP3(head []byte) bool {
	if bytes.HasPrefix(head, []byte("ID3")) {
		return true
	}

	return len(head) >= 2 && head[0] == 0xFF && head[1]&0xE0 == 0xE0
}

// Open detects the format of rs with DefaultRegistry and opens a stream
// over it. rs stays owned by the caller.
func Open(rs io.ReadSeeker) (audio.Stream, error) {
	return OpenWith(DefaultRegistry, rs, false)
}

// OpenWith is like Open with an explicit registry. When owned is true the
// stream closes rs on Close.
func OpenWith(r *audio.Registry, rs io.ReadSeeker, owned bool) (audio.Stream, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(rs, head)
	if err != nil && n == 0 {
		return nil, fmt.Errorf("%w: %w", container.ErrIO, err)
	}

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: %w", container.ErrIO, err)
	}

	_, opener, ok := r.Detect(head[:n])
	if !ok {
		return nil, fmt.Errorf("%w: % x", audio.ErrUnknownFormat, head[:min(n, 4)])
	}

	s, err := opener.Open(rs, owned)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return s, nil
}

// OpenFile opens path and detects its format. Closing the stream closes
// the file.
func OpenFile(path string) (audio.Stream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	s, err := OpenWith(DefaultRegistry, f, true)
	if err != nil {
		f.Close()
		return nil, err
	}

	return s, nil
}
