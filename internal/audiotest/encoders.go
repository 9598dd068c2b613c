// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2/v2"
	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// EncodeWAV writes integer samples through the go-audio WAV encoder and
// returns the file bytes. meta may be nil.
func EncodeWAV(tb testing.TB, rate, bits, channels int, samples []int, meta *wav.Metadata) []byte {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "fixture.wav")
	f, err := os.Create(path)
	if err != nil {
		tb.Fatalf("create wav fixture: %v", err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, rate, bits, channels, 1)
	enc.Metadata = meta

	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: rate},
		Data:           samples,
		SourceBitDepth: bits,
	}

	if err := enc.Write(buf); err != nil {
		tb.Fatalf("encode wav fixture: %v", err)
	}

	if err := enc.Close(); err != nil {
		tb.Fatalf("close wav fixture: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		tb.Fatalf("read wav fixture: %v", err)
	}

	return data
}

// EncodeAIFF writes integer samples through the go-audio AIFF encoder and
// returns the file bytes.
func EncodeAIFF(tb testing.TB, rate, bits, channels int, samples []int) []byte {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "fixture.aiff")
	f, err := os.Create(path)
	if err != nil {
		tb.Fatalf("create aiff fixture: %v", err)
	}
	defer f.Close()

	enc := aiff.NewEncoder(f, rate, bits, channels)

	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: rate},
		Data:           samples,
		SourceBitDepth: bits,
	}

	if err := enc.Write(buf); err != nil {
		tb.Fatalf("encode aiff fixture: %v", err)
	}

	if err := enc.Close(); err != nil {
		tb.Fatalf("close aiff fixture: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		tb.Fatalf("read aiff fixture: %v", err)
	}

	return data
}

// ID3Tags are the text frames written by ID3Payload. Empty values are
// left out.
type ID3Tags struct {
	Title     string
	Artist    string
	Album     string
	Copyright string
}

// ID3Payload encodes an ID3v2.4 tag with UTF-8 text frames.
func ID3Payload(tb testing.TB, tags ID3Tags) []byte {
	tb.Helper()

	tag := id3v2.NewEmptyTag()
	tag.SetDefaultEncoding(id3v2.EncodingUTF8)

	if tags.Title != "" {
		tag.SetTitle(tags.Title)
	}
	if tags.Artist != "" {
		tag.SetArtist(tags.Artist)
	}
	if tags.Album != "" {
		tag.SetAlbum(tags.Album)
	}
	if tags.Copyright != "" {
		tag.AddTextFrame("TCOP", id3v2.EncodingUTF8, tags.Copyright)
	}

	var b bytes.Buffer
	if _, err := tag.WriteTo(&b); err != nil {
		tb.Fatalf("encode id3 fixture: %v", err)
	}

	return b.Bytes()
}
