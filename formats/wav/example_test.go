// SPDX-License-Identifier: EPL-2.0

package wav_test

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/ik5/pcmstream/container"
	"github.com/ik5/pcmstream/formats/wav"
)

// Example_parse writes a small file and reads its header back.
func Example_parse() {
	samples := []int16{100, 200, 300, 400, 500}
	data := new(bytes.Buffer)
	if err := wav.WriteWAV16(data, 16000, samples); err != nil {
		fmt.Println(err)
		return
	}

	r := bytes.NewReader(data.Bytes())
	// Parse expects the reader just past the "RIFF" magic.
	if _, err := r.Seek(4, io.SeekStart); err != nil {
		fmt.Println(err)
		return
	}

	c, err := wav.Parse(r)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("Encoding: %s\n", c.Descriptor.Encoding)
	fmt.Printf("Format: %s, %d ch, %d Hz\n", c.Descriptor.Format, c.Descriptor.Channels, c.Descriptor.Frequency)
	fmt.Printf("Data: bytes %d to %d\n", c.Region.Start, c.Region.Stop)
	// Output:
	// Encoding: PCM
	// Format: S16LSB, 1 ch, 16000 Hz
	// Data: bytes 44 to 54
}

// Example_encoding shows the size of a canonical 16-bit file.
func Example_encoding() {
	samples := make([]int16, 1000)
	for i := range samples {
		samples[i] = int16((i % 100) * 100)
	}

	output := new(bytes.Buffer)
	if err := wav.WriteWAV16(output, 8000, samples); err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("Wrote %d bytes\n", output.Len())
	// Output: Wrote 2044 bytes
}

// Example_errorNotWAV shows the error returned for a RIFF file of another form.
func Example_errorNotWAV() {
	r := bytes.NewReader([]byte("\x04\x00\x00\x00AVI "))

	_, err := wav.Parse(r)
	if errors.Is(err, wav.ErrNotWavFile) && errors.Is(err, container.ErrMalformedContainer) {
		fmt.Println("not a WAVE file")
	}
	// Output: not a WAVE file
}
