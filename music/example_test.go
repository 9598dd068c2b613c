// SPDX-License-Identifier: EPL-2.0

package music_test

import (
	"bytes"
	"fmt"

	"github.com/ik5/pcmstream/internal/audiotest"
	"github.com/ik5/pcmstream/music"
)

func Example() {
	// One second of 8-bit mono audio with frames 2000 to 5999 looped twice.
	file := audiotest.NewRIFF().
		Chunk("fmt ", audiotest.FmtPayload(1, 1, 8000, 8)).
		Chunk("smpl", audiotest.SmplPayload(audiotest.SmplLoop{Start: 2000, End: 5999, PlayCount: 2})).
		Chunk("data", make([]byte, 8000)).
		Bytes()

	m, err := music.Open(bytes.NewReader(file), false)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer m.Close()

	fmt.Printf("length %.1fs, %d loop\n", m.Length(), len(m.Loops()))

	if err := m.Play(1); err != nil {
		fmt.Println(err)
		return
	}

	total := 0
	for {
		p, done, err := m.GetChunk(4096)
		if err != nil {
			fmt.Println(err)
			return
		}
		if done {
			break
		}
		total += len(p)
	}

	fmt.Printf("played %d bytes\n", total)
	// Output:
	// length 1.0s, 1 loop
	// played 12000 bytes
}
