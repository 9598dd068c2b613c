// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/go-audio/riff"
	"github.com/ik5/pcmstream/container"
)

// pcmHeader is the canonical 44-byte header of a PCM WAVE file.
type pcmHeader struct {
	RiffID      [4]byte
	RiffSize    uint32
	WaveID      [4]byte
	FmtID       [4]byte
	FmtSize     uint32
	AudioFormat uint16
	Channels    uint16
	SampleRate  uint32
	ByteRate    uint32
	BlockAlign  uint16
	Bits        uint16
	DataID      [4]byte
	DataSize    uint32
}

// WritePCM16 writes interleaved 16-bit samples as a PCM WAVE file.
func WritePCM16(w io.Writer, sampleRate, channels int, samples []int16) error {
	blockAlign := channels * 2
	dataSize := uint32(len(samples) * 2)

	hdr := pcmHeader{
		RiffID:      riff.RiffID,
		RiffSize:    36 + dataSize,
		WaveID:      riff.WavFormatID,
		FmtID:       riff.FmtID,
		FmtSize:     fmtChunkMinSize,
		AudioFormat: uint16(container.EncodingPCM),
		Channels:    uint16(channels),
		SampleRate:  uint32(sampleRate),
		ByteRate:    uint32(sampleRate * blockAlign),
		BlockAlign:  uint16(blockAlign),
		Bits:        16,
		DataID:      riff.DataFormatID,
		DataSize:    dataSize,
	}

	bw := bufio.NewWriterSize(w, 8192)

	if err := binary.Write(bw, binary.LittleEndian, &hdr); err != nil {
		return fmt.Errorf("%w", err)
	}

	if err := binary.Write(bw, binary.LittleEndian, samples); err != nil {
		return fmt.Errorf("%w", err)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// WriteWAV16 writes a mono 16-bit PCM WAV at sampleRate.
func WriteWAV16(w io.Writer, sampleRate int, samples []int16) error {
	return WritePCM16(w, sampleRate, 1, samples)
}
