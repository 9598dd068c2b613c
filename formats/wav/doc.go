// SPDX-License-Identifier: EPL-2.0

// Package wav parses RIFF/WAVE headers into a container.Container.
//
// Parse walks the chunk list after the "RIFF" magic. The fmt and data
// chunks are required; smpl forward loops, LIST/INFO text and embedded
// id3 blocks are optional. Unknown chunks are skipped by their declared
// length, and a chunk declaring length zero ends the list.
//
// Supported encodings:
//   - PCM, 8 bits (unsigned), 16 and 32 bits (signed little endian)
//   - IEEE float, 32 bits
//   - G.711 μ-law and A-law, 8 bits, expanded to 16-bit samples
//
// ADPCM and WAVE_FORMAT_EXTENSIBLE files are rejected with an error that
// matches container.ErrUnsupportedFormat.
//
// The package also writes canonical 16-bit PCM files with WritePCM16 and
// WriteWAV16.
package wav
