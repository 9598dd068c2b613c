// SPDX-License-Identifier: EPL-2.0

// Package aiff parses FORM/AIFF and FORM/AIFC headers into a
// container.Container.
//
// AIFF is the big-endian sibling of WAVE: chunk lengths are big endian and
// the sample rate is an 80-bit extended float. Parse walks the chunk list
// until it has seen SSND and COMM (plus FVER for AIFC files) and sizes the
// sample region from the frame count in COMM.
//
// # Supported Formats
//
//   - AIFF: 8, 16, 24 and 32-bit signed big-endian PCM
//   - AIFC "NONE" and "sowt": the same depths, big and little endian
//   - AIFC "raw ": 8-bit unsigned PCM
//   - AIFC "ulaw" and "alaw": 8-bit G.711, expanded to 16-bit samples
//   - AIFC "fl32": 32-bit big-endian float
//
// 24-bit samples are widened to 32 bits while decoding; the descriptor
// reports S32MSB or S32LSB for them.
//
// NAME, AUTH and "(c) " text chunks and an embedded "ID3 " chunk fill the
// container tags when they appear before the walk completes.
package aiff
