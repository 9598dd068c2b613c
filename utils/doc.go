// SPDX-License-Identifier: EPL-2.0

// Package utils holds the per-sample arithmetic of the audio pipeline.
package utils
