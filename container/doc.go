// SPDX-License-Identifier: EPL-2.0

// Package container holds the data model shared by the chunk parsers:
// the stream Descriptor, the data Region, LoopPoints and the error
// taxonomy every parser wraps.
package container
