// SPDX-License-Identifier: EPL-2.0

// Package cli holds the lipgloss styles and kong help printer of the
// pcmstream command.
package cli
