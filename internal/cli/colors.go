// SPDX-License-Identifier: EPL-2.0

package cli

import "github.com/charmbracelet/lipgloss"

// Tape deck palette shared by the help printer and command output.
var (
	DeckAmber = lipgloss.Color("#FFB000")
	DeckGreen = lipgloss.Color("#39D353")
	DeckRed   = lipgloss.Color("#E5534B")
	DeckSteel = lipgloss.Color("#8B949E")
	DeckWhite = lipgloss.Color("#F0F6FC")
)
