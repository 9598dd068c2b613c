// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(DeckAmber)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(DeckAmber).
			MarginTop(1)

	SuccessStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(DeckGreen)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(DeckRed)

	KeyStyle = lipgloss.NewStyle().
			Foreground(DeckSteel)

	ValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(DeckWhite)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DeckAmber).
			Padding(0, 1)
)

// Out is where the Print helpers write, except PrintError.
var Out io.Writer = os.Stdout

// PrintError prints an error message to stderr.
func PrintError(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", ErrorStyle.Render("Error:"), message)
}

func PrintSuccess(message string) {
	fmt.Fprintf(Out, "%s %s\n", SuccessStyle.Render("✓"), message)
}

// PrintSection prints a section header
func PrintSection(title string) {
	fmt.Fprintln(Out, HeaderStyle.Render(title))
}

// PrintBox prints key/value rows inside a rounded box, keys padded to the
// longest one.
func PrintBox(rows [][2]string) {
	fmt.Fprintln(Out, BoxStyle.Render(Table(rows)))
}

// Table renders key/value rows, one per line.
func Table(rows [][2]string) string {
	width := 0
	for _, r := range rows {
		width = max(width, len(r[0]))
	}

	var b strings.Builder
	for i, r := range rows {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(KeyStyle.Render(r[0] + ":" + strings.Repeat(" ", width-len(r[0])+1)))
		b.WriteString(ValueStyle.Render(r[1]))
	}

	return b.String()
}

// FormatSeconds formats a stream position.
func FormatSeconds(s float64) string {
	if s < 1 {
		return fmt.Sprintf("%.0fms", s*1000)
	}

	return fmt.Sprintf("%.2fs", s)
}

// FormatBytes formats bytes into human-readable format
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// FormatCount renders a loop or repeat count, where <= 0 means forever.
func FormatCount(n int) string {
	if n <= 0 {
		return "forever"
	}

	return fmt.Sprintf("%d×", n)
}
