// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"fmt"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
)

var (
	helpDescStyle = lipgloss.NewStyle().
			Foreground(DeckSteel).
			Italic(true)

	helpSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(DeckAmber).
				MarginTop(1)

	helpNameStyle = lipgloss.NewStyle().
			Foreground(DeckWhite).
			Bold(true)

	helpDefaultStyle = lipgloss.NewStyle().
				Foreground(DeckSteel).
				Italic(true)
)

type helpRow struct {
	name       string
	help       string
	defaultVal string
}

// StyledHelpPrinter renders kong help with the deck palette.
func StyledHelpPrinter(description string) kong.HelpPrinter {
	return func(_ kong.HelpOptions, ctx *kong.Context) error {
		var sb strings.Builder

		node := ctx.Selected()
		if node == nil {
			node = ctx.Model.Node
		}

		sb.WriteString(TitleStyle.Render("pcmstream"))
		sb.WriteString("\n")
		sb.WriteString(helpDescStyle.Render(description))
		sb.WriteString("\n")

		sb.WriteString(helpSectionStyle.Render("Usage:"))
		sb.WriteString("\n  ")
		sb.WriteString(node.Summary())
		sb.WriteString("\n")

		writeSection(&sb, "Commands:", commandRows(node))
		writeSection(&sb, "Arguments:", argumentRows(node))
		writeSection(&sb, "Flags:", flagRows(ctx, node))

		sb.WriteString("\n")
		fmt.Fprint(ctx.Stdout, sb.String())

		return nil
	}
}

func writeSection(sb *strings.Builder, title string, rows []helpRow) {
	if len(rows) == 0 {
		return
	}

	sb.WriteString(helpSectionStyle.Render(title))
	sb.WriteString("\n")

	for _, r := range rows {
		sb.WriteString("  ")
		sb.WriteString(helpNameStyle.Render(r.name))
		if r.help != "" {
			sb.WriteString("  ")
			sb.WriteString(r.help)
		}
		if r.defaultVal != "" {
			sb.WriteString(" ")
			sb.WriteString(helpDefaultStyle.Render("(default: " + r.defaultVal + ")"))
		}
		sb.WriteString("\n")
	}
}

func commandRows(node *kong.Node) []helpRow {
	var rows []helpRow
	for _, child := range node.Children {
		if child.Hidden {
			continue
		}
		rows = append(rows, helpRow{name: child.Name, help: child.Help})
	}

	return rows
}

func argumentRows(node *kong.Node) []helpRow {
	var rows []helpRow
	for _, arg := range node.Positional {
		rows = append(rows, helpRow{name: arg.Summary(), help: arg.Help})
	}

	return rows
}

func flagRows(ctx *kong.Context, node *kong.Node) []helpRow {
	rows := []helpRow{{name: "-h, --help", help: "Show context-sensitive help."}}

	flags := node.Flags
	if node != ctx.Model.Node {
		flags = append(append([]*kong.Flag(nil), ctx.Model.Node.Flags...), flags...)
	}

	for _, f := range flags {
		if f.Name == "help" || f.Hidden {
			continue
		}

		name := "--" + f.Name
		if f.Short != 0 {
			name = fmt.Sprintf("-%c, --%s", f.Short, f.Name)
		}

		if !f.IsBool() && f.PlaceHolder != "" {
			name += "=" + strings.ToUpper(f.PlaceHolder)
		}

		var def string
		if f.HasDefault && !f.IsBool() {
			def = f.Default
		}

		rows = append(rows, helpRow{name: name, help: f.Help, defaultVal: def})
	}

	return rows
}
