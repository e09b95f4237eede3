package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Border characters (rounded)
const (
	borderTopLeft     = "╭"
	borderTopRight    = "╮"
	borderBottomLeft  = "╰"
	borderBottomRight = "╯"
	borderHorizontal  = "─"
	borderVertical    = "│"
)

// Panel frames content in a rounded border sized to fit it, with leftTitle
// and rightTitle embedded in the top border. Pass "" to omit a title.
func Panel(content, leftTitle, rightTitle string, titleColor lipgloss.TerminalColor) string {
	borderStyle := lipgloss.NewStyle().Foreground(borderColor)
	titleStyle := lipgloss.NewStyle().Foreground(titleColor).Bold(true)

	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")

	// One space of padding on each side of the content.
	innerWidth := 0
	for _, line := range lines {
		innerWidth = max(innerWidth, lipgloss.Width(line)+2)
	}
	innerWidth = max(innerWidth, titleWidth(leftTitle, rightTitle))

	var b strings.Builder
	b.WriteString(topBorder(leftTitle, rightTitle, innerWidth, borderStyle, titleStyle))
	b.WriteString("\n")
	for _, line := range lines {
		pad := innerWidth - 1 - lipgloss.Width(line)
		b.WriteString(borderStyle.Render(borderVertical))
		b.WriteString(" " + line + strings.Repeat(" ", pad))
		b.WriteString(borderStyle.Render(borderVertical))
		b.WriteString("\n")
	}
	b.WriteString(borderStyle.Render(borderBottomLeft + strings.Repeat(borderHorizontal, innerWidth) + borderBottomRight))
	return b.String()
}

// titleWidth is the inner width needed to show both titles:
// "─ Left ─ Right ─" or "─ Left ─" when only one is set.
func titleWidth(left, right string) int {
	switch {
	case left == "" && right == "":
		return 0
	case right == "":
		return lipgloss.Width(left) + 4
	case left == "":
		return lipgloss.Width(right) + 4
	default:
		return lipgloss.Width(left) + lipgloss.Width(right) + 7
	}
}

// topBorder builds ╭─ Left ───────── Right ─╮ for innerWidth >= titleWidth.
func topBorder(left, right string, innerWidth int, borderStyle, titleStyle lipgloss.Style) string {
	if left == "" && right == "" {
		return borderStyle.Render(borderTopLeft + strings.Repeat(borderHorizontal, innerWidth) + borderTopRight)
	}

	used := 0
	var b strings.Builder
	b.WriteString(borderStyle.Render(borderTopLeft))
	if left != "" {
		b.WriteString(borderStyle.Render(borderHorizontal + " "))
		b.WriteString(titleStyle.Render(left))
		b.WriteString(borderStyle.Render(" "))
		used += lipgloss.Width(left) + 3
	}
	rightPart := 0
	if right != "" {
		rightPart = lipgloss.Width(right) + 3
	}
	b.WriteString(borderStyle.Render(strings.Repeat(borderHorizontal, max(innerWidth-used-rightPart, 1))))
	if right != "" {
		b.WriteString(borderStyle.Render(" "))
		b.WriteString(titleStyle.Render(right))
		b.WriteString(borderStyle.Render(" " + borderHorizontal))
	}
	b.WriteString(borderStyle.Render(borderTopRight))
	return b.String()
}
