package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/giterra/giterra/internal/catalog"
	"github.com/giterra/giterra/internal/planet/domain"
)

var (
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8A8A8A"))
	headerStyle = lipgloss.NewStyle().Bold(true)
	borderColor = lipgloss.Color("#5F5F5F")
)

// Text renders cfg as a titled panel for terminals.
func Text(cfg domain.PlanetSegmentConfig, cat *catalog.Catalog) string {
	title := string(cfg.Theme)
	titleColor := lipgloss.Color("#FFFFFF")
	if cat != nil {
		if entry, ok := cat.Theme(cfg.Theme); ok {
			title = entry.Name
			titleColor = lipgloss.Color(entry.Color)
		}
	}
	title = fmt.Sprintf("%s · segment %d", title, cfg.Segment)

	var b strings.Builder
	fmt.Fprintf(&b, "%s %d  %s %d  %s %d\n",
		mutedStyle.Render("feats"), cfg.Stats.FeatCount,
		mutedStyle.Render("fixes"), cfg.Stats.FixCount,
		mutedStyle.Render("commits"), cfg.Stats.TotalCount)
	b.WriteString("\n")

	rows := [][]string{{"ID", "ASSET", "POSITION", "SCALE"}}
	for _, a := range cfg.Assets {
		label := string(a.Type)
		if cat != nil {
			label = cat.AssetLabel(a.Type)
		}
		rows = append(rows, []string{
			a.ID,
			label,
			fmt.Sprintf("(%.2f, %.2f, %.2f)", a.Position.X, a.Position.Y, a.Position.Z),
			fmt.Sprintf("%.2f", a.Scale),
		})
	}
	b.WriteString(table(rows))

	return Panel(b.String(), title, fmt.Sprintf("seed %d", cfg.Seed), titleColor)
}

// table aligns rows into columns. The first row is the header.
func table(rows [][]string) string {
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	var b strings.Builder
	for r, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = cell + strings.Repeat(" ", widths[i]-lipgloss.Width(cell))
		}
		line := strings.TrimRight(strings.Join(cells, "  "), " ")
		if r == 0 {
			line = headerStyle.Render(line)
		}
		b.WriteString(line)
		if r < len(rows)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
