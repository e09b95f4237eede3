package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/giterra/giterra/internal/catalog"
	"github.com/giterra/giterra/internal/planet/domain"
)

// themeRules describes when each theme is selected.
var themeRules = map[domain.Theme]string{
	domain.ThemeOriginTree:     fmt.Sprintf("fewer than %d feats", domain.MinFeatsToGrow),
	domain.ThemeFutureCity:     fmt.Sprintf("at least %d feats and %d fixes", domain.FeatThreshold, domain.FixThreshold),
	domain.ThemeResearchDome:   fmt.Sprintf("%d-%d feats and at least %d fixes", domain.MinFeatsToGrow, domain.FeatThreshold-1, domain.FixThreshold),
	domain.ThemePrimevalForest: "any other segment with enough feats",
}

func newThemesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List planet themes",
		Long:  `Display every planet theme, when it is selected and what it looks like.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := catalog.Load()
			if err != nil {
				return err
			}

			maxLen := 0
			for _, t := range domain.Themes {
				maxLen = max(maxLen, len(t))
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Themes:")
			for _, t := range domain.Themes {
				entry, _ := cat.Theme(t)
				name := lipgloss.NewStyle().Foreground(lipgloss.Color(entry.Color)).Bold(true).Render(entry.Name)
				fmt.Fprintf(out, "  %-*s  %s\n", maxLen, t, name)
				fmt.Fprintf(out, "  %s  %s\n", strings.Repeat(" ", maxLen), entry.Description)
				fmt.Fprintf(out, "  %s  selected with %s\n", strings.Repeat(" ", maxLen), themeRules[t])
			}
			return nil
		},
	}
}
