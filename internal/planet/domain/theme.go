// Package domain defines the planet segment model: themes, asset types,
// asset descriptors and the assembled segment configuration.
package domain

// Theme is the visual style of a planet segment.
type Theme string

const (
	ThemeOriginTree     Theme = "ORIGIN_TREE"
	ThemeFutureCity     Theme = "FUTURE_CITY"
	ThemeResearchDome   Theme = "RESEARCH_DOME"
	ThemePrimevalForest Theme = "PRIMEVAL_FOREST"
)

// Themes lists every theme.
var Themes = []Theme{
	ThemeOriginTree,
	ThemeFutureCity,
	ThemeResearchDome,
	ThemePrimevalForest,
}

const (
	// MinFeatsToGrow is the feat count below which a segment stays an origin tree.
	MinFeatsToGrow = 3
	// FeatThreshold marks a feat-heavy segment.
	FeatThreshold = 5
	// FixThreshold marks a fix-heavy segment.
	FixThreshold = 5
)

// SelectTheme picks a theme from feat and fix counts. The rules are checked
// in order and the first match wins.
func SelectTheme(featCount, fixCount int) Theme {
	if featCount < MinFeatsToGrow {
		return ThemeOriginTree
	}

	highFeat := featCount >= FeatThreshold
	highFix := fixCount >= FixThreshold

	switch {
	case highFeat && highFix:
		return ThemeFutureCity
	case !highFeat && highFix:
		return ThemeResearchDome
	default:
		return ThemePrimevalForest
	}
}

// ParseTheme returns the Theme named by s.
func ParseTheme(s string) (Theme, bool) {
	for _, t := range Themes {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}
