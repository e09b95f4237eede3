package placement

import (
	commitdomain "github.com/giterra/giterra/internal/commits/domain"
	"github.com/giterra/giterra/internal/planet/domain"
)

type ruleKey struct {
	bucket commitdomain.ChangeType
	theme  domain.Theme
}

var rules = map[ruleKey]Rule{
	// feat: the main structures
	{commitdomain.TypeFeat, domain.ThemeOriginTree}: {
		Asset: domain.AssetTreeWorld, Strategy: StrategyCenter, Scale: WorldTree, Collapse: true,
	},
	{commitdomain.TypeFeat, domain.ThemeFutureCity}: {
		Asset: domain.AssetBuildingGlass, Strategy: StrategyGrid, Scale: Fixed(1.5),
	},
	{commitdomain.TypeFeat, domain.ThemeResearchDome}: {
		Asset: domain.AssetBuildingSolid, Strategy: StrategySweep, Scale: Fixed(1.2),
	},
	{commitdomain.TypeFeat, domain.ThemePrimevalForest}: {
		Asset: domain.AssetTreeAncient, Strategy: StrategyScatter, Scale: Jittered(2, 1),
	},

	// fix
	{commitdomain.TypeFix, domain.ThemeOriginTree}: {
		Asset: domain.AssetFlowerSunflower, Strategy: StrategyRing, RingRadius: FixRingRadius, Scale: Fixed(3.0),
	},
	{commitdomain.TypeFix, domain.ThemeFutureCity}: {
		Asset: domain.AssetTreeHologram, Strategy: StrategyScatter, Scale: Fixed(0.8),
	},
	{commitdomain.TypeFix, domain.ThemeResearchDome}: {
		Asset: domain.AssetDefenseTurret, Strategy: StrategyScatter, Scale: Fixed(1.0),
	},
	{commitdomain.TypeFix, domain.ThemePrimevalForest}: {
		Asset: domain.AssetRockMoss, Strategy: StrategyScatter, Scale: Jittered(1.0, 1),
	},

	// refactor: paths
	{commitdomain.TypeRefactor, domain.ThemeOriginTree}: {
		Asset: domain.AssetPathStone, Strategy: StrategyRing, RingRadius: RefactorRingRadius, Scale: Jittered(0.5, 0.5),
	},
	{commitdomain.TypeRefactor, domain.ThemeFutureCity}: {
		Asset: domain.AssetPathNeon, Strategy: StrategyScatter, Scale: Fixed(1.0),
	},
	{commitdomain.TypeRefactor, domain.ThemeResearchDome}: {
		Asset: domain.AssetPathMetal, Strategy: StrategyScatter, Scale: Fixed(0.8),
	},
	{commitdomain.TypeRefactor, domain.ThemePrimevalForest}: {
		Asset: domain.AssetPathRoot, Strategy: StrategyScatter, Scale: Fixed(1.5),
	},

	// docs
	{commitdomain.TypeDocs, domain.ThemeOriginTree}: {
		Asset: domain.AssetDocsSignpost, Strategy: StrategyScatter, Scale: Fixed(0.7),
	},
	{commitdomain.TypeDocs, domain.ThemeFutureCity}: {
		Asset: domain.AssetDocsPanel, Strategy: StrategyScatter, Altitude: AltitudeFloating, Scale: Fixed(1.0),
	},
	{commitdomain.TypeDocs, domain.ThemeResearchDome}: {
		Asset: domain.AssetDocsAntenna, Strategy: StrategyScatter, Scale: Fixed(1.0),
	},
	{commitdomain.TypeDocs, domain.ThemePrimevalForest}: {
		Asset: domain.AssetDocsMonolith, Strategy: StrategyScatter, Scale: Fixed(1.5),
	},

	// chore: hovering decorations; rovers drive on the surface
	{commitdomain.TypeChore, domain.ThemeOriginTree}: {
		Asset: domain.AssetDecoButterfly, Strategy: StrategyScatter, Altitude: AltitudeHovering, Scale: Fixed(0.5),
	},
	{commitdomain.TypeChore, domain.ThemeFutureCity}: {
		Asset: domain.AssetDecoDrone, Strategy: StrategyScatter, Altitude: AltitudeHovering, Scale: Fixed(0.8),
	},
	{commitdomain.TypeChore, domain.ThemeResearchDome}: {
		Asset: domain.AssetDecoRover, Strategy: StrategyScatter, Altitude: AltitudeSurface, Scale: Fixed(0.7),
	},
	{commitdomain.TypeChore, domain.ThemePrimevalForest}: {
		Asset: domain.AssetDecoSpirit, Strategy: StrategyScatter, Altitude: AltitudeHovering, Scale: Fixed(1.0),
	},

	// style
	{commitdomain.TypeStyle, domain.ThemeOriginTree}: {
		Asset: domain.AssetDecoFence, Strategy: StrategyScatter, Scale: Fixed(0.6),
	},
	{commitdomain.TypeStyle, domain.ThemeFutureCity}: {
		Asset: domain.AssetDecoStreetlamp, Strategy: StrategyScatter, Scale: Fixed(1.2),
	},
	{commitdomain.TypeStyle, domain.ThemeResearchDome}: {
		Asset: domain.AssetDecoSupplyBox, Strategy: StrategyScatter, Scale: Fixed(0.8),
	},
	{commitdomain.TypeStyle, domain.ThemePrimevalForest}: {
		Asset: domain.AssetDecoMushroom, Strategy: StrategyScatter, Scale: Jittered(0.5, 1),
	},
}

// RuleFor returns the placement rule for bucket under theme.
func RuleFor(bucket commitdomain.ChangeType, theme domain.Theme) (Rule, bool) {
	r, ok := rules[ruleKey{bucket: bucket, theme: theme}]
	return r, ok
}
