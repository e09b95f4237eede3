package placement

import (
	"fmt"
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	commitdomain "github.com/giterra/giterra/internal/commits/domain"
	"github.com/giterra/giterra/internal/planet/domain"
	"github.com/giterra/giterra/internal/planet/geometry"
	"github.com/giterra/giterra/internal/random"
)

func makeCommits(prefix string, n int, typ commitdomain.ChangeType) []commitdomain.CommitRecord {
	out := make([]commitdomain.CommitRecord, n)
	for i := range out {
		out[i] = commitdomain.CommitRecord{ID: fmt.Sprintf("%s%d", prefix, i), Type: typ}
	}
	return out
}

// ratiosOf recovers the ratio coordinates a position was mapped from.
func ratiosOf(t *testing.T, pos r3.Vector, segment int) (phiRatio, thetaRatio float64) {
	t.Helper()
	b, err := geometry.Bounds(segment)
	require.NoError(t, err)
	phi, theta := geometry.Angles(pos)
	return (phi - b.PhiMin) / (b.PhiMax - b.PhiMin), (theta - b.ThetaMin) / (b.ThetaMax - b.ThetaMin)
}

func TestRuleTable_Complete(t *testing.T) {
	for _, bucket := range commitdomain.ChangeTypes {
		for _, theme := range domain.Themes {
			rule, ok := RuleFor(bucket, theme)
			require.True(t, ok, "missing rule for %s/%s", bucket, theme)
			require.NotEmpty(t, rule.Asset)
			require.NotNil(t, rule.Scale)
		}
	}
	require.Len(t, rules, len(commitdomain.ChangeTypes)*len(domain.Themes))
}

func TestRuleTable_OnlyOriginTreeFeatsCollapse(t *testing.T) {
	for key, rule := range rules {
		want := key.bucket == commitdomain.TypeFeat && key.theme == domain.ThemeOriginTree
		require.Equal(t, want, rule.Collapse, "%s/%s", key.bucket, key.theme)
	}
}

func TestRuleTable_Subtypes(t *testing.T) {
	tests := []struct {
		bucket commitdomain.ChangeType
		theme  domain.Theme
		asset  domain.AssetType
	}{
		{commitdomain.TypeFeat, domain.ThemeFutureCity, domain.AssetBuildingGlass},
		{commitdomain.TypeFeat, domain.ThemeResearchDome, domain.AssetBuildingSolid},
		{commitdomain.TypeFeat, domain.ThemePrimevalForest, domain.AssetTreeAncient},
		{commitdomain.TypeFix, domain.ThemeOriginTree, domain.AssetFlowerSunflower},
		{commitdomain.TypeFix, domain.ThemeResearchDome, domain.AssetDefenseTurret},
		{commitdomain.TypeRefactor, domain.ThemePrimevalForest, domain.AssetPathRoot},
		{commitdomain.TypeDocs, domain.ThemeFutureCity, domain.AssetDocsPanel},
		{commitdomain.TypeChore, domain.ThemeResearchDome, domain.AssetDecoRover},
		{commitdomain.TypeStyle, domain.ThemePrimevalForest, domain.AssetDecoMushroom},
	}
	for _, tt := range tests {
		rule, ok := RuleFor(tt.bucket, tt.theme)
		require.True(t, ok)
		require.Equal(t, tt.asset, rule.Asset, "%s/%s", tt.bucket, tt.theme)
	}
}

func TestPlan_RejectsInvalidSegment(t *testing.T) {
	p := NewPlanner(DefaultRadius, random.NewSeeded(1))
	for _, seg := range []int{-1, 8} {
		assets, err := p.Plan(commitdomain.TypeFix, makeCommits("c", 3, commitdomain.TypeFix), domain.ThemeFutureCity, seg)
		require.ErrorIs(t, err, geometry.ErrInvalidSegment)
		require.Nil(t, assets)
	}
}

func TestPlan_RejectsUnknownBucket(t *testing.T) {
	p := NewPlanner(DefaultRadius, random.NewSeeded(1))
	_, err := p.Plan("test", nil, domain.ThemeFutureCity, 0)
	require.ErrorIs(t, err, ErrNoRule)
}

func TestPlan_RejectsInvalidRadius(t *testing.T) {
	p := NewPlanner(0, random.NewSeeded(1))
	_, err := p.Plan(commitdomain.TypeFix, makeCommits("c", 1, commitdomain.TypeFix), domain.ThemeFutureCity, 0)
	require.ErrorIs(t, err, geometry.ErrInvalidRadius)
}

func TestPlan_EmptyBucket(t *testing.T) {
	p := NewPlanner(DefaultRadius, random.NewSeeded(1))
	for _, bucket := range commitdomain.ChangeTypes {
		for _, theme := range domain.Themes {
			assets, err := p.Plan(bucket, nil, theme, 2)
			require.NoError(t, err)
			if bucket == commitdomain.TypeFeat && theme == domain.ThemeOriginTree {
				require.Len(t, assets, 1)
				continue
			}
			require.Empty(t, assets, "%s/%s", bucket, theme)
		}
	}
}

func TestPlan_OriginTreeCollapse(t *testing.T) {
	tests := []struct {
		feats int
		scale float64
	}{
		{0, 8},
		{2, 12},
		{5, 18},
		{8, 24},
		{9, 25},
		{40, 25},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d feats", tt.feats), func(t *testing.T) {
			p := NewPlanner(DefaultRadius, random.NewSeeded(1))
			assets, err := p.Plan(commitdomain.TypeFeat, makeCommits("f", tt.feats, commitdomain.TypeFeat), domain.ThemeOriginTree, 4)
			require.NoError(t, err)
			require.Len(t, assets, 1)

			tree := assets[0]
			require.Equal(t, "origin-tree-4", tree.ID)
			require.Equal(t, domain.AssetTreeWorld, tree.Type)
			require.Equal(t, domain.CombinedFeatsID, tree.SourceCommitID)
			require.InDelta(t, tt.scale, tree.Scale, 1e-12)

			center, err := geometry.Map(DefaultRadius, 0.5, 0.5, 4)
			require.NoError(t, err)
			require.InDelta(t, 0, tree.Position.Sub(center).Norm(), 1e-9)
		})
	}
}

func TestPlan_FutureCityGrid(t *testing.T) {
	p := NewPlanner(DefaultRadius, random.NewSeeded(1))
	feats := makeCommits("f", 10, commitdomain.TypeFeat)

	assets, err := p.Plan(commitdomain.TypeFeat, feats, domain.ThemeFutureCity, 1)
	require.NoError(t, err)
	require.Len(t, assets, 10)

	for i, a := range assets {
		require.Equal(t, domain.AssetBuildingGlass, a.Type)
		require.Equal(t, 1.5, a.Scale)
		require.Equal(t, fmt.Sprintf("feat-1-f%d", i), a.ID)
		require.Equal(t, feats[i].ID, a.SourceCommitID)

		row, col := i/4, i%4
		phiRatio, thetaRatio := ratiosOf(t, a.Position, 1)
		require.InDelta(t, (float64(row)+0.5)/4, phiRatio, 1e-9, "asset %d phi", i)
		require.InDelta(t, (float64(col)+0.5)/4, thetaRatio, 1e-9, "asset %d theta", i)
	}
}

func TestPlan_ResearchDomeSweep(t *testing.T) {
	// Fixed draws: jitter of 0.5 maps to zero offset.
	p := NewPlanner(DefaultRadius, random.NewFixed(0.5))
	feats := makeCommits("f", 4, commitdomain.TypeFeat)

	assets, err := p.Plan(commitdomain.TypeFeat, feats, domain.ThemeResearchDome, 6)
	require.NoError(t, err)
	require.Len(t, assets, 4)

	for i, a := range assets {
		require.Equal(t, domain.AssetBuildingSolid, a.Type)
		require.Equal(t, 1.2, a.Scale)
		phiRatio, thetaRatio := ratiosOf(t, a.Position, 6)
		require.InDelta(t, (float64(i)+0.5)/4, phiRatio, 1e-9)
		band := 0.3
		if i%2 == 1 {
			band = 0.7
		}
		require.InDelta(t, band, thetaRatio, 1e-9)
	}
}

func TestPlan_ResearchDomeSweepJitterBounded(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Int64().Draw(rt, "seed")
		n := rapid.IntRange(1, 30).Draw(rt, "n")
		p := NewPlanner(DefaultRadius, random.NewSeeded(seed))
		assets, err := p.Plan(commitdomain.TypeFeat, makeCommits("f", n, commitdomain.TypeFeat), domain.ThemeResearchDome, 0)
		if err != nil {
			rt.Fatalf("Plan: %v", err)
		}
		b, _ := geometry.Bounds(0)
		for i, a := range assets {
			_, theta := geometry.Angles(a.Position)
			thetaRatio := (theta - b.ThetaMin) / (b.ThetaMax - b.ThetaMin)
			band := 0.3
			if i%2 == 1 {
				band = 0.7
			}
			if math.Abs(thetaRatio-band) > 0.1+1e-9 {
				rt.Fatalf("asset %d theta ratio %v too far from band %v", i, thetaRatio, band)
			}
		}
	})
}

func TestPlan_OriginTreeFixRing(t *testing.T) {
	p := NewPlanner(DefaultRadius, random.NewSeeded(3))
	fixes := makeCommits("x", 4, commitdomain.TypeFix)

	assets, err := p.Plan(commitdomain.TypeFix, fixes, domain.ThemeOriginTree, 0)
	require.NoError(t, err)
	require.Len(t, assets, 4)

	want := [][2]float64{
		{0.5 + 0.15, 0.5},
		{0.5, 0.5 + 0.15},
		{0.5 - 0.15, 0.5},
		{0.5, 0.5 - 0.15},
	}
	for i, a := range assets {
		require.Equal(t, domain.AssetFlowerSunflower, a.Type)
		require.Equal(t, 3.0, a.Scale)
		require.InDelta(t, DefaultRadius, a.Position.Norm(), 1e-9)
		phiRatio, thetaRatio := ratiosOf(t, a.Position, 0)
		require.InDelta(t, want[i][0], phiRatio, 1e-9, "asset %d", i)
		require.InDelta(t, want[i][1], thetaRatio, 1e-9, "asset %d", i)
	}
}

func TestPlan_OriginTreeRefactorRing(t *testing.T) {
	p := NewPlanner(DefaultRadius, random.NewFixed(0.4))
	assets, err := p.Plan(commitdomain.TypeRefactor, makeCommits("r", 1, commitdomain.TypeRefactor), domain.ThemeOriginTree, 3)
	require.NoError(t, err)
	require.Len(t, assets, 1)

	require.Equal(t, domain.AssetPathStone, assets[0].Type)
	require.InDelta(t, 0.5+0.4*0.5, assets[0].Scale, 1e-12)
	phiRatio, thetaRatio := ratiosOf(t, assets[0].Position, 3)
	require.InDelta(t, 0.5+0.075, phiRatio, 1e-9)
	require.InDelta(t, 0.5, thetaRatio, 1e-9)
}

func TestPlan_Altitudes(t *testing.T) {
	tests := []struct {
		name     string
		bucket   commitdomain.ChangeType
		theme    domain.Theme
		min, max float64
	}{
		{"floating docs panel", commitdomain.TypeDocs, domain.ThemeFutureCity, 105, 105},
		{"surface signpost", commitdomain.TypeDocs, domain.ThemeOriginTree, 100, 100},
		{"hovering butterfly", commitdomain.TypeChore, domain.ThemeOriginTree, 110, 125},
		{"hovering drone", commitdomain.TypeChore, domain.ThemeFutureCity, 110, 125},
		{"grounded rover", commitdomain.TypeChore, domain.ThemeResearchDome, 100, 100},
		{"hovering spirit", commitdomain.TypeChore, domain.ThemePrimevalForest, 110, 125},
		{"surface mushroom", commitdomain.TypeStyle, domain.ThemePrimevalForest, 100, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPlanner(DefaultRadius, random.NewSeeded(9))
			assets, err := p.Plan(tt.bucket, makeCommits("c", 20, tt.bucket), tt.theme, 5)
			require.NoError(t, err)
			require.Len(t, assets, 20)
			for _, a := range assets {
				r := a.Position.Norm()
				require.GreaterOrEqual(t, r, tt.min-1e-9)
				require.LessOrEqual(t, r, tt.max+1e-9)
			}
		})
	}
}

func TestPlan_Scales(t *testing.T) {
	tests := []struct {
		bucket   commitdomain.ChangeType
		theme    domain.Theme
		min, max float64
	}{
		{commitdomain.TypeFeat, domain.ThemePrimevalForest, 2, 3},
		{commitdomain.TypeFix, domain.ThemeFutureCity, 0.8, 0.8},
		{commitdomain.TypeFix, domain.ThemeResearchDome, 1.0, 1.0},
		{commitdomain.TypeFix, domain.ThemePrimevalForest, 1.0, 2.0},
		{commitdomain.TypeRefactor, domain.ThemeOriginTree, 0.5, 1.0},
		{commitdomain.TypeRefactor, domain.ThemeFutureCity, 1.0, 1.0},
		{commitdomain.TypeRefactor, domain.ThemeResearchDome, 0.8, 0.8},
		{commitdomain.TypeRefactor, domain.ThemePrimevalForest, 1.5, 1.5},
		{commitdomain.TypeDocs, domain.ThemeOriginTree, 0.7, 0.7},
		{commitdomain.TypeDocs, domain.ThemePrimevalForest, 1.5, 1.5},
		{commitdomain.TypeDocs, domain.ThemeResearchDome, 1.0, 1.0},
		{commitdomain.TypeChore, domain.ThemeOriginTree, 0.5, 0.5},
		{commitdomain.TypeChore, domain.ThemeFutureCity, 0.8, 0.8},
		{commitdomain.TypeChore, domain.ThemeResearchDome, 0.7, 0.7},
		{commitdomain.TypeChore, domain.ThemePrimevalForest, 1.0, 1.0},
		{commitdomain.TypeStyle, domain.ThemeOriginTree, 0.6, 0.6},
		{commitdomain.TypeStyle, domain.ThemeFutureCity, 1.2, 1.2},
		{commitdomain.TypeStyle, domain.ThemeResearchDome, 0.8, 0.8},
		{commitdomain.TypeStyle, domain.ThemePrimevalForest, 0.5, 1.5},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%s", tt.bucket, tt.theme), func(t *testing.T) {
			p := NewPlanner(DefaultRadius, random.NewSeeded(11))
			assets, err := p.Plan(tt.bucket, makeCommits("c", 25, tt.bucket), tt.theme, 7)
			require.NoError(t, err)
			for _, a := range assets {
				require.GreaterOrEqual(t, a.Scale, tt.min)
				require.LessOrEqual(t, a.Scale, tt.max)
			}
		})
	}
}

func TestPlan_Invariants(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		bucket := rapid.SampledFrom(commitdomain.ChangeTypes).Draw(rt, "bucket")
		theme := rapid.SampledFrom(domain.Themes).Draw(rt, "theme")
		segment := rapid.IntRange(0, geometry.SegmentCount-1).Draw(rt, "segment")
		n := rapid.IntRange(0, 40).Draw(rt, "n")
		seed := rapid.Int64().Draw(rt, "seed")

		p := NewPlanner(DefaultRadius, random.NewSeeded(seed))
		assets, err := p.Plan(bucket, makeCommits("c", n, bucket), theme, segment)
		if err != nil {
			rt.Fatalf("Plan: %v", err)
		}

		wantCount := n
		if bucket == commitdomain.TypeFeat && theme == domain.ThemeOriginTree {
			wantCount = 1
		}
		if len(assets) != wantCount {
			rt.Fatalf("got %d assets, want %d", len(assets), wantCount)
		}

		b, _ := geometry.Bounds(segment)
		ids := make(map[string]bool, len(assets))
		for _, a := range assets {
			if !(a.Scale > 0) {
				rt.Fatalf("asset %s has non-positive scale %v", a.ID, a.Scale)
			}
			if ids[a.ID] {
				rt.Fatalf("duplicate id %s", a.ID)
			}
			ids[a.ID] = true

			phi, theta := geometry.Angles(a.Position)
			if !b.Contains(phi, theta, 1e-9) {
				rt.Fatalf("asset %s at (phi=%v, theta=%v) outside segment %d", a.ID, phi, theta, segment)
			}
		}
	})
}

func TestPlan_SeededIdempotent(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		bucket := rapid.SampledFrom(commitdomain.ChangeTypes).Draw(rt, "bucket")
		theme := rapid.SampledFrom(domain.Themes).Draw(rt, "theme")
		seed := rapid.Int64().Draw(rt, "seed")
		commits := makeCommits("c", rapid.IntRange(0, 20).Draw(rt, "n"), bucket)

		a, errA := NewPlanner(DefaultRadius, random.NewSeeded(seed)).Plan(bucket, commits, theme, 2)
		b, errB := NewPlanner(DefaultRadius, random.NewSeeded(seed)).Plan(bucket, commits, theme, 2)
		if errA != nil || errB != nil {
			rt.Fatalf("Plan: %v / %v", errA, errB)
		}
		if len(a) != len(b) {
			rt.Fatalf("lengths differ: %d vs %d", len(a), len(b))
		}
		for i := range a {
			if a[i] != b[i] {
				rt.Fatalf("asset %d differs: %+v vs %+v", i, a[i], b[i])
			}
		}
	})
}

func TestStrategy_String(t *testing.T) {
	require.Equal(t, "grid", StrategyGrid.String())
	require.Equal(t, "ring", StrategyRing.String())
	require.Equal(t, "unknown", Strategy(99).String())
}
