package domain

import (
	"fmt"

	"github.com/golang/geo/r3"

	commitdomain "github.com/giterra/giterra/internal/commits/domain"
)

// AssetType names the object a renderer should draw.
type AssetType string

const (
	AssetTreeWorld       AssetType = "TREE_WORLD"
	AssetBuildingGlass   AssetType = "BUILDING_GLASS"
	AssetBuildingSolid   AssetType = "BUILDING_SOLID"
	AssetTreeAncient     AssetType = "TREE_ANCIENT"
	AssetFlowerSunflower AssetType = "FLOWER_SUNFLOWER"
	AssetTreeHologram    AssetType = "TREE_HOLOGRAM"
	AssetDefenseTurret   AssetType = "DEFENSE_TURRET"
	AssetRockMoss        AssetType = "ROCK_MOSS"
	AssetPathStone       AssetType = "PATH_STONE"
	AssetPathNeon        AssetType = "PATH_NEON"
	AssetPathMetal       AssetType = "PATH_METAL"
	AssetPathRoot        AssetType = "PATH_ROOT"
	AssetDocsSignpost    AssetType = "DOCS_SIGNPOST"
	AssetDocsMonolith    AssetType = "DOCS_MONOLITH"
	AssetDocsPanel       AssetType = "DOCS_PANEL"
	AssetDocsAntenna     AssetType = "DOCS_ANTENNA"
	AssetDecoButterfly   AssetType = "DECO_BUTTERFLY"
	AssetDecoDrone       AssetType = "DECO_DRONE"
	AssetDecoRover       AssetType = "DECO_ROVER"
	AssetDecoSpirit      AssetType = "DECO_SPIRIT"
	AssetDecoFence       AssetType = "DECO_FENCE"
	AssetDecoStreetlamp  AssetType = "DECO_STREETLAMP"
	AssetDecoSupplyBox   AssetType = "DECO_SUPPLY_BOX"
	AssetDecoMushroom    AssetType = "DECO_MUSHROOM"
)

// AssetTypes lists every asset type.
var AssetTypes = []AssetType{
	AssetTreeWorld,
	AssetBuildingGlass,
	AssetBuildingSolid,
	AssetTreeAncient,
	AssetFlowerSunflower,
	AssetTreeHologram,
	AssetDefenseTurret,
	AssetRockMoss,
	AssetPathStone,
	AssetPathNeon,
	AssetPathMetal,
	AssetPathRoot,
	AssetDocsSignpost,
	AssetDocsMonolith,
	AssetDocsPanel,
	AssetDocsAntenna,
	AssetDecoButterfly,
	AssetDecoDrone,
	AssetDecoRover,
	AssetDecoSpirit,
	AssetDecoFence,
	AssetDecoStreetlamp,
	AssetDecoSupplyBox,
	AssetDecoMushroom,
}

// CombinedFeatsID is the source commit id of the collapsed origin tree.
const CombinedFeatsID = "combined-feats"

// AssetDescriptor is one placed, typed and scaled object.
type AssetDescriptor struct {
	ID             string    `json:"id" yaml:"id"`
	Type           AssetType `json:"type" yaml:"type"`
	Position       r3.Vector `json:"position" yaml:"position"`
	Scale          float64   `json:"scale" yaml:"scale"`
	SourceCommitID string    `json:"sourceCommitId" yaml:"source_commit_id"`
}

// AssetID builds the descriptor id for a commit in bucket on segment.
func AssetID(bucket commitdomain.ChangeType, segment int, commitID string) string {
	return fmt.Sprintf("%s-%d-%s", bucket, segment, commitID)
}

// OriginTreeID is the id of the collapsed world tree on segment.
func OriginTreeID(segment int) string {
	return fmt.Sprintf("origin-tree-%d", segment)
}

// Stats summarizes the commits behind a segment.
type Stats struct {
	FeatCount  int `json:"featCount" yaml:"feat_count"`
	FixCount   int `json:"fixCount" yaml:"fix_count"`
	TotalCount int `json:"totalCount" yaml:"total_count"`
}

// PlanetSegmentConfig is the generated layout of one segment.
type PlanetSegmentConfig struct {
	Segment int               `json:"segment" yaml:"segment"`
	Seed    int64             `json:"seed" yaml:"seed"`
	Theme   Theme             `json:"theme" yaml:"theme"`
	Assets  []AssetDescriptor `json:"assets" yaml:"assets"`
	Stats   Stats             `json:"stats" yaml:"stats"`
}
