// Package render writes generated planet segments in the supported output
// formats.
package render

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/giterra/giterra/internal/catalog"
	"github.com/giterra/giterra/internal/config"
	"github.com/giterra/giterra/internal/planet/domain"
)

// Position is the wire form of an asset position.
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// Asset is the wire form of an AssetDescriptor.
type Asset struct {
	ID             string           `json:"id" yaml:"id"`
	Type           domain.AssetType `json:"assetType" yaml:"asset_type"`
	Position       Position         `json:"position" yaml:"position"`
	Scale          float64          `json:"scale" yaml:"scale"`
	SourceCommitID string           `json:"sourceCommitId" yaml:"source_commit_id"`
}

// Segment is the wire form of a PlanetSegmentConfig consumed by renderers
// and UI layers.
type Segment struct {
	Segment   int          `json:"segment" yaml:"segment"`
	Seed      int64        `json:"seed" yaml:"seed"`
	Theme     domain.Theme `json:"theme" yaml:"theme"`
	ThemeName string       `json:"themeName,omitempty" yaml:"theme_name,omitempty"`
	Assets    []Asset      `json:"assets" yaml:"assets"`
	Stats     domain.Stats `json:"stats" yaml:"stats"`
}

// NewSegment converts cfg to its wire form. cat may be nil.
func NewSegment(cfg domain.PlanetSegmentConfig, cat *catalog.Catalog) Segment {
	out := Segment{
		Segment: cfg.Segment,
		Seed:    cfg.Seed,
		Theme:   cfg.Theme,
		Assets:  make([]Asset, 0, len(cfg.Assets)),
		Stats:   cfg.Stats,
	}
	if cat != nil {
		if entry, ok := cat.Theme(cfg.Theme); ok {
			out.ThemeName = entry.Name
		}
	}
	for _, a := range cfg.Assets {
		out.Assets = append(out.Assets, Asset{
			ID:             a.ID,
			Type:           a.Type,
			Position:       Position{X: a.Position.X, Y: a.Position.Y, Z: a.Position.Z},
			Scale:          a.Scale,
			SourceCommitID: a.SourceCommitID,
		})
	}
	return out
}

// Write renders cfg to w in format. cat supplies display names and may be
// nil for json and yaml.
func Write(w io.Writer, cfg domain.PlanetSegmentConfig, format string, cat *catalog.Catalog) error {
	switch format {
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(NewSegment(cfg, cat))
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(NewSegment(cfg, cat)); err != nil {
			return err
		}
		return enc.Close()
	case config.FormatText:
		_, err := io.WriteString(w, Text(cfg, cat)+"\n")
		return err
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}
