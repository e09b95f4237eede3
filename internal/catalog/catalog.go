// Package catalog provides display metadata for planet themes and asset
// types.
//
// The catalogue is embedded at compile time from themes.yaml. It is consumed
// by the UI-facing outputs (text rendering and the themes listing); the
// generation core never depends on it.
package catalog

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"

	"github.com/giterra/giterra/internal/planet/domain"
)

//go:embed themes.yaml
var embedded embed.FS

const catalogFile = "themes.yaml"

// ErrIncomplete indicates the catalogue is missing a theme or asset type.
var ErrIncomplete = errors.New("catalog incomplete")

// ThemeEntry is the display metadata of one theme.
type ThemeEntry struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Color       string `yaml:"color"`
}

// Catalog maps themes and asset types to display metadata.
type Catalog struct {
	Themes map[domain.Theme]ThemeEntry `yaml:"themes"`
	Assets map[domain.AssetType]string `yaml:"assets"`
}

// Load reads the embedded catalogue.
func Load() (*Catalog, error) {
	return LoadFS(embedded)
}

// LoadFS reads themes.yaml from fsys and checks it covers every theme and
// asset type.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	data, err := fs.ReadFile(fsys, catalogFile)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	for _, t := range domain.Themes {
		if _, ok := c.Themes[t]; !ok {
			return nil, fmt.Errorf("%w: theme %s", ErrIncomplete, t)
		}
	}
	for _, a := range domain.AssetTypes {
		if _, ok := c.Assets[a]; !ok {
			return nil, fmt.Errorf("%w: asset %s", ErrIncomplete, a)
		}
	}
	return &c, nil
}

// Theme returns the entry for t.
func (c *Catalog) Theme(t domain.Theme) (ThemeEntry, bool) {
	e, ok := c.Themes[t]
	return e, ok
}

// AssetLabel returns the display label for a, falling back to the raw type.
func (c *Catalog) AssetLabel(a domain.AssetType) string {
	if label, ok := c.Assets[a]; ok {
		return label
	}
	return string(a)
}
