// Package data loads the static game content: enemy and class templates,
// skill definitions and locations.
//
// Content is YAML. A default set is embedded in the binary.
package data

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/dungeonrpg/internal/skill"
)

//go:embed defaults.yaml
var defaultSet []byte

// Location is an area encounters are rolled in.
type Location struct {
	Name string `yaml:"name"`
	// Enemies are template aliases regular encounters pick from.
	Enemies []string `yaml:"enemies"`
	// PackSize is the number of enemies per regular encounter. Zero means one.
	PackSize int `yaml:"pack_size"`
	// Boss is the boss alias, unlocked once BossQuest is completed. An empty
	// BossQuest means the boss is always eligible.
	Boss      string `yaml:"boss"`
	BossQuest string `yaml:"boss_quest"`
}

// Pack returns the regular encounter size.
func (l *Location) Pack() int {
	return max(l.PackSize, 1)
}

// Set is one content file.
type Set struct {
	// Tags are extra effect tags the content defines. They are registered
	// before skills are built.
	Tags      []string           `yaml:"tags"`
	Skills    []skill.Definition `yaml:"skills"`
	Enemies   []Template         `yaml:"enemies"`
	Classes   []Template         `yaml:"classes"`
	Locations []Location         `yaml:"locations"`
}

// Parse decodes a content set.
func Parse(raw []byte) (*Set, error) {
	var s Set
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("parsing content: %w", err)
	}
	return &s, nil
}

// LoadFile reads a content set from path. An empty path loads the embedded
// defaults.
func LoadFile(path string) (*Set, error) {
	if path == "" {
		return Default()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Warn("content file not found, using embedded defaults", "path", path)
			return Default()
		}
		return nil, fmt.Errorf("reading content %s: %w", path, err)
	}
	s, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Default returns the embedded content set.
func Default() (*Set, error) {
	return Parse(defaultSet)
}
