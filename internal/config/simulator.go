package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/udisondev/dungeonrpg/internal/battle"
	"github.com/udisondev/dungeonrpg/internal/spawn"
)

var ErrInvalid = errors.New("invalid config")

// Simulator holds all configuration for the battle simulator.
type Simulator struct {
	LogLevel   string             `yaml:"log_level" env:"DUNGEON_LOG_LEVEL"`
	Difficulty spawn.Difficulty   `yaml:"difficulty" env:"DUNGEON_DIFFICULTY"`
	BossChance float64            `yaml:"boss_chance" env:"DUNGEON_BOSS_CHANCE"`
	Escape     battle.SpeedEscape `yaml:"escape"`

	// ContentPath is the YAML content file. Empty uses the embedded set.
	ContentPath     string   `yaml:"content_path" env:"DUNGEON_CONTENT"`
	CompletedQuests []string `yaml:"completed_quests" env:"DUNGEON_COMPLETED_QUESTS" envSeparator:","`

	Simulation Simulation     `yaml:"simulation"`
	Database   DatabaseConfig `yaml:"database"`
}

// Simulation controls the batch of battles to run.
type Simulation struct {
	Battles     int `yaml:"battles" env:"DUNGEON_BATTLES"`
	Parallelism int `yaml:"parallelism" env:"DUNGEON_PARALLELISM"`

	// Seed makes runs reproducible. Zero draws a random seed.
	Seed        uint64 `yaml:"seed" env:"DUNGEON_SEED"`
	Location    string `yaml:"location" env:"DUNGEON_LOCATION"`
	PlayerClass string `yaml:"player_class" env:"DUNGEON_CLASS"`
	PlayerName  string `yaml:"player_name" env:"DUNGEON_PLAYER"`
	Level       int    `yaml:"level" env:"DUNGEON_LEVEL"`
	MaxRounds   int    `yaml:"max_rounds" env:"DUNGEON_MAX_ROUNDS"`
	// Autopilot drives the player through the human command path instead
	// of handing it to the AI.
	Autopilot bool `yaml:"autopilot" env:"DUNGEON_AUTOPILOT"`
}

// DefaultSimulator returns Simulator config with sensible defaults.
func DefaultSimulator() Simulator {
	return Simulator{
		LogLevel:   "info",
		Difficulty: spawn.Normal,
		BossChance: spawn.DefaultBossChance,
		Escape:     battle.DefaultEscapePolicy(),
		Simulation: Simulation{
			Battles:     10,
			Parallelism: 4,
			Location:    "forest",
			PlayerClass: "warrior",
			PlayerName:  "Hero",
			Level:       1,
			MaxRounds:   50,
			Autopilot:   true,
		},
		Database: DefaultDatabase(),
	}
}

// LoadSimulator reads the YAML file at path over the defaults, then applies
// environment overrides. A missing file is not an error.
func LoadSimulator(path string) (Simulator, error) {
	cfg := DefaultSimulator()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parsing config %s: %w", path, err)
			}
		case os.IsNotExist(err):
		default:
			return cfg, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Simulator) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log_level %q", ErrInvalid, c.LogLevel)
	}
	if c.BossChance < 0 || c.BossChance > 1 {
		return fmt.Errorf("%w: boss_chance %.2f outside [0, 1]", ErrInvalid, c.BossChance)
	}
	if c.Escape.Min > c.Escape.Max {
		return fmt.Errorf("%w: escape min %.2f above max %.2f", ErrInvalid, c.Escape.Min, c.Escape.Max)
	}
	s := c.Simulation
	if s.Battles < 1 {
		return fmt.Errorf("%w: battles must be positive", ErrInvalid)
	}
	if s.Parallelism < 1 {
		return fmt.Errorf("%w: parallelism must be positive", ErrInvalid)
	}
	if s.Level < 1 {
		return fmt.Errorf("%w: level must be positive", ErrInvalid)
	}
	if s.MaxRounds < 1 {
		return fmt.Errorf("%w: max_rounds must be positive", ErrInvalid)
	}
	if s.Location == "" || s.PlayerClass == "" {
		return fmt.Errorf("%w: location and player_class are required", ErrInvalid)
	}
	return nil
}
