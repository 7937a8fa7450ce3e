// Package config loads the battle simulator configuration.
package config

import "fmt"

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled" env:"DUNGEON_DB_ENABLED"`
	URL      string `yaml:"url" env:"DUNGEON_DB_DSN"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password" env:"DUNGEON_DB_PASSWORD"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
	// Migrate applies the embedded migrations on startup.
	Migrate bool `yaml:"migrate"`
	// SeedTemplates upserts the loaded enemy templates into the database
	// and reads them back from there.
	SeedTemplates bool `yaml:"seed_templates"`
}

// DSN returns the PostgreSQL connection string. URL wins when set.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// DefaultDatabase returns local development settings, disabled.
func DefaultDatabase() DatabaseConfig {
	return DatabaseConfig{
		Host:          "localhost",
		Port:          5432,
		User:          "dungeon",
		Password:      "dungeon",
		DBName:        "dungeon",
		SSLMode:       "disable",
		Migrate:       true,
		SeedTemplates: true,
	}
}
