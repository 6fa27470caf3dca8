// Package config loads the generation configuration file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the file-level configuration surface of the generator.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Output   OutputConfig   `yaml:"output"`
}

// DatabaseConfig configures the schema-fetch side.
type DatabaseConfig struct {
	// Dialect overrides connection-string detection: postgres, mysql or
	// sqlite.
	Dialect string `yaml:"dialect,omitempty"`
	// URL is the connection string. The DATABASE_URL environment
	// variable takes precedence when set.
	URL string `yaml:"url,omitempty"`
	// Schema is the catalog schema to introspect.
	Schema string `yaml:"schema,omitempty"`
	// Exclude lists table names that never reach the generator.
	Exclude []string `yaml:"exclude,omitempty"`
}

// OutputConfig configures the code-emission side.
type OutputConfig struct {
	Dir      string `yaml:"dir,omitempty"`
	Package  string `yaml:"package,omitempty"`
	Header   string `yaml:"header,omitempty"`
	Singular bool   `yaml:"singular,omitempty"`
	// Strict fails generation on unclassified native types instead of
	// degrading them to custom placeholders.
	Strict bool `yaml:"strict,omitempty"`
	// StructTag is the tag key emitted on struct fields, e.g. "db".
	StructTag string `yaml:"struct_tag,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Dir:     "./models",
			Package: "models",
		},
	}
}

// Load reads and parses the configuration file, layering it over Default.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// ConnectionString resolves the database URL, preferring the DATABASE_URL
// environment variable over the file value.
func (d *DatabaseConfig) ConnectionString() (string, error) {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url, nil
	}
	if d.URL == "" {
		return "", fmt.Errorf("config: no database url provided; set database.url or the DATABASE_URL environment variable")
	}
	return d.URL, nil
}
