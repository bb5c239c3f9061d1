package builder

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config drives one build run. Usage feeds are processed in listed order.
type Config struct {
	SpawnFile  string      `yaml:"spawn_file"`
	OutFile    string      `yaml:"out_file"`
	TierFeed   string      `yaml:"tier_feed"`
	UsageFeeds []UsageFeed `yaml:"usage_feeds"`
	SpeciesAPI string      `yaml:"species_api"`
	Enrich     bool        `yaml:"enrich"`
}

// LoadConfig reads and validates a builder config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.SpawnFile == "" {
		return nil, fmt.Errorf("config is missing spawn_file")
	}
	if cfg.OutFile == "" {
		cfg.OutFile = "dex.json"
	}
	return &cfg, nil
}
