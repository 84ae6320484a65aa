package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/lysyi3m/podcast-comb/app/feed"
)

// Loader reads a feed definition from a YAML or TOML file
type Loader struct{}

func NewLoader() *Loader {
	return &Loader{}
}

// Load reads, decodes and validates the definition at path. The format is
// picked from the file extension.
func (l *Loader) Load(path string) (*FeedDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var definition FeedDefinition

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yml", ".yaml":
		if err := yaml.Unmarshal(data, &definition); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), &definition); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported feed definition format %q", ext)
	}

	if definition.Feed.Name == "" {
		definition.Feed.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	if err := l.validate(&definition); err != nil {
		return nil, fmt.Errorf("invalid feed definition %s: %w", path, err)
	}

	slog.Debug("Loaded feed definition", "path", path, "feed", definition.Feed.Name)

	return &definition, nil
}

func (l *Loader) validate(definition *FeedDefinition) error {
	if definition.Feed.URL == "" {
		return fmt.Errorf("feed URL is required")
	}
	if definition.Settings.MinMatches < 0 {
		return fmt.Errorf("min matches must be non-negative")
	}
	if definition.Settings.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative")
	}
	for i, keyword := range definition.Keywords {
		if strings.TrimSpace(keyword) == "" {
			return fmt.Errorf("keyword at index %d is empty", i)
		}
	}
	return nil
}

// ApplyTo overrides feedConfig with every value the definition sets
func (d *FeedDefinition) ApplyTo(feedConfig *feed.Config) {
	feedConfig.Name = d.Feed.Name
	feedConfig.SourceURL = d.Feed.URL

	if d.Feed.Title != "" {
		feedConfig.Title = d.Feed.Title
	}
	if d.Feed.ImageURL != "" {
		feedConfig.ImageURL = d.Feed.ImageURL
	}
	if d.Feed.DefaultLink != "" {
		feedConfig.DefaultLink = d.Feed.DefaultLink
	}
	if d.Feed.Output != "" {
		feedConfig.OutputPath = d.Feed.Output
	}
	if len(d.Keywords) > 0 {
		feedConfig.Keywords = append([]string(nil), d.Keywords...)
	}
	if d.Settings.MinMatches > 0 {
		feedConfig.MinMatches = d.Settings.MinMatches
	}
	if d.Settings.Timeout > 0 {
		feedConfig.Timeout = time.Duration(d.Settings.Timeout) * time.Second
	}
}
