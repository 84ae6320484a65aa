package config

// FeedDefinition is the on-disk description of the published feed
type FeedDefinition struct {
	Feed     FeedInfo     `yaml:"feed" toml:"feed"`
	Settings FeedSettings `yaml:"settings" toml:"settings"`
	Keywords []string     `yaml:"keywords" toml:"keywords"`
}

// FeedInfo names the source and the identity it is republished under
type FeedInfo struct {
	Name        string `yaml:"name" toml:"name"`
	URL         string `yaml:"url" toml:"url"`
	Title       string `yaml:"title" toml:"title"`
	ImageURL    string `yaml:"image_url" toml:"image_url"`
	DefaultLink string `yaml:"default_link" toml:"default_link"`
	Output      string `yaml:"output" toml:"output"`
}

type FeedSettings struct {
	MinMatches int `yaml:"min_matches" toml:"min_matches"`
	Timeout    int `yaml:"timeout" toml:"timeout"` // seconds
}
