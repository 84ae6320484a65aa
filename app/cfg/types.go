package cfg

import (
	"strings"
	"time"

	"github.com/lysyi3m/podcast-comb/app/feed"
)

type Cfg struct {
	// Feed configuration
	SourceURL      string
	Title          string
	ImageURL       string
	DefaultLink    string
	OutputPath     string
	Keywords       []string
	MinMatches     int
	Timeout        int
	FeedConfigPath string

	// Serve mode
	Serve        bool
	Port         string
	BaseUrl      string
	Interval     int
	APIAccessKey string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}

// FeedConfig returns the pipeline settings held by the process configuration.
func (c *Cfg) FeedConfig() *feed.Config {
	return &feed.Config{
		Name:        "default",
		SourceURL:   c.SourceURL,
		Title:       c.Title,
		ImageURL:    c.ImageURL,
		DefaultLink: c.DefaultLink,
		OutputPath:  c.OutputPath,
		Keywords:    append([]string(nil), c.Keywords...),
		MinMatches:  c.MinMatches,
		Timeout:     time.Duration(c.Timeout) * time.Second,
	}
}

// SelfURL is the public address of the served feed, empty when no base URL
// is configured.
func (c *Cfg) SelfURL() string {
	if c.BaseUrl == "" {
		return ""
	}
	return strings.TrimRight(c.BaseUrl, "/") + "/feed.xml"
}
