package cfg

import (
	"cmp"
	"fmt"
	"log/slog"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Feed configuration
	SourceURL      string   `long:"source-url" env:"SOURCE_URL" default:"https://feeds.megaphone.fm/tnm5702656702" description:"Upstream podcast feed to filter and rebrand"`
	Title          string   `long:"title" env:"FEED_TITLE" default:"The Adventures of Pockets" description:"Title of the published feed"`
	ImageURL       string   `long:"image-url" env:"FEED_IMAGE_URL" default:"https://purplerocketpodcast.com/wp-content/uploads/2022/11/Pockets-Final-Logo-e1685984603306.png" description:"Channel artwork URL"`
	DefaultLink    string   `long:"default-link" env:"FEED_DEFAULT_LINK" default:"https://purplerocketpodcast.com" description:"Link used when the source has none"`
	OutputPath     string   `long:"output" short:"o" env:"OUTPUT_PATH" default:"rss.xml" description:"Path of the rendered feed file"`
	Keywords       []string `long:"keyword" short:"k" env:"FEED_KEYWORDS" env-delim:"," default:"pockets" description:"Keyword an episode must contain (repeatable)"`
	MinMatches     int      `long:"min-matches" env:"MIN_MATCHES" default:"1" description:"Matches required before the keyword filter is applied"`
	Timeout        int      `long:"timeout" env:"FETCH_TIMEOUT" default:"30" description:"Source fetch timeout in seconds"`
	FeedConfigPath string   `long:"feed-config" env:"FEED_CONFIG" description:"Optional YAML or TOML feed definition file"`

	// Serve mode
	Serve        bool   `long:"serve" env:"SERVE" description:"Keep running, rebuild on an interval and serve the feed over HTTP"`
	Port         string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	BaseUrl      string `long:"base-url" env:"BASE_URL" description:"Public base URL for the service (e.g., https://feeds.example.com)"`
	Interval     int    `long:"interval" env:"REBUILD_INTERVAL" default:"3600" description:"Rebuild interval in seconds (0 builds once)"`
	APIAccessKey string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for the rebuild endpoint (optional)"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Podcast Comb/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

// Load parses command-line arguments and environment variables. It returns
// nil and no error when help was requested.
func Load(args []string) (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.ParseArgs(args); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		SourceURL:      raw.SourceURL,
		Title:          raw.Title,
		ImageURL:       raw.ImageURL,
		DefaultLink:    raw.DefaultLink,
		OutputPath:     raw.OutputPath,
		Keywords:       raw.Keywords,
		MinMatches:     raw.MinMatches,
		Timeout:        raw.Timeout,
		FeedConfigPath: raw.FeedConfigPath,
		Serve:          raw.Serve,
		Port:           raw.Port,
		BaseUrl:        raw.BaseUrl,
		Interval:       raw.Interval,
		APIAccessKey:   raw.APIAccessKey,
		UserAgent:      raw.UserAgent,
		Timezone:       raw.Timezone,
		Debug:          raw.Debug,
		Version:        GetVersion(),
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		slog.Warn("Invalid timezone, using system default", "timezone", cfg.Timezone, "error", err)
	}

	return cfg, nil
}

func validate(cfg *Cfg) error {
	if cfg.SourceURL == "" {
		return fmt.Errorf("source URL is required")
	}
	if cfg.OutputPath == "" {
		return fmt.Errorf("output path is required")
	}
	if cfg.MinMatches < 0 {
		return fmt.Errorf("min matches must be non-negative")
	}
	if cfg.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative")
	}
	if cfg.Interval < 0 {
		return fmt.Errorf("interval must be non-negative")
	}
	return nil
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
