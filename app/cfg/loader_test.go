package cfg

import (
	"reflect"
	"testing"
	"time"
)

func TestGetVersion(t *testing.T) {
	// Test default version
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}

	version := GetVersion()
	if version != "dev" && version != "unknown" {
		// This is fine, version could be set at build time
		t.Logf("Version: %s", version)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load([]string{})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if cfg.SourceURL != "https://feeds.megaphone.fm/tnm5702656702" {
		t.Errorf("Expected default source URL, got '%s'", cfg.SourceURL)
	}
	if cfg.Title != "The Adventures of Pockets" {
		t.Errorf("Expected default title, got '%s'", cfg.Title)
	}
	if cfg.OutputPath != "rss.xml" {
		t.Errorf("Expected output 'rss.xml', got '%s'", cfg.OutputPath)
	}
	if !reflect.DeepEqual(cfg.Keywords, []string{"pockets"}) {
		t.Errorf("Expected keywords [pockets], got %v", cfg.Keywords)
	}
	if cfg.MinMatches != 1 {
		t.Errorf("Expected min matches 1, got %d", cfg.MinMatches)
	}
	if cfg.Timeout != 30 {
		t.Errorf("Expected timeout 30, got %d", cfg.Timeout)
	}
	if cfg.Serve {
		t.Error("Serve mode should be off by default")
	}
	if cfg.Version == "" {
		t.Error("Expected version to be set")
	}
}

func TestLoadFlags(t *testing.T) {
	cfg, err := Load([]string{
		"--source-url", "https://example.com/feed.xml",
		"--title", "My Show",
		"-k", "alpha",
		"--keyword", "beta",
		"--min-matches", "3",
		"--timeout", "5",
		"-o", "out/feed.xml",
		"--serve",
		"--base-url", "https://feeds.example.com/",
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if cfg.SourceURL != "https://example.com/feed.xml" {
		t.Errorf("Expected source URL override, got '%s'", cfg.SourceURL)
	}
	if !reflect.DeepEqual(cfg.Keywords, []string{"alpha", "beta"}) {
		t.Errorf("Expected keywords [alpha beta], got %v", cfg.Keywords)
	}
	if !cfg.Serve {
		t.Error("Expected serve mode")
	}
	if cfg.SelfURL() != "https://feeds.example.com/feed.xml" {
		t.Errorf("Expected self URL, got '%s'", cfg.SelfURL())
	}

	feedConfig := cfg.FeedConfig()
	if feedConfig.Title != "My Show" {
		t.Errorf("Expected title 'My Show', got '%s'", feedConfig.Title)
	}
	if feedConfig.MinMatches != 3 {
		t.Errorf("Expected min matches 3, got %d", feedConfig.MinMatches)
	}
	if feedConfig.Timeout != 5*time.Second {
		t.Errorf("Expected timeout 5s, got %v", feedConfig.Timeout)
	}
	if feedConfig.OutputPath != "out/feed.xml" {
		t.Errorf("Expected output 'out/feed.xml', got '%s'", feedConfig.OutputPath)
	}
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("FEED_KEYWORDS", "one,two")
	t.Setenv("MIN_MATCHES", "2")

	cfg, err := Load([]string{})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if !reflect.DeepEqual(cfg.Keywords, []string{"one", "two"}) {
		t.Errorf("Expected keywords [one two], got %v", cfg.Keywords)
	}
	if cfg.MinMatches != 2 {
		t.Errorf("Expected min matches 2, got %d", cfg.MinMatches)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := [][]string{
		{"--min-matches", "-1"},
		{"--timeout", "-5"},
		{"--source-url", ""},
		{"--no-such-flag"},
	}

	for _, args := range tests {
		if _, err := Load(args); err == nil {
			t.Errorf("Expected error for %v", args)
		}
	}
}

func TestSelfURLWithoutBaseURL(t *testing.T) {
	cfg := &Cfg{}
	if cfg.SelfURL() != "" {
		t.Errorf("Expected empty self URL, got '%s'", cfg.SelfURL())
	}
}
