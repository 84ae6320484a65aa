package feed

import (
	"log/slog"
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

type Selector struct {
	normalizer *DateNormalizer
}

func NewSelector(normalizer *DateNormalizer) *Selector {
	return &Selector{normalizer: normalizer}
}

// Run keeps the entries matching any keyword, or every entry when fewer than
// minMatches match, and orders them oldest first. Ties keep source order.
func (s *Selector) Run(entries []SourceEntry, keywords []string, minMatches int) Selection {
	minMatches = max(minMatches, 1)
	patterns := foldKeywords(keywords)

	matched := make([]SourceEntry, 0, len(entries))
	for _, entry := range entries {
		if s.matches(entry, patterns) {
			matched = append(matched, entry)
		}
	}

	kept := matched
	fallback := len(matched) < minMatches
	if fallback {
		kept = entries
		slog.Info("Keyword filter below threshold, publishing all entries",
			"matched", len(matched),
			"min_matches", minMatches,
			"total", len(entries))
	}

	episodes := make([]Episode, 0, len(kept))
	for _, entry := range kept {
		episodes = append(episodes, Episode{
			Date:  s.normalizer.Run(entry),
			Entry: entry,
		})
	}

	slices.SortStableFunc(episodes, func(a, b Episode) int {
		return a.Date.Time.Compare(b.Date.Time)
	})

	return Selection{
		Episodes: episodes,
		Matched:  len(matched),
		Fallback: fallback,
	}
}

func (s *Selector) matches(entry SourceEntry, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}

	haystack := fold(strings.Join([]string{
		entry.Title,
		entry.Summary,
		entry.Subtitle,
		strings.Join(entry.Categories, " "),
	}, " "))

	for _, pattern := range patterns {
		if strings.Contains(haystack, pattern) {
			return true
		}
	}

	return false
}

// Blank keywords would match everything and are ignored.
func foldKeywords(keywords []string) []string {
	patterns := make([]string, 0, len(keywords))
	for _, keyword := range keywords {
		keyword = strings.TrimSpace(keyword)
		if keyword == "" {
			continue
		}
		patterns = append(patterns, fold(keyword))
	}
	return patterns
}

// cases.Caser keeps state, so each call gets its own.
func fold(s string) string {
	return cases.Fold().String(s)
}
