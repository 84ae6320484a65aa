package feed

import (
	"strings"
	"testing"
	"time"
)

func fixedNormalizer(now time.Time) *DateNormalizer {
	return &DateNormalizer{now: func() time.Time { return now }}
}

func TestDateNormalizer_PublishedParsed(t *testing.T) {
	normalizer := NewDateNormalizer()

	published := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	updated := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	entry := SourceEntry{
		PublishedParsed: &published,
		UpdatedParsed:   &updated,
		Published:       "Tue, 05 Mar 2024 10:00:00 +0000",
	}

	date := normalizer.Run(entry)

	if date.Time.Unix() != published.Unix() {
		t.Errorf("Expected timestamp %d, got %d", published.Unix(), date.Time.Unix())
	}
	if date.RFC2822 != "Mon, 01 Jan 2024 00:00:00 +0000" {
		t.Errorf("Expected 'Mon, 01 Jan 2024 00:00:00 +0000', got '%s'", date.RFC2822)
	}
}

func TestDateNormalizer_PublishedParsedIsConvertedToUTC(t *testing.T) {
	normalizer := NewDateNormalizer()

	zone := time.FixedZone("EST", -5*60*60)
	published := time.Date(2024, 1, 1, 19, 30, 0, 0, zone)
	date := normalizer.Run(SourceEntry{PublishedParsed: &published})

	if !date.Time.Equal(published) {
		t.Errorf("Expected instant %v, got %v", published, date.Time)
	}
	if date.RFC2822 != "Tue, 02 Jan 2024 00:30:00 +0000" {
		t.Errorf("Expected 'Tue, 02 Jan 2024 00:30:00 +0000', got '%s'", date.RFC2822)
	}
}

func TestDateNormalizer_UpdatedParsed(t *testing.T) {
	normalizer := NewDateNormalizer()

	updated := time.Date(2023, 7, 3, 10, 0, 0, 0, time.UTC)
	date := normalizer.Run(SourceEntry{
		UpdatedParsed: &updated,
		Published:     "Tue, 05 Mar 2024 10:00:00 +0000",
	})

	if date.Time.Unix() != updated.Unix() {
		t.Errorf("Expected updated timestamp %d, got %d", updated.Unix(), date.Time.Unix())
	}
	if date.RFC2822 != "Mon, 03 Jul 2023 10:00:00 +0000" {
		t.Errorf("Expected 'Mon, 03 Jul 2023 10:00:00 +0000', got '%s'", date.RFC2822)
	}
}

func TestDateNormalizer_RawStrings(t *testing.T) {
	tests := []struct {
		name  string
		entry SourceEntry
		want  string
		unix  int64
	}{
		{
			name:  "published string",
			entry: SourceEntry{Published: "Tue, 05 Mar 2024 10:00:00 +0000"},
			want:  "Tue, 05 Mar 2024 10:00:00 +0000",
			unix:  time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC).Unix(),
		},
		{
			name:  "offset is kept",
			entry: SourceEntry{Published: "Tue, 05 Mar 2024 10:00:00 -0500"},
			want:  "Tue, 05 Mar 2024 10:00:00 -0500",
			unix:  time.Date(2024, 3, 5, 15, 0, 0, 0, time.UTC).Unix(),
		},
		{
			name:  "pubDate string after bad published",
			entry: SourceEntry{Published: "not a date", PubDate: "2024-03-06T08:00:00Z"},
			want:  "Wed, 06 Mar 2024 08:00:00 +0000",
			unix:  time.Date(2024, 3, 6, 8, 0, 0, 0, time.UTC).Unix(),
		},
		{
			name:  "updated string only",
			entry: SourceEntry{Updated: "2023-06-01T00:00:00Z"},
			want:  "Thu, 01 Jun 2023 00:00:00 +0000",
			unix:  time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC).Unix(),
		},
		{
			name:  "zoneless string is read as UTC",
			entry: SourceEntry{Updated: "2023-06-01 12:00:00"},
			want:  "Thu, 01 Jun 2023 12:00:00 +0000",
			unix:  time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC).Unix(),
		},
	}

	normalizer := NewDateNormalizer()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date := normalizer.Run(tt.entry)
			if date.RFC2822 != tt.want {
				t.Errorf("Expected '%s', got '%s'", tt.want, date.RFC2822)
			}
			if date.Time.Unix() != tt.unix {
				t.Errorf("Expected timestamp %d, got %d", tt.unix, date.Time.Unix())
			}
		})
	}
}

func TestDateNormalizer_NoDateFallsBackToNow(t *testing.T) {
	now := time.Date(2025, 5, 4, 3, 2, 1, 0, time.FixedZone("CEST", 2*60*60))
	normalizer := fixedNormalizer(now)

	date := normalizer.Run(SourceEntry{Title: "No dates"})

	if !date.Time.Equal(now) {
		t.Errorf("Expected now %v, got %v", now, date.Time)
	}
	if date.RFC2822 != "Sun, 04 May 2025 01:02:01 +0000" {
		t.Errorf("Expected 'Sun, 04 May 2025 01:02:01 +0000', got '%s'", date.RFC2822)
	}
}

func TestDateNormalizer_UnparseableStringsFallBackToNow(t *testing.T) {
	normalizer := NewDateNormalizer()

	before := time.Now()
	date := normalizer.Run(SourceEntry{
		Published: "not a date",
		PubDate:   "also not a date",
		Updated:   "still not a date",
	})
	after := time.Now()

	if date.Time.Before(before.Add(-time.Second)) || date.Time.After(after.Add(time.Second)) {
		t.Errorf("Expected timestamp close to now, got %v", date.Time)
	}
	if !strings.HasSuffix(date.RFC2822, "+0000") {
		t.Errorf("Expected '+0000' suffix, got '%s'", date.RFC2822)
	}
}

func TestDateNormalizer_ZeroParsedTimeIsSkipped(t *testing.T) {
	normalizer := NewDateNormalizer()

	var zero time.Time
	date := normalizer.Run(SourceEntry{
		PublishedParsed: &zero,
		Updated:         "2023-06-01T00:00:00Z",
	})

	if date.RFC2822 != "Thu, 01 Jun 2023 00:00:00 +0000" {
		t.Errorf("Expected updated string to win over zero time, got '%s'", date.RFC2822)
	}
}
