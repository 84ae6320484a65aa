package feed

import (
	"time"
)

const (
	DefaultTitle         = "The Adventures of Pockets"
	DefaultImageURL      = "https://purplerocketpodcast.com/wp-content/uploads/2022/11/Pockets-Final-Logo-e1685984603306.png"
	DefaultLink          = "https://purplerocketpodcast.com"
	DefaultEnclosureType = "audio/mpeg"
	UntitledItem         = "Untitled"
)

// Pipeline configuration

type Config struct {
	Name        string // Used in logs only
	SourceURL   string
	Title       string
	ImageURL    string
	DefaultLink string
	OutputPath  string
	Keywords    []string
	MinMatches  int
	Timeout     time.Duration
}

// Source feed types

type ChannelMeta struct {
	Title       string
	Link        string
	Subtitle    string
	Description string
}

type SourceEnclosure struct {
	Href   string
	Type   string
	Length string
}

// SourceEntry is one upstream episode. Empty strings and nil pointers mean
// the field was absent in the source document.
type SourceEntry struct {
	Title      string
	Link       string
	Summary    string
	Subtitle   string
	Categories []string

	PublishedParsed *time.Time
	UpdatedParsed   *time.Time
	Published       string
	PubDate         string
	Updated         string

	ID         string
	GUID       string
	Enclosures []SourceEnclosure

	ITunesDuration    string // typed iTunes extension ("itunes_duration")
	ITunesDurationRaw string // raw extension element ("itunes:duration")
}

// NormalizedDate holds one instant in two forms. Both are always derived
// from the same source value.
type NormalizedDate struct {
	Time    time.Time
	RFC2822 string
}

type Episode struct {
	Date  NormalizedDate
	Entry SourceEntry
}

type Selection struct {
	Episodes []Episode // Ascending by Date.Time
	Matched  int       // Entries that matched the keywords
	Fallback bool      // True when every source entry was kept
}

// Output feed types

type OutputEnclosure struct {
	URL    string
	Type   string
	Length string
}

type OutputItem struct {
	Title           string
	Link            string
	Description     string
	PubDate         string
	GUID            string
	GUIDIsPermaLink bool
	Enclosure       *OutputEnclosure
	Duration        string
}

type OutputChannel struct {
	Title       string
	Link        string
	Description string
	ImageURL    string
	Items       []OutputItem
}
