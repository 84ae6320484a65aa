package feed

import (
	"bytes"
	"cmp"
	"log/slog"
	"strings"

	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"
)

type Parser struct {
	gofeedParser *gofeed.Parser
}

func NewParser() *Parser {
	return &Parser{
		gofeedParser: gofeed.NewParser(),
	}
}

// Run never fails: a document gofeed cannot read yields empty metadata and
// no entries.
func (p *Parser) Run(data []byte) (ChannelMeta, []SourceEntry) {
	feed, err := p.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		slog.Warn("Malformed source feed, continuing with no entries", "error", err)
		return ChannelMeta{}, nil
	}

	meta := ChannelMeta{
		Title:       feed.Title,
		Link:        feed.Link,
		Description: feed.Description,
	}

	if feed.ITunesExt != nil {
		meta.Subtitle = feed.ITunesExt.Subtitle
	}

	entries := make([]SourceEntry, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		entries = append(entries, p.normalizeItem(item))
	}

	return meta, entries
}

func (p *Parser) normalizeItem(item *gofeed.Item) SourceEntry {
	entry := SourceEntry{
		Title:           item.Title,
		Link:            item.Link,
		Summary:         item.Description,
		Categories:      item.Categories,
		PublishedParsed: item.PublishedParsed,
		UpdatedParsed:   item.UpdatedParsed,
		Published:       item.Published,
		PubDate:         item.Custom["pubDate"],
		Updated:         item.Updated,
		ID:              item.GUID,
		GUID:            item.Custom["guid"],
	}

	if item.ITunesExt != nil {
		entry.Summary = cmp.Or(entry.Summary, item.ITunesExt.Summary)
		entry.Subtitle = item.ITunesExt.Subtitle
		entry.ITunesDuration = strings.TrimSpace(item.ITunesExt.Duration)
	}

	entry.ITunesDurationRaw = p.extensionValue(item.Extensions, "itunes", "duration")

	for _, enclosure := range item.Enclosures {
		if enclosure == nil {
			continue
		}
		entry.Enclosures = append(entry.Enclosures, SourceEnclosure{
			Href:   strings.TrimSpace(enclosure.URL),
			Type:   strings.TrimSpace(enclosure.Type),
			Length: strings.TrimSpace(enclosure.Length),
		})
	}

	return entry
}

func (p *Parser) extensionValue(extensions ext.Extensions, namespace, name string) string {
	elements := extensions[namespace][name]
	if len(elements) == 0 {
		return ""
	}
	return strings.TrimSpace(elements[0].Value)
}
