package feed

import (
	"cmp"
	"strconv"
)

type Assembler struct {
	title       string
	imageURL    string
	defaultLink string
}

func NewAssembler(feedConfig *Config) *Assembler {
	return &Assembler{
		title:       cmp.Or(feedConfig.Title, DefaultTitle),
		imageURL:    cmp.Or(feedConfig.ImageURL, DefaultImageURL),
		defaultLink: cmp.Or(feedConfig.DefaultLink, DefaultLink),
	}
}

// Run maps source metadata and selected episodes onto the rebranded output
// channel. Episode order is kept as given.
func (a *Assembler) Run(meta ChannelMeta, episodes []Episode) OutputChannel {
	channel := OutputChannel{
		Title:       a.title,
		Link:        cmp.Or(meta.Link, a.defaultLink),
		Description: cmp.Or(meta.Subtitle, meta.Description, a.title),
		ImageURL:    a.imageURL,
		Items:       make([]OutputItem, 0, len(episodes)),
	}

	for _, episode := range episodes {
		channel.Items = append(channel.Items, a.mapItem(meta, episode))
	}

	return channel
}

func (a *Assembler) mapItem(meta ChannelMeta, episode Episode) OutputItem {
	entry := episode.Entry
	pubDate := episode.Date.RFC2822

	return OutputItem{
		Title:       cmp.Or(entry.Title, UntitledItem),
		Link:        cmp.Or(entry.Link, meta.Link, a.defaultLink),
		Description: cmp.Or(entry.Summary, entry.Subtitle),
		PubDate:     pubDate,
		// The fallback uses the source link, not the resolved one
		GUID:            cmp.Or(entry.ID, entry.GUID, entry.Link+pubDate),
		GUIDIsPermaLink: false,
		Enclosure:       a.mapEnclosure(entry.Enclosures),
		Duration:        cmp.Or(entry.ITunesDuration, entry.ITunesDurationRaw),
	}
}

// Only the first enclosure with an href is emitted (RSS 2.0 allows one per item)
func (a *Assembler) mapEnclosure(enclosures []SourceEnclosure) *OutputEnclosure {
	for _, enclosure := range enclosures {
		if enclosure.Href == "" {
			continue
		}

		length := "0"
		if _, err := strconv.ParseInt(enclosure.Length, 10, 64); err == nil {
			length = enclosure.Length
		}

		return &OutputEnclosure{
			URL:    enclosure.Href,
			Type:   cmp.Or(enclosure.Type, DefaultEnclosureType),
			Length: length,
		}
	}

	return nil
}
