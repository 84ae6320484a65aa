package feed

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"time"
)

type Generator struct {
	version string
	selfURL string
}

func NewGenerator(version, selfURL string) *Generator {
	return &Generator{
		version: version,
		selfURL: selfURL,
	}
}

func (g *Generator) Run(channel OutputChannel) string {
	var buf bytes.Buffer

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	buf.WriteString("\n")
	buf.WriteString(`<rss version="2.0" xmlns:itunes="http://www.itunes.com/dtds/podcast-1.0.dtd" xmlns:content="http://purl.org/rss/1.0/modules/content/" xmlns:atom="http://www.w3.org/2005/Atom">`)
	buf.WriteString("\n  <channel>\n")

	g.writeElement(&buf, "title", channel.Title, 4)
	g.writeElement(&buf, "link", channel.Link, 4)
	g.writeElement(&buf, "description", channel.Description, 4)

	if g.selfURL != "" {
		buf.WriteString(fmt.Sprintf("    <atom:link href=\"%s\" rel=\"self\" type=\"application/rss+xml\" />\n",
			html.EscapeString(g.selfURL)))
	}

	// Items are oldest first, so the newest one is last
	lastBuildDate := time.Now().UTC().Format(RFC2822Layout)
	if len(channel.Items) > 0 {
		lastBuildDate = channel.Items[len(channel.Items)-1].PubDate
	}

	g.writeElement(&buf, "lastBuildDate", lastBuildDate, 4)
	g.writeElement(&buf, "generator", fmt.Sprintf("Podcast-Comb/%s", g.version), 4)

	if channel.ImageURL != "" {
		buf.WriteString("    <image>\n")
		g.writeElement(&buf, "url", channel.ImageURL, 6)
		g.writeElement(&buf, "title", channel.Title, 6)
		g.writeElement(&buf, "link", channel.Link, 6)
		buf.WriteString("    </image>\n")
		buf.WriteString(fmt.Sprintf("    <itunes:image href=\"%s\" />\n", html.EscapeString(channel.ImageURL)))
	}

	for _, item := range channel.Items {
		g.writeItem(&buf, item)
	}

	buf.WriteString("  </channel>\n</rss>\n")

	return buf.String()
}

// WriteFile renders the channel next to path and renames it into place, so
// an existing file is only ever replaced by a complete document.
func (g *Generator) WriteFile(channel OutputChannel, path string) error {
	rss := g.Run(channel)

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(rss); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write feed: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to set file mode: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to move feed into place: %w", err)
	}

	return nil
}

func (g *Generator) writeItem(buf *bytes.Buffer, item OutputItem) {
	buf.WriteString("    <item>\n")

	g.writeElement(buf, "title", item.Title, 6)
	g.writeElement(buf, "link", item.Link, 6)

	if item.Description == "" {
		buf.WriteString("      <description></description>\n")
	} else {
		g.writeElement(buf, "description", item.Description, 6)
	}

	g.writeElement(buf, "pubDate", item.PubDate, 6)

	if item.GUID != "" {
		buf.WriteString(fmt.Sprintf("      <guid isPermaLink=\"%t\">", item.GUIDIsPermaLink))
		xml.EscapeText(buf, []byte(item.GUID))
		buf.WriteString("</guid>\n")
	}

	// RSS 2.0 spec: url, length, type are required
	if item.Enclosure != nil {
		buf.WriteString(fmt.Sprintf("      <enclosure url=\"%s\" length=\"%s\" type=\"%s\" />\n",
			html.EscapeString(item.Enclosure.URL),
			html.EscapeString(item.Enclosure.Length),
			html.EscapeString(item.Enclosure.Type)))
	}

	g.writeElement(buf, "itunes:duration", item.Duration, 6)

	buf.WriteString("    </item>\n")
}

func (g *Generator) writeElement(buf *bytes.Buffer, tag, content string, indent int) {
	if content == "" {
		return
	}

	for i := 0; i < indent; i++ {
		buf.WriteByte(' ')
	}

	buf.WriteString("<")
	buf.WriteString(tag)
	buf.WriteString(">")
	xml.EscapeText(buf, []byte(content))
	buf.WriteString("</")
	buf.WriteString(tag)
	buf.WriteString(">\n")
}
