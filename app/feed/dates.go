package feed

import (
	"log/slog"
	"time"

	"github.com/araddon/dateparse"
)

// RFC2822Layout is the publication date layout used in the rendered feed.
const RFC2822Layout = time.RFC1123Z

type DateNormalizer struct {
	now func() time.Time
}

func NewDateNormalizer() *DateNormalizer {
	return &DateNormalizer{now: time.Now}
}

// Run resolves the publication instant of an entry. It never fails: when no
// date field can be used the current time is returned in UTC.
func (n *DateNormalizer) Run(entry SourceEntry) NormalizedDate {
	if date, ok := n.fromParsed(entry.PublishedParsed); ok {
		return date
	}

	if date, ok := n.fromParsed(entry.UpdatedParsed); ok {
		return date
	}

	raw := []struct {
		field string
		value string
	}{
		{"published", entry.Published},
		{"pubDate", entry.PubDate},
		{"updated", entry.Updated},
	}

	for _, r := range raw {
		if date, ok := n.fromString(r.field, r.value); ok {
			return date
		}
	}

	now := n.now().UTC()
	return NormalizedDate{
		Time:    now,
		RFC2822: now.Format(RFC2822Layout),
	}
}

// Structured dates are emitted in UTC
func (n *DateNormalizer) fromParsed(t *time.Time) (NormalizedDate, bool) {
	if t == nil || t.IsZero() {
		return NormalizedDate{}, false
	}

	utc := t.UTC()
	return NormalizedDate{
		Time:    utc,
		RFC2822: utc.Format(RFC2822Layout),
	}, true
}

// Raw strings keep their own offset; strings without a zone are read as UTC.
func (n *DateNormalizer) fromString(field, value string) (NormalizedDate, bool) {
	if value == "" {
		return NormalizedDate{}, false
	}

	t, err := dateparse.ParseIn(value, time.UTC)
	if err != nil {
		slog.Debug("Unparseable date, trying next field", "field", field, "value", value, "error", err)
		return NormalizedDate{}, false
	}

	return NormalizedDate{
		Time:    t,
		RFC2822: t.Format(RFC2822Layout),
	}, true
}
