// Package timeutil converts the free-form datetimes an agent collects from a
// user into the UTC instant strings the Kylas API stores and filters on.
package timeutil

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// DefaultTimezone is the tenant-level fallback applied when neither the
// filter clause nor the current user's profile carries a timezone.
const DefaultTimezone = "Asia/Calcutta"

const instantLayout = "2006-01-02T15:04:05"

// ordinalRe matches day ordinals like "11th" or "2nd" so spoken dates
// ("11th Feb 2026") parse the same as their plain forms.
var ordinalRe = regexp.MustCompile(`\b(\d{1,2})(?:st|nd|rd|th|ST|ND|RD|TH)\b`)

// fallbackLayouts cover day-first spoken forms the generic parser rejects.
var fallbackLayouts = []string{
	"2 Jan 2006 3:04 PM",
	"2 Jan 2006 3:04 pm",
	"2 Jan 2006 15:04",
	"2 Jan 2006",
	"Jan 2, 2006 3:04 PM",
	"2006-01-02 15:04",
}

// Location resolves an IANA timezone name, falling back to UTC when the name
// is empty or unknown. Agents routinely pass abbreviations or typos; a bad
// zone must not fail the whole tool call.
func Location(name string) *time.Location {
	name = strings.TrimSpace(name)
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ToUTCInstant parses a free-form datetime expressed in the given timezone
// and returns it as a UTC instant string, e.g. "2026-02-11T02:00:00.000Z".
// Zone-less input is interpreted in tz; input carrying its own offset keeps
// it. The only error is unparseable text.
func ToUTCInstant(text, tz string) (string, error) {
	t, err := parseIn(strings.TrimSpace(text), Location(tz))
	if err != nil {
		return "", err
	}
	return FormatInstant(t), nil
}

func parseIn(text string, loc *time.Location) (time.Time, error) {
	if text == "" {
		return time.Time{}, fmt.Errorf("empty datetime")
	}
	cleaned := ordinalRe.ReplaceAllString(text, "$1")
	t, err := dateparse.ParseIn(cleaned, loc)
	if err == nil {
		return t, nil
	}
	for _, layout := range fallbackLayouts {
		if t, lerr := time.ParseInLocation(layout, cleaned, loc); lerr == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse datetime %q: %w", text, err)
}

// FormatInstant renders t as a UTC instant with the literal .000Z suffix the
// Kylas search index expects. Sub-second precision is dropped, never kept.
func FormatInstant(t time.Time) string {
	return t.UTC().Format(instantLayout) + ".000Z"
}

// IdleThreshold returns the instant exactly days*24h before now in tz,
// rendered as a UTC instant string. days = 0 means "now".
func IdleThreshold(days int, tz string) string {
	now := time.Now().In(Location(tz))
	return FormatInstant(now.Add(-time.Duration(days) * 24 * time.Hour))
}
