package isfdb

import (
	"regexp"
	"strings"
)

// Catalog endpoints. The record identifier is appended directly after
// the query separator, e.g. pl.cgi?262210.
const (
	Host = "www.isfdb.org"

	AdvSearchURL    = "https://www.isfdb.org/cgi-bin/adv_search_results.cgi?"
	PublicationURL  = "https://www.isfdb.org/cgi-bin/pl.cgi?"
	TitleURL        = "https://www.isfdb.org/cgi-bin/title.cgi?"
	SeriesURL       = "https://www.isfdb.org/cgi-bin/pe.cgi?"
	TitleCoversURL  = "https://www.isfdb.org/cgi-bin/titlecovers.cgi?"
	WebAPIGetPubURL = "https://www.isfdb.org/cgi-bin/rest/getpub.cgi?"
)

// RecordKind identifies the kind of catalog record a URL points to.
type RecordKind int

// The closed set of record kinds.
const (
	KindUnknown RecordKind = iota
	KindPublication
	KindTitle
	KindSeries
	KindTitleCovers
)

// String returns the kind's name for logging.
func (k RecordKind) String() string {
	switch k {
	case KindPublication:
		return "publication"
	case KindTitle:
		return "title"
	case KindSeries:
		return "series"
	case KindTitleCovers:
		return "titlecovers"
	default:
		return "unknown"
	}
}

// KindOf classifies a catalog URL by its endpoint. Kind dispatch happens
// here, at the boundary, so the rest of the system can switch on a small
// closed set instead of matching URL prefixes.
func KindOf(rawURL string) RecordKind {
	switch {
	case matchesEndpoint(rawURL, "pl.cgi"):
		return KindPublication
	case matchesEndpoint(rawURL, "title.cgi"):
		return KindTitle
	case matchesEndpoint(rawURL, "pe.cgi"):
		return KindSeries
	case matchesEndpoint(rawURL, "titlecovers.cgi"):
		return KindTitleCovers
	default:
		return KindUnknown
	}
}

// matchesEndpoint reports whether the URL targets the given CGI endpoint
// on the catalog host, accepting both http and https and either the bare
// or www host form.
func matchesEndpoint(rawURL, endpoint string) bool {
	rest, ok := strings.CutPrefix(rawURL, "http")
	if !ok {
		return false
	}
	rest = strings.TrimPrefix(rest, "s")
	rest, ok = strings.CutPrefix(rest, "://")
	if !ok {
		return false
	}
	rest = strings.TrimPrefix(rest, "www.")
	return strings.HasPrefix(rest, "isfdb.org/cgi-bin/"+endpoint+"?")
}

var trailingID = regexp.MustCompile(`(\d+)$`)

// IDFromURL extracts the numeric record identifier from the end of a
// catalog URL. Returns an empty string if the URL has no trailing number.
func IDFromURL(rawURL string) string {
	return trailingID.FindString(rawURL)
}
