// Package etree implements the catalog's XML web API client. The
// getpub service answers exact ISBN lookups without HTML scraping and
// resolves ISBN-10/ISBN-13 equivalence on the server side, but returns
// far fewer fields than the detail pages.
package etree

import (
	"context"
	"io"
	"strings"

	"github.com/beevik/etree"
	"github.com/speclib/isfdb"
)

// Compile-time interface verification.
var _ isfdb.PublicationLookup = (*PublicationLookup)(nil)

// PublicationLookup implements isfdb.PublicationLookup against the
// getpub.cgi endpoint.
type PublicationLookup struct {
	fetcher isfdb.Fetcher
}

// NewPublicationLookup creates a lookup client on top of a fetcher.
func NewPublicationLookup(fetcher isfdb.Fetcher) *PublicationLookup {
	return &PublicationLookup{fetcher: fetcher}
}

// LookupISBN returns the publications registered for an ISBN. A valid
// ISBN with no catalog entry returns an empty slice, not an error.
func (l *PublicationLookup) LookupISBN(ctx context.Context, isbn string) ([]isfdb.APIPublication, error) {
	if isbn == "" {
		return nil, isfdb.Errorf(isfdb.EINVALID, "empty ISBN")
	}

	payload, err := l.fetcher.Fetch(ctx, isfdb.WebAPIGetPubURL+isbn)
	if err != nil {
		return nil, err
	}
	return parseResponse(payload)
}

func parseResponse(payload string) ([]isfdb.APIPublication, error) {
	// The endpoint occasionally emits stray bytes before the XML
	// declaration; cut down to it.
	if i := strings.Index(payload, "<?xml"); i > 0 {
		payload = payload[i:]
	}

	doc := etree.NewDocument()
	// The declaration names iso-8859-1, but the fetcher has already
	// decoded the body to UTF-8.
	doc.ReadSettings.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		return input, nil
	}
	if err := doc.ReadFromString(payload); err != nil {
		return nil, isfdb.Errorf(isfdb.EINVALID, "malformed web API response: %v", err)
	}

	root := doc.SelectElement("ISFDB")
	if root == nil {
		return nil, isfdb.Errorf(isfdb.EINVALID, "malformed web API response: missing ISFDB element")
	}
	if records := root.SelectElement("Records"); records != nil && strings.TrimSpace(records.Text()) == "0" {
		return nil, nil
	}
	pubs := root.SelectElement("Publications")
	if pubs == nil {
		return nil, nil
	}

	var result []isfdb.APIPublication
	for _, el := range pubs.SelectElements("Publication") {
		pub := isfdb.APIPublication{
			ID:        childText(el, "Record"),
			Title:     childText(el, "Title"),
			Year:      childText(el, "Year"),
			ISBN:      childText(el, "Isbn"),
			Publisher: childText(el, "Publisher"),
			Type:      childText(el, "Type"),
		}
		if authors := el.SelectElement("Authors"); authors != nil {
			for _, a := range authors.SelectElements("Author") {
				if name := strings.TrimSpace(a.Text()); name != "" {
					pub.Authors = append(pub.Authors, name)
				}
			}
		}
		if pub.ID == "" {
			continue
		}
		result = append(result, pub)
	}
	return result, nil
}

func childText(el *etree.Element, name string) string {
	if c := el.SelectElement(name); c != nil {
		return strings.TrimSpace(c.Text())
	}
	return ""
}
