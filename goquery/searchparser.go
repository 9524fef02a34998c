package goquery

import (
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/speclib/isfdb"
)

// Ensure SearchParser implements isfdb.SearchParser at compile time.
var _ isfdb.SearchParser = (*SearchParser)(nil)

// SearchParser extracts candidate stubs from search-results pages.
// Publication and title result tables expose their columns at different
// fixed positions, so parsing is keyed by record kind.
type SearchParser struct {
	logger *slog.Logger
}

// NewSearchParser creates a new SearchParser. A nil logger disables
// logging.
func NewSearchParser(logger *slog.Logger) *SearchParser {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SearchParser{logger: logger}
}

// ParseSearchResults walks the results table for the given kind and
// returns at most max stubs. Header and empty rows are skipped. Rows
// that fail to yield a URL are dropped, not fatal.
func (p *SearchParser) ParseSearchResults(pageHTML string, kind isfdb.RecordKind, max int) ([]isfdb.Stub, error) {
	doc, err := parse(pageHTML)
	if err != nil {
		return nil, err
	}
	stripTooltips(doc)

	var rows *goquery.Selection
	switch kind {
	case isfdb.KindPublication:
		rows = doc.Find("div#main > table tr")
	case isfdb.KindTitle:
		// Title results render inside a selection form.
		rows = doc.Find("div#main > form table tr")
	default:
		return nil, isfdb.Errorf(isfdb.EINVALID, "unsupported search kind %s", kind)
	}

	var stubs []isfdb.Stub
	rows.EachWithBreak(func(_ int, row *goquery.Selection) bool {
		cells := row.Find("td")
		if cells.Length() == 0 {
			return true // header row
		}

		var stub isfdb.Stub
		switch kind {
		case isfdb.KindPublication:
			stub = p.publicationStub(cells)
		case isfdb.KindTitle:
			stub = p.titleStub(cells)
		}
		if stub.URL == "" {
			p.logger.Debug("skipping search row without record link")
			return true
		}
		stub.Kind = kind
		stubs = append(stubs, stub)
		return max <= 0 || len(stubs) < max
	})

	p.logger.Info("parsed search results", "kind", kind.String(), "found", len(stubs))
	return stubs, nil
}

// publicationStub reads a publication result row: title and URL in the
// first column, date in the second, authors in the third.
func (p *SearchParser) publicationStub(cells *goquery.Selection) isfdb.Stub {
	var stub isfdb.Stub
	link := cells.Eq(0).Find("a").First()
	stub.Title = strings.TrimSpace(link.Text())
	stub.URL, _ = link.Attr("href")

	date := strings.TrimSpace(cells.Eq(1).Text())
	if len(date) >= 4 {
		stub.Year = date[:4]
	}

	cells.Eq(2).Find("a").Each(func(_ int, a *goquery.Selection) {
		stub.Authors = append(stub.Authors, strings.TrimSpace(a.Text()))
	})
	return stub
}

// titleStub reads a title result row: title and URL in the fifth
// column, authors in the sixth.
func (p *SearchParser) titleStub(cells *goquery.Selection) isfdb.Stub {
	var stub isfdb.Stub
	link := cells.Eq(4).Find("a").First()
	stub.Title = strings.TrimSpace(link.Text())
	stub.URL, _ = link.Attr("href")

	cells.Eq(5).Find("a").Each(func(_ int, a *goquery.Selection) {
		stub.Authors = append(stub.Authors, strings.TrimSpace(a.Text()))
	})
	return stub
}
