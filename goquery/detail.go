package goquery

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/speclib/isfdb"
)

// Ensure DetailParser implements isfdb.DetailParser at compile time.
var _ isfdb.DetailParser = (*DetailParser)(nil)

// externalIDs maps the catalog's external bibliographic database names
// to identifier namespaces.
var externalIDs = map[string]string{
	"DNB":           isfdb.IDDNB,
	"OCLC/WorldCat": isfdb.IDOCLC,
}

// DetailParser extracts full field sets from record detail pages. When
// a series field links to a series page and series combining is enabled,
// the parser fetches that page to resolve the parent series.
type DetailParser struct {
	fetcher       isfdb.Fetcher
	logger        *slog.Logger
	combineSeries bool
}

// DetailOption configures a DetailParser.
type DetailOption func(*DetailParser)

// WithLogger sets the parser's logger. Defaults to a discard logger.
func WithLogger(logger *slog.Logger) DetailOption {
	return func(p *DetailParser) {
		p.logger = logger
	}
}

// WithCombineSeries enables combining a series with its parent series
// ("parent | child"). This costs one extra fetch per series link.
func WithCombineSeries(combine bool) DetailOption {
	return func(p *DetailParser) {
		p.combineSeries = combine
	}
}

// NewDetailParser creates a new DetailParser. The fetcher is used only
// for series pages linked from detail pages.
func NewDetailParser(fetcher isfdb.Fetcher, opts ...DetailOption) *DetailParser {
	p := &DetailParser{
		fetcher: fetcher,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParsePublication parses a publication detail page. Single-section
// failures are logged and skipped; the record is returned as long as the
// page parses at all. Callers check Usable before emitting.
func (p *DetailParser) ParsePublication(ctx context.Context, pageHTML, url string) (*isfdb.Publication, error) {
	doc, err := parse(pageHTML)
	if err != nil {
		return nil, err
	}
	stripTooltips(doc)

	pub := &isfdb.Publication{ID: isfdb.IDFromURL(url)}
	if pub.ID == "" {
		return nil, isfdb.Errorf(isfdb.EINVALID, "no publication ID in URL %q", url)
	}

	// Records with a cover image render the field list inside the
	// pubheader cell; records without one use a bare list.
	lines := doc.Find(`div#content td.pubheader ul li`)
	if lines.Length() == 0 {
		lines = doc.Find("div#content > div > ul > li")
	}

	lines.Each(func(_ int, line *goquery.Selection) {
		section := sectionLabel(line)
		if err := p.parsePublicationSection(ctx, pub, section, line); err != nil {
			p.logger.Warn("failed to parse section",
				"section", section, "url", url, "error", err)
		}
	})

	// The contents block lives in the second ContentBox, below the
	// field list.
	if contents := doc.Find("div.ContentBox").Eq(1).Find("ul").First(); contents.Length() > 0 {
		if raw, err := goquery.OuterHtml(contents); err == nil {
			pub.Contents = SanitizeHTML(raw)
		}
	}

	// First image in the record's header thumbnail. Absence simply
	// means the record has no cover.
	if img := doc.Find("div#content table tr").First().Find("td").First().Find("a img").First(); img.Length() > 0 {
		pub.CoverURL, _ = img.Attr("src")
	}

	return pub, nil
}

func (p *DetailParser) parsePublicationSection(ctx context.Context, pub *isfdb.Publication, section string, line *goquery.Selection) error {
	switch section {
	case "Publication":
		pub.Title = tailText(line)
		if pub.Title == "" {
			// An empty tail means the title sits inside an extra span
			// carrying a transliteration tooltip.
			if n := nthElement(line, 1); n != nil {
				pub.Title = strings.TrimSpace(nodeText(n))
			}
		}

	case "Author", "Authors", "Editor", "Editors":
		editors := strings.HasPrefix(section, "Editor")
		line.Find("a").Each(func(_ int, a *goquery.Selection) {
			author := strings.TrimSpace(a.Text())
			if author == "uncredited" {
				author = "unknown"
			}
			// Only the first author is usable for the title lookup;
			// the catalog's multi-author search is broken.
			if pub.SearchAuthor == "" {
				pub.SearchAuthor = author
			}
			if editors {
				author += " (Editor)"
			}
			pub.Authors = append(pub.Authors, author)
		})

	case "Type":
		pub.Type = tailText(line)

	case "Format":
		pub.Format = tailText(line)

	case "ISBN":
		pub.ISBN = strings.Trim(tailText(line), "[] \n")

	case "Catalog ID":
		pub.CatalogID = tailText(line)

	case "Publisher":
		pub.Publisher = strings.TrimSpace(line.Find("a").First().Text())

	case "Date":
		pub.PubDate = isfdb.ParseDate(tailText(line))

	case "Pub. Series":
		series, err := p.parseSeriesField(ctx, line)
		if err != nil {
			return err
		}
		pub.Series = series

	case "Pub. Series #":
		index, note := parseSeriesNumber(tailText(line))
		pub.SeriesIndex = index
		pub.SeriesNote = note

	case "Cover":
		pub.CoverCredit = collapseSpaces(line.Text())

	case "Notes":
		notes := line.Find("div.notes ul").First()
		if notes.Length() == 0 {
			return nil
		}
		raw, err := goquery.OuterHtml(notes)
		if err != nil {
			return err
		}
		pub.Notes = appendHTML(pub.Notes, SanitizeHTML(raw))

	case "External IDs":
		if pub.ExternalIDs == nil {
			pub.ExternalIDs = make(map[string]string)
		}
		line.Find("ul li").Each(func(_ int, sub *goquery.Selection) {
			name := strings.TrimSpace(sub.Children().First().Text())
			ns, ok := externalIDs[name]
			if !ok {
				return
			}
			if n := nthElement(sub, 1); n != nil {
				pub.ExternalIDs[ns] = strings.TrimSpace(nodeText(n))
			}
		})

	case "Container Title":
		if href, ok := line.Find("a").First().Attr("href"); ok {
			pub.TitleID = isfdb.IDFromURL(href)
		}
	}
	return nil
}

// ParseTitle parses a title detail page. The title record's field list
// is not a list at all: the first ContentBox renders labelled lines
// separated by <br> tags, so the children are regrouped before reading.
func (p *DetailParser) ParseTitle(ctx context.Context, pageHTML, url string) (*isfdb.Title, error) {
	doc, err := parse(pageHTML)
	if err != nil {
		return nil, err
	}
	stripTooltips(doc)

	title := &isfdb.Title{ID: isfdb.IDFromURL(url)}
	if title.ID == "" {
		return nil, isfdb.Errorf(isfdb.EINVALID, "no title ID in URL %q", url)
	}

	box := doc.Find("div.ContentBox").First()
	if box.Length() == 0 {
		return nil, isfdb.Errorf(isfdb.EINVALID, "no detail content in title page %q", url)
	}

	for _, line := range splitOnBreaks(box) {
		section := line.label()
		if section == "" {
			continue
		}
		if err := p.parseTitleSection(ctx, title, section, line); err != nil {
			p.logger.Warn("failed to parse section",
				"section", section, "url", url, "error", err)
		}
	}

	// Every publication the catalog links from the title page; used to
	// cross-check publication/title merges.
	doc.Find(`a[href*="/pl.cgi?"]`).Each(func(_ int, a *goquery.Selection) {
		if href, ok := a.Attr("href"); ok {
			if id := isfdb.IDFromURL(href); id != "" {
				title.Publications = append(title.Publications, id)
			}
		}
	})

	return title, nil
}

func (p *DetailParser) parseTitleSection(ctx context.Context, title *isfdb.Title, section string, line detailLine) error {
	switch section {
	case "Title":
		title.Title = line.tail()
		if title.Title == "" {
			// Transliteration span; the visible title precedes the
			// tooltip's question mark.
			if n := line.element(1); n != nil {
				text := nodeText(n)
				title.Title = strings.TrimSpace(strings.SplitN(text, "?", 2)[0])
			}
		}

	case "Author", "Authors", "Editor", "Editors":
		editors := strings.HasPrefix(section, "Editor")
		for _, a := range line.links() {
			author := strings.TrimSpace(nodeText(a))
			if author == "uncredited" {
				author = "unknown"
			}
			if editors {
				author += " (Editor)"
			}
			title.Authors = append(title.Authors, author)
		}

	case "Type":
		title.Type = line.tail()
		title.Tags = append(title.Tags, typeTags(title.Type)...)

	case "Length":
		title.Length = line.tail()
		if title.Length != "" {
			title.Tags = append(title.Tags, title.Length)
		}

	case "Date":
		// A title record's date is the first publishing date.
		title.Date = isfdb.ParseDate(line.tail())

	case "Series":
		n := line.element(1)
		if n == nil {
			return nil
		}
		series, err := p.resolveSeries(ctx, attrValue(n, "href"))
		if err != nil {
			return err
		}
		if series == "" {
			series = strings.TrimSpace(nodeText(n))
		}
		title.Series = series

	case "Series Number":
		index, note := parseSeriesNumber(line.tail())
		title.SeriesIndex = index
		title.SeriesNote = note

	case "Language":
		title.Language = line.tail()

	case "Note", "Variant Title of":
		title.Notes = appendHTML(title.Notes, line.tail())

	case "Current Tags":
		for _, a := range line.links() {
			tag := strings.TrimSpace(nodeText(a))
			if tag != "" && tag != "Add Tags" {
				title.Tags = append(title.Tags, tag)
			}
		}
	}
	return nil
}

// parseSeriesField handles the publication "Pub. Series" line, which is
// always a link to a series page.
func (p *DetailParser) parseSeriesField(ctx context.Context, line *goquery.Selection) (string, error) {
	link := line.Find("a").First()
	href, _ := link.Attr("href")
	series, err := p.resolveSeries(ctx, href)
	if err != nil {
		return "", err
	}
	if series == "" {
		series = strings.TrimSpace(link.Text())
	}
	return series, nil
}

// resolveSeries fetches a series page and returns the combined series
// name. When combining is disabled, no fetch happens and the caller
// falls back to the link text.
func (p *DetailParser) resolveSeries(ctx context.Context, seriesURL string) (string, error) {
	if !p.combineSeries || seriesURL == "" || p.fetcher == nil {
		return "", nil
	}
	pageHTML, err := p.fetcher.Fetch(ctx, seriesURL)
	if err != nil {
		return "", err
	}
	return ParseSeries(pageHTML)
}

// ParseTitleCovers returns every cover image URL on a title's
// cover-listing page.
func (p *DetailParser) ParseTitleCovers(pageHTML string) ([]string, error) {
	doc, err := parse(pageHTML)
	if err != nil {
		return nil, err
	}
	stripTooltips(doc)

	var covers []string
	doc.Find("div#main a img").Each(func(_ int, img *goquery.Selection) {
		if src, ok := img.Attr("src"); ok && src != "" {
			covers = append(covers, src)
		}
	})
	return covers, nil
}

// parseSeriesNumber reduces a series number to its first integer
// component. The catalog reports alternate numbering like "61/62" which
// has no single-number representation; the reduction is recorded as a
// note instead of silently dropped.
func parseSeriesNumber(raw string) (*int, string) {
	value := raw
	note := ""
	if idx := strings.IndexByte(raw, '/'); idx >= 0 {
		value = raw[:idx]
		note = "Reported number was " + strings.TrimSpace(raw) +
			" and was reduced to its first component."
	}
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, value)
	if digits == "" {
		return nil, ""
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return nil, ""
	}
	return &n, note
}

// appendHTML concatenates HTML fragments with a visible separator so
// multiple note sources are kept, not overwritten.
func appendHTML(existing, addition string) string {
	if addition == "" {
		return existing
	}
	if existing == "" {
		return addition
	}
	return existing + "<br />" + addition
}

// collapseSpaces trims and collapses all runs of whitespace to single
// spaces.
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
