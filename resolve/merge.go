package resolve

import (
	"slices"
	"strings"

	"github.com/speclib/isfdb"
)

// newRecord builds a normalized record from a title record, a
// publication record, or a confirmed pair. When both are present the
// title supplies the base fields and the publication overwrites them:
// publication data describes the physical edition and is the more
// specific of the two.
func newRecord(tit *isfdb.Title, pub *isfdb.Publication, sourceURL string) *isfdb.Record {
	rec := &isfdb.Record{
		Identifiers: map[string]string{},
		SourceURL:   sourceURL,
	}

	if tit != nil {
		rec.Title = tit.Title
		rec.Authors = slices.Clone(tit.Authors)
		rec.Identifiers[isfdb.IDISFDBTitle] = tit.ID
		rec.PubDate = tit.Date
		rec.Series = tit.Series
		rec.SeriesIndex = tit.SeriesIndex
		rec.Language = tit.Language
		rec.Tags = slices.Clone(tit.Tags)
	}

	if pub != nil {
		rec.Title = pub.Title
		rec.Authors = slices.Clone(pub.Authors)
		rec.Identifiers[isfdb.IDISFDB] = pub.ID
		if pub.ISBN != "" {
			rec.Identifiers[isfdb.IDISBN] = pub.ISBN
		}
		if pub.CatalogID != "" {
			rec.Identifiers[isfdb.IDISFDBCatalog] = pub.CatalogID
		}
		if pub.TitleID != "" && rec.Identifiers[isfdb.IDISFDBTitle] == "" {
			rec.Identifiers[isfdb.IDISFDBTitle] = pub.TitleID
		}
		for ns, value := range pub.ExternalIDs {
			rec.Identifiers[ns] = value
		}
		rec.Publisher = pub.Publisher
		if pub.PubDate != nil {
			rec.PubDate = pub.PubDate
		}
		if pub.Series != "" {
			rec.Series = pub.Series
		}
		if pub.SeriesIndex != nil {
			rec.SeriesIndex = pub.SeriesIndex
		}
		rec.CoverURL = pub.CoverURL
	}

	rec.Synopsis = buildSynopsis(tit, pub, sourceURL)
	return rec
}

// buildSynopsis concatenates the descriptive fragments into an HTML
// synopsis, closing with a provenance line naming the source page.
func buildSynopsis(tit *isfdb.Title, pub *isfdb.Publication, sourceURL string) string {
	var parts []string
	add := func(s string) {
		if s != "" {
			parts = append(parts, s)
		}
	}

	if pub != nil {
		add(pub.Contents)
		// CoverCredit keeps the page's "Cover:" label.
		add(pub.CoverCredit)
		add(pub.Notes)
		add(pub.SeriesNote)
	}
	if tit != nil {
		add(tit.Notes)
		add(tit.SeriesNote)
	}
	add("Source: " + sourceURL)

	return strings.Join(parts, "<br />")
}
