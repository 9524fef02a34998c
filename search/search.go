// Package search builds advanced-search and detail URLs for the catalog.
//
// The catalog's search CGI decodes query parameters as ISO-8859-1, not
// UTF-8. Terms percent-encoded as UTF-8 silently return zero results
// ("Überfall" must encode as %DCberfall, not %C3%9Cberfall), so every
// term is transcoded to Latin-1 before escaping.
package search

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/speclib/isfdb"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// Advanced-search field names and operators documented by the catalog.
const (
	fieldPubISBN         = "pub_isbn"
	fieldPubTitle        = "pub_title"
	fieldTitleTitle      = "title_title"
	fieldTitleType       = "title_ttype"
	fieldAuthorCanonical = "author_canonical"

	opExact    = "exact"
	opContains = "contains"
)

// param is one ordered query parameter. The catalog's CGI is sensitive
// to the USE_n/OPERATOR_n/TERM_n numbering, so parameters are kept as an
// ordered slice rather than a map.
type param struct {
	key   string
	value string
}

var latin1 = encoding.ReplaceUnsupported(charmap.ISO8859_1.NewEncoder())

// escape percent-encodes a search term using the catalog's Latin-1 byte
// encoding. Runes outside Latin-1 are replaced rather than dropped.
func escape(term string) string {
	encoded, err := latin1.String(term)
	if err != nil {
		// ReplaceUnsupported never errors for charmaps; keep the
		// original term if it somehow does.
		encoded = term
	}
	return url.QueryEscape(encoded)
}

// encodeParams renders ordered parameters onto the advanced-search URL.
func encodeParams(params []param) string {
	var b strings.Builder
	b.WriteString(isfdb.AdvSearchURL)
	for i, p := range params {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(p.key)
		b.WriteByte('=')
		b.WriteString(escape(p.value))
	}
	return b.String()
}

// CodeSearchURL returns a publication search matching an ISBN or
// publisher catalog code exactly. The catalog stores both in the same
// search field.
func CodeSearchURL(code string) (string, error) {
	if code == "" {
		return "", isfdb.Errorf(isfdb.EINVALID, "empty ISBN or catalog code")
	}
	return encodeParams([]param{
		{"USE_1", fieldPubISBN},
		{"OPERATOR_1", opExact},
		{"TERM_1", code},
		{"ORDERBY", fieldPubTitle},
		{"START", "0"},
		{"TYPE", "Publication"},
	}), nil
}

// PublicationSearchURL returns a publication text search combining title
// and author with a "contains" predicate. Either term may be empty, but
// not both.
func PublicationSearchURL(title, author string) (string, error) {
	return textSearchURL("Publication", fieldPubTitle, fieldPubTitle, title, author)
}

// TitleSearchURL returns a title text search combining title and author
// with a "contains" predicate. Either term may be empty, but not both.
func TitleSearchURL(title, author string) (string, error) {
	return textSearchURL("Title", fieldTitleTitle, fieldTitleTitle, title, author)
}

func textSearchURL(searchType, titleField, orderBy, title, author string) (string, error) {
	if title == "" && author == "" {
		return "", isfdb.Errorf(isfdb.EINVALID, "insufficient metadata: no title or author to search for")
	}

	var params []param
	field := 0
	if title != "" {
		field++
		n := strconv.Itoa(field)
		params = append(params,
			param{"USE_" + n, titleField},
			param{"OPERATOR_" + n, opContains},
			param{"TERM_" + n, title},
		)
	}
	if author != "" {
		field++
		n := strconv.Itoa(field)
		params = append(params,
			param{"USE_" + n, fieldAuthorCanonical},
			param{"OPERATOR_" + n, opContains},
			param{"TERM_" + n, author},
		)
	}
	if field == 2 {
		params = append(params, param{"CONJUNCTION_1", "AND"})
	}
	params = append(params,
		param{"ORDERBY", orderBy},
		param{"START", "0"},
		param{"TYPE", searchType},
	)
	return encodeParams(params), nil
}

// ExactTitleSearchURL returns a title search matching title, author, and
// title type exactly. The resolution engine uses it to locate the title
// record owning a publication.
func ExactTitleSearchURL(title, author, ttype string) (string, error) {
	if title == "" || author == "" {
		return "", isfdb.Errorf(isfdb.EINVALID, "exact title search requires both title and author")
	}
	return encodeParams([]param{
		{"USE_1", fieldTitleTitle},
		{"OPERATOR_1", opExact},
		{"TERM_1", title},
		{"CONJUNCTION_1", "AND"},
		{"USE_2", fieldAuthorCanonical},
		{"OPERATOR_2", opExact},
		{"TERM_2", author},
		{"CONJUNCTION_2", "AND"},
		{"USE_3", fieldTitleType},
		{"OPERATOR_3", opExact},
		{"TERM_3", ttype},
		{"ORDERBY", fieldTitleTitle},
		{"START", "0"},
		{"TYPE", "Title"},
	}), nil
}

// PublicationDetailURL returns the detail page URL for a publication ID.
func PublicationDetailURL(id string) string {
	return isfdb.PublicationURL + id
}

// TitleDetailURL returns the detail page URL for a title ID.
func TitleDetailURL(id string) string {
	return isfdb.TitleURL + id
}

// TitleCoversPageURL returns the cover-listing page URL for a title ID.
func TitleCoversPageURL(id string) string {
	return isfdb.TitleCoversURL + id
}
