// Package goquery implements the catalog HTML parsers using CSS
// selectors. It covers search-results pages, publication and title
// detail pages, series pages, and cover-listing pages.
//
// The catalog decorates many fields with tooltip markup (transliteration
// popups); stripTooltips must run before any text is read or the
// extracted strings are corrupted.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/speclib/isfdb"
	"golang.org/x/net/html"
)

// parse builds a document from decoded page HTML.
func parse(pageHTML string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return nil, isfdb.Errorf(isfdb.EINVALID, "failed to parse HTML: %v", err)
	}
	return doc, nil
}

// stripTooltips removes the catalog's tooltip nodes in place.
func stripTooltips(doc *goquery.Document) {
	doc.Find("sup.mouseover").Remove()
	doc.Find("span.tooltiptext").Remove()
}

// sectionLabel returns the text of the first child element of a detail
// line, trimmed and with the trailing colon removed. Detail lines look
// like "<b>Publisher:</b> <a>...</a>".
func sectionLabel(sel *goquery.Selection) string {
	label := strings.TrimSpace(sel.Children().First().Text())
	label = strings.TrimRight(label, ":")
	// "Notes: " occasionally keeps part of the note text on the label
	// line; reduce it to the bare section name.
	if strings.HasPrefix(label, "Notes") {
		label = "Notes"
	}
	return label
}

// tailText returns the text immediately following the first child
// element, up to the next element. This is the value position for
// sections rendered as "<b>Label:</b> value".
func tailText(sel *goquery.Selection) string {
	if len(sel.Nodes) == 0 {
		return ""
	}
	var b strings.Builder
	seenElement := false
	for n := sel.Nodes[0].FirstChild; n != nil; n = n.NextSibling {
		if n.Type == html.ElementNode {
			if seenElement {
				break
			}
			seenElement = true
			continue
		}
		if seenElement && n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
	}
	return strings.TrimSpace(b.String())
}

// nthElement returns the n-th child element (0-based) of the selection's
// first node, or nil.
func nthElement(sel *goquery.Selection, n int) *html.Node {
	if len(sel.Nodes) == 0 {
		return nil
	}
	i := 0
	for c := sel.Nodes[0].FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if i == n {
			return c
		}
		i++
	}
	return nil
}

// nodeText returns the concatenated text content of a node subtree.
func nodeText(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// attrValue returns the value of an attribute on a node.
func attrValue(n *html.Node, key string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
