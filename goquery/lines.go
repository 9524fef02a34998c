package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// detailLine is one labelled line of a title detail box: the nodes
// between two <br> tags.
type detailLine []*html.Node

// splitOnBreaks regroups the children of a container into labelled
// lines, splitting on <br> elements.
func splitOnBreaks(container *goquery.Selection) []detailLine {
	if len(container.Nodes) == 0 {
		return nil
	}
	var lines []detailLine
	var current detailLine
	for n := container.Nodes[0].FirstChild; n != nil; n = n.NextSibling {
		if n.Type == html.ElementNode && n.Data == "br" {
			if len(current) > 0 {
				lines = append(lines, current)
				current = nil
			}
			continue
		}
		current = append(current, n)
	}
	if len(current) > 0 {
		lines = append(lines, current)
	}
	return lines
}

// label returns the text of the line's first element, trimmed and with
// the trailing colon removed.
func (l detailLine) label() string {
	for _, n := range l {
		if n.Type == html.ElementNode {
			return strings.TrimRight(strings.TrimSpace(nodeText(n)), ":")
		}
	}
	return ""
}

// tail returns the text following the first element, up to the next
// element.
func (l detailLine) tail() string {
	var b strings.Builder
	seenElement := false
	for _, n := range l {
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

// element returns the line's n-th element node (0-based), or nil.
func (l detailLine) element(i int) *html.Node {
	count := 0
	for _, n := range l {
		if n.Type != html.ElementNode {
			continue
		}
		if count == i {
			return n
		}
		count++
	}
	return nil
}

// links returns the line's anchor elements.
func (l detailLine) links() []*html.Node {
	var out []*html.Node
	for _, n := range l {
		if n.Type == html.ElementNode && n.Data == "a" {
			out = append(out, n)
		}
	}
	return out
}
