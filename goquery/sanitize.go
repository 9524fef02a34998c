package goquery

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Elements removed entirely, subtree included.
var droppedElements = map[string]bool{
	"script":   true,
	"style":    true,
	"iframe":   true,
	"object":   true,
	"embed":    true,
	"form":     true,
	"input":    true,
	"button":   true,
	"noscript": true,
}

// Attributes allowed to survive sanitization.
var allowedAttrs = map[string]bool{
	"href":  true,
	"src":   true,
	"alt":   true,
	"title": true,
}

// SanitizeHTML strips scripting and form elements, comments, event
// handlers, and javascript: URLs from an HTML fragment, keeping basic
// structural markup. Used for the notes and contents blocks that become
// the record synopsis. Returns "" for unparseable input.
func SanitizeHTML(fragment string) string {
	nodes, err := html.ParseFragment(strings.NewReader(fragment), &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
	})
	if err != nil {
		return ""
	}

	var b strings.Builder
	for _, n := range nodes {
		if n.Type == html.CommentNode || (n.Type == html.ElementNode && droppedElements[n.Data]) {
			continue
		}
		sanitizeNode(n)
		_ = html.Render(&b, n)
	}
	return strings.TrimSpace(b.String())
}

// sanitizeNode scrubs a node subtree in place, detaching disallowed
// children.
func sanitizeNode(n *html.Node) {
	var next *html.Node
	for c := n.FirstChild; c != nil; c = next {
		next = c.NextSibling
		switch {
		case c.Type == html.CommentNode,
			c.Type == html.ElementNode && droppedElements[c.Data]:
			n.RemoveChild(c)
		default:
			sanitizeNode(c)
		}
	}

	if n.Type != html.ElementNode {
		return
	}
	attrs := n.Attr[:0]
	for _, a := range n.Attr {
		if !allowedAttrs[a.Key] {
			continue
		}
		if a.Key == "href" || a.Key == "src" {
			val := strings.TrimSpace(strings.ToLower(a.Val))
			if strings.HasPrefix(val, "javascript:") || strings.HasPrefix(val, "data:") {
				continue
			}
		}
		attrs = append(attrs, a)
	}
	n.Attr = attrs
}
