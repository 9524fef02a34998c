// Package htmltomarkdown renders record synopses as Markdown.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/speclib/isfdb"
)

// Ensure Renderer implements isfdb.SynopsisRenderer at compile time.
var _ isfdb.SynopsisRenderer = (*Renderer)(nil)

// Renderer wraps html-to-markdown to convert synopsis HTML to Markdown.
type Renderer struct {
	conv *converter.Converter
}

// NewRenderer creates a new Renderer.
func NewRenderer() *Renderer {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
		),
	)
	return &Renderer{conv: conv}
}

// Render transforms synopsis HTML into Markdown. An empty synopsis
// renders as an empty string.
func (r *Renderer) Render(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", nil
	}
	return r.conv.ConvertString(html)
}
