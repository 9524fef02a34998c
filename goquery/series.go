package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Series page captions. Publication series and title series pages label
// their lines differently; the record-number caption that follows the
// name differs in the same way.
var (
	seriesCaptions       = []string{"Publication Series:", "Series:"}
	seriesRecordCaptions = []string{"Pub. Series Record #", "Series Record #"}
)

// ParseSeries extracts the combined series name from a series page.
// If the page reports "Sub-series of:" a parent series, the result is
// "parent | child"; otherwise it is the series name alone. Returns ""
// when no series line is found.
func ParseSeries(pageHTML string) (string, error) {
	doc, err := parse(pageHTML)
	if err != nil {
		return "", err
	}
	stripTooltips(doc)

	lines := doc.Find("div#content div.ContentBox").First().Find("ul li")

	var parent, name string
	lines.Each(func(_ int, line *goquery.Selection) {
		if parent != "" {
			return
		}
		if after, ok := cutAfter(line.Text(), "Sub-series of:"); ok {
			parent = strings.TrimSpace(after)
		}
	})
	lines.Each(func(_ int, line *goquery.Selection) {
		if name != "" {
			return
		}
		text := line.Text()
		for i, caption := range seriesCaptions {
			rest, ok := cutAfter(text, caption)
			if !ok {
				continue
			}
			// The record number runs straight on from the name.
			rest, _, _ = strings.Cut(rest, seriesRecordCaptions[i])
			name = strings.TrimSpace(rest)
			break
		}
	})

	if parent != "" && name != "" {
		return parent + " | " + name, nil
	}
	if parent != "" {
		return parent, nil
	}
	return name, nil
}

// cutAfter returns the text after the first occurrence of sep.
func cutAfter(s, sep string) (string, bool) {
	_, after, ok := strings.Cut(s, sep)
	return after, ok
}
