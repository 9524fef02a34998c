package goquery

import "strings"

// typeToTags maps the catalog's controlled title-type vocabulary to
// free-text tags. Unknown types are ignored rather than raising.
var typeToTags = map[string]string{
	"ANTHOLOGY":                  "anthology",
	"CHAPBOOK":                   "chapbook",
	"COLLECTION":                 "collection",
	"ESSAY":                      "essay",
	"FANZINE":                    "fanzine",
	"MAGAZINE":                   "magazine",
	"NONFICTION":                 "non-fiction",
	"NOVEL":                      "novel",
	"NOVEL\n [non-genre]":        "novel",
	"OMNIBUS":                    "omnibus",
	"POEM":                       "poem",
	"SERIAL":                     "serial",
	"SHORTFICTION":               "short fiction",
	"SHORTFICTION\n [juvenile]":  "juvenile, short fiction",
	"SHORTFICTION\n [non-genre]": "short fiction",
}

// typeTags returns the tags for a title type value, or nil for unknown
// types.
func typeTags(titleType string) []string {
	tags, ok := typeToTags[titleType]
	if !ok {
		return nil
	}
	var out []string
	for _, t := range strings.Split(tags, ",") {
		out = append(out, strings.TrimSpace(t))
	}
	return out
}
