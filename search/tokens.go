package search

import (
	"regexp"
	"strings"
	"unicode"
)

// Joining words stripped from title searches. They carry no selectivity
// and the catalog's "contains" predicate matches without them.
var joiners = map[string]bool{
	"a":   true,
	"an":  true,
	"and": true,
	"the": true,
	"&":   true,
}

var (
	// Bracketed annotations like "(2010)" or "[Omnibus edition]" and
	// subtitles after a slash, colon, or backslash.
	subtitleRE = regexp.MustCompile(`[([{].*?[)\]}]|[/:\\].*$`)

	// Characters replaced with spaces before splitting into tokens.
	specialsRE = regexp.MustCompile("[:,;!@$%^&*(){}.`~\"\\[\\]/]")

	// Commas used as thousands separators.
	numCommaRE = regexp.MustCompile(`(\d+),(\d+)`)
)

// TitleTokens splits a free-text title into search tokens: bracketed
// annotations and subtitle text are stripped, punctuation becomes
// spaces, and joining words are dropped. Token order is preserved; no
// article reordering is performed.
func TitleTokens(title string) []string {
	title = numCommaRE.ReplaceAllString(title, "$1$2")
	title = subtitleRE.ReplaceAllString(title, " ")
	title = specialsRE.ReplaceAllString(title, " ")

	var tokens []string
	for _, tok := range strings.Fields(title) {
		if joiners[strings.ToLower(tok)] {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// AuthorTokens splits the first listed author into name tokens. A name
// in "surname, given-name" form is rotated to "given-name surname"
// order; middle names and initials are preserved. Only the first author
// is used because the catalog's multi-author search is unreliable.
func AuthorTokens(authors []string) []string {
	if len(authors) == 0 {
		return nil
	}
	name := authors[0]
	if strings.Contains(name, ",") {
		parts := strings.Split(name, ",")
		parts = append(parts[1:], parts[0])
		name = strings.Join(parts, " ")
	}
	return strings.Fields(name)
}

// TitleTerm joins title tokens into the search term string.
func TitleTerm(title string) string {
	return strings.Join(TitleTokens(title), " ")
}

// AuthorTerm joins author tokens into the search term string.
func AuthorTerm(authors []string) string {
	return strings.Join(AuthorTokens(authors), " ")
}

// NormalizeTitle case-folds a title and strips every character that is
// not a letter or a space. The resolution engine compares normalized
// titles to promote exact matches to the best relevance tier.
func NormalizeTitle(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsSpace(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
