package answers

import (
	"regexp"
	"sort"
	"strings"

	"github.com/openshelf/booklens/internal/book"
)

var nonWordChars = regexp.MustCompile(`[^\w\s]`)

// combinedText builds the normalized text for one record: description
// and first sentence joined, lower-cased, hyphens treated as spaces,
// every remaining non-word, non-space character stripped.
func combinedText(r book.Record) string {
	text := strings.ToLower(r.Description + " " + r.FirstSentence)
	text = strings.ReplaceAll(text, "-", " ")
	return nonWordChars.ReplaceAllString(text, "")
}

// LongestWordReport finds the longest distinct token(s) across every
// row's combined text, then collects the titles of rows whose stripped
// text contains any of those tokens as a substring. Words and titles
// come back sorted; a table without text yields the zero report.
func LongestWordReport(t *book.Table) WordReport {
	texts := make([]string, len(t.Rows))
	tokens := make(map[string]struct{})
	for i, r := range t.Rows {
		texts[i] = combinedText(r)
		for _, tok := range strings.Fields(texts[i]) {
			tokens[tok] = struct{}{}
		}
	}

	maxLen := 0
	for tok := range tokens {
		if len(tok) > maxLen {
			maxLen = len(tok)
		}
	}
	if maxLen == 0 {
		return WordReport{Words: []string{}, Titles: []string{}}
	}

	words := []string{}
	for tok := range tokens {
		if len(tok) == maxLen {
			words = append(words, tok)
		}
	}
	sort.Strings(words)

	titleSet := make(map[string]struct{})
	for i, r := range t.Rows {
		if r.Title == nil {
			continue
		}
		for _, w := range words {
			if strings.Contains(texts[i], w) {
				titleSet[*r.Title] = struct{}{}
				break
			}
		}
	}
	titles := make([]string, 0, len(titleSet))
	for title := range titleSet {
		titles = append(titles, title)
	}
	sort.Strings(titles)

	return WordReport{Length: maxLen, Words: words, Titles: titles}
}
