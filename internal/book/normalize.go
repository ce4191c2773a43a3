package book

import (
	"github.com/openshelf/booklens/internal/openlibrary"
)

// Normalize converts one decoded payload into a Record. It is total:
// a nil payload produces the all-default record with just the ISBN set,
// and no payload shape can make it fail.
func Normalize(isbn string, p *openlibrary.Payload) Record {
	r := Record{
		ISBN:         isbn,
		Authors:      []string{},
		Publishers:   []string{},
		GoodreadsIDs: []string{},
	}
	if p == nil {
		return r
	}

	if title := string(p.Title); title != "" {
		r.Title = &title
	}
	r.Authors = collectNames(p.Authors)
	r.Publishers = collectNames(p.Publishers)
	r.PublishDate = parseDate(string(p.PublishDate))
	if p.NumberOfPages.Valid && p.NumberOfPages.Int >= 0 {
		pages := p.NumberOfPages.Int
		r.NumberOfPages = &pages
	}
	r.GoodreadsIDs = append(r.GoodreadsIDs, p.Identifiers.Goodreads...)
	r.LastModified = parseTimestamp(string(p.LastModified))
	r.Description = string(p.Description)
	r.FirstSentence = firstSentence(p)
	return r
}

// collectNames keeps the non-empty entry names in source order; entries
// without a usable name drop silently.
func collectNames(entries openlibrary.NameList) []string {
	out := []string{}
	for _, e := range entries {
		if name := string(e.Name); name != "" {
			out = append(out, name)
		}
	}
	return out
}

// firstSentence prefers the payload's direct first_sentence field. The
// fallback scans excerpts for the first entry flagged as a first
// sentence with non-empty text.
func firstSentence(p *openlibrary.Payload) string {
	if s := string(p.FirstSentence); s != "" {
		return s
	}
	for _, e := range p.Excerpts {
		if bool(e.FirstSentence) && string(e.Text) != "" {
			return string(e.Text)
		}
	}
	return ""
}
