package answers

import (
	"slices"
	"sort"
	"time"

	"github.com/openshelf/booklens/internal/book"
)

// Where several groups tie for a top count, every query below resolves
// to the lexicographically (or numerically) smallest key so results are
// deterministic regardless of map iteration order.

// DistinctTitleCount counts distinct present titles; untitled rows are
// excluded.
func DistinctTitleCount(t *book.Table) int {
	titles := make(map[string]struct{})
	for _, r := range t.Rows {
		if r.Title != nil {
			titles[*r.Title] = struct{}{}
		}
	}
	return len(titles)
}

// TopTitleByISBNCount finds the title appearing on the most rows.
// A table with no titled rows yields nil.
func TopTitleByISBNCount(t *book.Table) *TitleCount {
	counts := make(map[string]int)
	for _, r := range t.Rows {
		if r.Title != nil {
			counts[*r.Title]++
		}
	}
	var best *TitleCount
	for title, count := range counts {
		if best == nil || count > best.Count || (count == best.Count && title < best.Title) {
			best = &TitleCount{Title: title, Count: count}
		}
	}
	return best
}

// CountMissingGoodreads counts rows without a Goodreads identifier.
func CountMissingGoodreads(t *book.Table) int {
	count := 0
	for _, r := range t.Rows {
		if len(r.GoodreadsIDs) == 0 {
			count++
		}
	}
	return count
}

// CountMultiAuthor counts rows with more than one author.
func CountMultiAuthor(t *book.Table) int {
	count := 0
	for _, r := range t.Rows {
		if len(r.Authors) > 1 {
			count++
		}
	}
	return count
}

// PublisherBookCounts tallies one count per publisher a row lists,
// sorted descending by count, ties by publisher name. Publishers with
// zero appearances are never emitted.
func PublisherBookCounts(t *book.Table) []PublisherCount {
	counts := make(map[string]int)
	for _, r := range t.Rows {
		for _, p := range r.Publishers {
			counts[p]++
		}
	}
	out := make([]PublisherCount, 0, len(counts))
	for publisher, count := range counts {
		out = append(out, PublisherCount{Publisher: publisher, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Publisher < out[j].Publisher
	})
	return out
}

// MedianPageCount computes the median of present page counts, averaging
// the two middle values for even-sized sets. No values yields nil.
func MedianPageCount(t *book.Table) *float64 {
	var pages []float64
	for _, r := range t.Rows {
		if r.NumberOfPages != nil {
			pages = append(pages, float64(*r.NumberOfPages))
		}
	}
	if len(pages) == 0 {
		return nil
	}
	sort.Float64s(pages)
	mid := len(pages) / 2
	var median float64
	if len(pages)%2 == 0 {
		median = (pages[mid-1] + pages[mid]) / 2
	} else {
		median = pages[mid]
	}
	return &median
}

// TopPublicationMonth finds the calendar month with the most
// publications among rows with a present date. Ties resolve to the
// earliest month; no dates yields nil.
func TopPublicationMonth(t *book.Table) *MonthCount {
	var counts [13]int
	total := 0
	for _, r := range t.Rows {
		if r.PublishDate != nil {
			counts[int(r.PublishDate.Month())]++
			total++
		}
	}
	if total == 0 {
		return nil
	}
	best := 0
	for m := 1; m <= 12; m++ {
		if counts[m] > 0 && (best == 0 || counts[m] > counts[best]) {
			best = m
		}
	}
	return &MonthCount{Month: time.Month(best).String(), Count: counts[best]}
}

// MostRecentlyPublished returns the row with the maximum publish date.
// Equal dates keep the earlier table row; no dates yields nil.
func MostRecentlyPublished(t *book.Table) *DatedTitle {
	var best *book.Record
	for i := range t.Rows {
		r := &t.Rows[i]
		if r.PublishDate == nil {
			continue
		}
		if best == nil || r.PublishDate.After(*best.PublishDate) {
			best = r
		}
	}
	if best == nil {
		return nil
	}
	return &DatedTitle{Title: best.Title, Date: *best.PublishDate}
}

// TopUpdateYear returns the modal year of last-modified timestamps.
// Ties resolve to the earliest year; no timestamps yields nil.
func TopUpdateYear(t *book.Table) *int {
	counts := make(map[int]int)
	for _, r := range t.Rows {
		if r.LastModified != nil {
			counts[r.LastModified.Year()]++
		}
	}
	bestYear := 0
	bestCount := 0
	for year, count := range counts {
		if count > bestCount || (count == bestCount && year < bestYear) {
			bestYear, bestCount = year, count
		}
	}
	if bestCount == 0 {
		return nil
	}
	return &bestYear
}

// SecondBookOfTopAuthor picks the author with the most distinct titles,
// sorts that author's rows ascending by publish date (stable, undated
// rows last), and returns the second row's title. An author with fewer
// than two rows, or a second row without a title, yields nil.
func SecondBookOfTopAuthor(t *book.Table) *string {
	titlesByAuthor := make(map[string]map[string]struct{})
	for _, r := range t.Rows {
		if r.Title == nil {
			continue
		}
		for _, a := range r.Authors {
			if titlesByAuthor[a] == nil {
				titlesByAuthor[a] = make(map[string]struct{})
			}
			titlesByAuthor[a][*r.Title] = struct{}{}
		}
	}

	topAuthor := ""
	topCount := 0
	for author, titles := range titlesByAuthor {
		if len(titles) > topCount || (len(titles) == topCount && author < topAuthor) {
			topAuthor, topCount = author, len(titles)
		}
	}
	if topCount == 0 {
		return nil
	}

	var rows []book.Record
	for _, r := range t.Rows {
		if slices.Contains(r.Authors, topAuthor) {
			rows = append(rows, r)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		di, dj := rows[i].PublishDate, rows[j].PublishDate
		switch {
		case di == nil:
			return false
		case dj == nil:
			return true
		default:
			return di.Before(*dj)
		}
	})
	if len(rows) < 2 {
		return nil
	}
	return rows[1].Title
}

// TopPublisherAuthorPair finds the most frequent publisher and author
// co-occurrence; a row contributes one count per combination it
// induces. Ties resolve to the smallest publisher, then the smallest
// author; no pairs yields nil.
func TopPublisherAuthorPair(t *book.Table) *PairCount {
	type pair struct {
		publisher, author string
	}
	counts := make(map[pair]int)
	for _, r := range t.Rows {
		for _, p := range r.Publishers {
			for _, a := range r.Authors {
				counts[pair{p, a}]++
			}
		}
	}
	var best *PairCount
	for pr, count := range counts {
		better := best == nil || count > best.Count ||
			(count == best.Count && (pr.publisher < best.Publisher ||
				(pr.publisher == best.Publisher && pr.author < best.Author)))
		if better {
			best = &PairCount{Publisher: pr.publisher, Author: pr.author, Count: count}
		}
	}
	return best
}
