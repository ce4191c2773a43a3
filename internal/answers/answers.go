package answers

import (
	"sync"
	"time"

	"github.com/openshelf/booklens/internal/book"
)

// TitleCount pairs a title with how many ISBN rows carry it.
type TitleCount struct {
	Title string `json:"title" yaml:"title"`
	Count int    `json:"count" yaml:"count"`
}

// PublisherCount pairs a publisher with how many rows list it.
type PublisherCount struct {
	Publisher string `json:"publisher" yaml:"publisher"`
	Count     int    `json:"count" yaml:"count"`
}

// MonthCount pairs a calendar month name with a publication count.
type MonthCount struct {
	Month string `json:"month" yaml:"month"`
	Count int    `json:"count" yaml:"count"`
}

// WordReport is the longest-word analysis over the combined
// description and first-sentence text of every row.
type WordReport struct {
	Length int      `json:"length" yaml:"length"`
	Words  []string `json:"words" yaml:"words"`
	Titles []string `json:"titles" yaml:"titles"`
}

// DatedTitle pairs a publish date with the (possibly absent) title of
// the row carrying it.
type DatedTitle struct {
	Title *string   `json:"title" yaml:"title"`
	Date  time.Time `json:"date" yaml:"date"`
}

// PairCount is a publisher and author co-occurrence tally.
type PairCount struct {
	Publisher string `json:"publisher" yaml:"publisher"`
	Author    string `json:"author" yaml:"author"`
	Count     int    `json:"count" yaml:"count"`
}

// Set holds the twelve answers in question order, numbered as in the
// text report. Pointer fields are nil when the table had no data to
// answer from.
type Set struct {
	DistinctTitles    int              `json:"distinct_titles" yaml:"distinct_titles"`
	TopTitle          *TitleCount      `json:"top_title" yaml:"top_title"`
	NoGoodreads       int              `json:"no_goodreads" yaml:"no_goodreads"`
	MultiAuthor       int              `json:"multi_author" yaml:"multi_author"`
	PublisherCounts   []PublisherCount `json:"books_per_publisher" yaml:"books_per_publisher"`
	MedianPages       *float64         `json:"median_pages" yaml:"median_pages"`
	TopMonth          *MonthCount      `json:"top_month" yaml:"top_month"`
	LongestWords      WordReport       `json:"longest_words" yaml:"longest_words"`
	MostRecent        *DatedTitle      `json:"most_recent" yaml:"most_recent"`
	TopUpdateYear     *int             `json:"top_update_year" yaml:"top_update_year"`
	SecondByTopAuthor *string          `json:"second_by_top_author" yaml:"second_by_top_author"`
	TopPair           *PairCount       `json:"top_publisher_author_pair" yaml:"top_publisher_author_pair"`
}

// Compute runs the twelve queries fanned out across goroutines. Every
// query is a pure function over the table and writes one distinct
// field, so the result is identical to running them sequentially.
func Compute(t *book.Table) *Set {
	s := &Set{}

	queries := []func(){
		func() { s.DistinctTitles = DistinctTitleCount(t) },
		func() { s.TopTitle = TopTitleByISBNCount(t) },
		func() { s.NoGoodreads = CountMissingGoodreads(t) },
		func() { s.MultiAuthor = CountMultiAuthor(t) },
		func() { s.PublisherCounts = PublisherBookCounts(t) },
		func() { s.MedianPages = MedianPageCount(t) },
		func() { s.TopMonth = TopPublicationMonth(t) },
		func() { s.LongestWords = LongestWordReport(t) },
		func() { s.MostRecent = MostRecentlyPublished(t) },
		func() { s.TopUpdateYear = TopUpdateYear(t) },
		func() { s.SecondByTopAuthor = SecondBookOfTopAuthor(t) },
		func() { s.TopPair = TopPublisherAuthorPair(t) },
	}

	var wg sync.WaitGroup
	for _, query := range queries {
		wg.Add(1)
		go func() {
			defer wg.Done()
			query()
		}()
	}
	wg.Wait()

	return s
}
