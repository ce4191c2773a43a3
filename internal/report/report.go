package report

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/openshelf/booklens/internal/answers"
)

// Header identifies one pipeline run in the report artifacts.
type Header struct {
	RunID     string `json:"run_id" yaml:"run_id"`
	Timestamp string `json:"timestamp" yaml:"timestamp"`
	Source    string `json:"source" yaml:"source"`
	Inputs    int    `json:"inputs" yaml:"inputs"`
	TableRows int    `json:"table_rows" yaml:"table_rows"`
}

// NewHeader stamps a run header with a fresh id and the current time.
func NewHeader(source string, inputs, tableRows int) Header {
	return Header{
		RunID:     uuid.NewString(),
		Timestamp: time.Now().Format("2006-01-02_15-04-05"),
		Source:    source,
		Inputs:    inputs,
		TableRows: tableRows,
	}
}

// WriteText saves the answers as the numbered-line text report.
func WriteText(path string, set *answers.Set) error {
	if err := os.WriteFile(path, []byte(FormatText(set)), 0644); err != nil {
		return fmt.Errorf("failed to write answers to %s: %w", path, err)
	}
	return nil
}

// FormatText renders the twelve answers, one numbered line each (the
// publisher breakdown and the longest-word titles get sub-lines).
// Unanswerable questions render as n/a.
func FormatText(set *answers.Set) string {
	var b strings.Builder

	fmt.Fprintf(&b, "1. Number of different books: %d\n", set.DistinctTitles)

	if set.TopTitle != nil {
		fmt.Fprintf(&b, "2. Book with most ISBNs: %s (%d ISBNs)\n", set.TopTitle.Title, set.TopTitle.Count)
	} else {
		b.WriteString("2. Book with most ISBNs: n/a\n")
	}

	fmt.Fprintf(&b, "3. Books without a Goodreads id: %d\n", set.NoGoodreads)
	fmt.Fprintf(&b, "4. Books with more than one author: %d\n", set.MultiAuthor)

	b.WriteString("5. Books per publisher:\n")
	for _, pc := range set.PublisherCounts {
		fmt.Fprintf(&b, "   - %s: %d\n", pc.Publisher, pc.Count)
	}

	if set.MedianPages != nil {
		fmt.Fprintf(&b, "6. Median number of pages: %s\n", strconv.FormatFloat(*set.MedianPages, 'f', -1, 64))
	} else {
		b.WriteString("6. Median number of pages: n/a\n")
	}

	if set.TopMonth != nil {
		fmt.Fprintf(&b, "7. Month with most published books: %s (%d books)\n", set.TopMonth.Month, set.TopMonth.Count)
	} else {
		b.WriteString("7. Month with most published books: n/a\n")
	}

	if set.LongestWords.Length > 0 {
		fmt.Fprintf(&b, "8. Longest word(s) (%d letters): %s\n", set.LongestWords.Length, strings.Join(set.LongestWords.Words, ", "))
		fmt.Fprintf(&b, "   Found in titles: %s\n", strings.Join(set.LongestWords.Titles, ", "))
	} else {
		b.WriteString("8. Longest word(s): n/a\n")
	}

	if set.MostRecent != nil {
		title := "n/a"
		if set.MostRecent.Title != nil {
			title = *set.MostRecent.Title
		}
		fmt.Fprintf(&b, "9. Most recently published book: %s (%s)\n", title, set.MostRecent.Date.Format("2006-01-02"))
	} else {
		b.WriteString("9. Most recently published book: n/a\n")
	}

	if set.TopUpdateYear != nil {
		fmt.Fprintf(&b, "10. Year with most catalog updates: %d\n", *set.TopUpdateYear)
	} else {
		b.WriteString("10. Year with most catalog updates: n/a\n")
	}

	if set.SecondByTopAuthor != nil {
		fmt.Fprintf(&b, "11. Second book of the top author: %s\n", *set.SecondByTopAuthor)
	} else {
		b.WriteString("11. Second book of the top author: n/a\n")
	}

	if set.TopPair != nil {
		fmt.Fprintf(&b, "12. Top publisher-author pair: %s / %s (%d books)\n", set.TopPair.Publisher, set.TopPair.Author, set.TopPair.Count)
	} else {
		b.WriteString("12. Top publisher-author pair: n/a\n")
	}

	return b.String()
}

// PrintSummary writes the console run summary.
func PrintSummary(w io.Writer, header Header, set *answers.Set) {
	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 70))
	fmt.Fprintf(w, "BOOKLENS RUN %s\n", header.RunID)
	fmt.Fprintf(w, "%s\n", strings.Repeat("=", 70))
	fmt.Fprintf(w, "Source:       %s\n", header.Source)
	fmt.Fprintf(w, "Input ISBNs:  %d\n", header.Inputs)
	fmt.Fprintf(w, "Table rows:   %d\n", header.TableRows)
	fmt.Fprintf(w, "%s\n", strings.Repeat("-", 70))
	fmt.Fprint(w, FormatText(set))
	fmt.Fprintf(w, "%s\n", strings.Repeat("=", 70))
}
