package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/openshelf/booklens/internal/book"
)

// Row is one flattened record in the audit artifacts. Scalars flatten
// to strings (empty when absent) so the CSV and parquet exports carry
// identical values; list fields stay lists in parquet and join with "|"
// in CSV.
type Row struct {
	ISBN          string   `json:"isbn" parquet:"isbn"`
	Title         string   `json:"title" parquet:"title"`
	Authors       []string `json:"authors" parquet:"authors,list"`
	Publishers    []string `json:"publishers" parquet:"publishers,list"`
	PublishDate   string   `json:"publish_date" parquet:"publish_date"`
	NumberOfPages string   `json:"number_of_pages" parquet:"number_of_pages"`
	GoodreadsIDs  []string `json:"goodreads_ids" parquet:"goodreads_ids,list"`
	LastModified  string   `json:"last_modified" parquet:"last_modified"`
	Description   string   `json:"description" parquet:"description"`
	FirstSentence string   `json:"first_sentence" parquet:"first_sentence"`
}

// Columns is the audit export header, in emission order.
var Columns = []string{
	"isbn",
	"title",
	"authors",
	"publishers",
	"publish_date",
	"number_of_pages",
	"goodreads_ids",
	"last_modified",
	"description",
	"first_sentence",
}

// FlattenRecords converts records into export rows, preserving order
// and count. One row per input record, pre-deduplication.
func FlattenRecords(records []book.Record) []Row {
	rows := make([]Row, len(records))
	for i, r := range records {
		rows[i] = flatten(r)
	}
	return rows
}

func flatten(r book.Record) Row {
	row := Row{
		ISBN:          r.ISBN,
		Authors:       r.Authors,
		Publishers:    r.Publishers,
		GoodreadsIDs:  r.GoodreadsIDs,
		Description:   r.Description,
		FirstSentence: r.FirstSentence,
	}
	if r.Title != nil {
		row.Title = *r.Title
	}
	if r.PublishDate != nil {
		row.PublishDate = r.PublishDate.Format("2006-01-02")
	}
	if r.NumberOfPages != nil {
		row.NumberOfPages = strconv.Itoa(*r.NumberOfPages)
	}
	if r.LastModified != nil {
		row.LastModified = r.LastModified.Format(time.RFC3339)
	}
	return row
}

// WriteCSV saves rows under the fixed column header.
func WriteCSV(path string, rows []Row) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(Columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			row.ISBN,
			row.Title,
			strings.Join(row.Authors, "|"),
			strings.Join(row.Publishers, "|"),
			row.PublishDate,
			row.NumberOfPages,
			strings.Join(row.GoodreadsIDs, "|"),
			row.LastModified,
			row.Description,
			row.FirstSentence,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

// WriteParquet saves rows as a parquet file with the same column set.
func WriteParquet(path string, rows []Row) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[Row](file)
	if len(rows) > 0 {
		if _, err := writer.Write(rows); err != nil {
			return fmt.Errorf("failed to write parquet rows: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}
