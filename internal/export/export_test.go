package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/openshelf/booklens/internal/book"
)

func sampleRecords() []book.Record {
	title := "Dune"
	pages := 412
	published := time.Date(1965, time.August, 1, 0, 0, 0, 0, time.UTC)
	modified := time.Date(2020, time.August, 18, 22, 53, 47, 0, time.UTC)
	return []book.Record{
		{
			ISBN:          "9780441013593",
			Title:         &title,
			Authors:       []string{"Frank Herbert"},
			Publishers:    []string{"Chilton Books", "Ace"},
			PublishDate:   &published,
			NumberOfPages: &pages,
			GoodreadsIDs:  []string{"234225"},
			LastModified:  &modified,
			Description:   "A desert planet.",
			FirstSentence: "In the week before their departure.",
		},
		{
			ISBN:         "0000000000",
			Authors:      []string{},
			Publishers:   []string{},
			GoodreadsIDs: []string{},
		},
	}
}

func TestFlattenRecords(t *testing.T) {
	rows := FlattenRecords(sampleRecords())
	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}

	// Present fields flatten to their string forms
	full := rows[0]
	if full.ISBN != "9780441013593" {
		t.Errorf("Expected ISBN=9780441013593, got %s", full.ISBN)
	}
	if full.Title != "Dune" {
		t.Errorf("Expected Title=Dune, got %s", full.Title)
	}
	if full.PublishDate != "1965-08-01" {
		t.Errorf("Expected PublishDate=1965-08-01, got %s", full.PublishDate)
	}
	if full.NumberOfPages != "412" {
		t.Errorf("Expected NumberOfPages=412, got %s", full.NumberOfPages)
	}
	if full.LastModified != "2020-08-18T22:53:47Z" {
		t.Errorf("Expected LastModified=2020-08-18T22:53:47Z, got %s", full.LastModified)
	}
	if len(full.Publishers) != 2 {
		t.Errorf("Expected 2 publishers, got %v", full.Publishers)
	}

	// Absent fields flatten to empty strings
	empty := rows[1]
	if empty.Title != "" || empty.PublishDate != "" || empty.NumberOfPages != "" || empty.LastModified != "" {
		t.Errorf("Expected empty scalar fields, got %+v", empty)
	}
	if len(empty.Authors) != 0 {
		t.Errorf("Expected no authors, got %v", empty.Authors)
	}
}

func TestWriteCSV(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "books.csv")

	if err := WriteCSV(path, FlattenRecords(sampleRecords())); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open CSV: %v", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("Failed to parse CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected header plus 2 rows, got %d records", len(records))
	}

	// Check header matches the fixed column order
	for i, col := range Columns {
		if records[0][i] != col {
			t.Errorf("Expected column %s at index %d, got %s", col, i, records[0][i])
		}
	}

	// Check list joining and scalar values
	if records[1][0] != "9780441013593" {
		t.Errorf("Expected isbn in first row, got %s", records[1][0])
	}
	if records[1][3] != "Chilton Books|Ace" {
		t.Errorf("Expected pipe-joined publishers, got %s", records[1][3])
	}
	if records[2][1] != "" {
		t.Errorf("Expected empty title in second row, got %s", records[2][1])
	}
}

func TestWriteParquet(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "books.parquet")

	if err := WriteParquet(path, FlattenRecords(sampleRecords())); err != nil {
		t.Fatalf("WriteParquet failed: %v", err)
	}

	rows := readParquet(t, path)
	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}
	if rows[0].ISBN != "9780441013593" {
		t.Errorf("Expected isbn in first row, got %s", rows[0].ISBN)
	}
	if len(rows[0].Publishers) != 2 || rows[0].Publishers[0] != "Chilton Books" {
		t.Errorf("Expected publishers list to survive, got %v", rows[0].Publishers)
	}
	if rows[1].Title != "" || len(rows[1].Authors) != 0 {
		t.Errorf("Expected empty second row, got %+v", rows[1])
	}
}

func TestWriteParquetNoRows(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "empty.parquet")

	if err := WriteParquet(path, nil); err != nil {
		t.Fatalf("WriteParquet failed: %v", err)
	}

	if rows := readParquet(t, path); len(rows) != 0 {
		t.Errorf("Expected 0 rows, got %d", len(rows))
	}
}

func readParquet(t *testing.T, path string) []Row {
	t.Helper()

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open parquet file: %v", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		t.Fatalf("Failed to stat parquet file: %v", err)
	}
	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		t.Fatalf("Failed to open parquet: %v", err)
	}

	reader := parquet.NewGenericReader[Row](pf)
	defer reader.Close()

	var records []Row
	rows := make([]Row, 16)
	for {
		n, err := reader.Read(rows)
		if n > 0 {
			records = append(records, rows[:n]...)
		}
		if err != nil {
			break
		}
	}
	return records
}
