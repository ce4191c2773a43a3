package dataset

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadISBNs(t *testing.T) {
	// Create a temporary ISBN list with blanks, padding and a duplicate
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "isbns.txt")

	data := `9780140328721

  9780439554930
9780140328721
	9780553573404

`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	isbns, err := LoadISBNs(path)
	if err != nil {
		t.Fatalf("LoadISBNs failed: %v", err)
	}

	expected := []string{"9780140328721", "9780439554930", "9780140328721", "9780553573404"}
	if len(isbns) != len(expected) {
		t.Fatalf("Expected %d ISBNs, got %d", len(expected), len(isbns))
	}
	for i, want := range expected {
		if isbns[i] != want {
			t.Errorf("Expected ISBN %s at index %d, got %s", want, i, isbns[i])
		}
	}
}

func TestLoadISBNsEmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "empty.txt")

	if err := os.WriteFile(path, []byte("\n\n  \n"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	isbns, err := LoadISBNs(path)
	if err != nil {
		t.Fatalf("LoadISBNs failed: %v", err)
	}
	if len(isbns) != 0 {
		t.Errorf("Expected 0 ISBNs, got %d", len(isbns))
	}
}

func TestLoadISBNsNonExistentFile(t *testing.T) {
	_, err := LoadISBNs("/nonexistent/isbns.txt")
	if err == nil {
		t.Error("Expected error for non-existent file, got nil")
	}
}
