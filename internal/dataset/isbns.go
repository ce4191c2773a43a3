package dataset

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadISBNs reads an identifier list, one ISBN per line. Surrounding
// whitespace is trimmed and blank lines skipped; order and duplicates
// are preserved, since deduplication belongs to the record table build.
func LoadISBNs(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ISBN list %s: %w", path, err)
	}
	defer file.Close()

	var isbns []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		isbns = append(isbns, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ISBN list %s: %w", path, err)
	}
	return isbns, nil
}
