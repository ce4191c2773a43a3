package book

// Table is the record set queries run against. Rows is deduplicated by
// ISBN; Audit keeps every pre-dedup row, one per original input
// identifier, in input order, for the audit export.
type Table struct {
	Rows  []Record
	Audit []Record
}

// BuildTable deduplicates records by ISBN, keeping the first occurrence
// per identifier and preserving relative order otherwise. The untouched
// input survives as Audit.
func BuildTable(records []Record) *Table {
	t := &Table{
		Rows:  make([]Record, 0, len(records)),
		Audit: records,
	}
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		if _, ok := seen[r.ISBN]; ok {
			continue
		}
		seen[r.ISBN] = struct{}{}
		t.Rows = append(t.Rows, r)
	}
	return t
}
