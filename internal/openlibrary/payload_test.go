package openlibrary

import "testing"

func TestDecodePayload(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantNil bool
	}{
		{name: "empty input", data: "", wantNil: true},
		{name: "whitespace only", data: "  \n", wantNil: true},
		{name: "json null", data: "null", wantNil: true},
		{name: "padded null", data: " null ", wantNil: true},
		{name: "malformed json", data: "{\"title\": ", wantNil: true},
		{name: "array instead of object", data: "[]", wantNil: true},
		{name: "bare string", data: "\"Dune\"", wantNil: true},
		{name: "empty object", data: "{}", wantNil: false},
		{name: "normal payload", data: "{\"title\": \"Dune\"}", wantNil: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodePayload([]byte(tt.data))
			if tt.wantNil && got != nil {
				t.Errorf("Expected nil payload, got %+v", got)
			}
			if !tt.wantNil && got == nil {
				t.Error("Expected payload, got nil")
			}
		})
	}
}

func TestDecodePayloadNilInput(t *testing.T) {
	if got := DecodePayload(nil); got != nil {
		t.Errorf("Expected nil payload for nil input, got %+v", got)
	}
}

// Open Library data is hand-entered; a single payload can mix clean and
// broken shapes. Decoding must salvage the clean parts.
func TestDecodePayloadIrregularShapes(t *testing.T) {
	data := `{
		"title": ["not", "a", "string"],
		"authors": ["J. R. R. Tolkien", {"name": "Christopher Tolkien"}, 42],
		"publishers": [{"name": "Allen & Unwin"}],
		"publish_date": 1977,
		"number_of_pages": "365",
		"identifiers": {"goodreads": "7332"},
		"last_modified": true,
		"excerpts": ["bare string", {"text": "In a hole in the ground.", "first_sentence": true}]
	}`

	p := DecodePayload([]byte(data))
	if p == nil {
		t.Fatal("Expected payload, got nil")
	}

	if string(p.Title) != "" {
		t.Errorf("Expected empty title for array shape, got %q", p.Title)
	}
	if string(p.PublishDate) != "1977" {
		t.Errorf("Expected publish_date=1977, got %q", p.PublishDate)
	}
	if p.NumberOfPages.Valid {
		t.Errorf("Expected invalid page count for string shape, got %d", p.NumberOfPages.Int)
	}
	if string(p.LastModified) != "" {
		t.Errorf("Expected empty last_modified for bool shape, got %q", p.LastModified)
	}

	// Only the object element survives in authors
	if len(p.Authors) != 1 || string(p.Authors[0].Name) != "Christopher Tolkien" {
		t.Errorf("Expected one author entry, got %+v", p.Authors)
	}
	if len(p.Publishers) != 1 || string(p.Publishers[0].Name) != "Allen & Unwin" {
		t.Errorf("Expected one publisher entry, got %+v", p.Publishers)
	}

	// Non-list goodreads member degrades to no identifiers
	if len(p.Identifiers.Goodreads) != 0 {
		t.Errorf("Expected no goodreads ids, got %v", p.Identifiers.Goodreads)
	}

	// Non-object excerpt elements drop
	if len(p.Excerpts) != 1 || string(p.Excerpts[0].Text) != "In a hole in the ground." {
		t.Errorf("Expected one excerpt, got %+v", p.Excerpts)
	}
	if !bool(p.Excerpts[0].FirstSentence) {
		t.Error("Expected excerpt first_sentence flag to be true")
	}
}
