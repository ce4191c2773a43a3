package openlibrary

import (
	"bytes"
	"encoding/json"
)

// Payload is the decoded shape of one cached Open Library payload: the
// /api/books data entry merged with the last_modified and description
// members of the edition document. Open Library data is hand-entered and
// shape surprises are routine, so every irregular field decodes through
// a forgiving wrapper type that degrades to its zero value instead of
// returning an error.
type Payload struct {
	Title         FlexString  `json:"title"`
	Authors       NameList    `json:"authors"`
	Publishers    NameList    `json:"publishers"`
	PublishDate   FlexString  `json:"publish_date"`
	NumberOfPages OptInt      `json:"number_of_pages"`
	Identifiers   Identifiers `json:"identifiers"`
	LastModified  FlexString  `json:"last_modified"`
	Description   FlexString  `json:"description"`
	FirstSentence FlexString  `json:"first_sentence"`
	Excerpts      ExcerptList `json:"excerpts"`
}

// Identifiers holds the external identifier lists keyed under the
// payload's "identifiers" member.
type Identifiers struct {
	Goodreads StringList `json:"goodreads"`
}

// UnmarshalJSON tolerates a non-object identifiers member.
func (i *Identifiers) UnmarshalJSON(data []byte) error {
	type plain Identifiers
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		*i = Identifiers{}
		return nil
	}
	*i = Identifiers(p)
	return nil
}

// NameEntry is one element of an authors or publishers array.
type NameEntry struct {
	Name FlexString `json:"name"`
}

// NameList decodes an array of name-carrying objects, dropping elements
// that are not objects.
type NameList []NameEntry

func (l *NameList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		*l = nil
		return nil
	}
	out := make(NameList, 0, len(raw))
	for _, el := range raw {
		var entry NameEntry
		if err := json.Unmarshal(el, &entry); err != nil {
			continue
		}
		out = append(out, entry)
	}
	*l = out
	return nil
}

// Excerpt is one element of the excerpts array. The first_sentence flag
// marks the excerpt that carries the book's opening line.
type Excerpt struct {
	Text          FlexString `json:"text"`
	FirstSentence FlexBool   `json:"first_sentence"`
}

// ExcerptList decodes the excerpts array, dropping non-object elements.
type ExcerptList []Excerpt

func (l *ExcerptList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		*l = nil
		return nil
	}
	out := make(ExcerptList, 0, len(raw))
	for _, el := range raw {
		var e Excerpt
		if err := json.Unmarshal(el, &e); err != nil {
			continue
		}
		out = append(out, e)
	}
	*l = out
	return nil
}

// FlexString decodes Open Library's polymorphic text fields: a plain
// string, an object carrying a "value" string, or a bare number. Any
// other shape decodes to the empty string.
type FlexString string

func (s *FlexString) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = FlexString(str)
		return nil
	}
	var obj struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		*s = FlexString(obj.Value)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err == nil {
		*s = FlexString(num.String())
		return nil
	}
	*s = ""
	return nil
}

// FlexBool is true only for a literal JSON true; every other shape
// decodes to false.
type FlexBool bool

func (b *FlexBool) UnmarshalJSON(data []byte) error {
	var v bool
	if err := json.Unmarshal(data, &v); err != nil {
		*b = false
		return nil
	}
	*b = FlexBool(v)
	return nil
}

// OptInt is an integer that knows whether the source carried a number.
type OptInt struct {
	Int   int
	Valid bool
}

func (o *OptInt) UnmarshalJSON(data []byte) error {
	*o = OptInt{}
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*o = OptInt{Int: n, Valid: true}
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*o = OptInt{Int: int(f), Valid: true}
	}
	return nil
}

// StringList decodes a JSON array keeping only its string elements.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		*l = nil
		return nil
	}
	out := make(StringList, 0, len(raw))
	for _, el := range raw {
		var s string
		if err := json.Unmarshal(el, &s); err == nil {
			out = append(out, s)
		}
	}
	*l = out
	return nil
}

// DecodePayload decodes raw cached payload bytes. Absent, null, or
// non-object input means "no data available" and yields nil; shape
// surprises inside the object degrade to zero values, never errors.
func DecodePayload(data []byte) *Payload {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	var p Payload
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return nil
	}
	return &p
}
