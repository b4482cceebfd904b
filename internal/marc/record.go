// Package marc parses and serializes MARC21 bibliographic records in the
// ISO 2709 binary exchange format, including MARC-8 encoded text.
package marc

import (
	"fmt"
	"sort"
	"strings"
)

// Reserved delimiter bytes of the ISO 2709 layout.
const (
	FieldTerminator   = 0x1e
	SubfieldDelimiter = 0x1f
	RecordTerminator  = 0x1d
)

const (
	leaderLen   = 24
	dirEntryLen = 12
)

// Leader is the fixed 24-byte header of a MARC record. The raw bytes are
// kept so serialization can reproduce positions the parser does not
// interpret (status, type, entry map).
type Leader struct {
	raw [leaderLen]byte
}

// RecordLength returns the declared total record length in bytes.
func (l Leader) RecordLength() int {
	n, _ := atoin(l.raw[0:5])
	return n
}

// Status returns the record status byte (position 5).
func (l Leader) Status() byte { return l.raw[5] }

// Type returns the type-of-record byte (position 6).
func (l Leader) Type() byte { return l.raw[6] }

// CodingScheme returns the character-coding-scheme byte (position 9):
// space for MARC-8, 'a' for UTF-8.
func (l Leader) CodingScheme() byte { return l.raw[9] }

// BaseAddress returns the declared base address of the data area.
func (l Leader) BaseAddress() int {
	n, _ := atoin(l.raw[12:17])
	return n
}

func (l Leader) String() string { return string(l.raw[:]) }

// Subfield is one (code, value) pair of a data field, in encounter order.
type Subfield struct {
	Code  byte
	Value string
}

// Field is one variable field of a record. Control fields (tag 00X) carry
// only Value; data fields carry two indicators and an ordered subfield
// sequence. The ordered form is authoritative since a subfield code may
// repeat and some consumers depend on the original interleaving.
type Field struct {
	Tag        string
	Value      string // control fields only
	Indicator1 byte
	Indicator2 byte
	Subfields  []Subfield
}

// IsControl reports whether the field is a control field (tag starts "00").
func (f Field) IsControl() bool { return strings.HasPrefix(f.Tag, "00") }

// Values returns every value of the given subfield code, in order.
// A missing code yields an empty slice, never an error.
func (f Field) Values(code byte) []string {
	var out []string
	for _, sf := range f.Subfields {
		if sf.Code == code {
			out = append(out, sf.Value)
		}
	}
	return out
}

// One returns the single value of the given subfield code. It fails with
// ErrNotFound when the code is absent and ErrRepeated when callers that
// expect a singleton would silently pick one of several values.
func (f Field) One(code byte) (string, error) {
	vals := f.Values(code)
	switch len(vals) {
	case 0:
		return "", fmt.Errorf("subfield %s$%c: %w", f.Tag, code, ErrNotFound)
	case 1:
		return vals[0], nil
	default:
		return "", fmt.Errorf("subfield %s$%c has %d values: %w", f.Tag, code, len(vals), ErrRepeated)
	}
}

// Record is one parsed MARC record. It is produced by Parse and treated as
// immutable by consumers; every tag maps to the ordered sequence of fields
// that carried it, since tags repeat.
type Record struct {
	Leader        Leader
	ControlNumber string // value of the 001 control field, if present

	fields map[string][]Field
}

// Fields returns every field with the given tag, in record order.
// A missing tag yields an empty slice.
func (r *Record) Fields(tag string) []Field {
	return r.fields[tag]
}

// One returns the single field with the given tag, failing with ErrNotFound
// or ErrRepeated so callers expecting a singleton learn about unexpected
// repetition instead of silently using the first value.
func (r *Record) One(tag string) (Field, error) {
	fs := r.fields[tag]
	switch len(fs) {
	case 0:
		return Field{}, fmt.Errorf("tag %s: %w", tag, ErrNotFound)
	case 1:
		return fs[0], nil
	default:
		return Field{}, fmt.Errorf("tag %s has %d fields: %w", tag, len(fs), ErrRepeated)
	}
}

// Tags returns the record's tags in ascending order.
func (r *Record) Tags() []string {
	tags := make([]string, 0, len(r.fields))
	for tag := range r.fields {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// AddField appends a field to the record, preserving order among repeats
// of the same tag. Parsing uses it; so can tooling that assembles or edits
// records before re-serializing them.
func (r *Record) AddField(f Field) {
	if r.fields == nil {
		r.fields = make(map[string][]Field)
	}
	r.fields[f.Tag] = append(r.fields[f.Tag], f)
}

// atoin parses an unsigned ASCII decimal. Unlike strconv.Atoi it rejects
// sign characters and whitespace, which MARC length fields never contain.
func atoin(b []byte) (int, bool) {
	if len(b) == 0 {
		return 0, false
	}
	n := 0
	for _, c := range b {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}
