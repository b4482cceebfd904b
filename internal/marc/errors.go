package marc

import (
	"errors"
	"fmt"
)

// Sentinel errors for the singleton accessors on Record and Field.
var (
	// ErrNotFound is returned when a requested tag or subfield code is absent.
	ErrNotFound = errors.New("not found")
	// ErrRepeated is returned when a singleton accessor finds more than one value.
	ErrRepeated = errors.New("repeated")
)

// StructuralError is a fatal per-record parse failure: the record's byte
// layout is untrustworthy and the whole record must be skipped. Offset is
// the byte position of the record in the originating file, for diagnostics.
type StructuralError struct {
	Offset int64
	Reason string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("record at offset %d: %s", e.Offset, e.Reason)
}

func structural(offset int64, format string, args ...any) *StructuralError {
	return &StructuralError{Offset: offset, Reason: fmt.Sprintf(format, args...)}
}
