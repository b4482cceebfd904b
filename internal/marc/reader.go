package marc

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// Reader walks concatenated ISO 2709 records in a stream. Each record
// self-describes its length in the first five leader bytes, so the reader
// consumes exactly one record per call and stays aligned even when a
// record fails to parse.
type Reader struct {
	r      io.Reader
	offset int64
}

// NewReader returns a Reader positioned at the start of r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Offset returns the byte position of the next unread record.
func (r *Reader) Offset() int64 { return r.offset }

// Next reads and parses the next record. It returns io.EOF at a clean end
// of stream. A *StructuralError refers to the record just consumed; the
// reader is already positioned at the following record, so callers may
// keep calling Next. Any other error means the stream itself is broken.
func (r *Reader) Next() (*Record, error) {
	start := r.offset

	var lengthDigits [5]byte
	if _, err := io.ReadFull(r.r, lengthDigits[:]); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("record at offset %d: reading length: %w", start, err)
	}
	r.offset += 5

	length, ok := atoin(lengthDigits[:])
	if !ok || length < leaderLen {
		// Without a usable length there is no way to find the next
		// record boundary, so this kills the stream.
		return nil, fmt.Errorf("record at offset %d: unusable record length %q", start, lengthDigits)
	}

	data := make([]byte, length)
	copy(data, lengthDigits[:])
	if _, err := io.ReadFull(r.r, data[5:]); err != nil {
		return nil, fmt.Errorf("record at offset %d: reading %d bytes: %w", start, length, err)
	}
	r.offset += int64(length - 5)

	return Parse(data, start)
}

// ReadAll drains the stream, skipping structurally bad records after
// reporting them through slog. One bad record never stops a batch; only a
// broken stream does.
func ReadAll(rd io.Reader) ([]*Record, error) {
	r := NewReader(rd)
	var records []*Record
	for {
		rec, err := r.Next()
		if err == io.EOF {
			return records, nil
		}
		var se *StructuralError
		if errors.As(err, &se) {
			slog.Warn("Skipping malformed record", "offset", se.Offset, "reason", se.Reason)
			continue
		}
		if err != nil {
			return records, err
		}
		records = append(records, rec)
	}
}
