package marc

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func corruptRecord(t *testing.T) []byte {
	// Valid length digits, broken directory ordering: the reader can
	// still consume exactly one record's worth of bytes and move on.
	data := mustSerialize(t, testRecord())
	first := make([]byte, dirEntryLen)
	copy(first, data[leaderLen:leaderLen+dirEntryLen])
	copy(data[leaderLen:], data[leaderLen+dirEntryLen:leaderLen+2*dirEntryLen])
	copy(data[leaderLen+dirEntryLen:], first)
	return data
}

func TestReaderRecoversAfterBadRecord(t *testing.T) {
	good := mustSerialize(t, testRecord())

	var stream bytes.Buffer
	stream.Write(good)
	stream.Write(corruptRecord(t))
	stream.Write(good)

	r := NewReader(&stream)

	if _, err := r.Next(); err != nil {
		t.Fatalf("first record: %v", err)
	}

	_, err := r.Next()
	var se *StructuralError
	if !errors.As(err, &se) {
		t.Fatalf("second record: error = %v, want *StructuralError", err)
	}
	if want := int64(len(good)); se.Offset != want {
		t.Errorf("structural error offset = %d, want %d", se.Offset, want)
	}

	rec, err := r.Next()
	if err != nil {
		t.Fatalf("third record after skip: %v", err)
	}
	if rec.ControlNumber != "ocm12345" {
		t.Errorf("third record control number = %q", rec.ControlNumber)
	}

	if _, err := r.Next(); err != io.EOF {
		t.Errorf("at end: error = %v, want io.EOF", err)
	}
}

func TestReadAllSkipsBadRecords(t *testing.T) {
	good := mustSerialize(t, testRecord())

	var stream bytes.Buffer
	stream.Write(good)
	stream.Write(corruptRecord(t))
	stream.Write(good)

	records, err := ReadAll(&stream)
	if err != nil {
		t.Fatalf("ReadAll() error: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("ReadAll() returned %d records, want 2", len(records))
	}
}

func TestReaderUnusableLengthKillsStream(t *testing.T) {
	r := NewReader(bytes.NewBufferString("xxxxx garbage that is not a record"))
	_, err := r.Next()
	if err == nil || err == io.EOF {
		t.Fatalf("error = %v, want stream error", err)
	}
	var se *StructuralError
	if errors.As(err, &se) {
		t.Errorf("unusable length should not be a per-record StructuralError")
	}
}

func TestReaderOffsets(t *testing.T) {
	good := mustSerialize(t, testRecord())

	var stream bytes.Buffer
	stream.Write(good)
	stream.Write(good)

	r := NewReader(&stream)
	if r.Offset() != 0 {
		t.Errorf("initial offset = %d", r.Offset())
	}
	if _, err := r.Next(); err != nil {
		t.Fatalf("Next() error: %v", err)
	}
	if want := int64(len(good)); r.Offset() != want {
		t.Errorf("offset after one record = %d, want %d", r.Offset(), want)
	}
}
