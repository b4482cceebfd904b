package marc

import (
	"bytes"
	"fmt"
)

// maxFieldLen and maxRecordLen are the ISO 2709 ceilings: directory
// length and offset columns are 4 and 5 decimal digits, so a field over
// 9999 bytes or a record over 99999 cannot be represented.
const (
	maxFieldLen  = 9999
	maxRecordLen = 99999
)

// Serialize writes a Record back to ISO 2709 bytes: leader with recomputed
// lengths, directory sorted by tag, then the data area. Subfield text is
// always emitted as UTF-8 with the leader coding scheme set accordingly,
// so serializing a MARC-8 record upgrades it; re-parsing the output yields
// identical field contents and is stable from then on. A field or record
// too long for its fixed-width directory columns is an error, never
// silently misaligned output.
func Serialize(r *Record) ([]byte, error) {
	var dir, data bytes.Buffer

	for _, tag := range r.Tags() {
		for _, f := range r.Fields(tag) {
			start := data.Len()
			writeField(&data, f)
			if n := data.Len() - start; n > maxFieldLen {
				return nil, fmt.Errorf("field %s is %d bytes, over the %d byte directory limit", tag, n, maxFieldLen)
			}
			fmt.Fprintf(&dir, "%s%04d%05d", tag, data.Len()-start, start)
		}
	}
	dir.WriteByte(FieldTerminator)
	data.WriteByte(RecordTerminator)

	base := leaderLen + dir.Len()
	total := base + data.Len()
	if total > maxRecordLen {
		return nil, fmt.Errorf("record is %d bytes, over the %d byte leader limit", total, maxRecordLen)
	}

	leader := r.Leader.raw
	copy(leader[0:5], fmt.Sprintf("%05d", total))
	leader[9] = 'a' // output is always UTF-8
	leader[10] = '2'
	leader[11] = '2'
	copy(leader[12:17], fmt.Sprintf("%05d", base))
	copy(leader[20:24], "4500")

	out := make([]byte, 0, total)
	out = append(out, leader[:]...)
	out = append(out, dir.Bytes()...)
	out = append(out, data.Bytes()...)
	return out, nil
}

func writeField(buf *bytes.Buffer, f Field) {
	if f.IsControl() {
		buf.WriteString(f.Value)
	} else {
		buf.WriteByte(f.Indicator1)
		buf.WriteByte(f.Indicator2)
		for _, sf := range f.Subfields {
			buf.WriteByte(SubfieldDelimiter)
			buf.WriteByte(sf.Code)
			buf.WriteString(sf.Value)
		}
	}
	buf.WriteByte(FieldTerminator)
}
