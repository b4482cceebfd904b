package marc

import (
	"bytes"
	"strings"

	"github.com/lehigh-university-libraries/marcmatch/internal/marc/marc8"
)

// Parse decodes one complete ISO 2709 record. offset is the record's byte
// position in the originating file and is used only in diagnostics.
//
// Structural problems (length mismatch, malformed leader or directory,
// fields pointing outside the data area) return a *StructuralError and
// abort the whole record: directory corruption means the byte layout is
// untrustworthy. Character decoding problems never abort; bad sequences
// degrade to U+FFFD inside the affected subfield.
func Parse(data []byte, offset int64) (*Record, error) {
	if len(data) < leaderLen {
		return nil, structural(offset, "truncated record: %d bytes, leader needs %d", len(data), leaderLen)
	}

	var leader Leader
	copy(leader.raw[:], data[:leaderLen])

	declared, ok := atoin(data[0:5])
	if !ok {
		return nil, structural(offset, "leader record length %q is not numeric", data[0:5])
	}
	if declared != len(data) {
		return nil, structural(offset, "leader declares %d bytes, got %d", declared, len(data))
	}
	if data[10] != '2' {
		return nil, structural(offset, "indicator count %q, want 2", data[10])
	}
	if data[11] != '2' {
		return nil, structural(offset, "subfield code length %q, want 2", data[11])
	}

	dirEnd := bytes.IndexByte(data, FieldTerminator)
	if dirEnd < leaderLen {
		return nil, structural(offset, "directory has no field terminator")
	}
	directory := data[leaderLen:dirEnd]
	if len(directory)%dirEntryLen != 0 {
		return nil, structural(offset, "directory length %d is not a multiple of %d", len(directory), dirEntryLen)
	}
	dataArea := data[dirEnd+1:]

	rec := &Record{Leader: leader}
	decode := decoder(leader)

	prevTag := ""
	for i := 0; i < len(directory); i += dirEntryLen {
		entry := directory[i : i+dirEntryLen]
		tag := string(entry[0:3])
		length, ok := atoin(entry[3:7])
		if !ok {
			return nil, structural(offset, "field %s: length %q is not numeric", tag, entry[3:7])
		}
		fieldOffset, ok := atoin(entry[7:12])
		if !ok {
			return nil, structural(offset, "field %s: offset %q is not numeric", tag, entry[7:12])
		}

		if tag < prevTag {
			return nil, structural(offset, "directory tag %s out of order after %s", tag, prevTag)
		}
		prevTag = tag

		if length == 0 {
			return nil, structural(offset, "field %s: zero-length directory entry", tag)
		}
		if fieldOffset+length > len(dataArea) {
			return nil, structural(offset, "field %s: %d+%d exceeds data area of %d bytes",
				tag, fieldOffset, length, len(dataArea))
		}

		raw := dataArea[fieldOffset : fieldOffset+length]
		raw = bytes.TrimSuffix(raw, []byte{FieldTerminator})

		field, err := parseField(tag, raw, decode, offset)
		if err != nil {
			return nil, err
		}
		if tag == "001" {
			rec.ControlNumber = field.Value
		}
		rec.AddField(field)
	}

	return rec, nil
}

func parseField(tag string, raw []byte, decode func([]byte) string, offset int64) (Field, error) {
	if strings.HasPrefix(tag, "00") {
		return Field{Tag: tag, Value: string(raw)}, nil
	}

	if len(raw) < 2 {
		return Field{}, structural(offset, "field %s: %d bytes, too short for indicators", tag, len(raw))
	}
	field := Field{Tag: tag, Indicator1: raw[0], Indicator2: raw[1]}

	for _, part := range bytes.Split(raw[2:], []byte{SubfieldDelimiter}) {
		if len(part) == 0 {
			continue
		}
		field.Subfields = append(field.Subfields, Subfield{
			Code:  part[0],
			Value: decode(part[1:]),
		})
	}
	return field, nil
}

// decoder picks the subfield text converter for the record's declared
// coding scheme: UTF-8 records pass through, everything else is MARC-8.
func decoder(leader Leader) func([]byte) string {
	if leader.CodingScheme() == 'a' {
		return func(b []byte) string {
			return strings.ToValidUTF8(string(b), "�")
		}
	}
	d := marc8.NewDecoder()
	return func(b []byte) string {
		if isPrintableASCII(b) {
			return string(b)
		}
		return d.Decode(b)
	}
}

// isPrintableASCII reports whether every byte is in 0x20-0x7E. Such input
// needs no escape processing and decodes as itself.
func isPrintableASCII(b []byte) bool {
	for _, c := range b {
		if c < 0x20 || c > 0x7e {
			return false
		}
	}
	return true
}
