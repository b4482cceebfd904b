// Package marc8 converts the legacy MARC-8 character encoding to Unicode.
//
// MARC-8 is stateful: escape sequences designate which character set is
// active in the G0 (0x21-0x7E) and G1 (0xA1-0xFE) code ranges, and ANSEL
// combining marks precede the letter they modify. The decoder tracks the
// designator state explicitly so transitions are testable in isolation.
package marc8

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

const esc = 0x1b

// substitution is emitted for byte sequences with no Unicode mapping.
// Decoding is best effort and never fails: one bad subfield must not take
// the rest of the record down with it.
const substitution = '�'

// A Decoder converts MARC-8 bytes to Unicode text. The zero value is not
// usable; call NewDecoder. A Decoder is reset per call to Decode, so one
// instance may be reused across subfields but not concurrently.
type Decoder struct {
	g0, g1 byte
}

// NewDecoder returns a Decoder in the default designator state:
// basic Latin in G0, ANSEL extended Latin in G1.
func NewDecoder() *Decoder {
	return &Decoder{g0: setBasicLatin, g1: setExtendedLatin}
}

// Decode converts one subfield's worth of MARC-8 bytes to Unicode,
// composed to NFC. Escape sequences are consumed, not emitted; unmappable
// sequences degrade to U+FFFD.
func Decode(b []byte) string {
	return NewDecoder().Decode(b)
}

// Decode converts b to Unicode text, resetting designator state first.
func (d *Decoder) Decode(b []byte) string {
	d.g0, d.g1 = setBasicLatin, setExtendedLatin

	var out strings.Builder
	out.Grow(len(b))

	// ANSEL places combining marks before their base character; Unicode
	// places them after. Marks are held back until the base is written.
	var pending []rune

	for i := 0; i < len(b); {
		c := b[i]

		if c == esc {
			i += d.escape(b[i:])
			continue
		}

		var set byte
		if c < 0x80 {
			set = d.g0
		} else {
			set = d.g1
		}

		r, combining, n := decodeByte(set, c)
		i += n
		if r < 0 {
			continue
		}
		if combining {
			pending = append(pending, r)
			continue
		}
		out.WriteRune(r)
		for _, m := range pending {
			out.WriteRune(m)
		}
		pending = pending[:0]
	}
	for _, m := range pending {
		out.WriteRune(m)
	}

	return norm.NFC.String(out.String())
}

// decodeByte maps one code unit through the given character set. It returns
// the rune (or -1 for silently dropped bytes), whether the rune is a
// combining mark, and how many input bytes were consumed.
func decodeByte(set, c byte) (r rune, combining bool, n int) {
	n = 1

	// Space and delimiters are invariant across single-byte sets.
	if c == 0x20 {
		return ' ', false, n
	}

	switch set {
	case setBasicLatin, setASCIIDefault:
		if c >= 0x21 && c <= 0x7e {
			return rune(c), false, n
		}
	case setExtendedLatin:
		if m, ok := anselCombining[c]; ok {
			return m, true, n
		}
		if r, ok := ansel[c]; ok {
			return r, false, n
		}
	case setGreekSymbols:
		if r, ok := greekSymbols[c]; ok {
			return r, false, n
		}
	case setSubscript:
		if r, ok := subscript[c]; ok {
			return r, false, n
		}
	case setSuperscript:
		if r, ok := superscript[c]; ok {
			return r, false, n
		}
	case setCJK:
		// EACC is a three-byte set with no table here; substitute the
		// whole triple rather than one replacement per byte.
		return substitution, false, 3
	}

	// Control bytes are dropped, everything else is substituted.
	if c < 0x20 {
		return -1, false, n
	}
	return substitution, false, n
}

// escape consumes one escape sequence starting at b[0] == ESC and updates
// the designator state. It returns the number of bytes consumed; a
// truncated or unrecognized sequence consumes just the ESC byte.
func (d *Decoder) escape(b []byte) int {
	if len(b) < 2 {
		return 1
	}

	switch b[1] {
	case 'g', 'b', 'p':
		// Single-character designations select G0 directly.
		d.g0 = b[1]
		return 2
	case 's':
		d.g0 = setBasicLatin
		return 2
	case '(', ',':
		if len(b) < 3 {
			return 1
		}
		d.g0 = b[2]
		return 3
	case ')', '-':
		if len(b) < 3 {
			return 1
		}
		d.g1 = b[2]
		return 3
	case '$':
		// Multibyte designations: ESC $ [,)-] F or ESC $ F.
		if len(b) < 3 {
			return 1
		}
		switch b[2] {
		case ',':
			if len(b) < 4 {
				return 1
			}
			d.g0 = b[3]
			return 4
		case ')', '-':
			if len(b) < 4 {
				return 1
			}
			d.g1 = b[3]
			return 4
		default:
			d.g0 = b[2]
			return 3
		}
	}
	return 1
}
