package marc8

import (
	"testing"
)

func TestDecodeASCIIFastPathEquivalence(t *testing.T) {
	// Printable 7-bit ASCII must decode as itself.
	inputs := []string{
		"",
		"Spytime : the undoing of James Jesus Angleton",
		"!\"#$%&'()*+,-./0123456789:;<=>?@",
		"abcdefghijklmnopqrstuvwxyz ABCDEFGHIJKLMNOPQRSTUVWXYZ ~",
	}
	for _, in := range inputs {
		if got := Decode([]byte(in)); got != in {
			t.Errorf("Decode(%q) = %q, want input unchanged", in, got)
		}
	}
}

func TestDecodeANSEL(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  string
	}{
		{
			name:  "combining acute reorders after base and composes",
			input: []byte{0xe2, 'e'},
			want:  "é", // é
		},
		{
			name:  "diacritic inside a word",
			input: append([]byte("Bront"), 0xe8, 'e'),
			want:  "Brontë", // Brontë
		},
		{
			name:  "spacing ANSEL characters",
			input: []byte{0xb9, ' ', 0xb5},
			want:  "£ æ", // £ æ
		},
		{
			name:  "eszett",
			input: append([]byte("Stra"), 0xc7, 'e'),
			want:  "Straße",
		},
		{
			name:  "trailing combining mark with no base survives",
			input: []byte{'a', 0xe2},
			want:  "á",
		},
		{
			name:  "double diacritics on one base",
			input: []byte{0xf0, 0xe2, 'c'},
			want:  "ḉ", // c+cedilla composes, acute stays combining
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decode(tt.input); got != tt.want {
				t.Errorf("Decode(% x) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDecodeEscapeSequences(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  string
	}{
		{
			name:  "greek symbols via single-character designation",
			input: []byte{0x1b, 'g', 'a', 0x1b, 's', 'a'},
			want:  "αa", // α then latin a after reset
		},
		{
			name:  "subscript digits",
			input: []byte{'H', 0x1b, 'b', '2', 0x1b, 's', 'O'},
			want:  "H₂O",
		},
		{
			name:  "superscript digits",
			input: []byte{'m', 0x1b, 'p', '2', 0x1b, 's'},
			want:  "m²",
		},
		{
			name:  "G0 designation with intermediate",
			input: []byte{0x1b, '(', 'B', 'o', 'k'},
			want:  "ok",
		},
		{
			name:  "escape sequences are consumed, not emitted",
			input: []byte{0x1b, ')', 'E', 'x'},
			want:  "x",
		},
		{
			name:  "truncated escape at end of input",
			input: []byte{'a', 0x1b},
			want:  "a",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decode(tt.input); got != tt.want {
				t.Errorf("Decode(% x) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDecodeUnmappableDegradesToSubstitution(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  string
	}{
		{
			name:  "undesignated G1 byte with no ANSEL mapping",
			input: []byte{'a', 0xff, 'b'},
			want:  "a�b",
		},
		{
			name:  "unsupported hebrew set substitutes but keeps going",
			input: []byte{0x1b, '(', '2', 'a', 0x1b, '(', 'B', 'z'},
			want:  "�z",
		},
		{
			name:  "CJK multibyte consumed three bytes at a time",
			input: []byte{0x1b, '$', '1', 'a', 'b', 'c', 'd', 'e', 'f'},
			want:  "��",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decode(tt.input); got != tt.want {
				t.Errorf("Decode(% x) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDecoderStateResetsBetweenCalls(t *testing.T) {
	d := NewDecoder()
	if got := d.Decode([]byte{0x1b, 'g', 'a'}); got != "α" {
		t.Fatalf("first decode = %q, want alpha", got)
	}
	// The greek designation must not leak into the next subfield.
	if got := d.Decode([]byte{'a'}); got != "a" {
		t.Errorf("second decode = %q, want %q", got, "a")
	}
}
