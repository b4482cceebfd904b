package marc8

// Character set designators from the MARC-8 environment. Each single-byte
// set maps the GL range (0x21-0x7E) or GR range (0xA1-0xFE) to Unicode.
const (
	setBasicLatin       = 0x42 // 'B'
	setASCIIDefault     = 0x73 // 's'
	setExtendedLatin    = 0x45 // 'E' (ANSEL)
	setGreekSymbols     = 0x67 // 'g'
	setSubscript        = 0x62 // 'b'
	setSuperscript      = 0x70 // 'p'
	setBasicHebrew      = 0x32 // '2'
	setBasicArabic      = 0x33 // '3'
	setExtendedArabic   = 0x34 // '4'
	setBasicCyrillic    = 0x4e // 'N'
	setExtendedCyrillic = 0x51 // 'Q'
	setBasicGreek       = 0x53 // 'S'
	setCJK              = 0x31 // '1' (multibyte EACC)
)

// ansel maps ANSEL (MARC-8 extended Latin) code points to Unicode.
// Spacing characters live at 0xA1-0xC8; 0xE0-0xFE are combining marks that
// precede their base letter in MARC-8 and must be reordered after it.
var ansel = map[byte]rune{
	0xa1: 0x0141, // uppercase polish l
	0xa2: 0x00d8, // uppercase scandinavian o
	0xa3: 0x0110, // uppercase d with crossbar
	0xa4: 0x00de, // uppercase icelandic thorn
	0xa5: 0x00c6, // uppercase digraph ae
	0xa6: 0x0152, // uppercase digraph oe
	0xa7: 0x02b9, // soft sign, prime
	0xa8: 0x00b7, // middle dot
	0xa9: 0x266d, // musical flat sign
	0xaa: 0x00ae, // patent mark
	0xab: 0x00b1, // plus or minus
	0xac: 0x01a0, // uppercase o-hook
	0xad: 0x01af, // uppercase u-hook
	0xae: 0x02bc, // alif
	0xb0: 0x02bb, // ayn
	0xb1: 0x0142, // lowercase polish l
	0xb2: 0x00f8, // lowercase scandinavian o
	0xb3: 0x0111, // lowercase d with crossbar
	0xb4: 0x00fe, // lowercase icelandic thorn
	0xb5: 0x00e6, // lowercase digraph ae
	0xb6: 0x0153, // lowercase digraph oe
	0xb7: 0x02ba, // hard sign, double prime
	0xb8: 0x0131, // lowercase turkish i
	0xb9: 0x00a3, // british pound
	0xba: 0x00f0, // lowercase eth
	0xbc: 0x01a1, // lowercase o-hook
	0xbd: 0x01b0, // lowercase u-hook
	0xc0: 0x00b0, // degree sign
	0xc1: 0x2113, // script small l
	0xc2: 0x2117, // sound recording copyright
	0xc3: 0x00a9, // copyright sign
	0xc4: 0x266f, // musical sharp sign
	0xc5: 0x00bf, // inverted question mark
	0xc6: 0x00a1, // inverted exclamation mark
	0xc7: 0x00df, // eszett
	0xc8: 0x20ac, // euro sign
}

// anselCombining maps ANSEL combining marks to Unicode combining characters.
var anselCombining = map[byte]rune{
	0xe0: 0x0309, // hook above
	0xe1: 0x0300, // grave
	0xe2: 0x0301, // acute
	0xe3: 0x0302, // circumflex
	0xe4: 0x0303, // tilde
	0xe5: 0x0304, // macron
	0xe6: 0x0306, // breve
	0xe7: 0x0307, // dot above
	0xe8: 0x0308, // diaeresis
	0xe9: 0x030c, // caron
	0xea: 0x030a, // ring above
	0xeb: 0xfe20, // ligature left half
	0xec: 0xfe21, // ligature right half
	0xed: 0x0315, // high comma off center
	0xee: 0x030b, // double acute
	0xef: 0x0310, // candrabindu
	0xf0: 0x0327, // cedilla
	0xf1: 0x0328, // right hook (ogonek)
	0xf2: 0x0323, // dot below
	0xf3: 0x0324, // double dot below
	0xf4: 0x0325, // ring below
	0xf5: 0x0333, // double underscore
	0xf6: 0x0332, // underscore
	0xf7: 0x0326, // comma below
	0xf8: 0x031c, // right cedilla
	0xf9: 0x032e, // half circle below
	0xfa: 0xfe22, // double tilde left half
	0xfb: 0xfe23, // double tilde right half
	0xfe: 0x0313, // high comma centered
}

// greekSymbols maps the three-character Greek symbols set.
var greekSymbols = map[byte]rune{
	0x61: 0x03b1, // alpha
	0x62: 0x03b2, // beta
	0x63: 0x03b3, // gamma
}

// subscript maps the subscript character set.
var subscript = map[byte]rune{
	0x28: 0x208d, 0x29: 0x208e, 0x2b: 0x208a, 0x2d: 0x208b,
	0x30: 0x2080, 0x31: 0x2081, 0x32: 0x2082, 0x33: 0x2083, 0x34: 0x2084,
	0x35: 0x2085, 0x36: 0x2086, 0x37: 0x2087, 0x38: 0x2088, 0x39: 0x2089,
}

// superscript maps the superscript character set.
var superscript = map[byte]rune{
	0x28: 0x207d, 0x29: 0x207e, 0x2b: 0x207a, 0x2d: 0x207b,
	0x30: 0x2070, 0x31: 0x00b9, 0x32: 0x00b2, 0x33: 0x00b3, 0x34: 0x2074,
	0x35: 0x2075, 0x36: 0x2076, 0x37: 0x2077, 0x38: 0x2078, 0x39: 0x2079,
}
