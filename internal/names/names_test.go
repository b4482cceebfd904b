package names

import (
	"strings"
	"testing"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		name           string
		a, b           string
		lastNameOnlyOK bool
		want           bool
	}{
		{
			name: "identical catalog names",
			a:    "Tolkien, J. R. R.", b: "Tolkien, J. R. R.",
			lastNameOnlyOK: true, want: true,
		},
		{
			name: "organization names match exactly",
			a:    "United States. Central Intelligence Agency", b: "United States Central Intelligence Agency",
			lastNameOnlyOK: false, want: true,
		},
		{
			name: "inconsistent spacing",
			a:    "Le Carre, John", b: "LeCarre, John",
			lastNameOnlyOK: true, want: true,
		},
		{
			name: "catalog form against natural order",
			a:    "Hamilton, David", b: "David Hamilton",
			lastNameOnlyOK: true, want: true,
		},
		{
			name: "initials abbreviate given names",
			a:    "Tolkien, J. R. R.", b: "Tolkien, John Ronald Reuel",
			lastNameOnlyOK: true, want: true,
		},
		{
			name: "abbreviation tolerated in both directions",
			a:    "Buckley, William F.", b: "Buckley, W. Frank",
			lastNameOnlyOK: true, want: true,
		},
		{
			name: "missing middle names as ordered subsequence",
			a:    "Dickens, Charles John Huffam", b: "Dickens, Charles",
			lastNameOnlyOK: true, want: true,
		},
		{
			name: "honorific stripped before comparing",
			a:    "Gielgud, Sir John", b: "Gielgud, John",
			lastNameOnlyOK: true, want: true,
		},
		{
			name: "compound surname suffix",
			a:    "Van der Berg, Jan", b: "Berg, Jan",
			lastNameOnlyOK: true, want: true,
		},
		{
			name: "surname only needs the flag",
			a:    "Austen", b: "Austen, Jane",
			lastNameOnlyOK: true, want: true,
		},
		{
			name: "surname only rejected without the flag",
			a:    "Austen", b: "Austen, Jane",
			lastNameOnlyOK: false, want: false,
		},
		{
			name: "different given names",
			a:    "Hamilton, David", b: "Hamilton, Sarah",
			lastNameOnlyOK: true, want: false,
		},
		{
			name: "different surnames reject outright",
			a:    "Hamilton, David", b: "Hammond, David",
			lastNameOnlyOK: true, want: false,
		},
		{
			name: "unrelated surname is not a bounded suffix",
			a:    "Grant, Ulysses", b: "Migrant, Ulysses",
			lastNameOnlyOK: true, want: false,
		},
		{
			name: "empty names never match",
			a:    "", b: "Austen, Jane",
			lastNameOnlyOK: true, want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Match(tt.a, tt.b, tt.lastNameOnlyOK); got != tt.want {
				t.Errorf("Match(%q, %q, %v) = %v, want %v", tt.a, tt.b, tt.lastNameOnlyOK, got, tt.want)
			}
			// Symmetry: swapping the arguments must not change the answer.
			if got := Match(tt.b, tt.a, tt.lastNameOnlyOK); got != tt.want {
				t.Errorf("Match(%q, %q, %v) = %v, want %v (asymmetric)", tt.b, tt.a, tt.lastNameOnlyOK, got, tt.want)
			}
		})
	}
}

func TestMatchFlipped(t *testing.T) {
	// 30-character fixed-width surname + initials, as seen in some
	// secondary-source name fields.
	legacy := "Fitzgerald" + strings.Repeat(" ", 30-len("Fitzgerald")-len("F. Scott")) + "F. Scott"
	if len(legacy) != 30 {
		t.Fatalf("test fixture is %d chars, want 30", len(legacy))
	}

	if !MatchFlipped(legacy, "Fitzgerald, F. Scott") {
		t.Errorf("MatchFlipped failed to recognize the fixed-width form %q", legacy)
	}
	if !MatchFlipped("Fitzgerald, F. Scott", legacy) {
		t.Errorf("MatchFlipped is not symmetric for %q", legacy)
	}
	if MatchFlipped(legacy, "Hemingway, Ernest") {
		t.Error("MatchFlipped matched unrelated names")
	}

	// Ordinary catalog names still work through the convenience entry.
	if !MatchFlipped("Hamilton, David", "David Hamilton") {
		t.Error("MatchFlipped rejected a plain catalog-form match")
	}
}
