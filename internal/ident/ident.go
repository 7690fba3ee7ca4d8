// Package ident provides case-insensitive comparison and lookup for CIM
// names — class, property, method, parameter, and qualifier identifiers
// are case-insensitive for comparison but preserve their original case
// for output (spec §3). Normalize is ASCII-fast-pathed with a
// golang.org/x/text/cases fold fallback for the rare non-ASCII
// identifier transcribed from a non-English MOF schema.
package ident

import "golang.org/x/text/cases"

var foldCaser = cases.Fold()

// Normalize folds s to its comparison form. Folding twice is a no-op
// (Normalize(Normalize(s)) == Normalize(s)).
func Normalize(s string) string {
	if isASCII(s) {
		return asciiLower(s)
	}
	return foldCaser.String(s)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

func asciiLower(s string) string {
	hasUpper := false
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			hasUpper = true
			break
		}
	}
	if !hasUpper {
		return s
	}
	b := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		b[i] = c
	}
	return string(b)
}

// Equal reports whether a and b are the same identifier once folded.
func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// Compare returns <0, 0, >0 as a sorts before, equal to, or after b,
// folding case first. Suitable as a sort.Slice less-function via
// Compare(a, b) < 0.
func Compare(a, b string) int {
	na, nb := Normalize(a), Normalize(b)
	if na < nb {
		return -1
	}
	if na > nb {
		return 1
	}
	return 0
}

// Contains reports whether search occurs in slice under fold equality.
func Contains(slice []string, search string) bool {
	return Index(slice, search) >= 0
}

// Index returns the index of the first element of slice equal to search
// under fold equality, or -1.
func Index(slice []string, search string) int {
	n := Normalize(search)
	for i, s := range slice {
		if Normalize(s) == n {
			return i
		}
	}
	return -1
}

// IsKeyword reports whether s equals any of keywords under fold
// equality. Used for MOF reserved-word checks (DSP0004 §A reserved
// words are case-insensitive).
func IsKeyword(s string, keywords ...string) bool {
	return Contains(keywords, s)
}
