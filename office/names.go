package office

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// NameKey returns the comparison key used to re-resolve shapes by name.
// Hosts differ in how they normalise and case shape names, so lookups compare
// NFC-normalised, case-folded, trimmed names.
func NameKey(name string) string {
	s := norm.NFC.String(strings.TrimSpace(name))
	return cases.Fold().String(s)
}

// SameName reports whether a and b resolve to the same NameKey.
func SameName(a, b string) bool {
	return NameKey(a) == NameKey(b)
}
