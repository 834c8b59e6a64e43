package domain

import (
	"strings"
	"unicode"
)

// provinces is the fixed selector order.
var provinces = []string{
	"Limpopo",
	"Gauteng",
	"Western Cape",
	"Eastern Cape",
	"Northern Cape",
	"Free State",
	"KwaZulu-Natal",
	"Mpumalanga",
	"North West",
}

// Provinces returns the nine recognised province names in selector order.
func Provinces() []string {
	out := make([]string, len(provinces))
	copy(out, provinces)
	return out
}

// IsProvince reports whether name is exactly one of the recognised provinces.
func IsProvince(name string) bool {
	for _, p := range provinces {
		if p == name {
			return true
		}
	}
	return false
}

// ResolveKey maps a province name to its data resource key by lowercasing
// and collapsing each run of whitespace to a single hyphen.
// "Western Cape" becomes "western-cape".
func ResolveKey(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	inSpace := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte('-')
			}
			inSpace = true
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

// LookupProvince finds the province whose key matches ResolveKey(s), so
// "western cape", "Western-Cape" and "WESTERN CAPE" all find "Western Cape".
func LookupProvince(s string) (string, bool) {
	key := ResolveKey(strings.TrimSpace(s))
	for _, p := range provinces {
		if ResolveKey(p) == key {
			return p, true
		}
	}
	return "", false
}
