package reconcile

import "strings"

// FuzzyMatch reports whether two names plausibly refer to the same real-world
// entity. Case-insensitive, whitespace-trimmed; true when the strings are
// equal or one contains the other. Deliberately loose — recall over precision.
// False positives are contained at the call sites, which also require category
// (and, when both sides carry one, location) agreement.
func FuzzyMatch(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return false
	}
	return a == b || strings.Contains(a, b) || strings.Contains(b, a)
}
