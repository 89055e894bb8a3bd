// Package normalize provides the canonical forms stored for user-supplied
// identifiers and free text.
package normalize

import "strings"

// Email trims surrounding space and lower-cases the address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding space and preserves case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Role trims the value without changing case; roles are camelCase (jobSeeker).
func Role(s string) string {
	return strings.TrimSpace(s)
}

// List trims every entry and drops the empty ones.
func List(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// QueryParam trims a query string value.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}
