package models

import "strings"

// SecurityRef is a ticker reference row used for autocomplete.
type SecurityRef struct {
	Symbol      string `json:"symbol"`
	Description string `json:"description"`
}

// DedupeSecurities removes duplicate symbols, keeping first occurrence.
// Symbol comparison is case-insensitive.
func DedupeSecurities(refs []SecurityRef) []SecurityRef {
	seen := make(map[string]bool, len(refs))
	out := refs[:0]
	for _, r := range refs {
		key := strings.ToUpper(r.Symbol)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	return out
}
