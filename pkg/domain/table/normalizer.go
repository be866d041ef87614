package table

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// ColumnRule maps every legal source spelling of a field onto its canonical name
type ColumnRule struct {
	Canonical string
	Aliases   []string
}

// CanonicalHeader folds a header for comparison: NFKC (full-width to half-width),
// every kind of whitespace removed including embedded newlines, lower-cased.
func CanonicalHeader(header string) string {
	folded := norm.NFKC.String(header)
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// Normalize returns a copy of t with source columns renamed to their canonical names.
// The first matching column wins; later columns that map to an already present
// canonical name keep their original header. Canonical names missing from the
// source stay absent. Normalizing a normalized table changes nothing.
func Normalize(t *Table, rules []ColumnRule) *Table {
	lookup := make(map[string]string)
	canonical := make(map[string]bool, len(rules))
	for _, rule := range rules {
		canonical[rule.Canonical] = true
		for _, name := range append([]string{rule.Canonical}, rule.Aliases...) {
			key := CanonicalHeader(name)
			if _, exists := lookup[key]; !exists {
				lookup[key] = rule.Canonical
			}
		}
	}

	out := t.Clone()
	used := make(map[string]bool)
	for _, col := range out.Columns {
		if canonical[col] {
			used[col] = true
		}
	}

	for i, col := range out.Columns {
		if canonical[col] {
			continue
		}
		target, ok := lookup[CanonicalHeader(col)]
		if !ok || used[target] {
			continue
		}
		out.Columns[i] = target
		used[target] = true
	}

	return out
}

// Missing lists the canonical names of rules that did not resolve to a column
func Missing(t *Table, rules []ColumnRule) []string {
	var missing []string
	for _, rule := range rules {
		if !t.Has(rule.Canonical) {
			missing = append(missing, rule.Canonical)
		}
	}
	return missing
}
