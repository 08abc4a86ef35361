// Package titles produces the ordered list of search queries tried against
// the provider for one resolution attempt.
package titles

import (
	"strings"

	"github.com/mozillazg/go-unidecode"
)

// Variants returns the queries to try, in priority order:
//
//  1. the resolved title verbatim,
//  2. the title with diacritics transliterated to ASCII (the provider's
//     search index and the metadata source disagree on accented
//     characters often enough that this rescues real lookups),
//  3. the raw external id as a last-resort literal query.
//
// Duplicates are dropped, order is preserved, and the result always has at
// least one element with the unmodified title first.
func Variants(title, externalID string) []string {
	variants := make([]string, 0, 3)
	seen := make(map[string]struct{}, 3)

	add := func(v string) {
		v = strings.TrimSpace(v)
		if v == "" {
			return
		}
		if _, dup := seen[v]; dup {
			return
		}
		seen[v] = struct{}{}
		variants = append(variants, v)
	}

	add(title)
	add(unidecode.Unidecode(title))
	add(externalID)

	if len(variants) == 0 {
		add(externalID)
	}
	return variants
}
