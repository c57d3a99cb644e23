package search

import (
	"sort"
	"strings"
	"unicode"

	"paperpen/models"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize lowercases and strips diacritical marks so that "Crème" and
// "creme" compare equal. Applied to both queries and product names.
// Chained transformers carry internal buffers, so each call builds its own;
// handlers run these concurrently.
func Normalize(s string) string {
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	lowered := strings.ToLower(s)
	out, _, err := transform.String(stripMarks, lowered)
	if err != nil {
		return lowered
	}
	return out
}

// Filter is the product-listing search: an empty or whitespace-only query
// returns the full catalog unfiltered, anything else returns ranked
// substring matches.
func Filter(products []models.Product, query string) []models.Product {
	if strings.TrimSpace(query) == "" {
		out := make([]models.Product, len(products))
		copy(out, products)
		return out
	}
	return rank(products, query)
}

// Suggest is the autocomplete search: an empty query suggests nothing.
func Suggest(products []models.Product, query string) []models.Product {
	if strings.TrimSpace(query) == "" {
		return []models.Product{}
	}
	return rank(products, query)
}

// rank returns products whose normalized name contains the normalized
// query. Names starting with the query sort before names that merely
// contain it; within each group ordering is collated on normalized names.
func rank(products []models.Product, query string) []models.Product {
	q := Normalize(strings.TrimSpace(query))

	// collators keep iteration state between calls and are not safe to
	// share across goroutines
	collator := collate.New(language.Und)

	type scored struct {
		product models.Product
		name    string
		prefix  bool
	}

	var matches []scored
	for _, p := range products {
		name := Normalize(p.Name)
		if !strings.Contains(name, q) {
			continue
		}
		matches = append(matches, scored{
			product: p,
			name:    name,
			prefix:  strings.HasPrefix(name, q),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].prefix != matches[j].prefix {
			return matches[i].prefix
		}
		return collator.CompareString(matches[i].name, matches[j].name) < 0
	})

	out := make([]models.Product, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.product)
	}
	return out
}
