package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	slugRegexp = regexp.MustCompile(`[^a-z0-9]+`)
	apostrophe = strings.NewReplacer("'", "", "’", "")
)

// Generate creates a URL-friendly slug from a category or product name.
// Diacritics are stripped and apostrophes dropped, so
// "men's clothing" becomes "mens-clothing" and "Café Crème" becomes "cafe-creme".
func Generate(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = apostrophe.Replace(s)

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(t, s); err == nil {
		s = folded
	}
	// Dotless i has no decomposition.
	s = strings.ReplaceAll(s, "ı", "i")

	s = slugRegexp.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Match returns the first candidate whose slug equals the given slug.
func Match(slug string, candidates []string) (string, bool) {
	want := Generate(slug)
	for _, c := range candidates {
		if Generate(c) == want {
			return c, true
		}
	}
	return "", false
}
