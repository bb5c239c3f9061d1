package dex

import "strings"

// Identity derives the normalized join key used across every data source:
// lowercase, all non [a-z0-9] characters stripped. It is intentionally lossy
// (hyphens, apostrophes and form suffixes vanish); both the builder and all
// runtime lookups must go through this one function so the loss is at least
// consistent.
func Identity(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Capitalize upper-cases the first letter of an identity token so that
// records created from a tier feed get a presentable display name.
func Capitalize(token string) string {
	if token == "" {
		return ""
	}
	return strings.ToUpper(token[:1]) + token[1:]
}
