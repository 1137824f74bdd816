package radar

import (
	"strings"
	"unicode"
)

// DefaultStripSuffixes are trailing suffixes that don't carry
// identity: "React.js", "ReactJS" and "React" should compare equal
var DefaultStripSuffixes = []string{".js", ".io", ".net", ".org"}

// normalizeName produces the comparison key for a name: lower-cased,
// everything that is not a letter, digit or space removed, whitespace
// runs collapsed to a single space, then one trailing suffix
// stripped. The key is only ever compared, never shown to the user.
//
// Suffixes are matched on the punctuation-free key, so ".js" strips
// from "react.js" and "reactjs" alike; "js.framework" keeps its key
// because "js" is not at the end.
func normalizeName(s string, suffixes []string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, c := range s {
		if unicode.IsLetter(c) || unicode.IsDigit(c) || unicode.IsSpace(c) {
			b.WriteRune(c)
		}
	}
	// Fields collapses whitespace runs and trims at both ends
	key := strings.Join(strings.Fields(b.String()), " ")
	for _, suffix := range suffixes {
		suffix = strings.TrimPrefix(strings.ToLower(suffix), ".")
		if suffix != "" && strings.HasSuffix(key, suffix) {
			key = strings.TrimSuffix(key, suffix)
			break
		}
	}
	return strings.TrimSpace(key)
}
