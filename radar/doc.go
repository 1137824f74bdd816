// Package radar maps a free-text technology name to the best-matching
// entry across historical radar editions.
//
// A Catalog holds every loaded edition, most recent first. Lookup
// compares normalization keys (lower-cased, punctuation- and
// suffix-stripped): an exact key match wins immediately, otherwise
// the candidate with the highest Levenshtein-based similarity is
// returned if it clears the acceptance threshold. The matcher favors
// precision over recall: "Go" will not match a cataloged "Google".
//
// Snapshot data is bundled with the binary and loaded once:
//
//	catalog := radar.Load()
//	if m, ok := catalog.Lookup("React.js"); ok {
//		fmt.Println(m.Entry.Name, m.Edition)
//	}
//
// A missing or unreadable snapshot source degrades to an empty
// catalog where every lookup is a no-match; it is never an error.
package radar
