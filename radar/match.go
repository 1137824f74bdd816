package radar

// DefaultMinSimilarity is the acceptance threshold for approximate
// matches. Precision-biased: short names like "go" can't accidentally
// match "google" because edit distance is large relative to length
// for short strings.
const DefaultMinSimilarity = 0.85

// Match is the result of a successful Lookup
type Match struct {
	Entry      Entry
	Edition    string
	Similarity float64
}

// Lookup finds the best-matching catalog entry for a free-text name.
// An exact match on normalized names wins immediately; editions are
// scanned most recent first, so the most recent edition's exact match
// is returned when the same name appears in several editions. If no
// exact match exists, the entry with the highest similarity ratio is
// returned, provided it clears the acceptance threshold. Ties keep
// the earlier-encountered (more recent) candidate.
//
// ok is false when the query is empty, the catalog is empty or no
// candidate is similar enough. That's a no-match, not an error.
func (c *Catalog) Lookup(query string) (m Match, ok bool) {
	suffixes := c.StripSuffixes
	if suffixes == nil {
		suffixes = DefaultStripSuffixes
	}
	minSimilarity := c.MinSimilarity
	if minSimilarity == 0 {
		minSimilarity = DefaultMinSimilarity
	}

	q := normalizeName(query, suffixes)
	if q == "" {
		return Match{}, false
	}

	best := Match{Similarity: -1}
	for _, ed := range c.Editions {
		for _, e := range ed.Entries {
			key := normalizeName(e.Name, suffixes)
			if key == q {
				return Match{Entry: e, Edition: ed.Label, Similarity: 1}, true
			}
			// don't overwrite on equal score: earlier candidate
			// means more recent edition or earlier in file
			if sim := similarity(q, key); sim > best.Similarity {
				best = Match{Entry: e, Edition: ed.Label, Similarity: sim}
			}
		}
	}
	if best.Similarity < minSimilarity {
		return Match{}, false
	}
	return best, true
}

// similarity is 1 - editDistance/maxLen, in [0,1].
// Two empty strings are identical, similarity 1.
func similarity(a, b string) float64 {
	ra := []rune(a)
	rb := []rune(b)
	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}
	if maxLen == 0 {
		return 1
	}
	return 1 - float64(levenshtein(ra, rb))/float64(maxLen)
}

// levenshtein is the edit distance between a and b: the minimum
// number of single-rune insertions, deletions and substitutions
// transforming one into the other. Two-row dynamic programming,
// O(len(a)*len(b)) time, O(len(b)) space.
func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := curr[j-1] + 1
			sub := prev[j-1] + cost
			m := del
			if ins < m {
				m = ins
			}
			if sub < m {
				m = sub
			}
			curr[j] = m
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
