package radar

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"sort"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/kjk/radarform/log"
)

//go:embed snapshots
var snapshotsFS embed.FS

// Entry is one named technology in an edition of the catalog
type Entry struct {
	Name        string `json:"name"`
	Ring        string `json:"ring"`
	Quadrant    string `json:"quadrant"`
	Description string `json:"description"`
}

// Edition is one dated release of the catalog.
// Ordinal is derived from Label and used for recency ordering.
type Edition struct {
	Label   string  `json:"edition"`
	Ordinal int     `json:"-"`
	Entries []Entry `json:"entries"`
}

// Catalog is a snapshot of all loaded editions, most recent first.
// Build one with New / Load / LoadFS and hand it to Lookup callers;
// Editions must not be mutated afterwards. The matching knobs can be
// set once, right after construction.
type Catalog struct {
	Editions []Edition

	// MinSimilarity is the acceptance threshold for approximate
	// matches, 0 means DefaultMinSimilarity
	MinSimilarity float64
	// StripSuffixes are trailing suffixes removed during name
	// normalization, nil means DefaultStripSuffixes
	StripSuffixes []string
}

// New builds a Catalog from editions, ordering them most recent
// (highest ordinal) first. Editions with equal ordinals keep their
// relative order. The caller's slice is not modified.
func New(editions []Edition) *Catalog {
	eds := make([]Edition, len(editions))
	copy(eds, editions)
	for i := range eds {
		if eds[i].Ordinal == 0 {
			eds[i].Ordinal = editionOrdinal(eds[i].Label)
		}
	}
	sort.SliceStable(eds, func(i, j int) bool {
		return eds[i].Ordinal > eds[j].Ordinal
	})
	return &Catalog{Editions: eds}
}

// Load builds the Catalog from the snapshot files bundled with the
// binary. Load failures degrade to an empty catalog (every lookup is
// a no-match) and are logged, never fatal: absence of historical data
// shouldn't block the caller's workflow.
func Load() *Catalog {
	fsys, err := fs.Sub(snapshotsFS, "snapshots")
	if err != nil {
		log.IfErrf(err, "radar: no bundled snapshots: %v", err)
		return New(nil)
	}
	return LoadFS(fsys)
}

// LoadFS builds a Catalog from every *.json and *.json.gz file in
// fsys. Files that can't be read or parsed are logged and skipped.
func LoadFS(fsys fs.FS) *Catalog {
	var editions []Edition
	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		if !strings.HasSuffix(path, ".json") && !strings.HasSuffix(path, ".json.gz") {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			log.Errorf("radar: reading snapshot %s: %v\n", path, err)
			return nil
		}
		ed, err := ParseSnapshot(path, data)
		if err != nil {
			log.Errorf("radar: skipping snapshot %s: %v\n", path, err)
			return nil
		}
		editions = append(editions, ed)
		return nil
	})
	if err != nil {
		log.Errorf("radar: loading snapshots: %v\n", err)
	}
	if len(editions) == 0 {
		log.Logf("radar: no catalog snapshots loaded, lookups will not match\n")
	}
	return New(editions)
}

// ParseSnapshot parses one snapshot file. Gzip-compressed snapshots
// (name ending in .gz) are decompressed first.
func ParseSnapshot(name string, data []byte) (Edition, error) {
	var ed Edition
	if strings.HasSuffix(name, ".gz") {
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return ed, fmt.Errorf("gzip: %w", err)
		}
		data, err = io.ReadAll(r)
		if err != nil {
			return ed, fmt.Errorf("gzip: %w", err)
		}
		if err = r.Close(); err != nil {
			return ed, fmt.Errorf("gzip: %w", err)
		}
	}
	if err := json.Unmarshal(data, &ed); err != nil {
		return ed, err
	}
	if ed.Label == "" {
		return ed, fmt.Errorf("snapshot has no edition label")
	}
	ed.Ordinal = editionOrdinal(ed.Label)
	return ed, nil
}

// editionOrdinal extracts the first integer from an edition label,
// e.g. "Volume 33 (October 2025)" => 33. Returns 0 if the label has
// no digits.
func editionOrdinal(label string) int {
	n := 0
	inNumber := false
	for _, c := range label {
		if c >= '0' && c <= '9' {
			n = n*10 + int(c-'0')
			inNumber = true
			continue
		}
		if inNumber {
			break
		}
	}
	return n
}
