// Package fetch downloads published catalog snapshots so the bundled
// editions can be refreshed out-of-band. The matcher itself never
// does network I/O.
package fetch

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/carlmjohnson/requests"

	"github.com/kjk/radarform/atomicfile"
	"github.com/kjk/radarform/log"
	"github.com/kjk/radarform/radar"
)

// how long a download is allowed to take
const fetchTimeout = time.Second * 30

// Snapshot downloads the snapshot at url and writes it to dstPath.
// The payload must parse as a catalog snapshot before anything is
// written; the write itself is atomic, so a half-downloaded snapshot
// can never clobber a good one.
func Snapshot(ctx context.Context, url string, dstPath string) error {
	var buf bytes.Buffer
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()
	err := requests.
		URL(url).
		ToBytesBuffer(&buf).
		Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetching '%s': %w", url, err)
	}

	ed, err := radar.ParseSnapshot(dstPath, buf.Bytes())
	if err != nil {
		return fmt.Errorf("'%s' is not a valid snapshot: %w", url, err)
	}
	if err = atomicfile.WriteFile(dstPath, buf.Bytes()); err != nil {
		return err
	}
	log.Logf("fetch: saved '%s' (%d entries) to %s\n", ed.Label, len(ed.Entries), dstPath)
	return nil
}
