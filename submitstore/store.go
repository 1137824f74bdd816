package submitstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tidwall/pretty"

	"github.com/kjk/radarform/atomicfile"
	"github.com/kjk/radarform/log"
)

// Store durably appends JSON records to a single file shared by
// concurrent writers, possibly in different processes. The file is
// only ever replaced by an atomic rename, so a reader sees either the
// old complete content or the new complete content, never a mixture.
// Mutual exclusion between writers is a create-exclusive lock marker
// file next to the primary file; the filesystem is the only shared
// state, which makes this correct across processes, not just
// goroutines. Designed for low concurrency (a handful of writers); at
// real multi-writer scale use a transactional store instead.
//
// Records are opaque to the Store: anything json.Marshal accepts.
// There is no update or delete, the persisted sequence is append-only
// and insertion-ordered.
type Store struct {
	// Path of the primary file
	Path string

	// LockTimeout bounds the wait for the lock marker,
	// 0 means DefaultLockTimeout
	LockTimeout time.Duration
	// RetryDelay is the sleep between lock acquisition attempts,
	// 0 means DefaultRetryDelay
	RetryDelay time.Duration

	// Compact skips pretty-printing of the primary file
	Compact bool
}

// LockPath is the path of the transient lock marker. It must not
// exist between operations.
func (s *Store) LockPath() string {
	return s.Path + ".lock"
}

// BackupPath is the path of the rolling backup holding the
// immediately-prior committed state
func (s *Store) BackupPath() string {
	return s.Path + ".backup"
}

// Append adds one record to the persisted sequence. It blocks on
// lock acquisition (bounded by LockTimeout) and returns
// ErrLockTimeout if the lock could not be acquired, or a
// *VerifyError if the write did not read back as expected. Once the
// lock is held the write runs to completion or fails definitively;
// there is no cancellation.
func (s *Store) Append(record any) error {
	if s.Path == "" {
		return fmt.Errorf("store path is not set")
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0755); err != nil {
		return err
	}
	if err := s.acquireLock(); err != nil {
		return err
	}
	// guaranteed release on all exit paths
	defer s.releaseLock()
	return s.appendLocked(record)
}

// appendLocked is the critical section: read-modify-write of the
// whole sequence. Caller must hold the lock.
func (s *Store) appendLocked(record any) error {
	records, err := s.ReadAll()
	if err != nil {
		return err
	}
	d, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshaling record: %w", err)
	}
	records = append(records, d)

	out, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshaling records: %w", err)
	}
	if !s.Compact {
		out = pretty.Pretty(out)
	}

	// serialize to a temp file first, back up the current primary,
	// then atomically rename the temp file onto the primary path
	f, err := atomicfile.New(s.Path)
	if err != nil {
		return err
	}
	defer f.Cancel()
	if _, err = f.Write(out); err != nil {
		return err
	}
	if err = s.writeBackup(); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}

	return s.verify(len(records))
}

// writeBackup copies the current primary file to the rolling backup
// path, overwriting any prior backup. A missing primary (first ever
// append) means there is nothing to back up.
func (s *Store) writeBackup() error {
	d, err := os.ReadFile(s.Path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading primary for backup: %w", err)
	}
	if err = os.WriteFile(s.BackupPath(), d, 0644); err != nil {
		return fmt.Errorf("writing backup: %w", err)
	}
	return nil
}

// verify re-reads the primary file and confirms it parses to a
// sequence of the expected length
func (s *Store) verify(expected int) error {
	d, err := os.ReadFile(s.Path)
	if err != nil {
		return &VerifyError{Path: s.Path, Expected: expected, Got: -1, Err: err}
	}
	var records []json.RawMessage
	if err = json.Unmarshal(d, &records); err != nil {
		return &VerifyError{Path: s.Path, Expected: expected, Got: -1, Err: err}
	}
	if len(records) != expected {
		return &VerifyError{Path: s.Path, Expected: expected, Got: len(records)}
	}
	return nil
}

// ReadAll returns the persisted sequence. It never takes the lock:
// the atomic-rename write protocol guarantees a plain read sees a
// complete pre- or post-write state. A missing primary file is an
// empty sequence; a present but syntactically invalid one is treated
// as an empty sequence too (logged — that's data loss requiring
// manual recovery from the backup, not an error to propagate).
func (s *Store) ReadAll() ([]json.RawMessage, error) {
	d, err := os.ReadFile(s.Path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading '%s': %w", s.Path, err)
	}
	var records []json.RawMessage
	if err = json.Unmarshal(d, &records); err != nil {
		log.Errorf("submitstore: primary file '%s' is corrupted (%v), treating as empty; backup left at '%s'", s.Path, err, s.BackupPath())
		return nil, nil
	}
	return records, nil
}

// Count returns how many records are persisted
func (s *Store) Count() (int, error) {
	records, err := s.ReadAll()
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

// CheckWritable fails fast if the store's directory can't be written
// to. Reported, not retried.
func (s *Store) CheckWritable() error {
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("store directory is not writable: %w", err)
	}
	f, err := os.CreateTemp(dir, ".probe")
	if err != nil {
		return fmt.Errorf("store directory is not writable: %w", err)
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(name)
}
