package submitstore

import (
	"errors"
	"fmt"
)

var (
	// ErrLockTimeout is returned when the lock marker could not be
	// acquired within Store.LockTimeout. The append did not happen;
	// retrying the whole operation later is safe.
	ErrLockTimeout = errors.New("timed out waiting for store lock")
)

// VerifyError is returned when post-write verification failed: the
// primary file was replaced but did not read back as a sequence of
// the expected length. The rename was atomic, so the file on disk is
// still a complete write, but the append must be treated as not
// guaranteed.
type VerifyError struct {
	Path     string
	Expected int
	Got      int
	// Err is the underlying read or parse error, nil when the file
	// read back fine but with the wrong number of records
	Err error
}

func (e *VerifyError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("post-write verification of '%s' failed: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("post-write verification of '%s' failed: expected %d records, got %d", e.Path, e.Expected, e.Got)
}

func (e *VerifyError) Unwrap() error { return e.Err }
