package submitstore

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/kjk/radarform/log"
)

const (
	// DefaultLockTimeout bounds how long an append waits for the
	// lock before declaring the marker stale
	DefaultLockTimeout = 5 * time.Second
	// DefaultRetryDelay is how long to sleep between acquisition
	// attempts
	DefaultRetryDelay = 100 * time.Millisecond
)

// acquireLock creates the lock marker file with create-exclusive
// semantics, retrying every RetryDelay until LockTimeout elapses.
// On timeout the existing marker is treated as stale (e.g. left by a
// crashed writer), forcibly removed, and ErrLockTimeout is returned;
// the caller retries the whole append, it must not assume it holds
// the lock.
func (s *Store) acquireLock() error {
	lockPath := s.LockPath()
	timeout := s.LockTimeout
	if timeout == 0 {
		timeout = DefaultLockTimeout
	}
	delay := s.RetryDelay
	if delay == 0 {
		delay = DefaultRetryDelay
	}

	deadline := time.Now().Add(timeout)
	for {
		f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
		if err == nil {
			// the pid is for humans inspecting a stuck lock
			_, _ = f.WriteString(strconv.Itoa(os.Getpid()) + "\n")
			return f.Close()
		}
		if !os.IsExist(err) {
			return fmt.Errorf("creating lock marker '%s': %w", lockPath, err)
		}
		if time.Now().After(deadline) {
			log.Errorf("submitstore: force-clearing stale lock marker '%s'", lockPath)
			_ = os.Remove(lockPath)
			return fmt.Errorf("'%s': %w", lockPath, ErrLockTimeout)
		}
		time.Sleep(delay)
	}
}

// releaseLock removes the lock marker. Must run on every exit path
// of the critical section, success or failure.
func (s *Store) releaseLock() {
	err := os.Remove(s.LockPath())
	log.IfErrf(err, "submitstore: removing lock marker: %v", err)
}
