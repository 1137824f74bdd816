package submitstore

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alecthomas/assert"
)

func TestAcquireRelease(t *testing.T) {
	s := newTestStore(t)
	assert.NoError(t, os.MkdirAll(filepath.Dir(s.Path), 0755))

	assert.NoError(t, s.acquireLock())
	// marker exists and holds our pid
	d, err := os.ReadFile(s.LockPath())
	assert.NoError(t, err)
	assert.True(t, len(d) > 0)

	s.releaseLock()
	_, err = os.Stat(s.LockPath())
	assert.True(t, os.IsNotExist(err))
}

func TestAcquireWaitsForHolder(t *testing.T) {
	s := newTestStore(t)
	s.RetryDelay = 10 * time.Millisecond
	assert.NoError(t, os.MkdirAll(filepath.Dir(s.Path), 0755))

	assert.NoError(t, s.acquireLock())
	released := make(chan struct{})
	go func() {
		time.Sleep(50 * time.Millisecond)
		s.releaseLock()
		close(released)
	}()

	// a second writer blocks until the holder releases, well within
	// the timeout
	assert.NoError(t, s.acquireLock())
	<-released
	s.releaseLock()
}

func TestStaleLockForceCleared(t *testing.T) {
	s := newTestStore(t)
	s.LockTimeout = 100 * time.Millisecond
	s.RetryDelay = 10 * time.Millisecond
	assert.NoError(t, os.MkdirAll(filepath.Dir(s.Path), 0755))

	// a marker left behind by a crashed writer
	assert.NoError(t, os.WriteFile(s.LockPath(), []byte("12345\n"), 0644))

	err := s.acquireLock()
	assert.Error(t, err)
	// the stale marker is gone, so the next writer gets through
	_, statErr := os.Stat(s.LockPath())
	assert.True(t, os.IsNotExist(statErr))
	assert.NoError(t, s.acquireLock())
	s.releaseLock()
}
