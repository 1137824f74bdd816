package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert"
)

func TestSnapshot(t *testing.T) {
	snapshot := `{"edition": "Volume 9", "entries": [{"name": "Kafka", "ring": "Adopt", "quadrant": "Platforms", "description": "log"}]}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(snapshot))
	}))
	defer srv.Close()

	dst := filepath.Join(t.TempDir(), "volume-9.json")
	err := Snapshot(context.Background(), srv.URL, dst)
	assert.NoError(t, err)

	d, err := os.ReadFile(dst)
	assert.NoError(t, err)
	assert.Equal(t, snapshot, string(d))
}

func TestSnapshotRejectsInvalidPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not a snapshot</html>"))
	}))
	defer srv.Close()

	dst := filepath.Join(t.TempDir(), "volume-9.json")
	err := Snapshot(context.Background(), srv.URL, dst)
	assert.Error(t, err)
	// nothing was written
	_, err = os.Stat(dst)
	assert.True(t, os.IsNotExist(err))
}

func TestSnapshotHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	dst := filepath.Join(t.TempDir(), "volume-9.json")
	err := Snapshot(context.Background(), srv.URL, dst)
	assert.Error(t, err)
}
