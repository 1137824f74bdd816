package atomicfile

import (
	"errors"
	"io"
	"os"
	"path/filepath"
)

var (
	// ErrCancelled is returned by calls made after Cancel()
	ErrCancelled = errors.New("cancelled")

	// ensure we implement desired interface
	_ io.WriteCloser = &File{}
)

// File writes to a destination path atomically: all writes go to a
// temporary file in the same directory and Close() renames it onto
// the destination in one filesystem operation. A reader of the
// destination path sees either the old complete file or the new
// complete file, never a mixture. On any error the temporary file is
// removed and the destination is left untouched.
type File struct {
	dstPath string
	dir     string
	tmpFile *os.File
	tmpPath string
	err     error
}

// New creates a File that will atomically replace path on Close
func New(path string) (*File, error) {
	dir, fName := filepath.Split(path)
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	if fName == "" {
		return nil, &os.PathError{Op: "open", Path: path, Err: os.ErrInvalid}
	}

	// temp file must be in the same directory as the destination
	// so that the final rename doesn't cross filesystems
	tmpFile, err := os.CreateTemp(dir, fName+".tmp")
	if err != nil {
		return nil, err
	}

	return &File{
		dstPath: filepath.Join(dir, fName),
		dir:     dir,
		tmpFile: tmpFile,
		tmpPath: tmpFile.Name(),
	}, nil
}

// remember the first error and clean up the temp file
func (f *File) handleError(err error) error {
	if err == nil {
		return nil
	}
	if f.err == nil {
		f.err = err
	}
	_ = f.Close()
	return err
}

// Write writes data to the temporary file
func (f *File) Write(d []byte) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	n, err := f.tmpFile.Write(d)
	return n, f.handleError(err)
}

func (f *File) alreadyClosed() bool {
	return f.tmpFile == nil
}

// Cancel abandons the write. The destination file is not touched and
// the temporary file is removed. Cancel after a successful Close is
// a no-op, so it's safe to use via defer.
func (f *File) Cancel() {
	if f == nil || f.alreadyClosed() {
		return
	}
	f.err = ErrCancelled
	_ = f.Close()
}

// Close syncs and closes the temporary file and, if no error happened
// so far, renames it onto the destination path. Can be called multiple
// times to make it easier to use via defer.
func (f *File) Close() error {
	if f.alreadyClosed() {
		// return the first error we encountered
		return f.err
	}
	tmpFile := f.tmpFile
	f.tmpFile = nil

	// https://www.joeshaw.org/dont-defer-close-on-writable-files/
	errSync := tmpFile.Sync()
	errClose := tmpFile.Close()

	didRename := false
	defer func() {
		if !didRename {
			// ignoring error on this one
			_ = os.Remove(f.tmpPath)
		}
	}()

	// if there was an error during write, return that error
	if f.err != nil {
		return f.err
	}

	err := errSync
	if err == nil {
		err = errClose
	}

	if err == nil {
		// this will over-write dstPath (if it exists)
		err = os.Rename(f.tmpPath, f.dstPath)
		didRename = (err == nil)
		// for extra protection against crashes elsewhere,
		// sync directory after rename
		fdir, _ := os.Open(f.dir)
		if fdir != nil {
			// ignore errors as those are a nice have, not must have
			_ = fdir.Sync()
			_ = fdir.Close()
		}
	}

	f.err = err
	return f.err
}

// WriteFile writes data to path atomically
func WriteFile(path string, data []byte) error {
	f, err := New(path)
	if err != nil {
		return err
	}
	// calling Close() twice is a no-op
	defer f.Close()

	if _, err = f.Write(data); err != nil {
		return err
	}
	return f.Close()
}
