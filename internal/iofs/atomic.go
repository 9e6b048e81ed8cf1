package iofs

import (
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// AtomicFile writes to a temporary file in the directory of the target and
// moves it into place on Commit. Files with a .gz extension are gzipped.
// Until Commit succeeds the target is left untouched.
type AtomicFile struct {
	path string
	tmp  *os.File
	gz   *gzip.Writer
	w    io.Writer
}

// CreateAtomic starts writing path.
func CreateAtomic(path string) (*AtomicFile, error) {
	dir := filepath.Dir(path)
	if err := touchDir(dir); err != nil {
		return nil, err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*")
	if err != nil {
		return nil, CreateFileError(path, err)
	}
	res := &AtomicFile{path: path, tmp: tmp, w: tmp}
	if strings.HasSuffix(strings.ToLower(path), ".gz") {
		res.gz = gzip.NewWriter(tmp)
		res.w = res.gz
	}
	return res, nil
}

// Write implements io.Writer.
func (f *AtomicFile) Write(p []byte) (int, error) {
	return f.w.Write(p)
}

// Commit flushes the data and renames the temporary file to the target.
func (f *AtomicFile) Commit() error {
	if f.gz != nil {
		if err := f.gz.Close(); err != nil {
			f.Abort()
			return CreateFileError(f.path, err)
		}
	}
	if err := f.tmp.Close(); err != nil {
		os.Remove(f.tmp.Name())
		return CreateFileError(f.path, err)
	}
	if err := os.Rename(f.tmp.Name(), f.path); err != nil {
		os.Remove(f.tmp.Name())
		return CreateFileError(f.path, err)
	}
	return nil
}

// Abort removes the temporary file. It is safe to call after Commit.
func (f *AtomicFile) Abort() {
	f.tmp.Close()
	os.Remove(f.tmp.Name())
}
