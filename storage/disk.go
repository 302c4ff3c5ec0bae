// Package storage implements the disk-backed blob store for uploaded spot
// photos. Blobs are addressed by a relative path `<namespace>/<name>` under
// a single root directory; the structured record store only ever holds these
// relative paths.
package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/atomic"
)

var (
	ErrNotFound    = errors.New("blob not found")
	ErrInvalidPath = errors.New("invalid blob path")
)

// Disk stores blobs on the local filesystem.
type Disk struct {
	root string

	bytesWritten atomic.Int64
	putCount     atomic.Int64
	deleteCount  atomic.Int64
}

// NewDisk creates the root directory if needed and returns the store.
func NewDisk(root string) (*Disk, error) {
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, err
	}
	return &Disk{root: root}, nil
}

// Root returns the store's root directory.
func (d *Disk) Root() string {
	return d.root
}

// Put writes the blob under `<namespace>/<unixMillis>_<filename>` and returns
// that relative path. The timestamp prefix keeps same-named uploads within a
// namespace from colliding.
func (d *Disk) Put(namespace, filename string, r io.Reader) (string, error) {
	namespace = filepath.Base(strings.TrimSpace(namespace))
	filename = filepath.Base(strings.TrimSpace(filename))
	if namespace == "" || namespace == "." || namespace == string(filepath.Separator) {
		return "", ErrInvalidPath
	}
	if filename == "" || filename == "." || filename == string(filepath.Separator) {
		return "", ErrInvalidPath
	}

	dir := filepath.Join(d.root, namespace)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", err
	}

	name := fmt.Sprintf("%d_%s", time.Now().UnixMilli(), filename)
	file, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o640)
	if err != nil {
		return "", err
	}
	n, err := io.Copy(file, r)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(file.Name())
		return "", err
	}

	d.bytesWritten.Add(n)
	d.putCount.Inc()
	return namespace + "/" + name, nil
}

// Delete removes the blob at relPath. A missing blob is not an error, so
// cleanup stays idempotent under retries and concurrent deletes.
func (d *Disk) Delete(relPath string) error {
	full, err := d.resolve(relPath)
	if err != nil {
		return err
	}
	err = os.Remove(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	d.deleteCount.Inc()
	return nil
}

// Open returns a read stream and file info for the blob at relPath, or
// ErrNotFound. The caller closes the file.
func (d *Disk) Open(relPath string) (*os.File, os.FileInfo, error) {
	full, err := d.resolve(relPath)
	if err != nil {
		return nil, nil, err
	}
	file, err := os.Open(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, nil, err
	}
	if info.IsDir() {
		_ = file.Close()
		return nil, nil, ErrNotFound
	}
	return file, info, nil
}

// ContentType infers a MIME type from the blob's extension.
func ContentType(relPath string) string {
	contentType := mime.TypeByExtension(filepath.Ext(relPath))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return contentType
}

// Stats reports lifetime counters for the status endpoint.
func (d *Disk) Stats() (bytesWritten, puts, deletes int64) {
	return d.bytesWritten.Load(), d.putCount.Load(), d.deleteCount.Load()
}

// resolve maps a relative blob path onto the root, rejecting traversal out
// of it.
func (d *Disk) resolve(relPath string) (string, error) {
	relPath = strings.TrimPrefix(relPath, "/")
	if relPath == "" {
		return "", ErrInvalidPath
	}
	full := filepath.Join(d.root, filepath.FromSlash(relPath))
	if full != d.root && !strings.HasPrefix(full, d.root+string(filepath.Separator)) {
		return "", ErrInvalidPath
	}
	return full, nil
}
