package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskPutAndOpen(t *testing.T) {
	disk, err := NewDisk(t.TempDir())
	require.NoError(t, err)

	relPath, err := disk.Put("spot-1", "photo.jpg", strings.NewReader("jpegbytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(relPath, "spot-1/"))
	assert.True(t, strings.HasSuffix(relPath, "_photo.jpg"))

	file, info, err := disk.Open(relPath)
	require.NoError(t, err)
	defer file.Close()
	assert.Equal(t, int64(len("jpegbytes")), info.Size())

	written, puts, deletes := disk.Stats()
	assert.Equal(t, int64(len("jpegbytes")), written)
	assert.Equal(t, int64(1), puts)
	assert.Equal(t, int64(0), deletes)
}

func TestDiskPutRejectsEmptyNames(t *testing.T) {
	disk, err := NewDisk(t.TempDir())
	require.NoError(t, err)

	_, err = disk.Put("", "photo.jpg", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrInvalidPath)

	_, err = disk.Put("spot-1", "", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestDiskPutStripsDirectories(t *testing.T) {
	root := t.TempDir()
	disk, err := NewDisk(root)
	require.NoError(t, err)

	relPath, err := disk.Put("spot-1", "../../evil.sh", strings.NewReader("x"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(relPath, "_evil.sh"))

	// the blob must land inside the namespace, not above the root
	entries, err := os.ReadDir(filepath.Join(root, "spot-1"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestDiskDeleteIsIdempotent(t *testing.T) {
	disk, err := NewDisk(t.TempDir())
	require.NoError(t, err)

	relPath, err := disk.Put("spot-1", "photo.jpg", strings.NewReader("x"))
	require.NoError(t, err)

	require.NoError(t, disk.Delete(relPath))
	// a second delete of the same blob is a no-op
	require.NoError(t, disk.Delete(relPath))

	_, _, err = disk.Open(relPath)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDiskOpenRejectsTraversal(t *testing.T) {
	disk, err := NewDisk(t.TempDir())
	require.NoError(t, err)

	_, _, err = disk.Open("../outside")
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "image/png", ContentType("spot-1/1_map.png"))
	assert.Equal(t, "application/octet-stream", ContentType("spot-1/1_blob"))
}
