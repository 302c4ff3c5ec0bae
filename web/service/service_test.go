package service

import (
	"path/filepath"
	"testing"

	"urban-explorer/database"
	"urban-explorer/logger"
	"urban-explorer/storage"

	"github.com/op/go-logging"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTest(t *testing.T) (*gorm.DB, *storage.Disk) {
	t.Helper()
	t.Setenv("UE_LOG_FOLDER", t.TempDir())
	logger.InitLogger(logging.DEBUG)

	db, err := database.InitDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = database.CloseDB(db)
	})

	blobs, err := storage.NewDisk(t.TempDir())
	require.NoError(t, err)
	return db, blobs
}
