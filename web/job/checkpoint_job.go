package job

import (
	"urban-explorer/database"
	"urban-explorer/logger"

	"gorm.io/gorm"
)

// CheckpointJob periodically flushes the SQLite WAL so the main database
// file stays current for filesystem-level backups.
type CheckpointJob struct {
	db *gorm.DB
}

func NewCheckpointJob(db *gorm.DB) *CheckpointJob {
	return &CheckpointJob{db: db}
}

// Run implements cron.Job.
func (j *CheckpointJob) Run() {
	if err := database.Checkpoint(j.db); err != nil {
		logger.Warning("wal checkpoint job err:", err)
	}
}
