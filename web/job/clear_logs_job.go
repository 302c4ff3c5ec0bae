package job

import (
	"os"

	"urban-explorer/logger"
)

// ClearLogsJob rotates the application log once a day: the current file is
// appended to a .prev sibling and truncated.
type ClearLogsJob struct{}

func NewClearLogsJob() *ClearLogsJob {
	return new(ClearLogsJob)
}

// Run implements cron.Job.
func (j *ClearLogsJob) Run() {
	logPath := logger.LogFilePath()
	prevPath := logPath + ".prev"

	if err := os.Truncate(prevPath, 0); err != nil && !os.IsNotExist(err) {
		logger.Warning("clear logs job err:", err)
	}

	prevFile, err := os.OpenFile(prevPath, os.O_CREATE|os.O_APPEND|os.O_RDWR, 0o644)
	if err != nil {
		logger.Warning("clear logs job err:", err)
		return
	}
	defer prevFile.Close()

	current, err := os.ReadFile(logPath)
	if err != nil {
		logger.Warning("clear logs job err:", err)
		return
	}
	if _, err := prevFile.Write(current); err != nil {
		logger.Warning("clear logs job err:", err)
	}

	if err := os.Truncate(logPath, 0); err != nil {
		logger.Warning("clear logs job err:", err)
	}
}
