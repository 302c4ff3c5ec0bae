package service

import (
	"time"

	"urban-explorer/config"
	"urban-explorer/logger"
	"urban-explorer/storage"
	"urban-explorer/util/common"
	"urban-explorer/web/entity"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

// ServerService produces the host snapshot for the admin dashboard.
type ServerService struct {
	blobs     *storage.Disk
	startTime time.Time
}

func NewServerService(blobs *storage.Disk) *ServerService {
	return &ServerService{blobs: blobs, startTime: time.Now()}
}

func (s *ServerService) GetStatus() *entity.ServerStatus {
	status := &entity.ServerStatus{
		AppVersion: config.GetVersion(),
		AppUptime:  int64(time.Since(s.startTime).Seconds()),
	}

	if percents, err := cpu.Percent(0, false); err != nil {
		logger.Warning("get cpu percent failed:", err)
	} else if len(percents) > 0 {
		status.Cpu = percents[0]
	}

	if memInfo, err := mem.VirtualMemory(); err != nil {
		logger.Warning("get virtual memory failed:", err)
	} else {
		status.Memory.Current = memInfo.Used
		status.Memory.Total = memInfo.Total
	}

	if diskInfo, err := disk.Usage("/"); err != nil {
		logger.Warning("get disk usage failed:", err)
	} else {
		status.Disk.Current = diskInfo.Used
		status.Disk.Total = diskInfo.Total
	}

	if uptime, err := host.Uptime(); err != nil {
		logger.Warning("get host uptime failed:", err)
	} else {
		status.Uptime = uptime
	}

	written, puts, deletes := s.blobs.Stats()
	status.Blobs.Written = common.FormatBytes(written)
	status.Blobs.Puts = puts
	status.Blobs.Deletes = deletes

	return status
}
