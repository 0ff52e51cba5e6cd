package service

import (
	"context"
	"math"
	"time"

	"doc-ingest/internal/domain"
)

const bytesPerMB = 1024 * 1024

// ProcessHealth reports uptime and a disk-space check. The start time is
// fixed at construction.
type ProcessHealth struct {
	startedAt   time.Time
	now         func() time.Time
	disk        domain.DiskStats
	diskPath    string
	thresholdMB uint64
	logger      domain.Logger
}

// NewHealthService creates a health service. diskPath is the directory whose
// volume is checked for free space.
func NewHealthService(
	startedAt time.Time,
	disk domain.DiskStats,
	diskPath string,
	thresholdMB uint64,
	logger domain.Logger,
) *ProcessHealth {
	return &ProcessHealth{
		startedAt:   startedAt,
		now:         time.Now,
		disk:        disk,
		diskPath:    diskPath,
		thresholdMB: thresholdMB,
		logger:      logger,
	}
}

// Check builds the health report. The top-level status is always "ok";
// sub-checks only inform.
func (h *ProcessHealth) Check(ctx context.Context) *domain.HealthReport {
	uptime := h.now().Sub(h.startedAt).Seconds()
	if uptime < 0 {
		uptime = 0
	}

	return &domain.HealthReport{
		Status:        domain.StatusOK,
		UptimeSeconds: math.Round(uptime*100) / 100,
		Checks: map[string]domain.CheckResult{
			"disk_space":            h.checkDisk(),
			"db":                    {Status: domain.StatusNotConfigured},
			"vector_db":             {Status: domain.StatusNotConfigured},
			"external_api_deepseek": {Status: domain.StatusNotConfigured},
		},
	}
}

func (h *ProcessHealth) checkDisk() domain.CheckResult {
	free, err := h.disk.FreeBytes(h.diskPath)
	if err != nil {
		h.logger.Warn("Disk space check failed", "path", h.diskPath, "error", err)
		return domain.CheckResult{Status: domain.StatusError}
	}

	freeMB := free / bytesPerMB
	status := domain.StatusOK
	if freeMB < h.thresholdMB {
		status = domain.StatusLow
	}
	return domain.CheckResult{Status: status, FreeMB: &freeMB}
}
