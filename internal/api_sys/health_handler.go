package sysapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/openlabollioules/tools/internal/constant"
	"github.com/openlabollioules/tools/internal/service"
	"github.com/openlabollioules/tools/pkg/logger"
)

// HealthStatus 健康检查结果
type HealthStatus struct {
	Status          string  `json:"status"`
	DiskFree        uint64  `json:"disk_free"`
	DiskUsedPercent float64 `json:"disk_used_percent"`
}

// Health 输出目录所在磁盘低于阈值时返回 507
//
//	@Summary	健康检查
//	@Tags		system
//	@Produce	json
//	@Success	200	{object}	HealthStatus
//	@Failure	507	{object}	HealthStatus
//	@Router		/health [get]
func Health(outputDir string, minFreeMB uint64) fiber.Handler {
	return func(c *fiber.Ctx) error {
		usage, err := service.DiskStatus(outputDir)
		if err != nil {
			logger.Error("读取磁盘状态失败", logger.F(constant.LogFieldError, err))
			return c.Status(fiber.StatusInternalServerError).JSON(HealthStatus{Status: "error"})
		}
		status := HealthStatus{
			Status:          "ok",
			DiskFree:        usage.Free,
			DiskUsedPercent: usage.UsedPercent,
		}
		if err := service.CheckDisk(outputDir, minFreeMB); err != nil {
			status.Status = "low_disk"
			return c.Status(constant.GetErrorCode(err)).JSON(status)
		}
		return c.JSON(status)
	}
}
