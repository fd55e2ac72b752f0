package service

import (
	"fmt"
	"os"

	"github.com/shirou/gopsutil/v3/disk"

	"github.com/openlabollioules/tools/internal/constant"
)

// DiskStatus 输出目录所在磁盘的使用情况，目录不存在时先创建
func DiskStatus(dir string) (*disk.UsageStat, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return disk.Usage(dir)
}

// CheckDisk 可用空间低于 minFreeMB 时返回 ErrInsufficientDisk，minFreeMB 为 0 不检查
func CheckDisk(dir string, minFreeMB uint64) error {
	if minFreeMB == 0 {
		return nil
	}
	usage, err := DiskStatus(dir)
	if err != nil {
		return fmt.Errorf("check disk: %w", err)
	}
	if free := usage.Free / (1 << 20); free < minFreeMB {
		return fmt.Errorf("%w: %d MB free, %d MB required", constant.ErrInsufficientDisk, free, minFreeMB)
	}
	return nil
}
