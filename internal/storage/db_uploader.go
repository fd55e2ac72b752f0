package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openlabollioules/tools/internal/model"
	"github.com/openlabollioules/tools/pkg/logger"
	"github.com/openlabollioules/tools/pkg/util"
)

// DBUploader 直接写宿主的上传目录和 file 表
type DBUploader struct {
	db      *gorm.DB
	dir     string
	timeout time.Duration
}

func NewDBUploader(db *gorm.DB, dir string, timeout time.Duration) *DBUploader {
	return &DBUploader{db: db, dir: dir, timeout: timeout}
}

func (u *DBUploader) Upload(ctx context.Context, path string, user User) (*Record, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()
	db := u.db.WithContext(ctx)

	var owner model.HostUser
	if err := db.First(&owner, "id = ?", user.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, uploadErr("user %s not found", user.ID)
		}
		return nil, uploadErr("query user: %v", err)
	}

	id := uuid.NewString()
	name := filepath.Base(path)
	dst := filepath.Join(u.dir, id+"_"+name)
	size, err := util.CopyFile(path, dst)
	if err != nil {
		return nil, uploadErr("copy file: %v", err)
	}
	if err := ctx.Err(); err != nil {
		_ = os.Remove(dst)
		return nil, uploadErr("%v", err)
	}

	file := &model.HostFile{
		ID:       id,
		UserID:   owner.ID,
		Filename: name,
		Path:     dst,
		Meta: &model.FileMeta{
			Name:        name,
			ContentType: ContentType(name),
			Size:        size,
			Data:        map[string]interface{}{"generated_by": model.GeneratedByUpload},
		},
	}
	if err := db.Create(file).Error; err != nil {
		_ = os.Remove(dst)
		return nil, uploadErr("insert file: %v", err)
	}
	logger.Info("文件已写入宿主存储", logger.F("id", id), logger.F("filename", name), logger.F("size", size))
	return &Record{ID: id, Filename: name}, nil
}
