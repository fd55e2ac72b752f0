// Package storage 把生成的文件交给宿主的文件存储，并构造下载链接
package storage

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/openlabollioules/tools/pkg/config"
)

// ErrUpload 上传失败
var ErrUpload = errors.New("upload failed")

// 存储模式
const (
	ModeAPI      = "api"
	ModeDatabase = "database"
)

// User 发起调用的宿主用户
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// Token 调用方的宿主令牌，api 模式下用于转发
	Token string `json:"-"`
}

// Record 宿主文件记录
type Record struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
}

// Uploader 上传文件，返回宿主文件记录
type Uploader interface {
	Upload(ctx context.Context, path string, user User) (*Record, error)
}

// DownloadURL 文件下载地址 {base}{id}/content
func DownloadURL(baseURL, id string) string {
	return baseURL + id + "/content"
}

// Envelope 返回给宿主的来源标记
func Envelope(baseURL string, rec *Record) string {
	return fmt.Sprintf("<source><source_id>%s</source_id><source_context>%s</source_context></source>\n",
		rec.Filename, DownloadURL(baseURL, rec.ID))
}

// 系统 mime 表不一定包含 Office 类型
var officeTypes = map[string]string{
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// ContentType 按扩展名推断内容类型
func ContentType(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if t, ok := officeTypes[ext]; ok {
		return t
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	return "application/octet-stream"
}

func uploadErr(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrUpload, fmt.Sprintf(format, args...))
}

// withTimeout timeout 不大于 0 时不设超时
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// NewFromConfig 按 storage.mode 创建上传器
func NewFromConfig(db *gorm.DB) (Uploader, error) {
	timeout := config.GetDuration("storage.upload_timeout")
	switch mode := config.GetString("storage.mode"); mode {
	case ModeAPI:
		return NewAPIUploader(config.GetString("storage.api_base_url"), config.GetString("storage.api_token"), timeout), nil
	case ModeDatabase, "":
		if db == nil {
			return nil, errors.New("database storage requires a database connection")
		}
		return NewDBUploader(db, config.GetString("storage.upload_dir"), timeout), nil
	default:
		return nil, fmt.Errorf("unsupported storage mode: %s", mode)
	}
}
