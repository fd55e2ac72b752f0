package generator

import (
	"context"
	"encoding/base64"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/openlabollioules/tools/internal/event"
	"github.com/openlabollioules/tools/pkg/logger"
	"github.com/openlabollioules/tools/pkg/util"
)

// 按二进制处理的扩展名，内容应为 base64
var binaryExtensions = map[string]struct{}{
	"pdf": {}, "png": {}, "jpg": {}, "jpeg": {}, "gif": {}, "zip": {}, "exe": {}, "bin": {},
}

// IsBinaryExtension 扩展名是否按二进制写入
func IsBinaryExtension(ext string) bool {
	_, ok := binaryExtensions[strings.ToLower(strings.TrimPrefix(ext, "."))]
	return ok
}

// FileName 文件名，扩展名不在名字末尾时补上；只保留最后一级路径
func FileName(name, ext string) string {
	name = filepath.Base(filepath.Clean("/" + name))
	ext = strings.TrimPrefix(ext, ".")
	if ext != "" && !strings.HasSuffix(name, "."+ext) {
		name += "." + ext
	}
	return name
}

// FileContent 二进制扩展名先尝试 base64 解码，失败时写入原始字节
func FileContent(content, ext string) []byte {
	if IsBinaryExtension(ext) {
		if data, err := base64.StdEncoding.DecodeString(content); err == nil {
			return data
		}
	}
	return []byte(content)
}

// AssembleFile 把内容写成文件，返回路径
func AssembleFile(ctx context.Context, req FileRequest, outDir string, em event.Emitter, log *zap.Logger) (string, error) {
	if log == nil {
		log = logger.GetLogger()
	}
	if strings.TrimSpace(req.Name) == "" {
		return "", invalid("name", "file name cannot be empty")
	}
	name := FileName(req.Name, req.Extension)
	if name == "/" || name == "." {
		return "", invalid("name", "invalid file name")
	}
	event.Emit(ctx, em, event.Progress("Creating file: "+name))

	path := filepath.Join(outDir, name)
	if err := util.SaveFile(path, FileContent(req.Content, req.Extension)); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	log.Info("文件已保存", logger.F("path", path))
	return path, nil
}
