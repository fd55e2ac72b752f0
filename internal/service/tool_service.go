package service

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/openlabollioules/tools/internal/constant"
	"github.com/openlabollioules/tools/internal/event"
	"github.com/openlabollioules/tools/internal/generator"
	"github.com/openlabollioules/tools/internal/model"
	"github.com/openlabollioules/tools/internal/storage"
	"github.com/openlabollioules/tools/pkg/config"
	"github.com/openlabollioules/tools/pkg/logger"
	"github.com/openlabollioules/tools/pkg/util"
)

// ToolConfig 工具调用的运行配置
type ToolConfig struct {
	OutputDir  string
	KeepFiles  bool
	MinFreeMB  uint64
	APIBaseURL string
	Docx       generator.DocxConfig
	Pptx       generator.PptxConfig
	Xlsx       generator.XlsxConfig
}

// LoadToolConfig 从全局配置读取
func LoadToolConfig() ToolConfig {
	return ToolConfig{
		OutputDir:  config.GetString("output.dir"),
		KeepFiles:  config.GetBool("output.keep_files"),
		MinFreeMB:  config.GetUint64("output.min_free_mb"),
		APIBaseURL: config.GetString("storage.api_base_url"),
		Docx:       generator.LoadDocxConfig(),
		Pptx:       generator.LoadPptxConfig(),
		Xlsx:       generator.LoadXlsxConfig(),
	}
}

// 上传完成后的描述
var finishedMessages = map[string]string{
	model.KindDocx: "Finished generating the DOCX file",
	model.KindPptx: "Finished generating the PPTX file",
	model.KindXlsx: "Finished generating the Excel file",
	model.KindFile: "Finished generating the file",
}

type buildFunc func(ctx context.Context, dir string, em event.Emitter, log *zap.Logger) (string, error)

type toolService struct {
	cfg         ToolConfig
	uploader    storage.Uploader
	generations GenerationService
	rdb         *redis.Client
	now         func() time.Time
}

// NewToolService generations 和 rdb 可以为空
func NewToolService(cfg ToolConfig, uploader storage.Uploader, generations GenerationService, rdb *redis.Client) ToolService {
	return &toolService{
		cfg:         cfg,
		uploader:    uploader,
		generations: generations,
		rdb:         rdb,
		now:         time.Now,
	}
}

func (s *toolService) GenerateDocx(ctx context.Context, user storage.User, req generator.DocxRequest) *ToolResult {
	return s.run(ctx, user, model.KindDocx, req.Title, func(ctx context.Context, dir string, em event.Emitter, log *zap.Logger) (string, error) {
		return generator.AssembleDocx(ctx, req, s.cfg.Docx, dir, em, log)
	})
}

func (s *toolService) GeneratePptx(ctx context.Context, user storage.User, req generator.PptxRequest) *ToolResult {
	return s.run(ctx, user, model.KindPptx, req.Data.Title, func(ctx context.Context, dir string, em event.Emitter, log *zap.Logger) (string, error) {
		return generator.AssemblePptx(ctx, req, s.cfg.Pptx, user.Name, s.now(), dir, em, log)
	})
}

func (s *toolService) GenerateXlsx(ctx context.Context, user storage.User, req generator.XlsxRequest) *ToolResult {
	return s.run(ctx, user, model.KindXlsx, req.Title, func(ctx context.Context, dir string, em event.Emitter, log *zap.Logger) (string, error) {
		return generator.AssembleXlsx(ctx, req, s.cfg.Xlsx, dir, em, log)
	})
}

func (s *toolService) CreateFile(ctx context.Context, user storage.User, req generator.FileRequest) *ToolResult {
	return s.run(ctx, user, model.KindFile, req.Name, func(ctx context.Context, dir string, em event.Emitter, log *zap.Logger) (string, error) {
		return generator.AssembleFile(ctx, req, dir, em, log)
	})
}

// run 在独立的工作目录中生成并上传，任何错误都转为 "Error: ..." 结果
func (s *toolService) run(ctx context.Context, user storage.User, kind, title string, build buildFunc) *ToolResult {
	start := time.Now()
	reqID := util.NewRequestID()
	log := logger.GetLogger().With(
		logger.F(constant.LogFieldRequestID, reqID),
		logger.F(constant.LogFieldUserID, user.ID),
		logger.F(constant.LogFieldKind, kind),
	)
	collector := &event.Collector{}
	em := event.Fanout{collector, event.NewRedisPublisher(s.rdb, user.ID)}
	record := &model.Generation{RequestID: reqID, Kind: kind, Title: title, UserID: user.ID}
	log.Info("开始生成", logger.F("title", title))

	fail := func(err error) *ToolResult {
		log.Error("生成失败", logger.F(constant.LogFieldError, err))
		event.Emit(ctx, em, event.Failure(err))
		record.Status = model.GenerationFailed
		record.Error = err.Error()
		s.save(ctx, record, start, log)
		return &ToolResult{Result: "Error: " + err.Error(), Events: collector.Events()}
	}

	if err := CheckDisk(s.cfg.OutputDir, s.cfg.MinFreeMB); err != nil {
		return fail(err)
	}
	dir := filepath.Join(s.cfg.OutputDir, reqID)
	if !s.cfg.KeepFiles {
		defer func() {
			if err := os.RemoveAll(dir); err != nil {
				log.Warn("清理工作目录失败", logger.F(constant.LogFieldPath, dir), logger.F(constant.LogFieldError, err))
			}
		}()
	}

	path, err := build(ctx, dir, em, log)
	if err != nil {
		return fail(err)
	}

	name := filepath.Base(path)
	event.Emit(ctx, em, event.Progress("Getting download link for file: "+name))
	rec, err := s.uploader.Upload(ctx, path, user)
	if err != nil {
		return fail(err)
	}
	event.Emit(ctx, em, event.Complete(finishedMessages[kind]))

	record.Status = model.GenerationSucceeded
	record.FileID = rec.ID
	record.Filename = rec.Filename
	s.save(ctx, record, start, log)
	log.Info("生成完成", logger.F("file_id", rec.ID), logger.F("filename", rec.Filename))
	return &ToolResult{Result: storage.Envelope(s.cfg.APIBaseURL, rec), Events: collector.Events()}
}

// save 写生成记录，失败只记录日志
func (s *toolService) save(ctx context.Context, record *model.Generation, start time.Time, log *zap.Logger) {
	if s.generations == nil {
		return
	}
	record.DurationMs = time.Since(start).Milliseconds()
	if err := s.generations.Create(context.WithoutCancel(ctx), record); err != nil {
		log.Warn("保存生成记录失败", logger.F(constant.LogFieldError, err))
	}
}
