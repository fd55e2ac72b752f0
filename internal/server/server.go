package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	middlewareLogger "github.com/gofiber/fiber/v2/middleware/logger"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"gorm.io/gorm"

	_ "github.com/openlabollioules/tools/docs"
	sysapi "github.com/openlabollioules/tools/internal/api_sys"
	toolapi "github.com/openlabollioules/tools/internal/api_tool"
	"github.com/openlabollioules/tools/internal/middleware"
	"github.com/openlabollioules/tools/internal/service"
	"github.com/openlabollioules/tools/internal/storage"
	"github.com/openlabollioules/tools/pkg/config"
	"github.com/openlabollioules/tools/pkg/logger"
)

type Server struct {
	app    *fiber.App
	db     *gorm.DB
	rdb    *redis.Client
	ctx    context.Context
	cancel context.CancelFunc

	toolCfg  service.ToolConfig
	uploader storage.Uploader

	// 各个service
	userSrv       service.UserService
	generationSrv service.GenerationService
	toolSrv       service.ToolService
}

// New rdb 可以为空
func New(db *gorm.DB, rdb *redis.Client) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{db: db, rdb: rdb, ctx: ctx, cancel: cancel}
}

// Setup 创建 fiber 实例并注册路由，不监听端口
func (s *Server) Setup() (*fiber.App, error) {
	s.app = fiber.New(fiber.Config{
		AppName:               config.GetString("server.app_name"),
		EnablePrintRoutes:     config.GetBool("server.print_routes"),
		DisableStartupMessage: true,
	})

	if err := s.setupServices(); err != nil {
		return nil, err
	}

	// 配置中间件
	s.setupMiddleware()

	// 注册路由
	s.registerHandlers()
	s.setupRoutesV1()
	s.setupSystemRoutes()

	return s.app, nil
}

func (s *Server) Start() error {
	if _, err := s.Setup(); err != nil {
		return err
	}

	addr := config.GetServerAddress()
	logger.Info("服务监听地址", logger.F("address", addr))

	// 优雅关闭
	go s.gracefulShutdown()

	if err := s.app.Listen(addr); err != nil {
		logger.Error("服务停止", logger.F("error", err))
		return err
	}
	return nil
}

func (s *Server) gracefulShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("服务关闭中...")
	s.cancel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.app.ShutdownWithContext(ctx); err != nil {
		logger.Error("服务关闭失败", logger.F("error", err))
	}

	logger.Info("服务已关闭")
}

// setupServices 配置服务层
func (s *Server) setupServices() error {
	uploader, err := storage.NewFromConfig(s.db)
	if err != nil {
		return fmt.Errorf("create uploader failed: %w", err)
	}
	s.uploader = uploader
	s.toolCfg = service.LoadToolConfig()

	if s.db != nil {
		s.userSrv = service.NewUserService(s.db, s.rdb, config.GetDuration("cache.user_ttl"))
		s.generationSrv = service.NewGenerationService(s.db)
	}
	s.toolSrv = service.NewToolService(s.toolCfg, s.uploader, s.generationSrv, s.rdb)
	return nil
}

// setupMiddleware 配置中间件
func (s *Server) setupMiddleware() {
	// 异常恢复
	s.app.Use(middleware.Recovery())

	// CORS
	s.app.Use(cors.New(cors.Config{
		AllowOrigins: config.GetString("security.allowed_origins"),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, " + middleware.HeaderUserID + ", " + middleware.HeaderUserName,
	}))

	// 访问日志
	s.app.Use(middlewareLogger.New(middlewareLogger.Config{
		Format:     "[${ip}]-${time} ${status} ${latency} ${method} ${path} | ${error}\n",
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Local",
	}))
	s.app.Use(middleware.RequestLogger())
}

func (s *Server) registerHandlers() {
	toolapi.Handlers = nil
	sysapi.Handlers = nil

	toolapi.RegisterToolHandler(s.toolSrv)
	if s.generationSrv != nil {
		sysapi.RegisterGenerationHandler(s.generationSrv)
	}
}

// setupRoutesV1 工具和生成记录路由，先认证再限流
func (s *Server) setupRoutesV1() {
	middlewares := []fiber.Handler{
		middleware.NewUserAuthMiddleware(s.userSrv, middleware.LoadUserAuthConfig()),
	}
	if config.GetBool("rate_limit.enabled") {
		middlewares = append(middlewares, middleware.RateLimit(
			s.ctx,
			config.GetInt("rate_limit.max_requests"),
			time.Duration(config.GetInt("rate_limit.duration"))*time.Second,
		))
	}

	apiGroup := s.app.Group("/api/v1")
	for _, handler := range toolapi.Handlers {
		handler.RegisterRoutes(apiGroup, middlewares...)
	}
	for _, handler := range sysapi.Handlers {
		handler.RegisterRoutes(apiGroup, middlewares...)
	}
}

func (s *Server) setupSystemRoutes() {
	// 健康检查
	s.app.Get("/health", sysapi.Health(s.toolCfg.OutputDir, s.toolCfg.MinFreeMB))

	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)
}

// Close 停止后台任务
func (s *Server) Close() {
	s.cancel()
}
