package main

import (
	"log"

	"github.com/openlabollioules/tools/internal/model"
	"github.com/openlabollioules/tools/internal/server"
	"github.com/openlabollioules/tools/pkg/cache"
	"github.com/openlabollioules/tools/pkg/config"
	"github.com/openlabollioules/tools/pkg/database"
	"github.com/openlabollioules/tools/pkg/logger"
	"github.com/openlabollioules/tools/pkg/util"
)

func main() {
	// 初始化配置
	if err := config.Init(); err != nil {
		log.Fatalf("初始化配置失败: %v", err)
	}

	if err := util.InitNode(config.GetUint64("server.node_id")); err != nil {
		log.Fatalf("初始化ID生成器失败: %v", err)
	}

	// 初始化日志
	logger.Init()
	defer logger.Sync()

	// 连接数据库
	if err := database.Init(); err != nil {
		log.Fatalf("连接数据库失败: %v", err)
	}
	defer database.Close()

	// 数据库迁移
	if err := model.AutoMigrate(database.GetDB(), config.GetString("database.type")); err != nil {
		log.Fatalf("数据库迁移失败: %v", err)
	}

	// 连接缓存
	if err := cache.Init(); err != nil {
		logger.Warn("redis 不可用，跳过缓存和状态推送", logger.F("error", err))
	}
	defer cache.Close()

	// 创建服务器实例
	srv := server.New(database.GetDB(), cache.GetClient())
	defer srv.Close()

	// 启动服务器
	if err := srv.Start(); err != nil {
		log.Fatalf("服务停止: %v", err)
	}
}
