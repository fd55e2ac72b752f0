// Package cache 全局 redis 客户端，cache.redis.enabled 为 false 时客户端为空
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/openlabollioules/tools/pkg/config"
)

var rdb *redis.Client

// Options 从配置构造连接参数
func Options() *redis.Options {
	return &redis.Options{
		Addr: fmt.Sprintf("%s:%d",
			config.GetString("cache.redis.host"),
			config.GetInt("cache.redis.port")),
		Password:     config.GetString("cache.redis.password"),
		DB:           config.GetInt("cache.redis.db"),
		PoolSize:     config.GetInt("cache.redis.pool_size"),
		MinIdleConns: config.GetInt("cache.redis.pool_size") / 2,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
}

// Init 连接 redis 并检查连通性
func Init() error {
	if !config.GetBool("cache.redis.enabled") {
		return nil
	}
	client := redis.NewClient(Options())
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("connect to redis failed: %v", err)
	}
	rdb = client
	return nil
}

// GetClient 获取客户端，未启用时为 nil
func GetClient() *redis.Client {
	return rdb
}

// Close 关闭连接
func Close() error {
	if rdb != nil {
		return rdb.Close()
	}
	return nil
}
