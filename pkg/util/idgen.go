package util

import (
	"sync"

	"github.com/rs/xid"
	snowflake "github.com/yockii/snowflake_ext"
)

var (
	idGenerator *snowflake.Worker
	idMu        sync.Mutex
)

// InitNode 初始化ID生成器
func InitNode(nodeID uint64) error {
	w, err := snowflake.NewSnowflake(nodeID)
	if err != nil {
		return err
	}
	idMu.Lock()
	idGenerator = w
	idMu.Unlock()
	return nil
}

// NewID 生成新的记录ID，未初始化时使用节点 1
func NewID() uint64 {
	idMu.Lock()
	if idGenerator == nil {
		idGenerator, _ = snowflake.NewSnowflake(1)
	}
	w := idGenerator
	idMu.Unlock()
	return w.NextId()
}

// NewRequestID 生成请求ID，用于日志和临时目录
func NewRequestID() string {
	return xid.New().String()
}
