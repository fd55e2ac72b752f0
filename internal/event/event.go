// Package event 生成过程中的状态通知。发送方不关心是否有人接收，接收端为空时什么也不做。
package event

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/go-redis/redis/v8"
	"github.com/openlabollioules/tools/pkg/logger"
)

// Status 状态取值
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusComplete   Status = "complete"
	StatusError      Status = "error"
)

// Event 状态事件，序列化格式与宿主约定一致
type Event struct {
	Type string `json:"type"`
	Data Data   `json:"data"`
}

// Data 事件内容
type Data struct {
	Status      Status `json:"status"`
	Description string `json:"description"`
	Done        bool   `json:"done"`
}

// Progress 进行中
func Progress(description string) Event {
	return Event{Type: "status", Data: Data{Status: StatusInProgress, Description: description}}
}

// Complete 已完成
func Complete(description string) Event {
	return Event{Type: "status", Data: Data{Status: StatusComplete, Description: description, Done: true}}
}

// Failure 失败，描述以 "Error: " 开头
func Failure(err error) Event {
	return Event{Type: "status", Data: Data{Status: StatusError, Description: "Error: " + err.Error(), Done: true}}
}

// Emitter 状态接收端
type Emitter interface {
	Emit(ctx context.Context, e Event)
}

// Emit 向 em 发送事件，em 为空时忽略
func Emit(ctx context.Context, em Emitter, e Event) {
	if em == nil {
		return
	}
	em.Emit(ctx, e)
}

// Noop 丢弃所有事件
type Noop struct{}

func (Noop) Emit(context.Context, Event) {}

// Collector 在内存中按顺序收集事件，用于随结果一起返回
type Collector struct {
	mu     sync.Mutex
	events []Event
}

func (c *Collector) Emit(_ context.Context, e Event) {
	c.mu.Lock()
	c.events = append(c.events, e)
	c.mu.Unlock()
}

// Events 已收集事件的副本
func (c *Collector) Events() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Event, len(c.events))
	copy(out, c.events)
	return out
}

// Fanout 依次转发给多个接收端
type Fanout []Emitter

func (f Fanout) Emit(ctx context.Context, e Event) {
	for _, em := range f {
		Emit(ctx, em, e)
	}
}

// RedisPublisher 把事件发布到 redis 频道 tools:status:{user}
type RedisPublisher struct {
	rdb     *redis.Client
	channel string
}

// Channel 用户的状态频道名
func Channel(userID string) string {
	return fmt.Sprintf("tools:status:%s", userID)
}

// NewRedisPublisher 创建发布端，rdb 为空时返回 nil
func NewRedisPublisher(rdb *redis.Client, userID string) *RedisPublisher {
	if rdb == nil {
		return nil
	}
	return &RedisPublisher{rdb: rdb, channel: Channel(userID)}
}

func (p *RedisPublisher) Emit(ctx context.Context, e Event) {
	if p == nil {
		return
	}
	data, err := json.Marshal(e)
	if err != nil {
		logger.Warn("序列化状态事件失败", logger.F("error", err))
		return
	}
	// 通知失败不影响生成流程
	if err := p.rdb.Publish(ctx, p.channel, data).Err(); err != nil {
		logger.Warn("发布状态事件失败", logger.F("channel", p.channel), logger.F("error", err))
	}
}
