package middleware

import (
	"context"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/openlabollioules/tools/internal/service"
	"github.com/openlabollioules/tools/pkg/logger"
)

type rateLimiter struct {
	maxRequests int
	duration    time.Duration
	mu          sync.Mutex
	tokens      map[string]*tokenBucket
	now         func() time.Time
}

type tokenBucket struct {
	tokens    int
	lastReset time.Time
}

// NewRateLimiter 创建限流器
func NewRateLimiter(maxRequests int, duration time.Duration) *rateLimiter {
	return &rateLimiter{
		maxRequests: maxRequests,
		duration:    duration,
		tokens:      make(map[string]*tokenBucket),
		now:         time.Now,
	}
}

// RateLimit 限流中间件，按用户计数，没有用户时按 IP；ctx 结束后停止清理任务
func RateLimit(ctx context.Context, maxRequests int, duration time.Duration) fiber.Handler {
	limiter := NewRateLimiter(maxRequests, duration)
	limiter.StartCleanup(ctx, duration)

	return func(c *fiber.Ctx) error {
		clientID := "ip_" + c.IP()
		if user, ok := CurrentUser(c); ok && user.ID != "" && user.ID != AnonymousUserID {
			clientID = "user_" + user.ID
		}

		if !limiter.allow(clientID) {
			logger.Warn("rate limit exceeded",
				logger.F("clientId", clientID),
				logger.F("path", c.Path()),
			)
			return c.Status(fiber.StatusTooManyRequests).JSON(service.NewResponse(nil, fiber.ErrTooManyRequests))
		}

		return c.Next()
	}
}

// allow 检查是否允许请求
func (rl *rateLimiter) allow(clientID string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	bucket, exists := rl.tokens[clientID]

	if !exists {
		// 新客户端，减1是因为当前请求
		rl.tokens[clientID] = &tokenBucket{
			tokens:    rl.maxRequests - 1,
			lastReset: now,
		}
		return true
	}

	if now.Sub(bucket.lastReset) >= rl.duration {
		bucket.tokens = rl.maxRequests - 1
		bucket.lastReset = now
		return true
	}

	if bucket.tokens > 0 {
		bucket.tokens--
		return true
	}

	return false
}

// cleanup 清理过期的令牌桶
func (rl *rateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for clientID, bucket := range rl.tokens {
		if now.Sub(bucket.lastReset) >= rl.duration*2 {
			delete(rl.tokens, clientID)
		}
	}
}

// StartCleanup 启动清理任务
func (rl *rateLimiter) StartCleanup(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				rl.cleanup()
			}
		}
	}()
}
