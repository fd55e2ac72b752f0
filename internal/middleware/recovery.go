package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/openlabollioules/tools/internal/constant"
	"github.com/openlabollioules/tools/internal/service"
	"github.com/openlabollioules/tools/pkg/logger"
)

// Recovery 错误恢复中间件
func Recovery() fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered",
					logger.F(constant.LogFieldError, r),
					logger.F(constant.LogFieldPath, c.Path()),
					logger.F("method", c.Method()),
				)
				err = c.Status(fiber.StatusInternalServerError).
					JSON(service.NewResponse(nil, fmt.Errorf("%w: %v", constant.ErrInternalError, r)))
			}
		}()

		return c.Next()
	}
}

// RequestLogger 请求日志中间件
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		userID := ""
		if user, ok := CurrentUser(c); ok {
			userID = user.ID
		}
		logger.Info("request completed",
			logger.F("method", c.Method()),
			logger.F(constant.LogFieldPath, c.Path()),
			logger.F("status", c.Response().StatusCode()),
			logger.F("duration", time.Since(start)),
			logger.F("ip", c.IP()),
			logger.F(constant.LogFieldUserID, userID),
		)

		return err
	}
}
