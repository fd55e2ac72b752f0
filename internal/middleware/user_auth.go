package middleware

import (
	"errors"
	"net"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/openlabollioules/tools/internal/constant"
	"github.com/openlabollioules/tools/internal/service"
	"github.com/openlabollioules/tools/internal/storage"
	"github.com/openlabollioules/tools/pkg/config"
	"github.com/openlabollioules/tools/pkg/logger"
)

// 宿主转发的用户信息头
const (
	HeaderUserID   = "X-OpenWebUI-User-Id"
	HeaderUserName = "X-OpenWebUI-User-Name"
)

// AnonymousUserID 未启用认证且没有转发用户时使用
const AnonymousUserID = "anonymous"

type UserAuthConfig struct {
	Enabled        bool
	Secret         []byte
	TrustForwarded bool
	// 认证开启时只接受这些地址转发的用户头，支持 IP 和 CIDR
	TrustedProxies []string
}

// LoadUserAuthConfig 从全局配置读取
func LoadUserAuthConfig() UserAuthConfig {
	return UserAuthConfig{
		Enabled:        config.GetBool("auth.enabled"),
		Secret:         config.GetJWTSecret(),
		TrustForwarded: config.GetBool("auth.trust_forwarded_user"),
		TrustedProxies: config.GetStringSlice("auth.trusted_proxies"),
	}
}

// forwardedAllowed 认证关闭时转发头只用于标识用户；开启时需来自受信代理
func (cfg UserAuthConfig) forwardedAllowed(ip string) bool {
	if !cfg.Enabled {
		return true
	}
	if !cfg.TrustForwarded {
		return false
	}
	addr := net.ParseIP(ip)
	for _, p := range cfg.TrustedProxies {
		p = strings.TrimSpace(p)
		if _, cidr, err := net.ParseCIDR(p); err == nil {
			if addr != nil && cidr.Contains(addr) {
				return true
			}
			continue
		}
		if proxy := net.ParseIP(p); proxy != nil && addr != nil && proxy.Equal(addr) {
			return true
		}
	}
	return false
}

// NewUserAuthMiddleware 识别调用的宿主用户，结果存入 Locals
func NewUserAuthMiddleware(userService service.UserService, cfg UserAuthConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := strings.TrimSpace(strings.TrimPrefix(c.Get("Authorization"), "Bearer "))

		user := storage.User{Token: token}
		switch {
		case token != "" && cfg.Enabled:
			id, err := verifyToken(token, cfg.Secret)
			if err != nil {
				logger.Warn("token 校验失败", logger.F(constant.LogFieldError, err), logger.F("ip", c.IP()))
				return c.Status(constant.GetErrorCode(err)).JSON(service.Error(err))
			}
			user.ID = id
		case c.Get(HeaderUserID) != "" && cfg.forwardedAllowed(c.IP()):
			user.ID = c.Get(HeaderUserID)
			user.Name = c.Get(HeaderUserName)
		case cfg.Enabled:
			return c.Status(fiber.StatusUnauthorized).JSON(service.Error(constant.ErrUnauthorized))
		default:
			user.ID = AnonymousUserID
		}

		if user.Name == "" && user.ID != AnonymousUserID && userService != nil {
			if hostUser, err := userService.Get(c.Context(), user.ID); err != nil {
				logger.Warn("查询用户名失败", logger.F(constant.LogFieldUserID, user.ID), logger.F(constant.LogFieldError, err))
			} else {
				user.Name = hostUser.Name
			}
		}

		c.Locals(constant.LocalsUser, user)
		c.Locals(constant.LocalsToken, token)
		return c.Next()
	}
}

// CurrentUser 取出中间件写入的用户
func CurrentUser(c *fiber.Ctx) (storage.User, bool) {
	user, ok := c.Locals(constant.LocalsUser).(storage.User)
	return user, ok
}

// verifyToken 校验宿主签发的 HS256 token，返回 id 声明
func verifyToken(token string, secret []byte) (string, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", constant.ErrTokenExpired
		}
		return "", constant.ErrInvalidToken
	}
	id, _ := claims["id"].(string)
	if id == "" {
		return "", constant.ErrInvalidToken
	}
	return id, nil
}
