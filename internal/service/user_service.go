package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/openlabollioules/tools/internal/constant"
	"github.com/openlabollioules/tools/internal/model"
	"github.com/openlabollioules/tools/pkg/logger"
)

// key前缀
const userPrefix = "tools:user:"

type userService struct {
	db  *gorm.DB
	rdb *redis.Client
	ttl time.Duration
}

// NewUserService rdb 为空时不使用缓存
func NewUserService(db *gorm.DB, rdb *redis.Client, ttl time.Duration) UserService {
	return &userService{db: db, rdb: rdb, ttl: ttl}
}

func (s *userService) Get(ctx context.Context, id string) (*model.HostUser, error) {
	if user, ok := s.fromCache(ctx, id); ok {
		return user, nil
	}
	var user model.HostUser
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, constant.ErrUserNotFound
		}
		logger.Error("查询用户失败", logger.F("error", err))
		return nil, fmt.Errorf("%w: %v", constant.ErrDatabaseError, err)
	}
	s.cache(ctx, &user)
	return &user, nil
}

func (s *userService) fromCache(ctx context.Context, id string) (*model.HostUser, bool) {
	if s.rdb == nil {
		return nil, false
	}
	data, err := s.rdb.Get(ctx, userPrefix+id).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Warn("读取用户缓存失败", logger.F("error", err))
		}
		return nil, false
	}
	var user model.HostUser
	if err := json.Unmarshal(data, &user); err != nil {
		logger.Warn("反序列化用户缓存失败", logger.F("error", err))
		return nil, false
	}
	return &user, true
}

func (s *userService) cache(ctx context.Context, user *model.HostUser) {
	if s.rdb == nil {
		return
	}
	data, err := json.Marshal(user)
	if err != nil {
		logger.Warn("序列化用户信息失败", logger.F("error", err))
		return
	}
	if err := s.rdb.Set(ctx, userPrefix+user.ID, data, s.ttl).Err(); err != nil {
		logger.Warn("写入用户缓存失败", logger.F("error", err))
	}
}
