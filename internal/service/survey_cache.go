package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"survey_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const surveyDetailKeyPrefix = "survey:detail:"

// DetailCache 加权问卷题目树缓存
// 只缓存创建后不再变化的项目/维度/选项结构，问卷状态与过期时间每次从数据库读取
type DetailCache interface {
	GetProjects(ctx context.Context, id uint) ([]Project, bool)
	SetProjects(ctx context.Context, id uint, projects []Project)
	Invalidate(ctx context.Context, id uint)
}

// SurveyCache 基于 redis 的题目树缓存，客户端为空时所有读取均未命中，缓存错误不影响请求
type SurveyCache struct {
	Redis *redis.Client
	TTL   time.Duration
}

func NewSurveyCache(rdb *redis.Client, ttl time.Duration) *SurveyCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &SurveyCache{Redis: rdb, TTL: ttl}
}

// orDisabled 未传入缓存时使用关闭状态的缓存
func orDisabled(cache DetailCache) DetailCache {
	if cache == nil {
		return NewSurveyCache(nil, 0)
	}
	return cache
}

func (c *SurveyCache) enabled() bool {
	return c != nil && c.Redis != nil
}

func detailKey(id uint) string {
	return fmt.Sprintf("%s%d", surveyDetailKeyPrefix, id)
}

// GetProjects 读取缓存的题目树
func (c *SurveyCache) GetProjects(ctx context.Context, id uint) ([]Project, bool) {
	if !c.enabled() {
		return nil, false
	}
	val, err := c.Redis.Get(ctx, detailKey(id)).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		logger.Log.Warn("survey cache read failed", zap.Uint("surveyId", id), zap.Error(err))
		return nil, false
	}
	var projects []Project
	if err := json.Unmarshal([]byte(val), &projects); err != nil {
		logger.Log.Warn("survey cache entry corrupt", zap.Uint("surveyId", id), zap.Error(err))
		return nil, false
	}
	return projects, true
}

// SetProjects 写入题目树
func (c *SurveyCache) SetProjects(ctx context.Context, id uint, projects []Project) {
	if !c.enabled() {
		return
	}
	data, err := json.Marshal(projects)
	if err != nil {
		return
	}
	if err := c.Redis.Set(ctx, detailKey(id), data, c.TTL).Err(); err != nil {
		logger.Log.Warn("survey cache write failed", zap.Uint("surveyId", id), zap.Error(err))
	}
}

// Invalidate 删除缓存
func (c *SurveyCache) Invalidate(ctx context.Context, id uint) {
	if !c.enabled() {
		return
	}
	if err := c.Redis.Del(ctx, detailKey(id)).Err(); err != nil {
		logger.Log.Warn("survey cache invalidate failed", zap.Uint("surveyId", id), zap.Error(err))
	}
}
