package report

import (
	"encoding/json"
	"time"

	"github.com/Gabrielsb1/destalhe/internal/platform/database"
	"github.com/redis/go-redis/v9"
)

const (
	// CacheKey 是一个 Redis Hash 的键，用于缓存序列化后的看板数据。
	// Field: 参考日的日期键
	// Value: DashboardReport 结构体的JSON序列化字符串
	CacheKey = "report:dashboard"

	// cacheTTL 是看板缓存的有效期。看板是聚合视图，
	// 短TTL下的轻微滞后可以接受。
	cacheTTL = 30 * time.Second
)

// GetDashboardCache 从Redis缓存中获取某天的看板数据。
// 缓存层不可用或未命中时返回(nil, nil)。
func GetDashboardCache(dayKey string) (*DashboardReport, error) {
	if !database.IsRedisHealthy() {
		return nil, nil
	}

	result, err := database.RDB.HGet(database.Ctx, CacheKey, dayKey).Result()
	if err == redis.Nil {
		return nil, nil // 缓存未命中，是正常情况，不返回错误
	}
	if err != nil {
		return nil, err
	}

	var dashboard DashboardReport
	if err := json.Unmarshal([]byte(result), &dashboard); err != nil {
		return nil, err
	}
	return &dashboard, nil
}

// SetDashboardCache 将看板数据存入Redis缓存。
func SetDashboardCache(dashboard *DashboardReport, expire time.Duration) error {
	if !database.IsRedisHealthy() {
		return nil
	}

	data, err := json.Marshal(dashboard)
	if err != nil {
		return err
	}

	// 使用Pipeline来原子地设置值和过期时间
	pipe := database.RDB.Pipeline()
	pipe.HSet(database.Ctx, CacheKey, dashboard.Date, data)
	pipe.HExpire(database.Ctx, CacheKey, expire, dashboard.Date)
	_, err = pipe.Exec(database.Ctx)
	return err
}
