package database

import (
	"context"
	"fmt"

	"github.com/Gabrielsb1/destalhe/internal/platform/config"
	"github.com/redis/go-redis/v9"
)

// RDB 是一个全局的Redis客户端实例。缓存层被关闭时它保持为nil。
var RDB *redis.Client

// Ctx 是一个全局的上下文，用于Redis操作
var Ctx = context.Background()

// InitRedis 初始化与Redis的连接。Redis在本系统中只承担报表缓存，
// 连接失败不阻止启动，只是把缓存层标记为不可用。
func InitRedis(cfg config.RedisConfig) {
	if !cfg.Enabled {
		ReportRedisHealth(false)
		fmt.Println("Redis缓存层未启用，报表将直接查询数据库。")
		return
	}

	RDB = redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if _, err := RDB.Ping(Ctx).Result(); err != nil {
		ReportRedisHealth(false)
		fmt.Printf("Redis连接失败，缓存层暂时不可用: %v\n", err)
		return
	}

	ReportRedisHealth(true)
	fmt.Println("Redis 连接成功！")
}
