package health

import (
	"context"
	"fmt"
	"time"

	"github.com/Gabrielsb1/destalhe/internal/platform/database"
	"github.com/Gabrielsb1/destalhe/pkg/lifecycle"
)

const (
	checkInterval = 5 * time.Second
	pingTimeout   = 2 * time.Second
)

// ping 对Redis执行一次带超时的PING。
func ping() error {
	ctx, cancel := context.WithTimeout(database.Ctx, pingTimeout)
	defer cancel()
	return database.RDB.Ping(ctx).Err()
}

// StartRedisHealthCheck 启动一个后台循环，周期性地探测Redis并更新健康状态。
// 缓存层未启用时直接退出。
func StartRedisHealthCheck(handle *lifecycle.Handle) {
	defer handle.Close()

	if database.RDB == nil {
		return
	}

	fmt.Println("Redis健康检查器已启动。")
	for {
		database.ReportRedisHealth(ping() == nil)

		if err := handle.Sleep(checkInterval); err != nil {
			fmt.Println("Redis健康检查器已停止。")
			return
		}
	}
}
