package database

import (
	"fmt"
	"sync"
)

// statusManager 负责线程安全地管理Redis缓存层的健康状态。
type statusManager struct {
	mu             sync.RWMutex
	isRedisHealthy bool
}

var globalStatus = &statusManager{}

// IsRedisHealthy 返回当前Redis缓存层是否可用。
// 为false时报表模块会跳过缓存，直接查询数据库。
func IsRedisHealthy() bool {
	globalStatus.mu.RLock()
	defer globalStatus.mu.RUnlock()
	return globalStatus.isRedisHealthy
}

// ReportRedisHealth 更新健康状态，只有状态变化时才打印日志。
// 由启动逻辑和后台健康检查器调用。
func ReportRedisHealth(healthy bool) {
	globalStatus.mu.Lock()
	defer globalStatus.mu.Unlock()

	if globalStatus.isRedisHealthy == healthy {
		return
	}
	globalStatus.isRedisHealthy = healthy
	if healthy {
		fmt.Println("健康检查: Redis缓存层状态已更新为 [可用]")
	} else {
		fmt.Println("健康检查警告: Redis缓存层状态已更新为 [不可用]")
	}
}
