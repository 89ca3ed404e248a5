package lifecycle

import (
	"context"
	"time"
)

// Handle 是分发给每个后台服务的生命周期控制器。
// 服务的Goroutine退出前必须通过defer调用Close，通知Manager自己已经结束。
type Handle struct {
	ctx   context.Context
	Close func()
}

// Ctx 返回句柄内部的context。
func (h *Handle) Ctx() context.Context {
	return h.ctx
}

// Done 返回一个channel，管理器发出停机信号时该channel会关闭。
func (h *Handle) Done() <-chan struct{} {
	return h.ctx.Done()
}

// Err 在Done()的channel关闭后，返回上下文被取消的原因。
func (h *Handle) Err() error {
	return h.ctx.Err()
}

// Sleep 暂停指定的时长，停机信号会让它提前返回错误。
// 后台轮询循环中的休眠都应该使用这个方法。
func (h *Handle) Sleep(duration time.Duration) error {
	timer := time.NewTimer(duration)

	select {
	case <-h.Done():
		if !timer.Stop() {
			<-timer.C
		}
		return h.Err()
	case <-timer.C:
		return nil
	}
}
