package mq

import (
	"context"
	"sync"

	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// Publisher 互动事件发布者
type Publisher interface {
	PublishEngagementEvent(ctx context.Context, event *EngagementEvent) error
}

var (
	_ Publisher = (*Producer)(nil)
	_ Publisher = NopPublisher{}
	_ Publisher = (*Recorder)(nil)
)

// NopPublisher 未配置 RabbitMQ 时使用
type NopPublisher struct{}

func (NopPublisher) PublishEngagementEvent(ctx context.Context, event *EngagementEvent) error {
	return nil
}

// Recorder 在内存中记录发布的事件
type Recorder struct {
	mu     sync.Mutex
	events []*EngagementEvent
}

func (r *Recorder) PublishEngagementEvent(ctx context.Context, event *EngagementEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *Recorder) Events() []*EngagementEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*EngagementEvent, len(r.events))
	copy(out, r.events)
	return out
}

// Emit 发布失败只记录日志，变更已经落库，不影响调用方
func Emit(ctx context.Context, p Publisher, event *EngagementEvent) {
	if p == nil {
		return
	}
	if err := p.PublishEngagementEvent(ctx, event); err != nil {
		hlog.CtxWarnf(ctx, "publish %s event %s failed: %v", event.EventType, event.EventID, err)
	}
}
