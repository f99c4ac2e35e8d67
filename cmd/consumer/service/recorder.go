package service

import (
	"context"
	"time"

	"VidHub.com/cmd/consumer/dal"
	"VidHub.com/cmd/model"
	"VidHub.com/pkg/mq"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"gorm.io/gorm"
)

// EventRecorder 把互动事件写入审计表，重复投递的事件只保留一条
type EventRecorder struct {
	db *gorm.DB
}

var _ mq.EngagementEventHandler = (*EventRecorder)(nil)

func NewEventRecorder(db *gorm.DB) *EventRecorder {
	return &EventRecorder{db: db}
}

func (r *EventRecorder) HandleEngagementEvent(ctx context.Context, event *mq.EngagementEvent) error {
	created, err := dal.SaveEngagementEvent(ctx, r.db, &model.EngagementEvent{
		EventID:    event.EventID,
		EventType:  event.EventType,
		UserID:     event.UserID,
		TargetID:   event.TargetID,
		Action:     event.Action,
		OccurredAt: time.UnixMilli(event.Timestamp),
	})
	if err != nil {
		return err
	}
	if !created {
		hlog.CtxInfof(ctx, "duplicate engagement event ignored: %s", event.EventID)
	}
	return nil
}
