package mq

import (
	"time"

	"github.com/google/uuid"
)

// EngagementEvent 互动事件，变更落库之后发布
type EngagementEvent struct {
	EventID   string `json:"event_id"`
	EventType string `json:"event_type"` // video_like, video_dislike, channel_subscription, comment_like, comment_reply
	UserID    string `json:"user_id"`    // 操作用户
	TargetID  string `json:"target_id"`  // 视频/频道/评论 id
	Action    string `json:"action"`     // add or remove
	Timestamp int64  `json:"timestamp"`  // 毫秒
}

const (
	EngagementEventExchange = "engagement_events"
	EngagementEventQueue    = "engagement_event_queue"

	EventVideoLike           = "video_like"
	EventVideoDislike        = "video_dislike"
	EventChannelSubscription = "channel_subscription"
	EventCommentLike         = "comment_like"
	EventCommentReply        = "comment_reply"

	ActionAdd    = "add"
	ActionRemove = "remove"
)

func NewEngagementEvent(eventType, userID, targetID string, added bool) *EngagementEvent {
	action := ActionRemove
	if added {
		action = ActionAdd
	}
	return &EngagementEvent{
		EventID:   uuid.New().String(),
		EventType: eventType,
		UserID:    userID,
		TargetID:  targetID,
		Action:    action,
		Timestamp: time.Now().UnixMilli(),
	}
}
