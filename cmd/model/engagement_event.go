package model

import "time"

// EngagementEvent 互动审计表，由 consumer 从 MQ 落库，event_id 唯一保证幂等
type EngagementEvent struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	EventID    string    `gorm:"not null;size:36;uniqueIndex" json:"event_id"`
	EventType  string    `gorm:"not null;size:32;index" json:"event_type"`
	UserID     string    `gorm:"not null;size:36;index" json:"user_id"`
	TargetID   string    `gorm:"not null;size:36;index" json:"target_id"`
	Action     string    `gorm:"not null;size:20" json:"action"`
	OccurredAt time.Time `gorm:"not null" json:"occurred_at"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
}

// TableName 指定表名
func (EngagementEvent) TableName() string {
	return "engagement_events"
}
