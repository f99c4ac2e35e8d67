package model

import "time"

type Video struct {
	Id           string    `json:"id" bson:"_id"`
	Title        string    `json:"title" bson:"title"`
	Description  string    `json:"description" bson:"description"`
	VideoUrl     string    `json:"videoUrl" bson:"video_url"`
	ThumbnailUrl string    `json:"thumbnailUrl" bson:"thumbnail_url"`
	Duration     int64     `json:"duration" bson:"duration"` // 秒
	Category     string    `json:"category" bson:"category"`
	Tags         []string  `json:"tags" bson:"tags"`
	Uploader     string    `json:"uploader" bson:"uploader"`
	ChannelId    string    `json:"channelId,omitempty" bson:"channel_id,omitempty"`
	Views        int64     `json:"views" bson:"views"`
	Likes        IDSet     `json:"likes" bson:"likes"`
	Dislikes     IDSet     `json:"dislikes" bson:"dislikes"`
	CreatedAt    time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updated_at"`
}

// VideoFilter 视频列表过滤条件，空字段表示不过滤
type VideoFilter struct {
	Category string
	Search   string
}
