package model

import "time"

type Comment struct {
	Id        string    `json:"id" bson:"_id"`
	Content   string    `json:"content" bson:"content"`
	Author    string    `json:"author" bson:"author"`
	VideoId   string    `json:"videoId" bson:"video_id"`
	Likes     IDSet     `json:"likes" bson:"likes"`
	Replies   []Reply   `json:"replies" bson:"replies"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}

// Reply 内嵌在评论里，只能通过父评论创建，随父评论一起删除
type Reply struct {
	Id        string    `json:"id" bson:"id"`
	Content   string    `json:"content" bson:"content"`
	Author    string    `json:"author" bson:"author"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}
