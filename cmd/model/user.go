package model

import "time"

type User struct {
	Id                 string    `json:"id" bson:"_id"`
	Username           string    `json:"username" bson:"username"`
	Email              string    `json:"email" bson:"email"`
	PasswordHash       string    `json:"-" bson:"password_hash"`
	Avatar             string    `json:"avatar" bson:"avatar"`
	SubscribedChannels IDSet     `json:"subscribedChannels" bson:"subscribed_channels"`
	CreatedAt          time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt          time.Time `json:"updatedAt" bson:"updated_at"`
}

// UserSummary 嵌入到视频、评论响应中的作者信息
type UserSummary struct {
	Id       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{Id: u.Id, Username: u.Username, Avatar: u.Avatar}
}
