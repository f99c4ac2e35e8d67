package model

import "time"

type Channel struct {
	Id          string    `json:"id" bson:"_id"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description" bson:"description"`
	Owner       string    `json:"owner" bson:"owner"`
	Subscribers IDSet     `json:"subscribers" bson:"subscribers"`
	Videos      []string  `json:"videos" bson:"videos"`
	Avatar      string    `json:"avatar" bson:"avatar"`
	Banner      string    `json:"banner" bson:"banner"`
	CreatedAt   time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updated_at"`
}
