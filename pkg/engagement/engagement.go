// Package engagement 互动状态机：点赞/点踩、订阅、评论点赞与回复。
// 这里只计算文档的下一个状态，持久化由调用方负责。
package engagement

import (
	"strings"
	"time"

	"VidHub.com/cmd/model"
	"VidHub.com/pkg/errno"
	"github.com/google/uuid"
)

// State 单个用户与单个视频之间的关系
type State int

const (
	Neutral State = iota
	Liked
	Disliked
)

func (s State) String() string {
	switch s {
	case Liked:
		return "liked"
	case Disliked:
		return "disliked"
	default:
		return "neutral"
	}
}

var nowFunc = time.Now

type ReactionCounts struct {
	Likes    int `json:"likes"`
	Dislikes int `json:"dislikes"`
}

type SubscriptionState struct {
	Subscribed      bool `json:"subscribed"`
	SubscriberCount int  `json:"subscriberCount"`
}

type CommentLikeCount struct {
	Likes int `json:"likes"`
}

// VideoState 读取 userID 对视频的当前状态
func VideoState(v *model.Video, userID string) State {
	switch {
	case v.Likes.Has(userID):
		return Liked
	case v.Dislikes.Has(userID):
		return Disliked
	default:
		return Neutral
	}
}

func ToggleLike(v *model.Video, callerID string) ReactionCounts {
	toggleExclusive(&v.Likes, &v.Dislikes, callerID)
	return counts(v)
}

func ToggleDislike(v *model.Video, callerID string) ReactionCounts {
	toggleExclusive(&v.Dislikes, &v.Likes, callerID)
	return counts(v)
}

// toggleExclusive 在 target 中翻转 id，加入时同时从 opposite 中移除
func toggleExclusive(target, opposite *model.IDSet, id string) {
	if target.Has(id) {
		target.Remove(id)
		return
	}
	target.Add(id)
	opposite.Remove(id)
}

func counts(v *model.Video) ReactionCounts {
	return ReactionCounts{Likes: v.Likes.Len(), Dislikes: v.Dislikes.Len()}
}

// ToggleSubscription 同时修改 channel.Subscribers 和 user.SubscribedChannels。
// 以 channel 一侧为准判断当前是否已订阅，另一侧跟随，单边残留会在这一步被修正。
func ToggleSubscription(c *model.Channel, u *model.User, callerID string) (SubscriptionState, error) {
	if u.Id != callerID {
		return SubscriptionState{}, errno.ParamErr.WithMessage("subscriber must be the caller")
	}
	subscribed := !c.Subscribers.Has(callerID)
	if subscribed {
		c.Subscribers.Add(callerID)
		u.SubscribedChannels.Add(c.Id)
	} else {
		c.Subscribers.Remove(callerID)
		u.SubscribedChannels.Remove(c.Id)
	}
	return SubscriptionState{Subscribed: subscribed, SubscriberCount: c.Subscribers.Len()}, nil
}

func ToggleCommentLike(c *model.Comment, callerID string) CommentLikeCount {
	if !c.Likes.Remove(callerID) {
		c.Likes.Add(callerID)
	}
	return CommentLikeCount{Likes: c.Likes.Len()}
}

// NormalizeContent 去掉首尾空白，空内容返回 ParamErr
func NormalizeContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", errno.ParamErr.WithMessage("content must not be empty")
	}
	return content, nil
}

// AddReply 追加一条回复，按插入顺序保存
func AddReply(c *model.Comment, authorID, content string) (model.Reply, error) {
	content, err := NormalizeContent(content)
	if err != nil {
		return model.Reply{}, err
	}
	reply := model.Reply{
		Id:        uuid.New().String(),
		Content:   content,
		Author:    authorID,
		CreatedAt: nowFunc(),
	}
	c.Replies = append(c.Replies, reply)
	return reply, nil
}

// RecordView 每次调用 +1，不按观看者去重
func RecordView(v *model.Video) int64 {
	v.Views++
	return v.Views
}
