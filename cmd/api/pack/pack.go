// Package pack 把文档转换为接口响应，补充上传者、作者、频道所有者等用户信息。
package pack

import (
	"context"

	"VidHub.com/cmd/model"
	"VidHub.com/pkg/store"
)

type VideoInfo struct {
	*model.Video
	Uploader model.UserSummary `json:"uploader"`
}

type ReplyInfo struct {
	model.Reply
	Author model.UserSummary `json:"author"`
}

type CommentInfo struct {
	*model.Comment
	Author  model.UserSummary `json:"author"`
	Replies []ReplyInfo       `json:"replies"`
}

type ChannelInfo struct {
	*model.Channel
	Owner  model.UserSummary `json:"owner"`
	Videos []*model.Video    `json:"videos"`
}

type ChannelReader interface {
	store.UserStore
	store.VideoStore
}

type summaries map[string]model.UserSummary

func loadSummaries(ctx context.Context, users store.UserStore, ids []string) (summaries, error) {
	found, err := users.FindUsers(ctx, ids)
	if err != nil {
		return nil, store.Translate(err, "users")
	}
	m := make(summaries, len(found))
	for _, u := range found {
		m[u.Id] = u.Summary()
	}
	return m, nil
}

// of 已删除的用户只保留 id
func (m summaries) of(id string) model.UserSummary {
	if u, ok := m[id]; ok {
		return u
	}
	return model.UserSummary{Id: id}
}

func Videos(ctx context.Context, users store.UserStore, videos []*model.Video) ([]*VideoInfo, error) {
	ids := make([]string, 0, len(videos))
	for _, v := range videos {
		ids = append(ids, v.Uploader)
	}
	m, err := loadSummaries(ctx, users, ids)
	if err != nil {
		return nil, err
	}
	result := make([]*VideoInfo, 0, len(videos))
	for _, v := range videos {
		result = append(result, &VideoInfo{Video: v, Uploader: m.of(v.Uploader)})
	}
	return result, nil
}

func Video(ctx context.Context, users store.UserStore, video *model.Video) (*VideoInfo, error) {
	result, err := Videos(ctx, users, []*model.Video{video})
	if err != nil {
		return nil, err
	}
	return result[0], nil
}

func Comments(ctx context.Context, users store.UserStore, comments []*model.Comment) ([]*CommentInfo, error) {
	var ids []string
	for _, c := range comments {
		ids = append(ids, c.Author)
		for _, r := range c.Replies {
			ids = append(ids, r.Author)
		}
	}
	m, err := loadSummaries(ctx, users, ids)
	if err != nil {
		return nil, err
	}
	result := make([]*CommentInfo, 0, len(comments))
	for _, c := range comments {
		replies := make([]ReplyInfo, 0, len(c.Replies))
		for _, r := range c.Replies {
			replies = append(replies, ReplyInfo{Reply: r, Author: m.of(r.Author)})
		}
		result = append(result, &CommentInfo{Comment: c, Author: m.of(c.Author), Replies: replies})
	}
	return result, nil
}

func Comment(ctx context.Context, users store.UserStore, comment *model.Comment) (*CommentInfo, error) {
	result, err := Comments(ctx, users, []*model.Comment{comment})
	if err != nil {
		return nil, err
	}
	return result[0], nil
}

// Channels 频道的视频列表展开为视频文档，已删除的视频不再返回
func Channels(ctx context.Context, st ChannelReader, channels []*model.Channel) ([]*ChannelInfo, error) {
	ids := make([]string, 0, len(channels))
	for _, c := range channels {
		ids = append(ids, c.Owner)
	}
	m, err := loadSummaries(ctx, st, ids)
	if err != nil {
		return nil, err
	}
	result := make([]*ChannelInfo, 0, len(channels))
	for _, c := range channels {
		videos, err := st.FindVideos(ctx, c.Videos)
		if err != nil {
			return nil, store.Translate(err, "channel videos")
		}
		result = append(result, &ChannelInfo{Channel: c, Owner: m.of(c.Owner), Videos: videos})
	}
	return result, nil
}

func Channel(ctx context.Context, st ChannelReader, channel *model.Channel) (*ChannelInfo, error) {
	result, err := Channels(ctx, st, []*model.Channel{channel})
	if err != nil {
		return nil, err
	}
	return result[0], nil
}
