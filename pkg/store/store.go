// Package store 文档存储抽象：按 id 查找、按条件查找、整文档原子保存。
// mongo 子包用于生产部署，badger 子包用于单机/开发/测试。
package store

import (
	"context"
	"errors"

	"VidHub.com/cmd/model"
	"VidHub.com/pkg/errno"
)

var (
	// ErrNotFound id 不存在
	ErrNotFound = errors.New("document not found")
	// ErrDuplicate 唯一键冲突，目前只有用户名
	ErrDuplicate = errors.New("duplicate document")
)

type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	FindUser(ctx context.Context, id string) (*model.User, error)
	FindUserByUsername(ctx context.Context, username string) (*model.User, error)
	// FindUsers 按 ids 顺序返回存在的用户，不存在的 id 跳过
	FindUsers(ctx context.Context, ids []string) ([]*model.User, error)
	SaveUser(ctx context.Context, user *model.User) error
}

type ChannelStore interface {
	CreateChannel(ctx context.Context, channel *model.Channel) error
	FindChannel(ctx context.Context, id string) (*model.Channel, error)
	FindChannelsByOwner(ctx context.Context, owner string) ([]*model.Channel, error)
	SaveChannel(ctx context.Context, channel *model.Channel) error
	DeleteChannel(ctx context.Context, id string) error
}

type VideoStore interface {
	CreateVideo(ctx context.Context, video *model.Video) error
	FindVideo(ctx context.Context, id string) (*model.Video, error)
	// FindVideos 按 ids 顺序返回存在的视频，不存在的 id 跳过
	FindVideos(ctx context.Context, ids []string) ([]*model.Video, error)
	// ListVideos 按创建时间倒序
	ListVideos(ctx context.Context, filter model.VideoFilter) ([]*model.Video, error)
	// SaveVideo 保存除 Views 以外的字段
	SaveVideo(ctx context.Context, video *model.Video) error
	// IncrVisitCount 原子 +1 并返回更新后的文档
	IncrVisitCount(ctx context.Context, id string) (*model.Video, error)
	DeleteVideo(ctx context.Context, id string) error
}

type CommentStore interface {
	CreateComment(ctx context.Context, comment *model.Comment) error
	FindComment(ctx context.Context, id string) (*model.Comment, error)
	// ListCommentsByVideo 按创建时间倒序
	ListCommentsByVideo(ctx context.Context, videoId string) ([]*model.Comment, error)
	SaveComment(ctx context.Context, comment *model.Comment) error
	DeleteComment(ctx context.Context, id string) error
	DeleteCommentsByVideo(ctx context.Context, videoId string) (int64, error)
}

type Store interface {
	UserStore
	ChannelStore
	VideoStore
	CommentStore
	Close(ctx context.Context) error
}

// Translate 把持久层错误转换为 errno，what 用于拼接提示信息
func Translate(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound):
		return errno.NotFoundErr.WithMessage(what + " not found")
	case errors.Is(err, ErrDuplicate):
		return errno.UserAlreadyExistErr.WithMessage(what + " already exists")
	default:
		return errno.WrapStoreErr(err, what)
	}
}
