package service

import (
	"context"
	"strings"
	"time"

	"VidHub.com/cmd/model"
	"VidHub.com/pkg/errno"
	"VidHub.com/pkg/lock"
	"VidHub.com/pkg/mq"
	"VidHub.com/pkg/store"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/google/uuid"
)

type VideoService struct {
	ctx       context.Context
	store     store.Store
	locker    lock.Locker
	publisher mq.Publisher
}

func NewVideoService(ctx context.Context, st store.Store, locker lock.Locker, publisher mq.Publisher) *VideoService {
	return &VideoService{ctx: ctx, store: st, locker: locker, publisher: publisher}
}

type CreateVideoRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	VideoUrl     string   `json:"videoUrl"`
	ThumbnailUrl string   `json:"thumbnailUrl"`
	Duration     int64    `json:"duration"`
	Category     string   `json:"category"`
	Tags         []string `json:"tags"`
	ChannelId    string   `json:"channelId"`
}

// ListVideos 按创建时间倒序，没有匹配时返回空列表
func (s *VideoService) ListVideos(filter model.VideoFilter) ([]*model.Video, error) {
	filter.Category = strings.TrimSpace(filter.Category)
	filter.Search = strings.TrimSpace(filter.Search)
	videos, err := s.store.ListVideos(s.ctx, filter)
	if err != nil {
		hlog.CtxErrorf(s.ctx, "list videos failed, filter: %+v, err: %v", filter, err)
		return nil, store.Translate(err, "videos")
	}
	return videos, nil
}

// GetVideo 每次读取详情播放量 +1
func (s *VideoService) GetVideo(id string) (*model.Video, error) {
	video, err := s.store.IncrVisitCount(s.ctx, id)
	if err != nil {
		return nil, store.Translate(err, "video")
	}
	return video, nil
}

func (s *VideoService) CreateVideo(caller string, req *CreateVideoRequest) (*model.Video, error) {
	title := strings.TrimSpace(req.Title)
	videoUrl := strings.TrimSpace(req.VideoUrl)
	if title == "" || videoUrl == "" {
		return nil, errno.ParamErr.WithMessage("title and videoUrl are required")
	}
	if req.Duration < 0 {
		return nil, errno.ParamErr.WithMessage("duration must not be negative")
	}

	now := time.Now()
	video := &model.Video{
		Id:           uuid.New().String(),
		Title:        title,
		Description:  req.Description,
		VideoUrl:     videoUrl,
		ThumbnailUrl: req.ThumbnailUrl,
		Duration:     req.Duration,
		Category:     strings.TrimSpace(req.Category),
		Tags:         req.Tags,
		Uploader:     caller,
		ChannelId:    req.ChannelId,
		Likes:        model.NewIDSet(),
		Dislikes:     model.NewIDSet(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if video.Tags == nil {
		video.Tags = []string{}
	}

	if req.ChannelId == "" {
		if err := s.store.CreateVideo(s.ctx, video); err != nil {
			return nil, store.Translate(err, "video")
		}
		return video, nil
	}

	unlock, err := s.locker.Lock(s.ctx, lock.Key("channel", req.ChannelId))
	if err != nil {
		return nil, errno.WrapStoreErr(err, "lock channel")
	}
	defer unlock()

	channel, err := s.store.FindChannel(s.ctx, req.ChannelId)
	if err != nil {
		return nil, store.Translate(err, "channel")
	}
	if channel.Owner != caller {
		return nil, errno.ForbiddenErr.WithMessage("only the channel owner can publish to it")
	}

	if err := s.store.CreateVideo(s.ctx, video); err != nil {
		return nil, store.Translate(err, "video")
	}
	channel.Videos = append(channel.Videos, video.Id)
	channel.UpdatedAt = now
	if err := s.store.SaveChannel(s.ctx, channel); err != nil {
		hlog.CtxErrorf(s.ctx, "append video %s to channel %s failed: %v", video.Id, channel.Id, err)
		if derr := s.store.DeleteVideo(s.ctx, video.Id); derr != nil {
			hlog.CtxErrorf(s.ctx, "rollback video %s failed: %v", video.Id, derr)
		}
		return nil, store.Translate(err, "channel")
	}
	return video, nil
}

// DeleteVideo 只有上传者可以删除，同时清理频道视频列表和评论
func (s *VideoService) DeleteVideo(caller, id string) error {
	video, err := s.store.FindVideo(s.ctx, id)
	if err != nil {
		return store.Translate(err, "video")
	}
	if video.Uploader != caller {
		return errno.ForbiddenErr.WithMessage("only the uploader can delete this video")
	}
	if err := s.store.DeleteVideo(s.ctx, id); err != nil {
		return store.Translate(err, "video")
	}

	if video.ChannelId != "" {
		s.detachFromChannel(video.ChannelId, id)
	}
	if n, err := s.store.DeleteCommentsByVideo(s.ctx, id); err != nil {
		hlog.CtxErrorf(s.ctx, "delete comments of video %s failed: %v", id, err)
	} else if n > 0 {
		hlog.CtxInfof(s.ctx, "deleted %d comments of video %s", n, id)
	}
	return nil
}

func (s *VideoService) detachFromChannel(channelId, videoId string) {
	unlock, err := s.locker.Lock(s.ctx, lock.Key("channel", channelId))
	if err != nil {
		hlog.CtxErrorf(s.ctx, "lock channel %s failed: %v", channelId, err)
		return
	}
	defer unlock()

	channel, err := s.store.FindChannel(s.ctx, channelId)
	if err != nil {
		hlog.CtxWarnf(s.ctx, "load channel %s of video %s failed: %v", channelId, videoId, err)
		return
	}
	kept := channel.Videos[:0]
	for _, v := range channel.Videos {
		if v != videoId {
			kept = append(kept, v)
		}
	}
	channel.Videos = kept
	channel.UpdatedAt = time.Now()
	if err := s.store.SaveChannel(s.ctx, channel); err != nil {
		hlog.CtxErrorf(s.ctx, "remove video %s from channel %s failed: %v", videoId, channelId, err)
	}
}
