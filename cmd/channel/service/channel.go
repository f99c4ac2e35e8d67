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

type ChannelService struct {
	ctx       context.Context
	store     store.Store
	locker    lock.Locker
	publisher mq.Publisher
}

func NewChannelService(ctx context.Context, st store.Store, locker lock.Locker, publisher mq.Publisher) *ChannelService {
	return &ChannelService{ctx: ctx, store: st, locker: locker, publisher: publisher}
}

type CreateChannelRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Avatar      string `json:"avatar"`
	Banner      string `json:"banner"`
}

func (s *ChannelService) CreateChannel(caller string, req *CreateChannelRequest) (*model.Channel, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errno.ParamErr.WithMessage("channel name is required")
	}
	now := time.Now()
	channel := &model.Channel{
		Id:          uuid.New().String(),
		Name:        name,
		Description: req.Description,
		Owner:       caller,
		Subscribers: model.NewIDSet(),
		Videos:      []string{},
		Avatar:      req.Avatar,
		Banner:      req.Banner,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.CreateChannel(s.ctx, channel); err != nil {
		return nil, store.Translate(err, "channel")
	}
	hlog.CtxInfof(s.ctx, "channel created: %s by %s", channel.Id, caller)
	return channel, nil
}

func (s *ChannelService) GetChannel(id string) (*model.Channel, error) {
	channel, err := s.store.FindChannel(s.ctx, id)
	if err != nil {
		return nil, store.Translate(err, "channel")
	}
	return channel, nil
}

func (s *ChannelService) ListMyChannels(caller string) ([]*model.Channel, error) {
	channels, err := s.store.FindChannelsByOwner(s.ctx, caller)
	if err != nil {
		return nil, store.Translate(err, "channels")
	}
	return channels, nil
}

// DeleteChannel 只有所有者可以删除；订阅者一侧的清理失败只记录日志
func (s *ChannelService) DeleteChannel(caller, id string) error {
	unlock, err := s.locker.Lock(s.ctx, lock.Key("channel", id))
	if err != nil {
		return errno.WrapStoreErr(err, "lock channel")
	}
	channel, err := s.store.FindChannel(s.ctx, id)
	if err != nil {
		unlock()
		return store.Translate(err, "channel")
	}
	if channel.Owner != caller {
		unlock()
		return errno.ForbiddenErr.WithMessage("only the owner can delete this channel")
	}
	err = s.store.DeleteChannel(s.ctx, id)
	unlock()
	if err != nil {
		return store.Translate(err, "channel")
	}

	for _, userId := range channel.Subscribers.Slice() {
		s.unsubscribeUser(userId, id)
	}
	return nil
}

func (s *ChannelService) unsubscribeUser(userId, channelId string) {
	unlock, err := s.locker.Lock(s.ctx, lock.Key("user", userId))
	if err != nil {
		hlog.CtxErrorf(s.ctx, "lock user %s failed: %v", userId, err)
		return
	}
	defer unlock()

	user, err := s.store.FindUser(s.ctx, userId)
	if err != nil {
		hlog.CtxWarnf(s.ctx, "load subscriber %s of channel %s failed: %v", userId, channelId, err)
		return
	}
	if !user.SubscribedChannels.Remove(channelId) {
		return
	}
	user.UpdatedAt = time.Now()
	if err := s.store.SaveUser(s.ctx, user); err != nil {
		hlog.CtxErrorf(s.ctx, "remove channel %s from user %s failed: %v", channelId, userId, err)
	}
}
