package service

import (
	"fmt"
	"time"

	"VidHub.com/pkg/engagement"
	"VidHub.com/pkg/errno"
	"VidHub.com/pkg/lock"
	"VidHub.com/pkg/mq"
	"VidHub.com/pkg/store"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// ToggleSubscription 同时锁住频道和用户，先保存频道再保存用户；
// 用户保存失败时把频道的订阅者集合恢复到修改前
func (s *ChannelService) ToggleSubscription(caller, channelId string) (engagement.SubscriptionState, error) {
	unlock, err := s.locker.Lock(s.ctx, lock.Key("channel", channelId), lock.Key("user", caller))
	if err != nil {
		return engagement.SubscriptionState{}, errno.WrapStoreErr(err, "lock subscription")
	}
	defer unlock()

	channel, err := s.store.FindChannel(s.ctx, channelId)
	if err != nil {
		return engagement.SubscriptionState{}, store.Translate(err, "channel")
	}
	user, err := s.store.FindUser(s.ctx, caller)
	if err != nil {
		return engagement.SubscriptionState{}, store.Translate(err, "user")
	}

	previous := channel.Subscribers.Clone()
	state, err := engagement.ToggleSubscription(channel, user, caller)
	if err != nil {
		return engagement.SubscriptionState{}, err
	}
	now := time.Now()
	channel.UpdatedAt = now
	user.UpdatedAt = now

	if err := s.store.SaveChannel(s.ctx, channel); err != nil {
		return engagement.SubscriptionState{}, store.Translate(err, "channel")
	}
	if err := s.store.SaveUser(s.ctx, user); err != nil {
		hlog.CtxErrorf(s.ctx, "save user %s after subscribing channel %s failed: %v", caller, channelId, err)
		channel.Subscribers = previous
		if cerr := s.store.SaveChannel(s.ctx, channel); cerr != nil {
			hlog.CtxErrorf(s.ctx, "restore subscribers of channel %s for user %s failed: %v", channelId, caller, cerr)
			return engagement.SubscriptionState{}, errno.StoreErr.WithMessage(
				fmt.Sprintf("save user: %v; restore channel: %v", err, cerr))
		}
		return engagement.SubscriptionState{}, store.Translate(err, "user")
	}

	mq.Emit(s.ctx, s.publisher, mq.NewEngagementEvent(mq.EventChannelSubscription, caller, channelId, state.Subscribed))
	return state, nil
}
