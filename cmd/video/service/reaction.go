package service

import (
	"time"

	"VidHub.com/pkg/engagement"
	"VidHub.com/pkg/errno"
	"VidHub.com/pkg/lock"
	"VidHub.com/pkg/mq"
	"VidHub.com/pkg/store"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

func (s *VideoService) ToggleLike(caller, id string) (engagement.ReactionCounts, error) {
	return s.react(caller, id, engagement.Liked)
}

func (s *VideoService) ToggleDislike(caller, id string) (engagement.ReactionCounts, error) {
	return s.react(caller, id, engagement.Disliked)
}

// react 在视频锁内完成 读取-翻转-保存
func (s *VideoService) react(caller, id string, want engagement.State) (engagement.ReactionCounts, error) {
	unlock, err := s.locker.Lock(s.ctx, lock.Key("video", id))
	if err != nil {
		return engagement.ReactionCounts{}, errno.WrapStoreErr(err, "lock video")
	}
	defer unlock()

	video, err := s.store.FindVideo(s.ctx, id)
	if err != nil {
		return engagement.ReactionCounts{}, store.Translate(err, "video")
	}

	var counts engagement.ReactionCounts
	eventType := mq.EventVideoLike
	if want == engagement.Liked {
		counts = engagement.ToggleLike(video, caller)
	} else {
		counts = engagement.ToggleDislike(video, caller)
		eventType = mq.EventVideoDislike
	}
	video.UpdatedAt = time.Now()

	if err := s.store.SaveVideo(s.ctx, video); err != nil {
		hlog.CtxErrorf(s.ctx, "save video %s after %s failed: %v", id, eventType, err)
		return engagement.ReactionCounts{}, store.Translate(err, "video")
	}

	mq.Emit(s.ctx, s.publisher, mq.NewEngagementEvent(eventType, caller, id, engagement.VideoState(video, caller) == want))
	return counts, nil
}

