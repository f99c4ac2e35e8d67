package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"VidHub.com/cmd/model"
	"VidHub.com/pkg/engagement"
	"VidHub.com/pkg/errno"
	"VidHub.com/pkg/lock"
	"VidHub.com/pkg/mq"
	"VidHub.com/pkg/store/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store    *badger.Store
	locker   *lock.LocalLocker
	recorder *mq.Recorder
}

func newFixture(t *testing.T) *fixture {
	st, err := badger.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close(context.Background()) })
	return &fixture{store: st, locker: lock.NewLocalLocker(), recorder: &mq.Recorder{}}
}

func (f *fixture) service() *VideoService {
	return NewVideoService(context.Background(), f.store, f.locker, f.recorder)
}

func TestCreateAndGetVideo(t *testing.T) {
	f := newFixture(t)
	s := f.service()

	_, err := s.CreateVideo("u1", &CreateVideoRequest{Title: " ", VideoUrl: "http://v"})
	assert.ErrorIs(t, err, errno.ParamErr)

	v, err := s.CreateVideo("u1", &CreateVideoRequest{Title: "Go", VideoUrl: "http://v", Category: "Education"})
	require.NoError(t, err)
	assert.Equal(t, "u1", v.Uploader)

	for i := 1; i <= 3; i++ {
		got, err := s.GetVideo(v.Id)
		require.NoError(t, err)
		assert.Equal(t, int64(i), got.Views)
	}

	_, err = s.GetVideo("missing")
	assert.ErrorIs(t, err, errno.NotFoundErr)
}

func TestListVideos(t *testing.T) {
	f := newFixture(t)
	s := f.service()

	for _, title := range []string{"first", "second"} {
		_, err := s.CreateVideo("u1", &CreateVideoRequest{Title: title, VideoUrl: "http://v", Category: "Music"})
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond)
	}

	videos, err := s.ListVideos(model.VideoFilter{Category: "Music"})
	require.NoError(t, err)
	require.Len(t, videos, 2)
	assert.Equal(t, "second", videos[0].Title)

	none, err := s.ListVideos(model.VideoFilter{Search: "nothing like this"})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestChannelVideos(t *testing.T) {
	f := newFixture(t)
	s := f.service()
	ctx := context.Background()
	require.NoError(t, f.store.CreateChannel(ctx, &model.Channel{Id: "c1", Owner: "u1", Videos: []string{}}))

	_, err := s.CreateVideo("u2", &CreateVideoRequest{Title: "Go", VideoUrl: "http://v", ChannelId: "c1"})
	assert.ErrorIs(t, err, errno.ForbiddenErr)

	_, err = s.CreateVideo("u1", &CreateVideoRequest{Title: "Go", VideoUrl: "http://v", ChannelId: "missing"})
	assert.ErrorIs(t, err, errno.NotFoundErr)

	v, err := s.CreateVideo("u1", &CreateVideoRequest{Title: "Go", VideoUrl: "http://v", ChannelId: "c1"})
	require.NoError(t, err)
	c, err := f.store.FindChannel(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, []string{v.Id}, c.Videos)

	require.NoError(t, f.store.CreateComment(ctx, &model.Comment{Id: "m1", VideoId: v.Id, Content: "hi"}))

	assert.ErrorIs(t, s.DeleteVideo("u2", v.Id), errno.ForbiddenErr)
	require.NoError(t, s.DeleteVideo("u1", v.Id))

	c, err = f.store.FindChannel(ctx, "c1")
	require.NoError(t, err)
	assert.Empty(t, c.Videos)
	comments, err := f.store.ListCommentsByVideo(ctx, v.Id)
	require.NoError(t, err)
	assert.Empty(t, comments)
	assert.ErrorIs(t, s.DeleteVideo("u1", v.Id), errno.NotFoundErr)
}

// alice 点赞 -> 点踩 -> 再次点踩，最终回到中立
func TestReactionScenario(t *testing.T) {
	f := newFixture(t)
	s := f.service()
	v, err := s.CreateVideo("bob", &CreateVideoRequest{Title: "Go", VideoUrl: "http://v"})
	require.NoError(t, err)

	counts, err := s.ToggleLike("alice", v.Id)
	require.NoError(t, err)
	assert.Equal(t, engagement.ReactionCounts{Likes: 1, Dislikes: 0}, counts)

	counts, err = s.ToggleDislike("alice", v.Id)
	require.NoError(t, err)
	assert.Equal(t, engagement.ReactionCounts{Likes: 0, Dislikes: 1}, counts)

	counts, err = s.ToggleDislike("alice", v.Id)
	require.NoError(t, err)
	assert.Equal(t, engagement.ReactionCounts{}, counts)

	events := f.recorder.Events()
	require.Len(t, events, 3)
	assert.Equal(t, mq.EventVideoLike, events[0].EventType)
	assert.Equal(t, mq.ActionAdd, events[0].Action)
	assert.Equal(t, mq.EventVideoDislike, events[1].EventType)
	assert.Equal(t, mq.ActionAdd, events[1].Action)
	assert.Equal(t, mq.ActionRemove, events[2].Action)

	_, err = s.ToggleLike("alice", "missing")
	assert.ErrorIs(t, err, errno.NotFoundErr)
}

func TestConcurrentReactionsAndViews(t *testing.T) {
	f := newFixture(t)
	s := f.service()
	v, err := s.CreateVideo("bob", &CreateVideoRequest{Title: "Go", VideoUrl: "http://v"})
	require.NoError(t, err)

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_, err := NewVideoService(context.Background(), f.store, f.locker, f.recorder).ToggleLike(fmt.Sprintf("u%d", i), v.Id)
			assert.NoError(t, err)
		}(i)
		go func() {
			defer wg.Done()
			_, err := NewVideoService(context.Background(), f.store, f.locker, f.recorder).GetVideo(v.Id)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := f.store.FindVideo(context.Background(), v.Id)
	require.NoError(t, err)
	assert.Equal(t, n, got.Likes.Len())
	assert.Equal(t, int64(n), got.Views)
}
