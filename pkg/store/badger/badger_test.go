package badger

import (
	"context"
	"sync"
	"testing"
	"time"

	"VidHub.com/cmd/model"
	"VidHub.com/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	s, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

func TestUsers(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := &model.User{Id: "u1", Username: "alice", PasswordHash: "hash", SubscribedChannels: model.NewIDSet("c1")}
	require.NoError(t, s.CreateUser(ctx, alice))

	t.Run("username is unique", func(t *testing.T) {
		err := s.CreateUser(ctx, &model.User{Id: "u2", Username: "alice"})
		assert.ErrorIs(t, err, store.ErrDuplicate)
		_, err = s.FindUser(ctx, "u2")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("find by username keeps password hash", func(t *testing.T) {
		u, err := s.FindUserByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, "u1", u.Id)
		assert.Equal(t, "hash", u.PasswordHash)
		assert.True(t, u.SubscribedChannels.Has("c1"))

		_, err = s.FindUserByUsername(ctx, "nobody")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("find users by ids", func(t *testing.T) {
		require.NoError(t, s.CreateUser(ctx, &model.User{Id: "u3", Username: "carol"}))
		users, err := s.FindUsers(ctx, []string{"u3", "missing", "u1", "u3"})
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, "carol", users[0].Username)
		assert.Equal(t, "alice", users[1].Username)

		users, err = s.FindUsers(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, users)
	})

	t.Run("save missing user", func(t *testing.T) {
		err := s.SaveUser(ctx, &model.User{Id: "ghost"})
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestListVideos(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, v := range []*model.Video{
		{Id: "v1", Title: "Learning Go", Category: "Education"},
		{Id: "v2", Title: "Cats", Description: "funny GOATS", Category: "Comedy"},
		{Id: "v3", Title: "Jazz night", Category: "Music"},
	} {
		v.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, s.CreateVideo(ctx, v))
	}

	ids := func(videos []*model.Video) []string {
		out := make([]string, 0, len(videos))
		for _, v := range videos {
			out = append(out, v.Id)
		}
		return out
	}

	all, err := s.ListVideos(ctx, model.VideoFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"v3", "v2", "v1"}, ids(all))

	bySearch, err := s.ListVideos(ctx, model.VideoFilter{Search: "go"})
	require.NoError(t, err)
	assert.Equal(t, []string{"v2", "v1"}, ids(bySearch))

	both, err := s.ListVideos(ctx, model.VideoFilter{Category: "Education", Search: "GO"})
	require.NoError(t, err)
	assert.Equal(t, []string{"v1"}, ids(both))

	none, err := s.ListVideos(ctx, model.VideoFilter{Category: "education"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestViews(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.CreateVideo(ctx, &model.Video{Id: "v1", Title: "Go"}))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.IncrVisitCount(ctx, "v1")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	v, err := s.FindVideo(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, int64(20), v.Views)

	t.Run("stale save keeps views", func(t *testing.T) {
		v.Views = 0
		v.Likes = model.NewIDSet("u1")
		require.NoError(t, s.SaveVideo(ctx, v))

		back, err := s.FindVideo(ctx, "v1")
		require.NoError(t, err)
		assert.Equal(t, int64(20), back.Views)
		assert.True(t, back.Likes.Has("u1"))
	})

	t.Run("find videos by ids", func(t *testing.T) {
		videos, err := s.FindVideos(ctx, []string{"gone", "v1"})
		require.NoError(t, err)
		require.Len(t, videos, 1)
		assert.Equal(t, "v1", videos[0].Id)
	})

	t.Run("missing video", func(t *testing.T) {
		_, err := s.IncrVisitCount(ctx, "nope")
		assert.ErrorIs(t, err, store.ErrNotFound)
		assert.ErrorIs(t, s.SaveVideo(ctx, &model.Video{Id: "nope"}), store.ErrNotFound)
	})
}

func TestChannelsAndComments(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateChannel(ctx, &model.Channel{Id: "c1", Owner: "u1", CreatedAt: time.Unix(100, 0)}))
	require.NoError(t, s.CreateChannel(ctx, &model.Channel{Id: "c2", Owner: "u1", CreatedAt: time.Unix(200, 0)}))
	require.NoError(t, s.CreateChannel(ctx, &model.Channel{Id: "c3", Owner: "u2"}))

	owned, err := s.FindChannelsByOwner(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, owned, 2)
	assert.Equal(t, "c2", owned[0].Id)

	require.NoError(t, s.DeleteChannel(ctx, "c3"))
	assert.ErrorIs(t, s.DeleteChannel(ctx, "c3"), store.ErrNotFound)

	for _, id := range []string{"m1", "m2"} {
		require.NoError(t, s.CreateComment(ctx, &model.Comment{Id: id, VideoId: "v1", Content: id}))
	}
	require.NoError(t, s.CreateComment(ctx, &model.Comment{Id: "m3", VideoId: "v2"}))
	assert.ErrorIs(t, s.CreateComment(ctx, &model.Comment{Id: "m3"}), store.ErrDuplicate)

	n, err := s.DeleteCommentsByVideo(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	left, err := s.ListCommentsByVideo(ctx, "v1")
	require.NoError(t, err)
	assert.Empty(t, left)

	other, err := s.ListCommentsByVideo(ctx, "v2")
	require.NoError(t, err)
	assert.Len(t, other, 1)
}
