package engagement

import (
	"errors"
	"testing"
	"time"

	"VidHub.com/cmd/model"
	"VidHub.com/pkg/errno"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVideo(likes, dislikes []string) *model.Video {
	return &model.Video{Id: "v1", Likes: model.NewIDSet(likes...), Dislikes: model.NewIDSet(dislikes...)}
}

func TestToggleLikeRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		likes    []string
		dislikes []string
	}{
		{"neutral", nil, nil},
		{"already liked", []string{"u1", "u2"}, nil},
		{"others disliked", []string{"u2"}, []string{"u3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newVideo(tt.likes, tt.dislikes)
			likes, dislikes := v.Likes.Slice(), v.Dislikes.Slice()

			ToggleLike(v, "u1")
			ToggleLike(v, "u1")

			assert.Equal(t, likes, v.Likes.Slice())
			assert.Equal(t, dislikes, v.Dislikes.Slice())
		})
	}
}

func TestLikeThenDislikeIsExclusive(t *testing.T) {
	v := newVideo(nil, nil)
	ToggleLike(v, "u1")
	got := ToggleDislike(v, "u1")

	assert.False(t, v.Likes.Has("u1"))
	assert.True(t, v.Dislikes.Has("u1"))
	assert.Equal(t, ReactionCounts{Likes: 0, Dislikes: 1}, got)
}

func TestAliceScenario(t *testing.T) {
	v := newVideo(nil, nil)

	got := ToggleLike(v, "alice")
	assert.Equal(t, ReactionCounts{Likes: 1, Dislikes: 0}, got)
	assert.Equal(t, []string{"alice"}, v.Likes.Slice())
	assert.Equal(t, Liked, VideoState(v, "alice"))

	got = ToggleDislike(v, "alice")
	assert.Equal(t, ReactionCounts{Likes: 0, Dislikes: 1}, got)
	assert.Equal(t, []string{"alice"}, v.Dislikes.Slice())
	assert.Equal(t, Disliked, VideoState(v, "alice"))

	got = ToggleDislike(v, "alice")
	assert.Equal(t, ReactionCounts{}, got)
	assert.Empty(t, v.Likes.Slice())
	assert.Empty(t, v.Dislikes.Slice())
	assert.Equal(t, Neutral, VideoState(v, "alice"))
}

func TestReactionStateMachine(t *testing.T) {
	type step struct {
		like bool
		want State
	}
	tests := []struct {
		name  string
		steps []step
	}{
		{"like self toggles to neutral", []step{{true, Liked}, {true, Neutral}}},
		{"dislike self toggles to neutral", []step{{false, Disliked}, {false, Neutral}}},
		{"cross transitions skip neutral", []step{{true, Liked}, {false, Disliked}, {true, Liked}}},
		{"re-enterable", []step{{true, Liked}, {true, Neutral}, {true, Liked}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newVideo([]string{"other"}, []string{"someone"})
			for i, s := range tt.steps {
				if s.like {
					ToggleLike(v, "u1")
				} else {
					ToggleDislike(v, "u1")
				}
				assert.Equal(t, s.want, VideoState(v, "u1"), "step %d", i)
				for id := range v.Likes {
					assert.False(t, v.Dislikes.Has(id), "%s in both sets", id)
				}
			}
			assert.True(t, v.Likes.Has("other"))
			assert.True(t, v.Dislikes.Has("someone"))
		})
	}
}

func TestToggleSubscription(t *testing.T) {
	c := &model.Channel{Id: "c1"}
	u := &model.User{Id: "bob"}

	got, err := ToggleSubscription(c, u, "bob")
	require.NoError(t, err)
	assert.Equal(t, SubscriptionState{Subscribed: true, SubscriberCount: 1}, got)
	assert.Equal(t, c.Subscribers.Has("bob"), u.SubscribedChannels.Has("c1"))

	got, err = ToggleSubscription(c, u, "bob")
	require.NoError(t, err)
	assert.Equal(t, SubscriptionState{Subscribed: false, SubscriberCount: 0}, got)
	assert.Equal(t, c.Subscribers.Has("bob"), u.SubscribedChannels.Has("c1"))
}

func TestToggleSubscriptionRepairsOneSidedState(t *testing.T) {
	c := &model.Channel{Id: "c1", Subscribers: model.NewIDSet("bob", "carol")}
	u := &model.User{Id: "bob"}

	got, err := ToggleSubscription(c, u, "bob")
	require.NoError(t, err)
	assert.False(t, got.Subscribed)
	assert.Equal(t, 1, got.SubscriberCount)
	assert.False(t, u.SubscribedChannels.Has("c1"))
}

func TestToggleSubscriptionRejectsForeignUser(t *testing.T) {
	c := &model.Channel{Id: "c1"}
	u := &model.User{Id: "alice"}

	_, err := ToggleSubscription(c, u, "bob")
	assert.True(t, errors.Is(err, errno.ParamErr))
	assert.Zero(t, c.Subscribers.Len())
	assert.Zero(t, u.SubscribedChannels.Len())
}

func TestToggleCommentLike(t *testing.T) {
	c := &model.Comment{Id: "cm1", Likes: model.NewIDSet("x")}

	assert.Equal(t, CommentLikeCount{Likes: 2}, ToggleCommentLike(c, "u1"))
	assert.Equal(t, CommentLikeCount{Likes: 1}, ToggleCommentLike(c, "u1"))
	assert.True(t, c.Likes.Has("x"))
}

func TestAddReply(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	nowFunc = func() time.Time { return fixed }
	defer func() { nowFunc = time.Now }()

	c := &model.Comment{Id: "cm1", Author: "alice"}

	r1, err := AddReply(c, "bob", "  first  ")
	require.NoError(t, err)
	assert.Equal(t, "first", r1.Content)
	assert.Equal(t, "bob", r1.Author)
	assert.Equal(t, fixed, r1.CreatedAt)
	assert.NotEmpty(t, r1.Id)

	_, err = AddReply(c, "carol", "second")
	require.NoError(t, err)
	require.Len(t, c.Replies, 2)
	assert.Equal(t, "first", c.Replies[0].Content)
	assert.Equal(t, "second", c.Replies[1].Content)
	assert.Equal(t, "alice", c.Author)
}

func TestAddReplyRejectsBlank(t *testing.T) {
	for _, content := range []string{"", "   ", "\n\t"} {
		c := &model.Comment{Id: "cm1", Replies: []model.Reply{{Content: "keep"}}}
		_, err := AddReply(c, "bob", content)
		assert.True(t, errors.Is(err, errno.ParamErr), "content %q", content)
		assert.Len(t, c.Replies, 1)
	}
}

func TestRecordView(t *testing.T) {
	v := &model.Video{Id: "v1", Views: 7}
	const n = 25
	for i := 0; i < n; i++ {
		RecordView(v)
	}
	assert.Equal(t, int64(7+n), v.Views)
}
