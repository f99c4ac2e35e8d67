package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"testing"
	"time"

	"VidHub.com/pkg/cache"
	"VidHub.com/pkg/errno"
	"VidHub.com/pkg/jwt"
	"VidHub.com/pkg/lock"
	"VidHub.com/pkg/middleware"
	"VidHub.com/pkg/mq"
	"VidHub.com/pkg/store/badger"
	"github.com/alicebob/miniredis/v2"
	"github.com/cloudwego/hertz/pkg/common/config"
	"github.com/cloudwego/hertz/pkg/common/ut"
	"github.com/cloudwego/hertz/pkg/route"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Code    int64           `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type client struct {
	t      *testing.T
	engine *route.Engine
	token  string
}

func (cl *client) do(method, path string, body interface{}) (int, envelope) {
	var b *ut.Body
	var headers []ut.Header
	if body != nil {
		headers = append(headers, ut.Header{Key: "Content-Type", Value: "application/json"})
		data, err := json.Marshal(body)
		require.NoError(cl.t, err)
		b = &ut.Body{Body: bytes.NewReader(data), Len: len(data)}
	}
	if cl.token != "" {
		headers = append(headers, ut.Header{Key: "Authorization", Value: "Bearer " + cl.token})
	}
	resp := ut.PerformRequest(cl.engine, method, path, b, headers...).Result()
	var env envelope
	require.NoError(cl.t, json.Unmarshal(resp.Body(), &env), string(resp.Body()))
	return resp.StatusCode(), env
}

func (cl *client) as(token string) *client {
	return &client{t: cl.t, engine: cl.engine, token: token}
}

func decode(t *testing.T, env envelope, v interface{}) {
	require.NoError(t, json.Unmarshal(env.Data, v))
}

var sentinelOnce sync.Once

// newTestClient blacklist 为 nil 时登出只在客户端生效
func newTestClient(t *testing.T, blacklist jwt.Blacklist) *client {
	sentinelOnce.Do(func() {
		t.Setenv("SENTINEL_LOG_DIR", t.TempDir())
		require.NoError(t, middleware.InitSentinel(10000))
	})

	st, err := badger.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close(context.Background()) })

	r := route.NewEngine(config.NewOptions([]config.Option{}))
	require.NoError(t, Register(r, &Deps{
		Store:     st,
		Locker:    lock.NewLocalLocker(),
		Publisher: mq.NopPublisher{},
		Blacklist: blacklist,
		Jwt:       jwt.Config{Secret: "test", Timeout: time.Hour, MaxRefresh: time.Hour},
	}))
	return &client{t: t, engine: r}
}

func (cl *client) signup(username string) string {
	status, _ := cl.do(http.MethodPost, "/auth/register", map[string]string{
		"username": username, "email": username + "@example.com", "password": "secret1",
	})
	require.Equal(cl.t, http.StatusOK, status)

	status, env := cl.do(http.MethodPost, "/auth/login", map[string]string{"username": username, "password": "secret1"})
	require.Equal(cl.t, http.StatusOK, status)
	var tok struct {
		Token string `json:"token"`
	}
	decode(cl.t, env, &tok)
	return tok.Token
}

func TestEngagementFlow(t *testing.T) {
	anon := newTestClient(t, nil)
	alice := anon.as(anon.signup("alice"))
	bob := anon.as(anon.signup("bob"))

	status, env := anon.do(http.MethodPost, "/videos", map[string]string{"title": "x", "videoUrl": "y"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, int64(errno.AuthorizationFailedCode), env.Code)

	status, env = bob.do(http.MethodPost, "/channels", map[string]string{"name": "Bob's kitchen"})
	require.Equal(t, http.StatusOK, status)
	var channel struct {
		Id    string `json:"id"`
		Owner struct {
			Username string `json:"username"`
		} `json:"owner"`
	}
	decode(t, env, &channel)
	assert.Equal(t, "bob", channel.Owner.Username)

	status, env = bob.do(http.MethodPost, "/videos", map[string]string{
		"title": "Pasta", "videoUrl": "http://cdn/pasta.mp4", "category": "Food", "channelId": channel.Id,
	})
	require.Equal(t, http.StatusOK, status)
	var video struct {
		Id       string `json:"id"`
		Views    int64  `json:"views"`
		Uploader struct {
			Id       string `json:"id"`
			Username string `json:"username"`
		} `json:"uploader"`
	}
	decode(t, env, &video)
	assert.Equal(t, "bob", video.Uploader.Username)

	t.Run("like then dislike", func(t *testing.T) {
		var counts struct {
			Likes    int `json:"likes"`
			Dislikes int `json:"dislikes"`
		}
		_, env := alice.do(http.MethodPost, "/videos/"+video.Id+"/like", nil)
		decode(t, env, &counts)
		assert.Equal(t, 1, counts.Likes)

		_, env = alice.do(http.MethodPost, "/videos/"+video.Id+"/dislike", nil)
		decode(t, env, &counts)
		assert.Equal(t, 0, counts.Likes)
		assert.Equal(t, 1, counts.Dislikes)
	})

	t.Run("views grow with every read", func(t *testing.T) {
		for i := 1; i <= 2; i++ {
			status, env := anon.do(http.MethodGet, "/videos/"+video.Id, nil)
			require.Equal(t, http.StatusOK, status)
			decode(t, env, &video)
			assert.Equal(t, int64(i), video.Views)
			assert.Equal(t, "bob", video.Uploader.Username)
		}
		status, _ := anon.do(http.MethodGet, "/videos/missing", nil)
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("list filters", func(t *testing.T) {
		_, env := anon.do(http.MethodGet, "/videos?category=Food&search=PAS", nil)
		var videos []struct {
			Title    string `json:"title"`
			Uploader struct {
				Username string `json:"username"`
			} `json:"uploader"`
		}
		decode(t, env, &videos)
		require.Len(t, videos, 1)
		assert.Equal(t, "bob", videos[0].Uploader.Username)

		_, env = anon.do(http.MethodGet, "/videos?category=Sports", nil)
		decode(t, env, &videos)
		assert.Empty(t, videos)
	})

	t.Run("channel lists its videos", func(t *testing.T) {
		status, env := anon.do(http.MethodGet, "/channels/"+channel.Id, nil)
		require.Equal(t, http.StatusOK, status)
		var got struct {
			Owner struct {
				Username string `json:"username"`
			} `json:"owner"`
			Videos []struct {
				Id    string `json:"id"`
				Title string `json:"title"`
			} `json:"videos"`
		}
		decode(t, env, &got)
		assert.Equal(t, "bob", got.Owner.Username)
		require.Len(t, got.Videos, 1)
		assert.Equal(t, video.Id, got.Videos[0].Id)
		assert.Equal(t, "Pasta", got.Videos[0].Title)
	})

	t.Run("subscribe", func(t *testing.T) {
		var state struct {
			Subscribed      bool `json:"subscribed"`
			SubscriberCount int  `json:"subscriberCount"`
		}
		_, env := alice.do(http.MethodPost, "/channels/"+channel.Id+"/subscribe", nil)
		decode(t, env, &state)
		assert.True(t, state.Subscribed)
		assert.Equal(t, 1, state.SubscriberCount)

		_, env = alice.do(http.MethodGet, "/users/me", nil)
		var me struct {
			SubscribedChannels []string `json:"subscribedChannels"`
		}
		decode(t, env, &me)
		assert.Equal(t, []string{channel.Id}, me.SubscribedChannels)
	})

	t.Run("comments", func(t *testing.T) {
		status, env := alice.do(http.MethodPost, "/comments", map[string]string{"videoId": video.Id, "content": "yum"})
		require.Equal(t, http.StatusOK, status)
		type author struct {
			Username string `json:"username"`
		}
		var comment struct {
			Id      string `json:"id"`
			Author  author `json:"author"`
			Replies []struct {
				Content string `json:"content"`
				Author  author `json:"author"`
			} `json:"replies"`
		}
		decode(t, env, &comment)
		assert.Equal(t, "alice", comment.Author.Username)

		status, env = bob.do(http.MethodPost, "/comments/"+comment.Id+"/reply", map[string]string{"content": "   "})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, int64(errno.ParamErrCode), env.Code)

		_, env = bob.do(http.MethodPost, "/comments/"+comment.Id+"/reply", map[string]string{"content": "thanks"})
		decode(t, env, &comment)
		require.Len(t, comment.Replies, 1)
		assert.Equal(t, "thanks", comment.Replies[0].Content)
		assert.Equal(t, "bob", comment.Replies[0].Author.Username)

		_, env = anon.do(http.MethodGet, "/comments/video/"+video.Id, nil)
		var listed []struct {
			Author  author `json:"author"`
			Replies []struct {
				Author author `json:"author"`
			} `json:"replies"`
		}
		decode(t, env, &listed)
		require.Len(t, listed, 1)
		assert.Equal(t, "alice", listed[0].Author.Username)
		require.Len(t, listed[0].Replies, 1)
		assert.Equal(t, "bob", listed[0].Replies[0].Author.Username)

		status, _ = bob.do(http.MethodPut, "/comments/"+comment.Id, map[string]string{"content": "edited"})
		assert.Equal(t, http.StatusForbidden, status)

		var likes struct {
			Likes int `json:"likes"`
		}
		_, env = bob.do(http.MethodPost, "/comments/"+comment.Id+"/like", nil)
		decode(t, env, &likes)
		assert.Equal(t, 1, likes.Likes)
	})

	t.Run("refresh token", func(t *testing.T) {
		status, env := alice.do(http.MethodGet, "/auth/refresh_token", nil)
		require.Equal(t, http.StatusOK, status)
		var tok struct {
			Token string `json:"token"`
		}
		decode(t, env, &tok)
		require.NotEmpty(t, tok.Token)

		status, _ = anon.as(tok.Token).do(http.MethodGet, "/users/me", nil)
		assert.Equal(t, http.StatusOK, status)
	})

	t.Run("logout without blacklist", func(t *testing.T) {
		status, _ := alice.do(http.MethodPost, "/auth/logout", nil)
		require.Equal(t, http.StatusOK, status)
		// 未配置黑名单时 token 在过期前仍然有效
		status, _ = alice.do(http.MethodGet, "/users/me", nil)
		assert.Equal(t, http.StatusOK, status)
	})
}

func TestLogoutRevokesRefresh(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	anon := newTestClient(t, cache.NewTokenBlacklist(rdb))
	alice := anon.as(anon.signup("alice"))

	status, _ := alice.do(http.MethodPost, "/auth/logout", nil)
	require.Equal(t, http.StatusOK, status)

	status, env := alice.do(http.MethodGet, "/users/me", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, int64(errno.AuthorizationFailedCode), env.Code)

	status, env = alice.do(http.MethodGet, "/auth/refresh_token", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, int64(errno.AuthorizationFailedCode), env.Code)
}
