package router

import (
	channel "VidHub.com/cmd/api/handlers/channel"
	interaction "VidHub.com/cmd/api/handlers/interaction"
	user "VidHub.com/cmd/api/handlers/user"
	video "VidHub.com/cmd/api/handlers/video"
	"VidHub.com/cmd/api/router/authfunc"
	userservice "VidHub.com/cmd/user/service"
	"VidHub.com/pkg/jwt"
	"VidHub.com/pkg/lock"
	"VidHub.com/pkg/middleware"
	"VidHub.com/pkg/mq"
	"VidHub.com/pkg/store"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/route"
)

type Deps struct {
	Store     store.Store
	Locker    lock.Locker
	Publisher mq.Publisher
	// Blacklist 为 nil 时登出只在客户端生效
	Blacklist jwt.Blacklist
	Jwt       jwt.Config
}

func authed(auth []app.HandlerFunc, handlers ...app.HandlerFunc) []app.HandlerFunc {
	out := make([]app.HandlerFunc, 0, len(auth)+len(handlers))
	return append(append(out, auth...), handlers...)
}

func Register(r *route.Engine, d *Deps) error {
	mw, err := jwt.New(d.Jwt, userservice.Authenticator{Store: d.Store}, d.Blacklist)
	if err != nil {
		return err
	}
	auth := authfunc.Auth(mw.HertzJWTMiddleware)

	uh := &user.Handler{Store: d.Store}
	vh := &video.Handler{Store: d.Store, Locker: d.Locker, Publisher: d.Publisher}
	ch := &channel.Handler{Store: d.Store, Locker: d.Locker, Publisher: d.Publisher}
	ih := &interaction.Handler{Store: d.Store, Locker: d.Locker, Publisher: d.Publisher}

	a := r.Group("/auth")
	a.POST("/register", uh.Register)
	a.POST("/login", mw.LoginHandler)
	a.GET("/refresh_token", mw.RefreshHandler)
	a.POST("/logout", authed(auth, mw.LogoutHandler)...)

	u := r.Group("/users", auth...)
	u.GET("/me", uh.GetUserInfo)

	v := r.Group("/videos")
	v.GET("", vh.ListVideos)
	v.GET("/:id", vh.GetVideo)
	v.POST("", authed(auth, vh.CreateVideo)...)
	v.DELETE("/:id", authed(auth, vh.DeleteVideo)...)
	v.POST("/:id/like", authed(auth, middleware.Sentinel(middleware.ResourceVideoLike), vh.LikeVideo)...)
	v.POST("/:id/dislike", authed(auth, middleware.Sentinel(middleware.ResourceVideoDislike), vh.DislikeVideo)...)

	c := r.Group("/channels")
	c.POST("", authed(auth, ch.CreateChannel)...)
	c.GET("/user/me", authed(auth, ch.MyChannels)...)
	c.GET("/:id", ch.GetChannel)
	c.DELETE("/:id", authed(auth, ch.DeleteChannel)...)
	c.POST("/:id/subscribe", authed(auth, middleware.Sentinel(middleware.ResourceChannelSubscribe), ch.Subscribe)...)

	m := r.Group("/comments")
	m.GET("/video/:videoId", ih.ListComments)
	m.POST("", authed(auth, ih.CreateComment)...)
	m.PUT("/:id", authed(auth, ih.UpdateComment)...)
	m.DELETE("/:id", authed(auth, ih.DeleteComment)...)
	m.POST("/:id/like", authed(auth, middleware.Sentinel(middleware.ResourceCommentLike), ih.LikeComment)...)
	m.POST("/:id/reply", authed(auth, middleware.Sentinel(middleware.ResourceCommentReply), ih.ReplyComment)...)
	return nil
}
