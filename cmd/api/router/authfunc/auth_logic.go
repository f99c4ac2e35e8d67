package authfunc

import (
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/hertz-contrib/jwt"
)

// Auth 需要登录的路由使用，未携带或携带无效 token 返回 401
func Auth(mw *jwt.HertzJWTMiddleware) []app.HandlerFunc {
	return append(make([]app.HandlerFunc, 0),
		mw.MiddlewareFunc(),
	)
}
