// Package jwt 基于 hertz-contrib/jwt 的登录态：登录签发、刷新、登出拉黑。
package jwt

import (
	"context"
	"net/http"
	"time"

	"VidHub.com/cmd/model"
	"VidHub.com/pkg/errno"
	"VidHub.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/hertz-contrib/jwt"
)

const IdentityKey = "user_id"

// Authenticator 校验用户名密码
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*model.User, error)
}

// Blacklist 登出 token 黑名单，nil 表示不支持服务端登出
type Blacklist interface {
	Add(ctx context.Context, token string, ttl time.Duration) error
	Contains(ctx context.Context, token string) (bool, error)
}

type Config struct {
	Secret     string
	Timeout    time.Duration
	MaxRefresh time.Duration
}

type LoginParam struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type tokenData struct {
	Token  string `json:"token"`
	Expire string `json:"expire"`
}

func sendToken(c *app.RequestContext, token string, expire time.Time) {
	utils.SendResponse(c, nil, tokenData{Token: token, Expire: expire.Format(time.RFC3339)})
}

// Middleware 在 hertz-contrib/jwt 的基础上，刷新 token 前也检查黑名单
type Middleware struct {
	*jwt.HertzJWTMiddleware
	blacklist Blacklist
}

// New 创建中间件。登录失败、token 无效或已登出统一返回 401
func New(cfg Config, auth Authenticator, blacklist Blacklist) (*Middleware, error) {
	mw, err := jwt.New(&jwt.HertzJWTMiddleware{
		Realm:         "vidhub",
		Key:           []byte(cfg.Secret),
		Timeout:       cfg.Timeout,
		MaxRefresh:    cfg.MaxRefresh,
		IdentityKey:   IdentityKey,
		TokenLookup:   "header: Authorization, query: token",
		TokenHeadName: "Bearer",
		TimeFunc:      time.Now,
		PayloadFunc: func(data interface{}) jwt.MapClaims {
			if u, ok := data.(*model.User); ok {
				return jwt.MapClaims{
					IdentityKey: u.Id,
					"username":  u.Username,
				}
			}
			return jwt.MapClaims{}
		},
		IdentityHandler: func(ctx context.Context, c *app.RequestContext) interface{} {
			claims := jwt.ExtractClaims(ctx, c)
			id, _ := claims[IdentityKey].(string)
			return id
		},
		Authenticator: func(ctx context.Context, c *app.RequestContext) (interface{}, error) {
			var req LoginParam
			if err := c.Bind(&req); err != nil {
				return nil, errno.ParamErr.WithMessage(err.Error())
			}
			return auth.Login(ctx, req.Username, req.Password)
		},
		Authorizator: func(data interface{}, ctx context.Context, c *app.RequestContext) bool {
			if id, _ := data.(string); id == "" {
				return false
			}
			if blacklist == nil {
				return true
			}
			revoked, err := blacklist.Contains(ctx, jwt.GetToken(ctx, c))
			if err != nil {
				hlog.CtxErrorf(ctx, "check token blacklist failed: %v", err)
				return false
			}
			return !revoked
		},
		HTTPStatusMessageFunc: func(e error, ctx context.Context, c *app.RequestContext) string {
			return errno.ConvertErr(e).ErrMsg
		},
		Unauthorized: func(ctx context.Context, c *app.RequestContext, code int, message string) {
			utils.SendResponse(c, errno.AuthorizationFailedErr.WithMessage(message), nil)
		},
		LoginResponse: func(ctx context.Context, c *app.RequestContext, code int, token string, expire time.Time) {
			sendToken(c, token, expire)
		},
		RefreshResponse: func(ctx context.Context, c *app.RequestContext, code int, token string, expire time.Time) {
			sendToken(c, token, expire)
		},
		LogoutResponse: func(ctx context.Context, c *app.RequestContext, code int) {
			if blacklist != nil {
				ttl := time.Until(revokeUntil(jwt.ExtractClaims(ctx, c), cfg.MaxRefresh))
				if err := blacklist.Add(ctx, jwt.GetToken(ctx, c), ttl); err != nil {
					hlog.CtxErrorf(ctx, "blacklist token failed: %v", err)
					utils.SendResponse(c, errno.StoreErr.WithMessage(err.Error()), nil)
					return
				}
			}
			utils.SendResponse(c, nil, nil)
		},
	})
	if err != nil {
		return nil, err
	}
	return &Middleware{HertzJWTMiddleware: mw, blacklist: blacklist}, nil
}

// RefreshHandler 已登出的 token 不能再换取新 token，过期但仍在 MaxRefresh 内的 token 照常刷新
func (m *Middleware) RefreshHandler(ctx context.Context, c *app.RequestContext) {
	if m.blacklist != nil {
		if token, _ := m.ParseToken(ctx, c); token != nil {
			revoked, err := m.blacklist.Contains(ctx, token.Raw)
			if err != nil {
				hlog.CtxErrorf(ctx, "check token blacklist failed: %v", err)
				revoked = true
			}
			if revoked {
				c.Abort()
				m.Unauthorized(ctx, c, http.StatusUnauthorized, "token has been revoked")
				return
			}
		}
	}
	m.HertzJWTMiddleware.RefreshHandler(ctx, c)
}

func unixClaim(claims jwt.MapClaims, name string) time.Time {
	switch v := claims[name].(type) {
	case float64:
		return time.Unix(int64(v), 0)
	case int64:
		return time.Unix(v, 0)
	}
	return time.Time{}
}

// revokeUntil token 能被使用或刷新的最后时刻，黑名单至少保留到这个时间
func revokeUntil(claims jwt.MapClaims, maxRefresh time.Duration) time.Time {
	until := unixClaim(claims, "exp")
	if iat := unixClaim(claims, "orig_iat"); !iat.IsZero() {
		if refresh := iat.Add(maxRefresh); refresh.After(until) {
			until = refresh
		}
	}
	return until
}

// CallerID 鉴权中间件之后可用
func CallerID(c *app.RequestContext) string {
	return c.GetString(IdentityKey)
}
