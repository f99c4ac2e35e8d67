package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"VidHub.com/cmd/model"
	"VidHub.com/pkg/errno"
	"VidHub.com/pkg/store"
	"VidHub.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/google/uuid"
)

const minPasswordLen = 6

type UserService struct {
	ctx   context.Context
	store store.UserStore
}

func NewUserService(ctx context.Context, st store.UserStore) *UserService {
	return &UserService{ctx: ctx, store: st}
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Avatar   string `json:"avatar"`
}

func (s *UserService) Register(req *RegisterRequest) (*model.User, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)
	if username == "" || email == "" {
		return nil, errno.ParamErr.WithMessage("username and email are required")
	}
	if len(req.Password) < minPasswordLen {
		return nil, errno.ParamErr.WithMessage("password must be at least 6 characters")
	}

	hash, err := utils.Crypt(req.Password)
	if err != nil {
		return nil, errno.ServiceErr.WithMessage(err.Error())
	}

	now := time.Now()
	user := &model.User{
		Id:                 uuid.New().String(),
		Username:           username,
		Email:              email,
		PasswordHash:       hash,
		Avatar:             req.Avatar,
		SubscribedChannels: model.NewIDSet(),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.store.CreateUser(s.ctx, user); err != nil {
		hlog.CtxWarnf(s.ctx, "register user %s failed: %v", username, err)
		return nil, store.Translate(err, "user")
	}
	hlog.CtxInfof(s.ctx, "user registered: %s(%s)", user.Username, user.Id)
	return user, nil
}

// Login 用户名或密码错误都返回同一个错误
func (s *UserService) Login(username, password string) (*model.User, error) {
	user, err := s.store.FindUserByUsername(s.ctx, strings.TrimSpace(username))
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, store.Translate(err, "user")
	}
	if user == nil || !utils.VerifyPassword(password, user.PasswordHash) {
		return nil, errno.AuthorizationFailedErr.WithMessage("invalid username or password")
	}
	return user, nil
}

func (s *UserService) GetUserInfo(id string) (*model.User, error) {
	user, err := s.store.FindUser(s.ctx, id)
	if err != nil {
		return nil, store.Translate(err, "user")
	}
	return user, nil
}

// Authenticator 适配 jwt 中间件，每次登录请求使用自己的 ctx
type Authenticator struct {
	Store store.UserStore
}

func (a Authenticator) Login(ctx context.Context, username, password string) (*model.User, error) {
	return NewUserService(ctx, a.Store).Login(username, password)
}
