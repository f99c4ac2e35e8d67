package handlers

import (
	"context"

	"VidHub.com/cmd/user/service"
	"VidHub.com/pkg/errno"
	"VidHub.com/pkg/jwt"
	"VidHub.com/pkg/store"
	"VidHub.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/app"
)

type Handler struct {
	Store store.UserStore
}

func (h *Handler) Register(ctx context.Context, c *app.RequestContext) {
	var req service.RegisterRequest
	if err := c.Bind(&req); err != nil {
		utils.SendResponse(c, errno.ParamErr.WithMessage(err.Error()), nil)
		return
	}
	user, err := service.NewUserService(ctx, h.Store).Register(&req)
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	utils.SendResponse(c, errno.Success, user)
}

func (h *Handler) GetUserInfo(ctx context.Context, c *app.RequestContext) {
	user, err := service.NewUserService(ctx, h.Store).GetUserInfo(jwt.CallerID(c))
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	utils.SendResponse(c, errno.Success, user)
}
