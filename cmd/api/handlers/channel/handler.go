package handlers

import (
	"context"

	"VidHub.com/cmd/api/pack"
	"VidHub.com/cmd/channel/service"
	"VidHub.com/cmd/model"
	"VidHub.com/pkg/errno"
	"VidHub.com/pkg/jwt"
	"VidHub.com/pkg/lock"
	"VidHub.com/pkg/mq"
	"VidHub.com/pkg/store"
	"VidHub.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/app"
)

type Handler struct {
	Store     store.Store
	Locker    lock.Locker
	Publisher mq.Publisher
}

func (h *Handler) service(ctx context.Context) *service.ChannelService {
	return service.NewChannelService(ctx, h.Store, h.Locker, h.Publisher)
}

func (h *Handler) CreateChannel(ctx context.Context, c *app.RequestContext) {
	var req service.CreateChannelRequest
	if err := c.Bind(&req); err != nil {
		utils.SendResponse(c, errno.ParamErr.WithMessage(err.Error()), nil)
		return
	}
	channel, err := h.service(ctx).CreateChannel(jwt.CallerID(c), &req)
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	h.sendChannel(ctx, c, channel)
}

func (h *Handler) sendChannel(ctx context.Context, c *app.RequestContext, channel *model.Channel) {
	info, err := pack.Channel(ctx, h.Store, channel)
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	utils.SendResponse(c, errno.Success, info)
}

func (h *Handler) MyChannels(ctx context.Context, c *app.RequestContext) {
	channels, err := h.service(ctx).ListMyChannels(jwt.CallerID(c))
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	infos, err := pack.Channels(ctx, h.Store, channels)
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	utils.SendResponse(c, errno.Success, infos)
}

func (h *Handler) GetChannel(ctx context.Context, c *app.RequestContext) {
	channel, err := h.service(ctx).GetChannel(c.Param("id"))
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	h.sendChannel(ctx, c, channel)
}

func (h *Handler) DeleteChannel(ctx context.Context, c *app.RequestContext) {
	err := h.service(ctx).DeleteChannel(jwt.CallerID(c), c.Param("id"))
	utils.SendResponse(c, err, nil)
}

func (h *Handler) Subscribe(ctx context.Context, c *app.RequestContext) {
	state, err := h.service(ctx).ToggleSubscription(jwt.CallerID(c), c.Param("id"))
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	utils.SendResponse(c, errno.Success, state)
}
