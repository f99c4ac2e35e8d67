package handlers

import (
	"context"

	"VidHub.com/cmd/api/pack"
	"VidHub.com/cmd/model"
	"VidHub.com/cmd/video/service"
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

func (h *Handler) service(ctx context.Context) *service.VideoService {
	return service.NewVideoService(ctx, h.Store, h.Locker, h.Publisher)
}

type ListVideosParam struct {
	Category string `query:"category"`
	Search   string `query:"search"`
}

func (h *Handler) ListVideos(ctx context.Context, c *app.RequestContext) {
	var param ListVideosParam
	if err := c.Bind(&param); err != nil {
		utils.SendResponse(c, errno.ParamErr.WithMessage(err.Error()), nil)
		return
	}
	videos, err := h.service(ctx).ListVideos(model.VideoFilter{Category: param.Category, Search: param.Search})
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	infos, err := pack.Videos(ctx, h.Store, videos)
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	utils.SendResponse(c, errno.Success, infos)
}

func (h *Handler) GetVideo(ctx context.Context, c *app.RequestContext) {
	video, err := h.service(ctx).GetVideo(c.Param("id"))
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	h.sendVideo(ctx, c, video)
}

func (h *Handler) CreateVideo(ctx context.Context, c *app.RequestContext) {
	var req service.CreateVideoRequest
	if err := c.Bind(&req); err != nil {
		utils.SendResponse(c, errno.ParamErr.WithMessage(err.Error()), nil)
		return
	}
	video, err := h.service(ctx).CreateVideo(jwt.CallerID(c), &req)
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	h.sendVideo(ctx, c, video)
}

func (h *Handler) sendVideo(ctx context.Context, c *app.RequestContext, video *model.Video) {
	info, err := pack.Video(ctx, h.Store, video)
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	utils.SendResponse(c, errno.Success, info)
}

func (h *Handler) DeleteVideo(ctx context.Context, c *app.RequestContext) {
	err := h.service(ctx).DeleteVideo(jwt.CallerID(c), c.Param("id"))
	utils.SendResponse(c, err, nil)
}

func (h *Handler) LikeVideo(ctx context.Context, c *app.RequestContext) {
	counts, err := h.service(ctx).ToggleLike(jwt.CallerID(c), c.Param("id"))
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	utils.SendResponse(c, errno.Success, counts)
}

func (h *Handler) DislikeVideo(ctx context.Context, c *app.RequestContext) {
	counts, err := h.service(ctx).ToggleDislike(jwt.CallerID(c), c.Param("id"))
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	utils.SendResponse(c, errno.Success, counts)
}
