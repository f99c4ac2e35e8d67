package handlers

import (
	"context"

	"VidHub.com/cmd/api/pack"
	"VidHub.com/cmd/interaction/service"
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

func (h *Handler) service(ctx context.Context) *service.CommentService {
	return service.NewCommentService(ctx, h.Store, h.Locker, h.Publisher)
}

type CreateCommentParam struct {
	VideoId string `json:"videoId"`
	Content string `json:"content"`
}

type ContentParam struct {
	Content string `json:"content"`
}

func (h *Handler) sendComment(ctx context.Context, c *app.RequestContext, comment *model.Comment) {
	info, err := pack.Comment(ctx, h.Store, comment)
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	utils.SendResponse(c, errno.Success, info)
}

func (h *Handler) ListComments(ctx context.Context, c *app.RequestContext) {
	comments, err := h.service(ctx).ListComments(c.Param("videoId"))
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	infos, err := pack.Comments(ctx, h.Store, comments)
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	utils.SendResponse(c, errno.Success, infos)
}

func (h *Handler) CreateComment(ctx context.Context, c *app.RequestContext) {
	var param CreateCommentParam
	if err := c.Bind(&param); err != nil {
		utils.SendResponse(c, errno.ParamErr.WithMessage(err.Error()), nil)
		return
	}
	comment, err := h.service(ctx).CreateComment(jwt.CallerID(c), param.VideoId, param.Content)
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	h.sendComment(ctx, c, comment)
}

func (h *Handler) UpdateComment(ctx context.Context, c *app.RequestContext) {
	var param ContentParam
	if err := c.Bind(&param); err != nil {
		utils.SendResponse(c, errno.ParamErr.WithMessage(err.Error()), nil)
		return
	}
	comment, err := h.service(ctx).UpdateComment(jwt.CallerID(c), c.Param("id"), param.Content)
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	h.sendComment(ctx, c, comment)
}

func (h *Handler) DeleteComment(ctx context.Context, c *app.RequestContext) {
	err := h.service(ctx).DeleteComment(jwt.CallerID(c), c.Param("id"))
	utils.SendResponse(c, err, nil)
}

func (h *Handler) LikeComment(ctx context.Context, c *app.RequestContext) {
	count, err := h.service(ctx).ToggleCommentLike(jwt.CallerID(c), c.Param("id"))
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	utils.SendResponse(c, errno.Success, count)
}

func (h *Handler) ReplyComment(ctx context.Context, c *app.RequestContext) {
	var param ContentParam
	if err := c.Bind(&param); err != nil {
		utils.SendResponse(c, errno.ParamErr.WithMessage(err.Error()), nil)
		return
	}
	comment, err := h.service(ctx).AddReply(jwt.CallerID(c), c.Param("id"), param.Content)
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	h.sendComment(ctx, c, comment)
}
