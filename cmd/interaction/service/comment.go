package service

import (
	"context"
	"time"
	"unicode/utf8"

	"VidHub.com/cmd/model"
	"VidHub.com/pkg/engagement"
	"VidHub.com/pkg/errno"
	"VidHub.com/pkg/lock"
	"VidHub.com/pkg/mq"
	"VidHub.com/pkg/store"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/google/uuid"
)

// MaxCommentLength 评论和回复的最大字符数
const MaxCommentLength = 500

type CommentService struct {
	ctx       context.Context
	store     store.Store
	locker    lock.Locker
	publisher mq.Publisher
}

func NewCommentService(ctx context.Context, st store.Store, locker lock.Locker, publisher mq.Publisher) *CommentService {
	return &CommentService{ctx: ctx, store: st, locker: locker, publisher: publisher}
}

func validateContent(content string) (string, error) {
	content, err := engagement.NormalizeContent(content)
	if err != nil {
		return "", err
	}
	if utf8.RuneCountInString(content) > MaxCommentLength {
		return "", errno.ParamErr.WithMessage("content too long, maximum 500 characters allowed")
	}
	return content, nil
}

func (s *CommentService) ListComments(videoId string) ([]*model.Comment, error) {
	comments, err := s.store.ListCommentsByVideo(s.ctx, videoId)
	if err != nil {
		return nil, store.Translate(err, "comments")
	}
	return comments, nil
}

func (s *CommentService) CreateComment(caller, videoId, content string) (*model.Comment, error) {
	content, err := validateContent(content)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.FindVideo(s.ctx, videoId); err != nil {
		return nil, store.Translate(err, "video")
	}

	now := time.Now()
	comment := &model.Comment{
		Id:        uuid.New().String(),
		Content:   content,
		Author:    caller,
		VideoId:   videoId,
		Likes:     model.NewIDSet(),
		Replies:   []model.Reply{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.CreateComment(s.ctx, comment); err != nil {
		return nil, store.Translate(err, "comment")
	}
	return comment, nil
}

// UpdateComment 只有作者可以修改，且只修改内容
func (s *CommentService) UpdateComment(caller, id, content string) (*model.Comment, error) {
	content, err := validateContent(content)
	if err != nil {
		return nil, err
	}
	return s.mutate(id, func(c *model.Comment) error {
		if c.Author != caller {
			return errno.ForbiddenErr.WithMessage("only the author can edit this comment")
		}
		c.Content = content
		return nil
	})
}

// DeleteComment 回复内嵌在评论中，随评论一起删除
func (s *CommentService) DeleteComment(caller, id string) error {
	unlock, err := s.locker.Lock(s.ctx, lock.Key("comment", id))
	if err != nil {
		return errno.WrapStoreErr(err, "lock comment")
	}
	defer unlock()

	comment, err := s.store.FindComment(s.ctx, id)
	if err != nil {
		return store.Translate(err, "comment")
	}
	if comment.Author != caller {
		return errno.ForbiddenErr.WithMessage("only the author can delete this comment")
	}
	return store.Translate(s.store.DeleteComment(s.ctx, id), "comment")
}

func (s *CommentService) ToggleCommentLike(caller, id string) (engagement.CommentLikeCount, error) {
	var result engagement.CommentLikeCount
	comment, err := s.mutate(id, func(c *model.Comment) error {
		result = engagement.ToggleCommentLike(c, caller)
		return nil
	})
	if err != nil {
		return engagement.CommentLikeCount{}, err
	}
	mq.Emit(s.ctx, s.publisher, mq.NewEngagementEvent(mq.EventCommentLike, caller, id, comment.Likes.Has(caller)))
	return result, nil
}

// AddReply 返回追加回复之后的完整评论
func (s *CommentService) AddReply(caller, id, content string) (*model.Comment, error) {
	if _, err := validateContent(content); err != nil {
		return nil, err
	}
	comment, err := s.mutate(id, func(c *model.Comment) error {
		_, err := engagement.AddReply(c, caller, content)
		return err
	})
	if err != nil {
		return nil, err
	}
	mq.Emit(s.ctx, s.publisher, mq.NewEngagementEvent(mq.EventCommentReply, caller, id, true))
	return comment, nil
}

// mutate 在评论锁内完成 读取-修改-保存，fn 返回错误时不保存
func (s *CommentService) mutate(id string, fn func(c *model.Comment) error) (*model.Comment, error) {
	unlock, err := s.locker.Lock(s.ctx, lock.Key("comment", id))
	if err != nil {
		return nil, errno.WrapStoreErr(err, "lock comment")
	}
	defer unlock()

	comment, err := s.store.FindComment(s.ctx, id)
	if err != nil {
		return nil, store.Translate(err, "comment")
	}
	if err := fn(comment); err != nil {
		return nil, err
	}
	comment.UpdatedAt = time.Now()
	if err := s.store.SaveComment(s.ctx, comment); err != nil {
		hlog.CtxErrorf(s.ctx, "save comment %s failed: %v", id, err)
		return nil, store.Translate(err, "comment")
	}
	return comment, nil
}
