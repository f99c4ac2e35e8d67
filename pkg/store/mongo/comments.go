package mongo

import (
	"context"

	"VidHub.com/cmd/model"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
)

func (s *Store) CreateComment(ctx context.Context, comment *model.Comment) error {
	return insertOne(ctx, s.Comments, comment)
}

func (s *Store) FindComment(ctx context.Context, id string) (*model.Comment, error) {
	comment := &model.Comment{}
	if err := findOne(ctx, s.Comments, bson.M{"_id": id}, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *Store) ListCommentsByVideo(ctx context.Context, videoId string) ([]*model.Comment, error) {
	cur, err := s.Comments.Find(ctx, bson.M{"video_id": videoId}, newestFirst())
	if err != nil {
		return nil, errors.Wrapf(err, "ListCommentsByVideo failed,video:%s", videoId)
	}
	defer cur.Close(ctx)

	comments := []*model.Comment{}
	if err := cur.All(ctx, &comments); err != nil {
		return nil, errors.Wrapf(err, "decode comments failed,video:%s", videoId)
	}
	return comments, nil
}

func (s *Store) SaveComment(ctx context.Context, comment *model.Comment) error {
	return replaceOne(ctx, s.Comments, comment.Id, comment)
}

func (s *Store) DeleteComment(ctx context.Context, id string) error {
	return deleteOne(ctx, s.Comments, id)
}

func (s *Store) DeleteCommentsByVideo(ctx context.Context, videoId string) (int64, error) {
	result, err := s.Comments.DeleteMany(ctx, bson.M{"video_id": videoId})
	if err != nil {
		return 0, errors.Wrapf(err, "DeleteCommentsByVideo failed,video:%s", videoId)
	}
	return result.DeletedCount, nil
}
