package mongo

import (
	"context"
	"regexp"
	"time"

	"VidHub.com/cmd/model"
	"VidHub.com/pkg/store"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (s *Store) CreateVideo(ctx context.Context, video *model.Video) error {
	return insertOne(ctx, s.Videos, video)
}

func (s *Store) FindVideo(ctx context.Context, id string) (*model.Video, error) {
	video := &model.Video{}
	if err := findOne(ctx, s.Videos, bson.M{"_id": id}, video); err != nil {
		return nil, err
	}
	return video, nil
}

func (s *Store) FindVideos(ctx context.Context, ids []string) ([]*model.Video, error) {
	return findByIds(ctx, s.Videos, ids, func(v *model.Video) string { return v.Id })
}

func videoFilter(filter model.VideoFilter) bson.D {
	query := bson.D{}
	if filter.Category != "" {
		query = append(query, bson.E{Key: "category", Value: filter.Category})
	}
	if filter.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Search), Options: "i"}
		query = append(query, bson.E{Key: "$or", Value: bson.A{
			bson.M{"title": pattern},
			bson.M{"description": pattern},
		}})
	}
	return query
}

func (s *Store) ListVideos(ctx context.Context, filter model.VideoFilter) ([]*model.Video, error) {
	cur, err := s.Videos.Find(ctx, videoFilter(filter), newestFirst())
	if err != nil {
		return nil, errors.Wrapf(err, "ListVideos failed,filter:%+v", filter)
	}
	defer cur.Close(ctx)

	videos := []*model.Video{}
	if err := cur.All(ctx, &videos); err != nil {
		return nil, errors.Wrapf(err, "decode videos failed,filter:%+v", filter)
	}
	return videos, nil
}

// SaveVideo 保存除 views 以外的全部字段，views 只由 IncrVisitCount 修改
func (s *Store) SaveVideo(ctx context.Context, video *model.Video) error {
	data, err := bson.Marshal(video)
	if err != nil {
		return errors.Wrapf(err, "marshal video %s failed", video.Id)
	}
	fields := bson.M{}
	if err := bson.Unmarshal(data, &fields); err != nil {
		return errors.Wrapf(err, "unmarshal video %s failed", video.Id)
	}
	delete(fields, "_id")
	delete(fields, "views")

	result, err := s.Videos.UpdateOne(ctx, bson.M{"_id": video.Id}, bson.M{"$set": fields})
	if err != nil {
		return errors.Wrapf(err, "SaveVideo failed,video:%s", video.Id)
	}
	if result.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// IncrVisitCount 使用 $inc 在服务端原子自增
func (s *Store) IncrVisitCount(ctx context.Context, id string) (*model.Video, error) {
	video := &model.Video{}
	err := s.Videos.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{
			"$inc": bson.M{"views": 1},
			"$set": bson.M{"updated_at": time.Now()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(video)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "IncrVisitCount failed,video:%s", id)
	}
	return video, nil
}

func (s *Store) DeleteVideo(ctx context.Context, id string) error {
	return deleteOne(ctx, s.Videos, id)
}
