package mongo

import (
	"context"
	"strings"

	"VidHub.com/pkg/store"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection    = "users"
	channelsCollection = "channels"
	videosCollection   = "videos"
	commentsCollection = "comments"
)

type Options struct {
	Addr     string `json:"addr,omitempty" description:"mongodb address"`
	Database string `json:"database,omitempty" description:"mongodb database"`
	Username string `json:"username,omitempty" description:"mongodb username"`
	Password string `json:"password,omitempty" description:"mongodb password"`
}

func DefaultOptions() *Options {
	return &Options{
		Addr:     "localhost:27017",
		Database: "vidhub",
	}
}

func NewMongoDB(ctx context.Context, opt *Options) (*mongo.Client, *mongo.Database, error) {
	mongoopt := options.Client().SetHosts(strings.Split(opt.Addr, ","))
	if opt.Username != "" && opt.Password != "" {
		mongoopt.SetAuth(options.Credential{
			Username: opt.Username,
			Password: opt.Password,
		})
	}
	mongocli, err := mongo.Connect(ctx, mongoopt)
	if err != nil {
		return nil, nil, err
	}
	if err := mongocli.Ping(ctx, nil); err != nil {
		return nil, nil, err
	}
	return mongocli, mongocli.Database(opt.Database), nil
}

// Store 基于 mongodb 的文档存储，每类实体一个 collection
type Store struct {
	client   *mongo.Client
	Users    *mongo.Collection
	Channels *mongo.Collection
	Videos   *mongo.Collection
	Comments *mongo.Collection
}

var _ store.Store = (*Store)(nil)

func New(ctx context.Context, opt *Options) (*Store, error) {
	client, db, err := NewMongoDB(ctx, opt)
	if err != nil {
		return nil, errors.Wrapf(err, "connect mongodb %s failed", opt.Addr)
	}
	s := &Store{
		client:   client,
		Users:    db.Collection(usersCollection),
		Channels: db.Collection(channelsCollection),
		Videos:   db.Collection(videosCollection),
		Comments: db.Collection(commentsCollection),
	}
	if err := s.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	hlog.Infof("MongoDB connected: %s/%s", opt.Addr, opt.Database)
	return s, nil
}

func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := map[*mongo.Collection][]mongo.IndexModel{
		s.Users: {
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		s.Channels: {
			{Keys: bson.D{{Key: "owner", Value: 1}}},
		},
		s.Videos: {
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "category", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		s.Comments: {
			{Keys: bson.D{{Key: "video_id", Value: 1}, {Key: "created_at", Value: -1}}},
		},
	}
	for coll, models := range indexes {
		if _, err := coll.Indexes().CreateMany(ctx, models); err != nil {
			return errors.Wrapf(err, "create indexes on %s failed", coll.Name())
		}
	}
	return nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// findOne 把 ErrNoDocuments 统一转换成 store.ErrNotFound
func findOne(ctx context.Context, coll *mongo.Collection, filter interface{}, out interface{}) error {
	err := coll.FindOne(ctx, filter).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return store.ErrNotFound
	}
	if err != nil {
		return errors.Wrapf(err, "find %s failed", coll.Name())
	}
	return nil
}

// replaceOne 整文档替换，文档不存在时返回 store.ErrNotFound
func replaceOne(ctx context.Context, coll *mongo.Collection, id string, doc interface{}) error {
	result, err := coll.ReplaceOne(ctx, bson.M{"_id": id}, doc)
	if err != nil {
		return errors.Wrapf(err, "replace %s %s failed", coll.Name(), id)
	}
	if result.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func deleteOne(ctx context.Context, coll *mongo.Collection, id string) error {
	result, err := coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrapf(err, "delete %s %s failed", coll.Name(), id)
	}
	if result.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func insertOne(ctx context.Context, coll *mongo.Collection, doc interface{}) error {
	if _, err := coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return store.ErrDuplicate
		}
		return errors.Wrapf(err, "insert into %s failed", coll.Name())
	}
	return nil
}

// findByIds 按 ids 的顺序返回存在的文档，重复 id 只返回一次
func findByIds[T any](ctx context.Context, coll *mongo.Collection, ids []string, idOf func(*T) string) ([]*T, error) {
	docs := []*T{}
	if len(ids) == 0 {
		return docs, nil
	}
	cur, err := coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, errors.Wrapf(err, "find %s by ids failed", coll.Name())
	}
	defer cur.Close(ctx)
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrapf(err, "decode %s failed", coll.Name())
	}

	byId := make(map[string]*T, len(docs))
	for _, doc := range docs {
		byId[idOf(doc)] = doc
	}
	ordered := make([]*T, 0, len(docs))
	for _, id := range ids {
		if doc, ok := byId[id]; ok {
			ordered = append(ordered, doc)
			delete(byId, id)
		}
	}
	return ordered, nil
}

func newestFirst() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
}
