package mongo

import (
	"context"

	"VidHub.com/cmd/model"
	"go.mongodb.org/mongo-driver/bson"
)

func (s *Store) CreateUser(ctx context.Context, user *model.User) error {
	return insertOne(ctx, s.Users, user)
}

func (s *Store) FindUser(ctx context.Context, id string) (*model.User, error) {
	user := &model.User{}
	if err := findOne(ctx, s.Users, bson.M{"_id": id}, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Store) FindUserByUsername(ctx context.Context, username string) (*model.User, error) {
	user := &model.User{}
	if err := findOne(ctx, s.Users, bson.M{"username": username}, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Store) FindUsers(ctx context.Context, ids []string) ([]*model.User, error) {
	return findByIds(ctx, s.Users, ids, func(u *model.User) string { return u.Id })
}

func (s *Store) SaveUser(ctx context.Context, user *model.User) error {
	return replaceOne(ctx, s.Users, user.Id, user)
}
