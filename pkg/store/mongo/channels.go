package mongo

import (
	"context"

	"VidHub.com/cmd/model"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
)

func (s *Store) CreateChannel(ctx context.Context, channel *model.Channel) error {
	return insertOne(ctx, s.Channels, channel)
}

func (s *Store) FindChannel(ctx context.Context, id string) (*model.Channel, error) {
	channel := &model.Channel{}
	if err := findOne(ctx, s.Channels, bson.M{"_id": id}, channel); err != nil {
		return nil, err
	}
	return channel, nil
}

func (s *Store) FindChannelsByOwner(ctx context.Context, owner string) ([]*model.Channel, error) {
	cur, err := s.Channels.Find(ctx, bson.M{"owner": owner}, newestFirst())
	if err != nil {
		return nil, errors.Wrapf(err, "FindChannelsByOwner failed,owner:%s", owner)
	}
	defer cur.Close(ctx)

	channels := []*model.Channel{}
	if err := cur.All(ctx, &channels); err != nil {
		return nil, errors.Wrapf(err, "decode channels failed,owner:%s", owner)
	}
	return channels, nil
}

func (s *Store) SaveChannel(ctx context.Context, channel *model.Channel) error {
	return replaceOne(ctx, s.Channels, channel.Id, channel)
}

func (s *Store) DeleteChannel(ctx context.Context, id string) error {
	return deleteOne(ctx, s.Channels, id)
}
