package badger

import (
	"context"
	"time"

	"VidHub.com/cmd/model"
	"github.com/dgraph-io/badger/v4"
)

func (s *Store) CreateChannel(ctx context.Context, channel *model.Channel) error {
	return s.update(ctx, func(txn *badger.Txn) error {
		return insert(txn, key(channelPrefix, channel.Id), channel)
	})
}

func (s *Store) FindChannel(ctx context.Context, id string) (channel *model.Channel, err error) {
	err = s.view(ctx, func(txn *badger.Txn) error {
		channel, err = getDoc[model.Channel](txn, key(channelPrefix, id))
		return err
	})
	return channel, err
}

func (s *Store) FindChannelsByOwner(ctx context.Context, owner string) (channels []*model.Channel, err error) {
	err = s.view(ctx, func(txn *badger.Txn) error {
		channels, err = scan(txn, channelPrefix, func(c *model.Channel) bool {
			return c.Owner == owner
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	sortNewestFirst(channels, func(c *model.Channel) time.Time { return c.CreatedAt })
	return channels, nil
}

func (s *Store) SaveChannel(ctx context.Context, channel *model.Channel) error {
	return s.update(ctx, func(txn *badger.Txn) error {
		return replace(txn, key(channelPrefix, channel.Id), channel)
	})
}

func (s *Store) DeleteChannel(ctx context.Context, id string) error {
	return s.update(ctx, func(txn *badger.Txn) error {
		return remove(txn, key(channelPrefix, id))
	})
}
