package badger

import (
	"context"

	"VidHub.com/cmd/model"
	"VidHub.com/pkg/store"
	"github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"
)

// CreateUser 同时写入 username 索引，用户名重复返回 store.ErrDuplicate
func (s *Store) CreateUser(ctx context.Context, user *model.User) error {
	return s.update(ctx, func(txn *badger.Txn) error {
		taken, err := exists(txn, key(usernamePrefix, user.Username))
		if err != nil {
			return err
		}
		if taken {
			return store.ErrDuplicate
		}
		if err := insert(txn, key(userPrefix, user.Id), user); err != nil {
			return err
		}
		return txn.Set(key(usernamePrefix, user.Username), []byte(user.Id))
	})
}

func (s *Store) FindUser(ctx context.Context, id string) (user *model.User, err error) {
	err = s.view(ctx, func(txn *badger.Txn) error {
		user, err = getDoc[model.User](txn, key(userPrefix, id))
		return err
	})
	return user, err
}

func (s *Store) FindUserByUsername(ctx context.Context, username string) (user *model.User, err error) {
	err = s.view(ctx, func(txn *badger.Txn) error {
		item, err := txn.Get(key(usernamePrefix, username))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return store.ErrNotFound
		}
		if err != nil {
			return errors.Wrapf(err, "get username %s failed", username)
		}
		id, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		user, err = getDoc[model.User](txn, key(userPrefix, string(id)))
		return err
	})
	return user, err
}

func (s *Store) FindUsers(ctx context.Context, ids []string) (users []*model.User, err error) {
	err = s.view(ctx, func(txn *badger.Txn) error {
		users, err = getDocs[model.User](txn, userPrefix, ids)
		return err
	})
	return users, err
}

// SaveUser 用户名不可修改，索引保持不变
func (s *Store) SaveUser(ctx context.Context, user *model.User) error {
	return s.update(ctx, func(txn *badger.Txn) error {
		return replace(txn, key(userPrefix, user.Id), user)
	})
}
