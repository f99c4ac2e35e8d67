package badger

import (
	"context"
	"time"

	"VidHub.com/cmd/model"
	"github.com/dgraph-io/badger/v4"
)

func (s *Store) CreateComment(ctx context.Context, comment *model.Comment) error {
	return s.update(ctx, func(txn *badger.Txn) error {
		return insert(txn, key(commentPrefix, comment.Id), comment)
	})
}

func (s *Store) FindComment(ctx context.Context, id string) (comment *model.Comment, err error) {
	err = s.view(ctx, func(txn *badger.Txn) error {
		comment, err = getDoc[model.Comment](txn, key(commentPrefix, id))
		return err
	})
	return comment, err
}

func (s *Store) ListCommentsByVideo(ctx context.Context, videoId string) (comments []*model.Comment, err error) {
	err = s.view(ctx, func(txn *badger.Txn) error {
		comments, err = scan(txn, commentPrefix, func(c *model.Comment) bool {
			return c.VideoId == videoId
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	sortNewestFirst(comments, func(c *model.Comment) time.Time { return c.CreatedAt })
	return comments, nil
}

func (s *Store) SaveComment(ctx context.Context, comment *model.Comment) error {
	return s.update(ctx, func(txn *badger.Txn) error {
		return replace(txn, key(commentPrefix, comment.Id), comment)
	})
}

func (s *Store) DeleteComment(ctx context.Context, id string) error {
	return s.update(ctx, func(txn *badger.Txn) error {
		return remove(txn, key(commentPrefix, id))
	})
}

func (s *Store) DeleteCommentsByVideo(ctx context.Context, videoId string) (deleted int64, err error) {
	err = s.update(ctx, func(txn *badger.Txn) error {
		comments, err := scan(txn, commentPrefix, func(c *model.Comment) bool {
			return c.VideoId == videoId
		})
		if err != nil {
			return err
		}
		for _, c := range comments {
			if err := txn.Delete(key(commentPrefix, c.Id)); err != nil {
				return err
			}
		}
		deleted = int64(len(comments))
		return nil
	})
	return deleted, err
}
