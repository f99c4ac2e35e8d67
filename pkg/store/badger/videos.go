package badger

import (
	"context"
	"strings"
	"time"

	"VidHub.com/cmd/model"
	"VidHub.com/pkg/engagement"
	"github.com/dgraph-io/badger/v4"
)

func (s *Store) CreateVideo(ctx context.Context, video *model.Video) error {
	return s.update(ctx, func(txn *badger.Txn) error {
		return insert(txn, key(videoPrefix, video.Id), video)
	})
}

func (s *Store) FindVideo(ctx context.Context, id string) (video *model.Video, err error) {
	err = s.view(ctx, func(txn *badger.Txn) error {
		video, err = getDoc[model.Video](txn, key(videoPrefix, id))
		return err
	})
	return video, err
}

func (s *Store) FindVideos(ctx context.Context, ids []string) (videos []*model.Video, err error) {
	err = s.view(ctx, func(txn *badger.Txn) error {
		videos, err = getDocs[model.Video](txn, videoPrefix, ids)
		return err
	})
	return videos, err
}

// matchVideo 与 mongo 实现保持一致：分类精确匹配，关键字对标题或简介做不区分大小写的子串匹配
func matchVideo(filter model.VideoFilter) func(*model.Video) bool {
	search := strings.ToLower(filter.Search)
	return func(v *model.Video) bool {
		if filter.Category != "" && v.Category != filter.Category {
			return false
		}
		if search == "" {
			return true
		}
		return strings.Contains(strings.ToLower(v.Title), search) ||
			strings.Contains(strings.ToLower(v.Description), search)
	}
}

func (s *Store) ListVideos(ctx context.Context, filter model.VideoFilter) (videos []*model.Video, err error) {
	err = s.view(ctx, func(txn *badger.Txn) error {
		videos, err = scan(txn, videoPrefix, matchVideo(filter))
		return err
	})
	if err != nil {
		return nil, err
	}
	sortNewestFirst(videos, func(v *model.Video) time.Time { return v.CreatedAt })
	return videos, nil
}

// SaveVideo 沿用已存储的 Views，views 只由 IncrVisitCount 修改
func (s *Store) SaveVideo(ctx context.Context, video *model.Video) error {
	return s.update(ctx, func(txn *badger.Txn) error {
		stored, err := getDoc[model.Video](txn, key(videoPrefix, video.Id))
		if err != nil {
			return err
		}
		doc := *video
		doc.Views = stored.Views
		return putDoc(txn, key(videoPrefix, video.Id), &doc)
	})
}

func (s *Store) IncrVisitCount(ctx context.Context, id string) (video *model.Video, err error) {
	err = s.update(ctx, func(txn *badger.Txn) error {
		video, err = getDoc[model.Video](txn, key(videoPrefix, id))
		if err != nil {
			return err
		}
		engagement.RecordView(video)
		video.UpdatedAt = time.Now()
		return putDoc(txn, key(videoPrefix, id), video)
	})
	if err != nil {
		return nil, err
	}
	return video, nil
}

func (s *Store) DeleteVideo(ctx context.Context, id string) error {
	return s.update(ctx, func(txn *badger.Txn) error {
		return remove(txn, key(videoPrefix, id))
	})
}
