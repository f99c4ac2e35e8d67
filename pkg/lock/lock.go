// Package lock 文档级互斥锁。同一个文档的读改写必须在锁内完成，
// 多个 key 按字典序加锁，避免死锁。
package lock

import (
	"context"
	"sort"
)

// Locker 加锁成功返回 unlock，调用方负责 defer unlock()
type Locker interface {
	Lock(ctx context.Context, keys ...string) (unlock func(), err error)
}

func Key(kind, id string) string {
	return kind + ":" + id
}

// normalize 去重并排序
func normalize(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
