package lock

import (
	"context"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const redisLockPrefix = "lock:"

// RedisLocker 多副本部署时使用的分布式锁
type RedisLocker struct {
	rs      *redsync.Redsync
	options []redsync.Option
}

func NewRedisLocker(client *redis.Client) *RedisLocker {
	return &RedisLocker{
		rs: redsync.New(goredis.NewPool(client)),
		options: []redsync.Option{
			redsync.WithExpiry(8 * time.Second),
			redsync.WithTries(64),
			redsync.WithRetryDelay(25 * time.Millisecond),
		},
	}
}

func (l *RedisLocker) Lock(ctx context.Context, keys ...string) (func(), error) {
	keys = normalize(keys)
	held := make([]*redsync.Mutex, 0, len(keys))

	release := func() {
		for i := len(held) - 1; i >= 0; i-- {
			if _, err := held[i].UnlockContext(context.Background()); err != nil {
				hlog.Warnf("unlock %s failed: %v", held[i].Name(), err)
			}
		}
	}

	for _, k := range keys {
		m := l.rs.NewMutex(redisLockPrefix+k, l.options...)
		if err := m.LockContext(ctx); err != nil {
			release()
			return nil, errors.Wrapf(err, "lock %s failed", k)
		}
		held = append(held, m)
	}
	return release, nil
}
