package cache

import (
	"context"
	"time"

	"VidHub.com/config"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// NewRedisClient 按配置创建客户端并 Ping 一次
func NewRedisClient(ctx context.Context) (*redis.Client, error) {
	rc := config.ConfigInfo.Redis
	client := redis.NewClient(&redis.Options{
		Addr:     rc.Addr,
		Password: rc.Password,
		DB:       rc.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrapf(err, "ping redis %s failed", rc.Addr)
	}
	hlog.Infof("redis connected: %s db=%d", rc.Addr, rc.DB)
	return client, nil
}
