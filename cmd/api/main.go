package main

import (
	"context"
	"fmt"
	"time"

	"VidHub.com/cmd/api/router"
	"VidHub.com/config"
	"VidHub.com/config/pprof"
	"VidHub.com/pkg/cache"
	"VidHub.com/pkg/errno"
	"VidHub.com/pkg/jwt"
	"VidHub.com/pkg/lock"
	"VidHub.com/pkg/middleware"
	"VidHub.com/pkg/mq"
	"VidHub.com/pkg/store"
	"VidHub.com/pkg/store/badger"
	"VidHub.com/pkg/store/mongo"
	"VidHub.com/pkg/tracer"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/middlewares/server/recovery"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/hertz-contrib/cors"
)

func initStore(ctx context.Context) (store.Store, error) {
	sc := config.ConfigInfo.Store
	switch sc.Driver {
	case "mongo":
		mc := config.ConfigInfo.Mongo
		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		st, err := mongo.New(ctx, &mongo.Options{
			Addr:     mc.Addr,
			Database: mc.Database,
			Username: mc.Username,
			Password: mc.Password,
		})
		if err != nil {
			return nil, err
		}
		return st, nil
	case "badger", "":
		st, err := badger.Open(badger.Config{Dir: sc.Dir, InMemory: sc.InMemory})
		if err != nil {
			return nil, err
		}
		return st, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", sc.Driver)
	}
}

// initLocker 多副本部署(mongo)必须使用 redis 锁；单机 badger 在 redis 不可用时退回进程内锁
func initLocker(ctx context.Context, d *router.Deps) error {
	client, err := cache.NewRedisClient(ctx)
	if err != nil {
		if config.ConfigInfo.Store.Driver == "mongo" {
			return err
		}
		hlog.Warnf("redis unavailable, falling back to local lock and client-side logout: %v", err)
		d.Locker = lock.NewLocalLocker()
		return nil
	}
	d.Locker = lock.NewRedisLocker(client)
	d.Blacklist = cache.NewTokenBlacklist(client)
	return nil
}

func initPublisher() (mq.Publisher, func()) {
	if config.ConfigInfo.RabbitMq.Addr == "" {
		return mq.NopPublisher{}, func() {}
	}
	producer, err := mq.NewProducer(config.RabbitMqURL())
	if err != nil {
		hlog.Warnf("rabbitmq unavailable, engagement events disabled: %v", err)
		return mq.NopPublisher{}, func() {}
	}
	return producer, func() { producer.Close() }
}

func main() {
	config.Init()
	ctx := context.Background()
	conf := config.ConfigInfo

	tr, closer := tracer.InitJaeger("vidhub-api", conf.Jaeger.AgentAddr, conf.Jaeger.SamplerParam)
	defer closer.Close()
	pprof.Load(conf.Server.PprofAddr)

	if err := middleware.InitSentinel(conf.Sentinel.EngagementQPS); err != nil {
		hlog.Fatalf("init sentinel failed: %v", err)
	}

	st, err := initStore(ctx)
	if err != nil {
		hlog.Fatalf("init store failed: %v", err)
	}
	defer st.Close(ctx)

	deps := &router.Deps{
		Store: st,
		Jwt: jwt.Config{
			Secret:     conf.Jwt.Secret,
			Timeout:    conf.Jwt.Timeout,
			MaxRefresh: conf.Jwt.MaxRefresh,
		},
	}
	if err := initLocker(ctx, deps); err != nil {
		hlog.Fatalf("init redis lock failed: %v", err)
	}
	publisher, closePublisher := initPublisher()
	defer closePublisher()
	deps.Publisher = publisher

	h := server.New(
		server.WithHostPorts(conf.Server.Addr),
		server.WithHandleMethodNotAllowed(true),
		server.WithMaxRequestBodySize(conf.Server.MaxBodySize),
	)

	// 配置 CORS
	h.Use(cors.New(cors.Config{
		AllowOrigins:     conf.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 错误处理
	h.Use(recovery.Recovery(recovery.WithRecoveryHandler(
		func(ctx context.Context, c *app.RequestContext, err interface{}, stack []byte) {
			hlog.SystemLogger().CtxErrorf(ctx, "[Recovery] err=%v\nstack=%s", err, stack)
			c.JSON(consts.StatusInternalServerError, map[string]interface{}{
				"code":    errno.ServiceErrCode,
				"message": fmt.Sprintf("[Recovery] err=%v", err),
			})
		})))
	h.Use(middleware.ServerSpan(tr))

	// 注册路由
	if err := router.Register(h.Engine, deps); err != nil {
		hlog.Fatalf("register routes failed: %v", err)
	}

	h.Spin()
}
