package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"VidHub.com/cmd/consumer/dal"
	"VidHub.com/cmd/consumer/service"
	"VidHub.com/config"
	"VidHub.com/pkg/mq"
	"VidHub.com/pkg/tracer"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

func main() {
	hlog.SetLevel(hlog.LevelInfo)

	// 初始化配置和依赖
	config.Init()
	conf := config.ConfigInfo
	_, closer := tracer.InitJaeger("vidhub-consumer", conf.Jaeger.AgentAddr, conf.Jaeger.SamplerParam)
	defer closer.Close()

	db, err := dal.Init()
	if err != nil {
		hlog.Fatalf("Failed to init database: %v", err)
	}

	consumer, err := mq.NewConsumer(config.RabbitMqURL())
	if err != nil {
		hlog.Fatalf("Failed to create consumer: %v", err)
	}
	defer consumer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := consumer.ConsumeEngagementEvents(ctx, service.NewEventRecorder(db)); err != nil {
		hlog.Fatalf("Failed to start engagement event consumer: %v", err)
	}
	hlog.Info("Engagement event consumer started, waiting for messages...")

	// 等待中断信号
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	<-sigChan
	hlog.Info("Shutting down event consumer...")

	// 优雅关闭
	cancel()
	time.Sleep(2 * time.Second) // 给消费者一些时间来处理正在进行的消息

	hlog.Info("Event consumer stopped")
}
