package mq

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/rabbitmq/amqp091-go"
)

type Consumer struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
}

type EngagementEventHandler interface {
	HandleEngagementEvent(ctx context.Context, event *EngagementEvent) error
}

func NewConsumer(rabbitmqURL string) (*Consumer, error) {
	conn, err := amqp091.Dial(rabbitmqURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	// 设置QoS，限制未确认消息数量
	if err = ch.Qos(10, 0, false); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to set QoS: %w", err)
	}

	if err = setupTopology(ch); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to setup topology: %w", err)
	}

	return &Consumer{conn: conn, channel: ch}, nil
}

// acker amqp091.Delivery 的确认方法，便于测试
type acker interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

// dispatch 解析失败直接丢弃；处理失败重新入队一次，重投后仍失败则丢弃
func dispatch(ctx context.Context, body []byte, redelivered bool, d acker, handler EngagementEventHandler) {
	var event EngagementEvent
	if err := json.Unmarshal(body, &event); err != nil || event.EventID == "" {
		hlog.Errorf("Failed to decode engagement event: %v, body: %s", err, body)
		d.Nack(false, false)
		return
	}

	if err := handler.HandleEngagementEvent(ctx, &event); err != nil {
		if redelivered {
			hlog.Errorf("Dropping engagement event %s after redelivery: %v", event.EventID, err)
			d.Nack(false, false)
			return
		}
		hlog.Errorf("Failed to handle engagement event %s, requeue: %v", event.EventID, err)
		d.Nack(false, true)
		return
	}

	d.Ack(false)
	hlog.CtxDebugf(ctx, "Successfully processed engagement event: %+v", event)
}

func (c *Consumer) ConsumeEngagementEvents(ctx context.Context, handler EngagementEventHandler) error {
	msgs, err := c.channel.Consume(
		EngagementEventQueue,
		"",    // consumer
		false, // auto-ack (设置为false，手动确认)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("failed to register a consumer: %w", err)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				hlog.Info("Engagement event consumer context cancelled")
				return
			case d, ok := <-msgs:
				if !ok {
					hlog.Info("Engagement event consumer channel closed")
					return
				}
				dispatch(ctx, d.Body, d.Redelivered, &d, handler)
			}
		}
	}()

	return nil
}

func (c *Consumer) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
