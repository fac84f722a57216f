// Package mq 封装RabbitMQ事件发布
//
// 图书目录的写操作（新增/修改/删除）通过Topic Exchange广播领域事件：
//
//	Exchange: bookstore.catalog (topic)
//	  ├─ book.created
//	  ├─ book.updated
//	  └─ book.deleted
//
// 下游（搜索索引、推荐等）按需绑定队列消费，本服务只负责发布。
// 发布是"尽力而为"的：调用方记录失败日志，不回滚业务操作。
package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-catalog/pkg/metrics"
)

// EventPublisher 事件发布端口（应用层依赖此接口，不直接依赖RabbitMQ）
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, message interface{}) error
	Close() error
}

// channel 抽象*amqp.Channel中用到的方法，便于测试替换
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher RabbitMQ消息发布者
type Publisher struct {
	mu       sync.Mutex // amqp.Channel不保证并发发布安全
	conn     io.Closer
	channel  channel
	exchange string
	logger   *zap.Logger
}

// NewPublisher 连接RabbitMQ并声明Exchange
//
// exchangeType通常为topic，支持 book.* 这类通配符绑定
func NewPublisher(url, exchange, exchangeType string, logger *zap.Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		exchange,
		exchangeType,
		true,  // Durable
		false, // AutoDelete
		false, // Internal
		false, // NoWait
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	logger.Info("event publisher ready",
		zap.String("exchange", exchange),
		zap.String("type", exchangeType),
	)

	p := newPublisher(ch, exchange, logger)
	p.conn = conn
	return p, nil
}

func newPublisher(ch channel, exchange string, logger *zap.Logger) *Publisher {
	return &Publisher{
		channel:  ch,
		exchange: exchange,
		logger:   logger,
	}
}

// Publish 序列化为JSON并发布（持久化消息）
func (p *Publisher) Publish(ctx context.Context, routingKey string, message interface{}) error {
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	p.mu.Lock()
	err = p.channel.PublishWithContext(
		ctx,
		p.exchange,
		routingKey,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)
	p.mu.Unlock()

	labels := map[string]string{"exchange": p.exchange, "routing_key": routingKey, "result": "success"}
	if err != nil {
		labels["result"] = "failure"
		metrics.IncCounterVec(metrics.MessagesPublishedTotal, labels)
		return fmt.Errorf("publish %s: %w", routingKey, err)
	}
	metrics.IncCounterVec(metrics.MessagesPublishedTotal, labels)

	p.logger.Debug("event published",
		zap.String("routing_key", routingKey),
		zap.Int("bytes", len(body)),
	)
	return nil
}

// Close 关闭Channel和连接
func (p *Publisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// NopPublisher 未启用消息队列时使用，丢弃所有事件
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, interface{}) error { return nil }

func (NopPublisher) Close() error { return nil }
