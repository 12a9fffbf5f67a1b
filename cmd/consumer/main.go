package main

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/streadway/amqp"

	"Orion_Tube/internal/config"
	"Orion_Tube/pkg/logger"
	"Orion_Tube/pkg/rabbitmq"
	"Orion_Tube/pkg/storage"
)

const (
	// 超过这个次数仍然删不掉的对象交给人工处理
	maxCleanupAttempts = 5
	deleteTimeout      = 30 * time.Second
)

type objectDeleter interface {
	Delete(ctx context.Context, key string) error
}

type republisher interface {
	Publish(ctx context.Context, msg rabbitmq.MediaCleanupMessage) error
}

type outcome int

const (
	outcomeAck outcome = iota
	// 消息本身有问题，直接丢弃
	outcomeDrop
	// 重新投递失败，让RabbitMQ重新入队
	outcomeRequeue
)

// 消费者进程：从清理队列取出删除失败的存储对象，重试删除
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}
	if err := logger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		log.Fatalf("无法打开日志文件: %v", err)
	}

	ctx := context.Background()
	minioStorage, err := storage.NewMinioStorage(ctx, storage.Options{
		Endpoint:  cfg.Minio.Endpoint,
		AccessKey: cfg.Minio.AccessKey,
		SecretKey: cfg.Minio.SecretKey,
		UseSSL:    cfg.Minio.UseSSL,
		Bucket:    cfg.Minio.Bucket,
		PublicURL: cfg.Minio.PublicURL,
	})
	if err != nil {
		logger.Log.Fatalf("消费者无法连接到MinIO: %v", err)
	}

	conn, err := rabbitmq.InitRabbitMQ(cfg.RabbitMQ.URL)
	if err != nil {
		logger.Log.Fatalf("消费者无法连接到RabbitMQ: %v", err)
	}
	defer conn.Close()
	if err := rabbitmq.DeclareQueues(conn); err != nil {
		logger.Log.Fatalf("声明队列失败: %v", err)
	}

	consumeMediaCleanup(conn, minioStorage, rabbitmq.NewPublisher(conn))
}

// 媒体清理消费者：1、通过连接创建channel并注册消费者 2、持续消费消息 3、删除对象，失败则带着次数重新投递 4、根据结果Ack/Nack
func consumeMediaCleanup(conn *amqp.Connection, deleter objectDeleter, publisher republisher) {
	ch, err := conn.Channel()
	if err != nil {
		logger.Log.Fatalf("无法打开Channel: %v", err)
	}
	defer ch.Close()

	msgs, err := ch.Consume(
		rabbitmq.QueueMediaCleanup, // queue
		"",                         // consumer
		false,                      // auto-ack: 手动确认
		false,                      // exclusive
		false,                      // no-local
		false,                      // no-wait
		nil,                        // args
	)
	if err != nil {
		logger.Log.Fatalf("无法注册清理消费者: %v", err)
	}

	logger.Log.Info(" [*] 等待媒体清理消息中. 按 CTRL+C 退出")
	// msgs是通道，通道为空时会阻塞，连接关闭时循环结束
	for d := range msgs {
		switch handleCleanup(context.Background(), deleter, publisher, d.Body) {
		case outcomeAck:
			_ = d.Ack(false)
		case outcomeDrop:
			_ = d.Nack(false, false)
		case outcomeRequeue:
			_ = d.Nack(false, true)
		}
	}
}

func handleCleanup(ctx context.Context, deleter objectDeleter, publisher republisher, body []byte) outcome {
	logCtx := logger.Log.WithField("body", string(body))

	var msg rabbitmq.MediaCleanupMessage
	if err := json.Unmarshal(body, &msg); err != nil || msg.Key == "" {
		logCtx.WithError(err).Error("清理消息解析失败")
		return outcomeDrop
	}
	logCtx = logCtx.WithField("key", msg.Key).WithField("attempts", msg.Attempts)

	delCtx, cancel := context.WithTimeout(ctx, deleteTimeout)
	err := deleter.Delete(delCtx, msg.Key)
	cancel()
	if err == nil {
		logCtx.Info("存储对象清理成功")
		return outcomeAck
	}

	msg.Attempts++
	if msg.Attempts >= maxCleanupAttempts {
		logCtx.WithError(err).Error("【严重】存储对象多次删除失败，需人工处理")
		return outcomeAck
	}
	logCtx.WithError(err).Warn("存储对象删除失败，稍后重试")
	if pubErr := publisher.Publish(ctx, msg); pubErr != nil {
		logCtx.WithError(pubErr).Error("重新投递失败，消息重新入队")
		return outcomeRequeue
	}
	return outcomeAck
}
