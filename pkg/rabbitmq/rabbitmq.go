package rabbitmq

import (
	"context"
	"encoding/json"

	"github.com/streadway/amqp"
)

const (
	// 遵循：项目名.业务领域.实体/功能
	QueueMediaCleanup = "orion.media_cleanup.queue"
)

// MediaCleanupMessage 一个删除失败、需要后台重试的存储对象
type MediaCleanupMessage struct {
	Key      string `json:"key"`
	Attempts int    `json:"attempts"`
}

// InitRabbitMQ 初始化RabbitMQ连接
func InitRabbitMQ(url string) (*amqp.Connection, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// DeclareQueues 创建用到的队列，有就不用创建（幂等）
func DeclareQueues(conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	// 执行完毕后，这个临时的Channel就被关闭了
	defer ch.Close()
	_, err = ch.QueueDeclare(
		QueueMediaCleanup, // name
		true,              // durable: 队列持久化，RabbitMQ重启后队列本身不会消失
		false,             // autoDelete
		false,             // exclusive
		false,             // noWait
		nil,               // args
	)
	return err
}

// Publisher 往媒体清理队列里投递消息
type Publisher struct {
	conn *amqp.Connection
}

func NewPublisher(conn *amqp.Connection) *Publisher {
	return &Publisher{conn: conn}
}

func (p *Publisher) PublishMediaCleanup(ctx context.Context, key string) error {
	return p.Publish(ctx, MediaCleanupMessage{Key: key})
}

// Publish 为每一个消息建立一个单独的channel，消息之间互不影响
func (p *Publisher) Publish(ctx context.Context, msg MediaCleanupMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ch, err := p.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return ch.Publish(
		"",                // exchange默认交换机
		QueueMediaCleanup, // routing key
		false,             // mandatory
		false,             // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent, // 确保消息持久化
		})
}
