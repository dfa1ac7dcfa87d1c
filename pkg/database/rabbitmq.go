package database

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"
)

// RabbitRepo 訊息發布的能力介面
type RabbitRepo interface {
	Publish(ctx context.Context, exchange, key string, body []byte) error
	Close() error
}

// RabbitManager 持有 process-wide 的 RabbitMQ 連線。
// channel 不能跨請求共用，每次 Publish 取得自己的 channel 並保證釋放；
// 連線斷掉時以 mutex 保護的 reconnect 重建，避免並發重連產生多條連線。
type RabbitManager struct {
	mu   sync.Mutex
	conn *amqp.Connection

	connectStr    string
	retryCount    int
	retryInterval time.Duration
}

// NewRabbitManager 建立連線管理器並完成第一次連線
func NewRabbitManager(d Connection) (*RabbitManager, error) {
	conn, err := ConnectRabbitMQWithRetry(d)
	if err != nil {
		return nil, err
	}
	return &RabbitManager{
		conn:          conn,
		connectStr:    d.ConnectStr,
		retryCount:    d.RetryCount,
		retryInterval: d.RetryInterval,
	}, nil
}

// ConnectRabbitMQWithRetry 嘗試連線到 RabbitMQ，失敗間隔重試
func ConnectRabbitMQWithRetry(d Connection) (*amqp.Connection, error) {
	var conn *amqp.Connection
	var err error

	for attempt := 1; attempt <= d.RetryCount; attempt++ {
		conn, err = amqp.Dial(d.ConnectStr)
		if err == nil {
			log.Printf("RabbitMQ[%s] 連線成功 (嘗試 %d 次)", d.ConnectStr, attempt)
			return conn, nil
		}

		log.Printf("RabbitMQ[%s] 連線失敗 (嘗試 %d/%d): %v", d.ConnectStr, attempt, d.RetryCount, err)
		time.Sleep(d.RetryInterval)
	}

	return nil, fmt.Errorf("無法連線 RabbitMQ[%s]，經過 %d 次嘗試: %v", d.ConnectStr, d.RetryCount, err)
}

// channel 取得一條請求範圍的 channel，連線已關閉時先重連。
// reconnect 檢查與重建在同一把鎖下，重連是冪等的。
func (m *RabbitManager) channel() (*amqp.Channel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.conn == nil || m.conn.IsClosed() {
		log.Printf("RabbitMQ[%s] 連線已關閉，重新連線", m.connectStr)
		conn, err := ConnectRabbitMQWithRetry(Connection{
			ConnectStr:    m.connectStr,
			RetryCount:    m.retryCount,
			RetryInterval: m.retryInterval,
		})
		if err != nil {
			return nil, err
		}
		m.conn = conn
	}

	return m.conn.Channel()
}

// DeclareQueue 啟動時宣告 durable queue，exchange 非空時一併宣告並綁定
func (m *RabbitManager) DeclareQueue(queue, exchange, routingKey string) error {
	ch, err := m.channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	if _, err := ch.QueueDeclare(
		queue, // queue name
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,   // arguments
	); err != nil {
		return err
	}

	if exchange != "" {
		if err := ch.ExchangeDeclare(exchange, "direct", true, false, false, false, nil); err != nil {
			return err
		}
		if err := ch.QueueBind(queue, routingKey, exchange, false, nil); err != nil {
			return err
		}
	}
	return nil
}

// Publish 以 persistent delivery mode 發布訊息並等待 broker confirm。
// channel 在所有離開路徑上都會關閉。
func (m *RabbitManager) Publish(ctx context.Context, exchange, key string, body []byte) error {
	ch, err := m.channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	if err := ch.Confirm(false); err != nil {
		return err
	}
	confirms := ch.NotifyPublish(make(chan amqp.Confirmation, 1))

	err = ch.Publish(
		exchange,
		key,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    uuid.New().String(),
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return err
	}

	select {
	case confirm, ok := <-confirms:
		if !ok || !confirm.Ack {
			return fmt.Errorf("broker 未確認訊息 (exchange=%s key=%s)", exchange, key)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close 關閉底層連線，process shutdown 時呼叫一次
func (m *RabbitManager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.conn == nil || m.conn.IsClosed() {
		return nil
	}
	return m.conn.Close()
}
