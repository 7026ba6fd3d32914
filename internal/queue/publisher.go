package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Publisher публикует события бронирования в RabbitMQ.
// Ошибки публикации логируются и возвращаются вызывающей стороне, которая
// их игнорирует: событие - побочный эффект, оно не должно ронять запрос.
type Publisher struct {
	url string
	log Logger

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel

	declared map[string]bool
}

// NewPublisher создает публикатор и устанавливает соединение
func NewPublisher(url string, log Logger) (*Publisher, error) {
	p := &Publisher{
		url:      url,
		log:      log,
		declared: make(map[string]bool),
	}

	if err := p.connect(); err != nil {
		return nil, fmt.Errorf("queue: initial connect: %w", err)
	}

	return p, nil
}

// Close закрывает канал и соединение
func (p *Publisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}

// BookingCreated публикует событие создания бронирования
func (p *Publisher) BookingCreated(ctx context.Context, event BookingCreatedEvent) error {
	return p.publish(ctx, QueueBookingCreated, event)
}

// BookingCancelled публикует событие отмены бронирования
func (p *Publisher) BookingCancelled(ctx context.Context, event BookingCancelledEvent) error {
	return p.publish(ctx, QueueBookingCancelled, event)
}

func (p *Publisher) connect() error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return err
	}

	p.conn = conn
	p.ch = ch
	p.declared = make(map[string]bool)
	return nil
}

// publish сериализует событие и отправляет его в durable-очередь.
// При закрытом соединении выполняется одна попытка переподключения.
func (p *Publisher) publish(ctx context.Context, queueName string, event interface{}) error {
	body, err := json.Marshal(event)
	if err != nil {
		p.log.Error("queue: marshal event for %s: %v", queueName, err)
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn == nil || p.conn.IsClosed() {
		p.log.Warn("queue: connection lost, reconnecting")
		if err := p.connect(); err != nil {
			p.log.Error("queue: reconnect failed: %v", err)
			return err
		}
	}

	// Очередь durable, сообщения persistent - переживают рестарт брокера
	if !p.declared[queueName] {
		if _, err := p.ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
			p.log.Error("queue: declare %s failed: %v", queueName, err)
			return err
		}
		p.declared[queueName] = true
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := p.ch.PublishWithContext(ctx, "", queueName, false, false, pub); err != nil {
		p.log.Error("queue: publish to %s failed: %v", queueName, err)
		return err
	}

	return nil
}
