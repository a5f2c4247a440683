// Package broker provides a RabbitMQ publisher with lifecycle coordination.
// It declares a durable direct exchange whose queue dead-letters rejected
// messages to a companion exchange.
package broker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/JaimeStill/leadpipe/pkg/lifecycle"
)

// Message is a single publication. ID is carried as the AMQP message id.
type Message struct {
	ID          string
	RoutingKey  string
	ContentType string
	Body        []byte
}

// System manages the broker connection and publishes messages.
type System interface {
	// Publish sends a persistent message to the configured exchange.
	// An empty RoutingKey uses the configured default.
	Publish(ctx context.Context, msg Message) error
	// Start registers startup and shutdown hooks with the lifecycle coordinator.
	Start(lc *lifecycle.Coordinator) error
}

type broker struct {
	cfg    Config
	logger *slog.Logger

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

// New creates a broker system. The connection is dialed in the startup hook.
func New(cfg *Config, logger *slog.Logger) System {
	return &broker{
		cfg:    *cfg,
		logger: logger.With("system", "broker"),
	}
}

func (b *broker) Start(lc *lifecycle.Coordinator) error {
	b.logger.Info("starting broker connection")

	lc.OnStartup(func() {
		if err := b.connect(); err != nil {
			b.logger.Error("broker connect failed", "error", err)
			return
		}
		b.logger.Info("broker connection established", "exchange", b.cfg.Exchange)
	})

	lc.OnShutdown(func() {
		b.logger.Info("closing broker connection")

		b.mu.Lock()
		defer b.mu.Unlock()

		if b.ch != nil {
			b.ch.Close()
		}
		if b.conn != nil {
			if err := b.conn.Close(); err != nil {
				b.logger.Error("broker close failed", "error", err)
				return
			}
		}

		b.logger.Info("broker connection closed")
	})

	return nil
}

func (b *broker) Publish(ctx context.Context, msg Message) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.ch == nil || b.ch.IsClosed() {
		return ErrNotReady
	}

	key := msg.RoutingKey
	if key == "" {
		key = b.cfg.RoutingKey
	}

	contentType := msg.ContentType
	if contentType == "" {
		contentType = "application/json"
	}

	pubCtx, cancel := context.WithTimeout(ctx, b.cfg.PublishTimeoutDuration())
	defer cancel()

	err := b.ch.PublishWithContext(pubCtx,
		b.cfg.Exchange,
		key,
		false,
		false,
		amqp.Publishing{
			MessageId:    msg.ID,
			ContentType:  contentType,
			Body:         msg.Body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s: %w", key, err)
	}

	return nil
}

func (b *broker) connect() error {
	conn, err := amqp.DialConfig(b.cfg.URL(), amqp.Config{
		Dial: amqp.DefaultDial(b.cfg.ConnTimeoutDuration()),
	})
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("open channel: %w", err)
	}

	if err := declareTopology(ch, &b.cfg); err != nil {
		ch.Close()
		conn.Close()
		return fmt.Errorf("declare topology: %w", err)
	}

	b.mu.Lock()
	b.conn = conn
	b.ch = ch
	b.mu.Unlock()

	return nil
}

func declareTopology(ch *amqp.Channel, cfg *Config) error {
	if err := ch.ExchangeDeclare(cfg.DeadLetter, "direct", true, false, false, false, nil); err != nil {
		return err
	}

	dlq := cfg.Queue + ".dlq"
	if _, err := ch.QueueDeclare(dlq, true, false, false, false, nil); err != nil {
		return err
	}

	if err := ch.QueueBind(dlq, cfg.RoutingKey, cfg.DeadLetter, false, nil); err != nil {
		return err
	}

	if err := ch.ExchangeDeclare(cfg.Exchange, "direct", true, false, false, false, nil); err != nil {
		return err
	}

	args := amqp.Table{
		"x-dead-letter-exchange":    cfg.DeadLetter,
		"x-dead-letter-routing-key": cfg.RoutingKey,
	}

	if _, err := ch.QueueDeclare(cfg.Queue, true, false, false, false, args); err != nil {
		return err
	}

	return ch.QueueBind(cfg.Queue, cfg.RoutingKey, cfg.Exchange, false, nil)
}
