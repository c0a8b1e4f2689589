// Package messaging publica los eventos de pedidos en RabbitMQ (exchange topic).
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/jhoicas/restaurante-api/internal/application/ordering"
	"github.com/jhoicas/restaurante-api/pkg/logger"
)

var _ ordering.EventPublisher = (*Publisher)(nil)

// Routing keys de los eventos publicados.
const (
	RoutingOrderCreated       = "order.created"
	RoutingOrderStatusChanged = "order.status_changed"
)

// channel subconjunto de *amqp.Channel que usa el publicador.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Publisher publica mensajes JSON persistentes en un exchange topic.
type Publisher struct {
	mu       sync.Mutex
	ch       channel
	exchange string
	log      *logger.Logger
	closer   func() error
}

// NewPublisher construye el publicador sobre un canal ya abierto.
func NewPublisher(ch channel, exchange string, log *logger.Logger) *Publisher {
	if log == nil {
		log = logger.Nop()
	}
	return &Publisher{ch: ch, exchange: exchange, log: log.Component("rabbitmq")}
}

// Dial conecta a RabbitMQ, abre un canal y declara el exchange topic durable.
func Dial(url, exchange string, log *logger.Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("conectar a RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("abrir canal: %w", err)
	}
	err = ch.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declarar exchange %s: %w", exchange, err)
	}

	p := NewPublisher(ch, exchange, log)
	p.closer = func() error {
		_ = ch.Close()
		return conn.Close()
	}
	return p, nil
}

// PublishOrderCreated publica order.created.
func (p *Publisher) PublishOrderCreated(ctx context.Context, evt ordering.OrderCreatedEvent) error {
	return p.publish(ctx, RoutingOrderCreated, evt)
}

// PublishOrderStatusChanged publica order.status_changed.
func (p *Publisher) PublishOrderStatusChanged(ctx context.Context, evt ordering.OrderStatusChangedEvent) error {
	return p.publish(ctx, RoutingOrderStatusChanged, evt)
}

func (p *Publisher) publish(ctx context.Context, routingKey string, message any) error {
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("serializar mensaje: %w", err)
	}
	publishing := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	p.mu.Lock()
	err = p.ch.PublishWithContext(ctx, p.exchange, routingKey, false, false, publishing)
	p.mu.Unlock()
	if err != nil {
		return fmt.Errorf("publicar %s: %w", routingKey, err)
	}
	p.log.Debug().
		Str("exchange", p.exchange).
		Str("routing_key", routingKey).
		Int("message_size", len(body)).
		Msg("mensaje publicado")
	return nil
}

// Close cierra canal y conexión si el publicador los abrió.
func (p *Publisher) Close() error {
	if p.closer == nil {
		return nil
	}
	return p.closer()
}
