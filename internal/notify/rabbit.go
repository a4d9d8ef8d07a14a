// Package notify publishes submission state changes to RabbitMQ so other
// services can follow a session's progress.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/muhammadolammi/careerpath/internal/career"
	"github.com/streadway/amqp"
)

const Exchange = "session_updates"

// Update is the JSON body of a published message.
type Update struct {
	SessionID string        `json:"session_id"`
	Status    career.Status `json:"status"`
	Message   string        `json:"message"`
	Timestamp time.Time     `json:"timestamp"`
}

// Rabbit implements career.EventSink on a topic exchange. Each update is
// routed as session.<id>.
type Rabbit struct {
	conn *amqp.Connection
	now  func() time.Time
}

// Dial connects to the broker and declares the exchange.
func Dial(url string) (*Rabbit, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("error connecting to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("error opening rabbitmq channel: %w", err)
	}
	defer ch.Close()

	err = ch.ExchangeDeclare(
		Exchange, // name
		"topic",  // kind
		true,     // durable
		false,    // auto-delete
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	return &Rabbit{conn: conn, now: time.Now}, nil
}

func (r *Rabbit) Publish(_ context.Context, ev career.Event) error {
	ch, err := r.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	msg, err := encode(ev, r.now())
	if err != nil {
		return err
	}
	return ch.Publish(
		Exchange,
		RoutingKey(ev.SessionID),
		false,
		false,
		msg,
	)
}

func (r *Rabbit) Close() error {
	return r.conn.Close()
}

func RoutingKey(sessionID string) string {
	return fmt.Sprintf("session.%s", sessionID)
}

func encode(ev career.Event, now time.Time) (amqp.Publishing, error) {
	body, err := json.Marshal(Update{
		SessionID: ev.SessionID,
		Status:    ev.Status,
		Message:   ev.Message,
		Timestamp: now.UTC(),
	})
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("failed to marshal session update: %w", err)
	}
	return amqp.Publishing{
		ContentType: "application/json",
		Timestamp:   now.UTC(),
		Body:        body,
	}, nil
}
