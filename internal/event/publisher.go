// Package event publishes booking domain events to a message broker so
// downstream consumers (notifications, analytics) can react without querying
// the primary database.
package event

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	ReservationConfirmedQueue = "reservation.confirmed"
	ShowtimeCreatedQueue      = "showtime.created"
)

type ReservationConfirmedEvent struct {
	ReservationID string    `json:"reservation_id"`
	ShowtimeID    int       `json:"showtime_id"`
	ConfirmedAt   time.Time `json:"confirmed_at"`
}

type ShowtimeCreatedEvent struct {
	ShowtimeID   int       `json:"showtime_id"`
	MovieID      string    `json:"movie_id"`
	AuditoriumID int       `json:"auditorium_id"`
	SessionDate  time.Time `json:"session_date"`
}

type Publisher interface {
	Publish(ctx context.Context, queue string, payload any) error
	Close() error
}

// AMQPPublisher publishes JSON messages to durable queues on the default
// exchange.
type AMQPPublisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

func NewAMQPPublisher(url string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	for _, queue := range []string{ReservationConfirmedQueue, ShowtimeCreatedQueue} {
		_, err = channel.QueueDeclare(queue, true, false, false, false, nil)
		if err != nil {
			channel.Close()
			conn.Close()
			return nil, err
		}
	}

	return &AMQPPublisher{
		conn:    conn,
		channel: channel,
	}, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, queue string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return p.channel.PublishWithContext(ctx, "", queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         body,
	})
}

func (p *AMQPPublisher) Close() error {
	if err := p.channel.Close(); err != nil {
		p.conn.Close()
		return err
	}

	return p.conn.Close()
}

// NopPublisher is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, any) error { return nil }

func (NopPublisher) Close() error { return nil }
