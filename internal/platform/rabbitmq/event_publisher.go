package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"gopherblog/internal/model"
)

// PostEventPublisher pushes post mutation events onto a durable queue so
// that consumers (cache invalidation, future audit) stay off the request
// path.
type PostEventPublisher struct {
	conn      *amqp.Connection
	queueName string
}

func NewPostEventPublisher(conn *amqp.Connection, queueName string) *PostEventPublisher {
	return &PostEventPublisher{
		conn:      conn,
		queueName: queueName,
	}
}

func (p *PostEventPublisher) Publish(ctx context.Context, event model.PostEvent) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("open rabbitmq channel failed: %w", err)
	}
	defer ch.Close()

	_, err = ch.QueueDeclare(
		p.queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare queue failed: %w", err)
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal post event failed: %w", err)
	}

	if err := ch.PublishWithContext(
		ctx,
		"",
		p.queueName,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         payload,
			DeliveryMode: amqp.Persistent,
		},
	); err != nil {
		return fmt.Errorf("publish post event failed: %w", err)
	}
	return nil
}
