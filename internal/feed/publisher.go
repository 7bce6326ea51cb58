// Package feed publishes event mutations to an AMQP exchange so external
// automations can react to them. The feed is advisory: publish failures
// are logged and never fail the mutation that triggered them.
package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"shuttersync/internal/log"
)

// Publisher is what the HTTP layer talks to. NopPublisher stands in when
// no broker is configured.
type Publisher interface {
	PublishEventChange(ctx context.Context, msg *EventChangeMessage)
	Close() error
}

type NopPublisher struct{}

func (NopPublisher) PublishEventChange(context.Context, *EventChangeMessage) {}
func (NopPublisher) Close() error                                            { return nil }

type Client struct {
	conn         *amqp091.Connection
	channel      *amqp091.Channel
	exchangeName string
	queueName    string
	logger       *log.Logger
}

func NewClient(url, exchangeName, queueName string, logger *log.Logger) (*Client, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	client := &Client{
		conn:         conn,
		channel:      channel,
		exchangeName: exchangeName,
		queueName:    queueName,
		logger:       logger.WithComponent(log.ComponentFeed),
	}

	if err := client.setup(); err != nil {
		client.Close()
		return nil, fmt.Errorf("setup exchange and queue: %w", err)
	}

	return client, nil
}

func (c *Client) setup() error {
	err := c.channel.ExchangeDeclare(
		c.exchangeName,
		"direct",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	_, err = c.channel.QueueDeclare(
		c.queueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	err = c.channel.QueueBind(
		c.queueName,
		c.queueName, // routing key matches queue name on a direct exchange
		c.exchangeName,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}

	return nil
}

func (c *Client) PublishEventChange(ctx context.Context, msg *EventChangeMessage) {
	body, err := msg.ToJSON()
	if err != nil {
		c.logger.WarnContext(ctx, "marshal change message failed",
			log.FieldEventID, msg.EventID, log.FieldError, err)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = c.channel.PublishWithContext(
		ctx,
		c.exchangeName,
		c.queueName,
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		c.logger.WarnContext(ctx, "publish change message failed",
			log.FieldOperation, log.OpPublish,
			log.FieldEventID, msg.EventID,
			log.FieldError, err)
		return
	}

	c.logger.DebugContext(ctx, "published change message",
		log.FieldEventID, msg.EventID, "action", msg.Action)
}

func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

var _ Publisher = (*Client)(nil)
