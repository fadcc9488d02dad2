package events

import (
	"context"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

// Queue names double as routing keys on the direct exchange.
const (
	QueueStashBalance = "stash-balance"
	QueueMonthBalance = "month-balance"
)

const publishTimeout = 5 * time.Second

// AMQPPublisher publishes balance messages to a durable direct exchange with
// one durable queue per message type.
type AMQPPublisher struct {
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	exchange string
}

func NewAMQPPublisher(url, exchange string) (*AMQPPublisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	publisher := &AMQPPublisher{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
	}

	if err := publisher.setup(); err != nil {
		publisher.Close()
		return nil, fmt.Errorf("setup exchange and queues: %w", err)
	}

	return publisher, nil
}

func (p *AMQPPublisher) setup() error {
	err := p.channel.ExchangeDeclare(
		p.exchange, // name
		"direct",   // type
		true,       // durable
		false,      // auto-deleted
		false,      // internal
		false,      // no-wait
		nil,        // arguments
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	for _, queue := range []string{QueueStashBalance, QueueMonthBalance} {
		_, err = p.channel.QueueDeclare(
			queue, // name
			true,  // durable
			false, // delete when unused
			false, // exclusive
			false, // no-wait
			nil,   // arguments
		)
		if err != nil {
			return fmt.Errorf("declare queue %s: %w", queue, err)
		}

		// The routing key is the queue name, the exchange is direct.
		err = p.channel.QueueBind(queue, queue, p.exchange, false, nil)
		if err != nil {
			return fmt.Errorf("bind queue %s: %w", queue, err)
		}
	}

	return nil
}

func (p *AMQPPublisher) StashBalanceUpdated(ctx context.Context, message StashBalanceMessage) error {
	body, err := message.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	if err := p.publish(ctx, QueueStashBalance, body); err != nil {
		return err
	}

	log.Debug().
		Str("stash", message.StashID.String()).
		Str("balance", message.Balance.String()).
		Msg("published stash balance message")

	return nil
}

func (p *AMQPPublisher) MonthBalanceUpdated(ctx context.Context, message MonthBalanceMessage) error {
	body, err := message.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	if err := p.publish(ctx, QueueMonthBalance, body); err != nil {
		return err
	}

	log.Debug().
		Str("month", message.Month.String()).
		Str("balance", message.Balance.String()).
		Msg("published month balance message")

	return nil
}

func (p *AMQPPublisher) publish(ctx context.Context, routingKey string, body []byte) error {
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err := p.channel.PublishWithContext(
		ctx,
		p.exchange, // exchange
		routingKey, // routing key
		false,      // mandatory
		false,      // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	return nil
}

func (p *AMQPPublisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
