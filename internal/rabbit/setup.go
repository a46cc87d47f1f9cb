package rabbit

import (
	"context"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// AMQPClient wraps one AMQP connection and channel. It implements Client.
type AMQPClient struct {
	cfg Config

	mu      sync.RWMutex
	conn    *amqp.Connection
	channel *amqp.Channel

	shutdown  chan struct{}
	closeOnce sync.Once
}

// NewClient dials the broker and, for consumers, declares the topology.
func NewClient(cfg Config) (*AMQPClient, error) {
	cfg = cfg.withDefaults()

	conn, err := amqp.DialConfig(cfg.URL, amqp.Config{
		Dial: amqp.DefaultDial(cfg.DialTimeout),
	})
	if err != nil {
		return nil, fmt.Errorf("dialing broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("opening channel: %w", err)
	}

	c := &AMQPClient{
		cfg:      cfg,
		conn:     conn,
		channel:  ch,
		shutdown: make(chan struct{}),
	}

	if cfg.Declare {
		if err := c.declareTopology(); err != nil {
			c.Close()
			return nil, err
		}
	}

	if cfg.PrefetchCount > 0 {
		if err := ch.Qos(cfg.PrefetchCount, 0, false); err != nil {
			c.Close()
			return nil, fmt.Errorf("setting prefetch: %w", err)
		}
	}

	return c, nil
}

// declareTopology declares the exchange, queue, binding and, when
// configured, the dead-letter pair. All declarations are durable.
func (c *AMQPClient) declareTopology() error {
	if err := c.channel.ExchangeDeclare(
		c.cfg.Exchange, c.cfg.ExchangeType,
		true, false, false, false, nil,
	); err != nil {
		return fmt.Errorf("declaring exchange: %w", err)
	}

	queueArgs := amqp.Table{}
	dl := c.cfg.DeadLetter
	if dl.Exchange != "" {
		if err := c.channel.ExchangeDeclare(
			dl.Exchange, "direct",
			true, false, false, false, nil,
		); err != nil {
			return fmt.Errorf("declaring dead-letter exchange: %w", err)
		}
		if _, err := c.channel.QueueDeclare(
			dl.Queue, true, false, false, false, nil,
		); err != nil {
			return fmt.Errorf("declaring dead-letter queue: %w", err)
		}
		if err := c.channel.QueueBind(
			dl.Queue, dl.RoutingKey, dl.Exchange, false, nil,
		); err != nil {
			return fmt.Errorf("binding dead-letter queue: %w", err)
		}
		queueArgs["x-dead-letter-exchange"] = dl.Exchange
		queueArgs["x-dead-letter-routing-key"] = dl.RoutingKey
	}

	if _, err := c.channel.QueueDeclare(
		c.cfg.Queue, true, false, false, false, queueArgs,
	); err != nil {
		return fmt.Errorf("declaring queue: %w", err)
	}
	if err := c.channel.QueueBind(
		c.cfg.Queue, c.cfg.RoutingKey, c.cfg.Exchange, false, nil,
	); err != nil {
		return fmt.Errorf("binding queue: %w", err)
	}
	return nil
}

// Publish sends one JSON message to the configured exchange.
func (c *AMQPClient) Publish(ctx context.Context, body []byte, headers ...map[string]interface{}) error {
	var hdr amqp.Table
	if len(headers) > 0 && headers[0] != nil {
		hdr = amqp.Table(headers[0])
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.channel.PublishWithContext(ctx,
		c.cfg.Exchange,
		c.cfg.RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			Headers:      hdr,
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
}

// Consume drains the configured queue into the returned channel. Deliveries
// are not auto-acked: the caller decides per message.
func (c *AMQPClient) Consume(ctx context.Context) <-chan Delivery {
	out := make(chan Delivery, 64)

	go func() {
		defer close(out)
	outerLoop:
		for {
			select {
			case <-ctx.Done():
				return
			case <-c.shutdown:
				return
			default:
			}

			c.mu.RLock()
			msgs, err := c.channel.Consume(
				c.cfg.Queue,
				"",    // consumer tag
				false, // autoAck
				false, // exclusive
				false, // noLocal
				false, // noWait
				nil,
			)
			c.mu.RUnlock()
			if err != nil {
				select {
				case <-ctx.Done():
					return
				case <-c.shutdown:
					return
				case <-time.After(250 * time.Millisecond):
					continue
				}
			}

			for {
				select {
				case <-ctx.Done():
					return
				case <-c.shutdown:
					return
				case msg, ok := <-msgs:
					if !ok {
						// Channel closed underneath us; re-establish.
						continue outerLoop
					}
					out <- &amqpDelivery{delivery: msg}
				}
			}
		}
	}()

	return out
}

// Close shuts down the channel and connection. Safe to call repeatedly.
func (c *AMQPClient) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.shutdown)
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.channel != nil {
			err = c.channel.Close()
		}
		if c.conn != nil {
			if cerr := c.conn.Close(); err == nil {
				err = cerr
			}
		}
	})
	return err
}

// amqpDelivery adapts one amqp delivery to the Delivery interface.
type amqpDelivery struct {
	delivery amqp.Delivery
}

func (d *amqpDelivery) Body() []byte {
	return d.delivery.Body
}

func (d *amqpDelivery) Ack() error {
	return d.delivery.Ack(false)
}

func (d *amqpDelivery) Nack(requeue bool) error {
	return d.delivery.Nack(false, requeue)
}
