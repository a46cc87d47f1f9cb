package rabbit

import "context"

// Client is the narrow queue surface the service depends on. Implemented by
// the concrete *AMQPClient type.
type Client interface {
	// Publish sends one message body to the configured exchange with the
	// configured routing key. Content type is always application/json.
	Publish(ctx context.Context, body []byte, headers ...map[string]interface{}) error

	// Consume starts draining the configured queue. The returned channel
	// is closed when the context is canceled or the client shuts down.
	Consume(ctx context.Context) <-chan Delivery

	// Close shuts the channel and connection down cleanly. Safe to call
	// more than once.
	Close() error
}

// Delivery is one consumed message. The consumer decides its fate
// explicitly: Ack removes it, Nack without requeue hands it to the broker's
// dead-letter policy.
type Delivery interface {
	// Body returns the message payload.
	Body() []byte

	// Ack acknowledges the delivery.
	Ack() error

	// Nack rejects the delivery, optionally requeueing it.
	Nack(requeue bool) error
}
