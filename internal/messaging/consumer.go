package messaging

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.uber.org/zap"
)

// DefaultMaxDeliveries bounds how often a failing event is handed to its
// handler before it is dropped.
const DefaultMaxDeliveries = 5

// Handler processes a single event.
type Handler[T any] func(ctx context.Context, event *T) error

// ConsumerOption configures a Consumer.
type ConsumerOption func(*consumerOptions)

type consumerOptions struct {
	maxDeliveries int
}

// WithMaxDeliveries sets how many deliveries a failing event gets. Values
// below 1 are ignored.
func WithMaxDeliveries(n int) ConsumerOption {
	return func(o *consumerOptions) {
		if n > 0 {
			o.maxDeliveries = n
		}
	}
}

// Consumer decodes JSON events from one topic and passes them to a typed
// handler. Malformed payloads are acked and discarded. Handler failures are
// nacked for redelivery until the event has been delivered maxDeliveries
// times, then acked and dropped so a poisoned event cannot spin forever.
type Consumer[T any] struct {
	subscriber    message.Subscriber
	topic         string
	handle        Handler[T]
	logger        *zap.Logger
	maxDeliveries int

	mu         sync.Mutex
	deliveries map[string]int

	cancel context.CancelFunc
	done   chan struct{}
}

func NewConsumer[T any](
	subscriber message.Subscriber,
	topic string,
	handle Handler[T],
	logger *zap.Logger,
	opts ...ConsumerOption,
) *Consumer[T] {
	o := consumerOptions{maxDeliveries: DefaultMaxDeliveries}
	for _, opt := range opts {
		opt(&o)
	}

	return &Consumer[T]{
		subscriber:    subscriber,
		topic:         topic,
		handle:        handle,
		logger:        logger.With(zap.String("topic", topic)),
		maxDeliveries: o.maxDeliveries,
		deliveries:    make(map[string]int),
		done:          make(chan struct{}),
	}
}

func (c *Consumer[T]) Topic() string {
	return c.topic
}

// Start subscribes and processes messages in a background goroutine until
// ctx is cancelled or Shutdown is called.
func (c *Consumer[T]) Start(ctx context.Context) error {
	ctx, c.cancel = context.WithCancel(ctx)

	msgs, err := c.subscriber.Subscribe(ctx, c.topic)
	if err != nil {
		c.cancel()
		close(c.done)

		return err
	}

	go func() {
		defer close(c.done)

		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}

				c.process(ctx, msg)
			}
		}
	}()

	return nil
}

func (c *Consumer[T]) process(ctx context.Context, msg *message.Message) {
	log := c.logger.With(zap.String("message_id", msg.UUID))

	var event T
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		log.Warn("discarding malformed event", zap.Error(err))
		msg.Ack()

		return
	}

	err := c.handle(ctx, &event)
	if err == nil {
		c.forget(msg.UUID)
		msg.Ack()
		log.Debug("processed event")

		return
	}

	attempt := c.recordDelivery(msg.UUID)
	if attempt >= c.maxDeliveries {
		c.forget(msg.UUID)
		log.Error("dropping event after repeated failures",
			zap.Int("deliveries", attempt),
			zap.Error(err),
		)
		msg.Ack()

		return
	}

	log.Warn("event handler failed, requesting redelivery",
		zap.Int("delivery", attempt),
		zap.Error(err),
	)
	msg.Nack()
}

func (c *Consumer[T]) recordDelivery(id string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.deliveries[id]++

	return c.deliveries[id]
}

func (c *Consumer[T]) forget(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.deliveries, id)
}

// Shutdown stops the consumer and waits for the in-flight message to finish.
func (c *Consumer[T]) Shutdown() error {
	if c.cancel != nil {
		c.cancel()
	}

	<-c.done

	return nil
}
