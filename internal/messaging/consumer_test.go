package messaging_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/serroba/qrshare/internal/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type linkEvent struct {
	Code string `json:"code"`
	Kind string `json:"type"`
}

type fakeSubscriber struct {
	msgs         chan *message.Message
	subscribeErr error
	mu           sync.Mutex
	closed       bool
}

func newFakeSubscriber() *fakeSubscriber {
	return &fakeSubscriber{msgs: make(chan *message.Message, 10)}
}

func (f *fakeSubscriber) Subscribe(_ context.Context, _ string) (<-chan *message.Message, error) {
	if f.subscribeErr != nil {
		return nil, f.subscribeErr
	}

	return f.msgs, nil
}

func (f *fakeSubscriber) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.closed {
		f.closed = true
		close(f.msgs)
	}

	return nil
}

func linkMessage(t *testing.T, id string, event linkEvent) *message.Message {
	t.Helper()

	payload, err := json.Marshal(event)
	require.NoError(t, err)

	return message.NewMessage(id, payload)
}

// outcome waits for msg to be acked or nacked.
func outcome(t *testing.T, msg *message.Message) string {
	t.Helper()

	select {
	case <-msg.Acked():
		return "ack"
	case <-msg.Nacked():
		return "nack"
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for ack or nack")

		return ""
	}
}

func startConsumer(
	t *testing.T,
	sub message.Subscriber,
	handle messaging.Handler[linkEvent],
	logger *zap.Logger,
	opts ...messaging.ConsumerOption,
) *messaging.Consumer[linkEvent] {
	t.Helper()

	consumer := messaging.NewConsumer(sub, "link.created", handle, logger, opts...)
	require.NoError(t, consumer.Start(context.Background()))
	t.Cleanup(func() { _ = consumer.Shutdown() })

	return consumer
}

func TestConsumer_Start(t *testing.T) {
	t.Run("reports its topic", func(t *testing.T) {
		consumer := startConsumer(t, newFakeSubscriber(),
			func(context.Context, *linkEvent) error { return nil }, zap.NewNop())

		assert.Equal(t, "link.created", consumer.Topic())
	})

	t.Run("subscribe failure leaves a consumer that can be shut down", func(t *testing.T) {
		sub := &fakeSubscriber{subscribeErr: errors.New("no stream")}
		consumer := messaging.NewConsumer(sub, "link.created",
			func(context.Context, *linkEvent) error { return nil }, zap.NewNop())

		require.EqualError(t, consumer.Start(context.Background()), "no stream")
		assert.NoError(t, consumer.Shutdown())
	})
}

func TestConsumer_Process(t *testing.T) {
	t.Run("acks handled events", func(t *testing.T) {
		sub := newFakeSubscriber()
		got := make(chan linkEvent, 1)

		startConsumer(t, sub, func(_ context.Context, e *linkEvent) error {
			got <- *e

			return nil
		}, zap.NewNop())

		msg := linkMessage(t, "m1", linkEvent{Code: "aB3xY9", Kind: "url"})
		sub.msgs <- msg

		assert.Equal(t, "ack", outcome(t, msg))
		assert.Equal(t, linkEvent{Code: "aB3xY9", Kind: "url"}, <-got)
	})

	t.Run("discards malformed payloads", func(t *testing.T) {
		core, logs := observer.New(zapcore.WarnLevel)
		sub := newFakeSubscriber()
		called := false

		startConsumer(t, sub, func(context.Context, *linkEvent) error {
			called = true

			return nil
		}, zap.New(core))

		msg := message.NewMessage("bad", []byte("{not json"))
		sub.msgs <- msg

		assert.Equal(t, "ack", outcome(t, msg))
		assert.False(t, called)
		assert.Equal(t, 1, logs.FilterMessage("discarding malformed event").Len())
	})

	t.Run("nacks failed events until the delivery limit", func(t *testing.T) {
		core, logs := observer.New(zapcore.WarnLevel)
		sub := newFakeSubscriber()

		startConsumer(t, sub, func(context.Context, *linkEvent) error {
			return errors.New("store down")
		}, zap.New(core), messaging.WithMaxDeliveries(3))

		for range 2 {
			msg := linkMessage(t, "retry-me", linkEvent{Code: "c"})
			sub.msgs <- msg
			assert.Equal(t, "nack", outcome(t, msg))
		}

		last := linkMessage(t, "retry-me", linkEvent{Code: "c"})
		sub.msgs <- last
		assert.Equal(t, "ack", outcome(t, last))

		dropped := logs.FilterMessage("dropping event after repeated failures").All()
		require.Len(t, dropped, 1)
		assert.EqualValues(t, 3, dropped[0].ContextMap()["deliveries"])
	})

	t.Run("success resets the delivery count", func(t *testing.T) {
		sub := newFakeSubscriber()

		var calls int

		startConsumer(t, sub, func(context.Context, *linkEvent) error {
			calls++
			if calls == 1 {
				return errors.New("transient")
			}

			return nil
		}, zap.NewNop(), messaging.WithMaxDeliveries(2))

		first := linkMessage(t, "id", linkEvent{})
		sub.msgs <- first
		assert.Equal(t, "nack", outcome(t, first))

		second := linkMessage(t, "id", linkEvent{})
		sub.msgs <- second
		assert.Equal(t, "ack", outcome(t, second))
	})
}

func TestConsumer_ShutdownWithoutMessages(t *testing.T) {
	consumer := messaging.NewConsumer(newFakeSubscriber(), "link.created",
		func(context.Context, *linkEvent) error { return nil }, zap.NewNop())

	require.NoError(t, consumer.Start(context.Background()))
	assert.NoError(t, consumer.Shutdown())
}

func TestConsumer_GoChannelRedelivery(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() { _ = pubSub.Close() })

	var (
		mu       sync.Mutex
		attempts int
	)

	received := make(chan linkEvent, 1)

	startConsumer(t, pubSub, func(_ context.Context, e *linkEvent) error {
		mu.Lock()
		defer mu.Unlock()

		attempts++
		if attempts == 1 {
			return errors.New("first delivery fails")
		}

		received <- *e

		return nil
	}, zap.NewNop())

	publish := messaging.NewPublishFunc[linkEvent](pubSub, "link.created")
	require.NoError(t, publish(context.Background(), &linkEvent{Code: "xyz", Kind: "text"}))

	select {
	case e := <-received:
		assert.Equal(t, "xyz", e.Code)
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for redelivered event")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 2, attempts)
}
