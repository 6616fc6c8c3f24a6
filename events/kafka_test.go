package events

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	mu      sync.Mutex
	msgs    []kafka.Message
	closed  int
	started chan struct{}
	release chan struct{}
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.started != nil {
		w.started <- struct{}{}
	}
	if w.release != nil {
		<-w.release
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed++
	return nil
}

func (w *fakeWriter) written() []kafka.Message {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]kafka.Message(nil), w.msgs...)
}

func TestKafkaPublisherFlushesOnClose(t *testing.T) {
	w := &fakeWriter{}
	p := newKafkaPublisher(w, "hotel-booking", 4)

	require.NoError(t, p.Publish(context.Background(), EventBookingCreated, "b-1", map[string]string{"id": "b-1"}))
	require.NoError(t, p.Publish(context.Background(), EventBookingCanceled, "b-1", map[string]string{"id": "b-1"}))
	require.NoError(t, p.Close())

	msgs := w.written()
	require.Len(t, msgs, 2)
	assert.Equal(t, []byte("b-1"), msgs[0].Key)
	assert.Equal(t, "event_type", msgs[0].Headers[0].Key)
	assert.Equal(t, []byte(EventBookingCreated), msgs[0].Headers[0].Value)

	var env Envelope
	require.NoError(t, json.Unmarshal(msgs[1].Value, &env))
	assert.Equal(t, EventBookingCanceled, env.EventType)
	assert.Equal(t, "hotel-booking", env.Producer)
	assert.Equal(t, 1, w.closed)
}

func TestKafkaPublisherPublishAfterClose(t *testing.T) {
	w := &fakeWriter{}
	p := newKafkaPublisher(w, "hotel-booking", 1)
	require.NoError(t, p.Close())

	assert.NotPanics(t, func() {
		err := p.Publish(context.Background(), EventBookingUpdated, "b-1", nil)
		assert.ErrorIs(t, err, ErrPublisherClosed)
	})
	assert.NoError(t, p.Close())
	assert.Equal(t, 1, w.closed)
}

func TestKafkaPublisherFullBufferHonorsContext(t *testing.T) {
	w := &fakeWriter{started: make(chan struct{}, 2), release: make(chan struct{})}
	p := newKafkaPublisher(w, "hotel-booking", 1)

	// first message is picked up by the writer goroutine and parks there
	require.NoError(t, p.Publish(context.Background(), EventBookingCreated, "b-1", nil))
	<-w.started
	// second fills the buffer
	require.NoError(t, p.Publish(context.Background(), EventBookingCreated, "b-2", nil))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := p.Publish(ctx, EventBookingCreated, "b-3", nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(w.release)
	require.NoError(t, p.Close())
	assert.Len(t, w.written(), 2)
}
