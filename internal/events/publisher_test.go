package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docportal/internal/model"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisher_PublishNotification(t *testing.T) {
	w := &fakeWriter{}
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	p := &KafkaPublisher{writer: w, topic: "document-notifications", now: func() time.Time { return fixed }}

	n := model.Notification{ID: "n-1", RecipientID: "stu-1", Type: model.NotificationApproval, Message: "approved"}
	require.NoError(t, p.PublishNotification(context.Background(), n))

	require.Len(t, w.msgs, 1)
	msg := w.msgs[0]
	assert.Equal(t, "document-notifications", msg.Topic)
	assert.Equal(t, []byte("stu-1"), msg.Key)

	var evt NotificationEvent
	require.NoError(t, json.Unmarshal(msg.Value, &evt))
	assert.Equal(t, EventNotificationCreated, evt.Event)
	assert.Equal(t, "n-1", evt.Notification.ID)
	assert.True(t, fixed.Equal(evt.OccurredAt))

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	p := &KafkaPublisher{writer: &fakeWriter{err: errors.New("broker down")}, topic: "t", now: time.Now}

	err := p.PublishNotification(context.Background(), model.Notification{ID: "n-1"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write message: broker down")
}

func TestNewKafkaPublisher_Validation(t *testing.T) {
	_, err := NewKafkaPublisher(nil, "t")
	assert.Error(t, err)

	_, err = NewKafkaPublisher([]string{"localhost:9092"}, "")
	assert.Error(t, err)

	p, err := NewKafkaPublisher([]string{"localhost:9092"}, "t")
	require.NoError(t, err)
	assert.NoError(t, p.Close())
}

func TestNewKafkaPublisher_FlushesPromptly(t *testing.T) {
	p, err := NewKafkaPublisher([]string{"localhost:9092"}, "document-notifications")
	require.NoError(t, err)
	defer p.Close()

	w, ok := p.writer.(*kafka.Writer)
	require.True(t, ok)
	assert.Equal(t, 10*time.Millisecond, w.BatchTimeout)
	assert.Equal(t, 5*time.Second, w.WriteTimeout)
	assert.IsType(t, &kafka.Hash{}, w.Balancer)
}

func TestNoop(t *testing.T) {
	var p Publisher = Noop{}
	assert.NoError(t, p.PublishNotification(context.Background(), model.Notification{}))
	assert.NoError(t, p.Close())
}
