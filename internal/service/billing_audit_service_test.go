package service

import (
	"context"
	"testing"
	"time"

	"subscription-be/pkg/billing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBillingAudit_RecorderToConsumerRoundtrip(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	defer pubSub.Close()

	events := &fakeBillingEventRepo{}
	uow := &fakeUnitOfWork{subs: newFakeSubscriptionRepo(), events: events}
	factory := &fakeFactory{uow: uow}

	consumer := NewConsumerService(pubSub, "billing.events.test", factory)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, consumer.Consume(ctx))

	recorder := NewBillingAuditRecorder("billing.events.test", pubSub)
	event := &billing.Event{
		Type:            billing.EventSubscriptionUpdated,
		RawType:         "customer.subscription.updated",
		SubscriptionRef: "sub_123",
	}
	require.NoError(t, recorder.Record(ctx, event, []byte(`{"id":"evt_1"}`)))

	require.Eventually(t, func() bool {
		return len(events.logs) == 1
	}, 2*time.Second, 10*time.Millisecond)

	logged := events.logs[0]
	assert.Equal(t, "customer.subscription.updated", logged.Type)
	assert.Equal(t, "sub_123", logged.SubscriptionRef)
	assert.JSONEq(t, `{"id":"evt_1"}`, string(logged.Payload))
	assert.False(t, logged.ReceivedAt.IsZero())
}

func TestBillingAudit_MalformedMessageIsAcked(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	defer pubSub.Close()

	events := &fakeBillingEventRepo{}
	uow := &fakeUnitOfWork{subs: newFakeSubscriptionRepo(), events: events}

	consumer := NewConsumerService(pubSub, "billing.events.test", &fakeFactory{uow: uow})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, consumer.Consume(ctx))

	require.NoError(t, publishRaw(pubSub, "billing.events.test", []byte("not json")))

	// Give the consumer a moment; a malformed message must not persist.
	time.Sleep(100 * time.Millisecond)
	assert.Empty(t, events.logs)
}

func publishRaw(pubSub *gochannel.GoChannel, topic string, payload []byte) error {
	return pubSub.Publish(topic, message.NewMessage(watermill.NewUUID(), payload))
}
