package service

import (
	"context"
	"encoding/json"
	"time"

	"subscription-be/internal/dto"
	"subscription-be/pkg/billing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// IBillingAuditRecorder hands verified webhook events off to the audit
// pipeline. Every verified event is recorded, including types the
// lifecycle manager ignores.
type IBillingAuditRecorder interface {
	Record(ctx context.Context, event *billing.Event, rawPayload []byte) error
}

type billingAuditRecorder struct {
	publisher message.Publisher
	topicName string
}

func NewBillingAuditRecorder(topicName string, publisher message.Publisher) IBillingAuditRecorder {
	return &billingAuditRecorder{
		publisher: publisher,
		topicName: topicName,
	}
}

func (r *billingAuditRecorder) Record(ctx context.Context, event *billing.Event, rawPayload []byte) error {
	msgPayload := dto.BillingEventMessage{
		Type:            event.RawType,
		SubscriptionRef: event.SubscriptionRef,
		Payload:         json.RawMessage(rawPayload),
		ReceivedAt:      time.Now().UTC(),
	}
	msgJson, err := json.Marshal(msgPayload)
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), msgJson)
	msg.SetContext(ctx)
	return r.publisher.Publish(r.topicName, msg)
}
