package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"subscription-be/internal/dto"
	"subscription-be/internal/entity"
	"subscription-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the audit bus and writes each billing event
// into the append-only billing_event_logs table.
type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.BillingEventMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal billing event message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	receivedAt := payload.ReceivedAt
	if receivedAt.IsZero() {
		receivedAt = time.Now().UTC()
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	err := uow.BillingEventRepository().Create(ctx, &entity.BillingEventLog{
		Id:              uuid.New(),
		Type:            payload.Type,
		SubscriptionRef: payload.SubscriptionRef,
		Payload:         payload.Payload,
		ReceivedAt:      receivedAt,
	})
	if err != nil {
		log.Printf("[ERROR] Failed to persist billing event log (type %s): %v", payload.Type, err)
		msg.Nack() // Nack for retriable errors
		return
	}

	msg.Ack()
}
