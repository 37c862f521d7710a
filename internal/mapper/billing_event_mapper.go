package mapper

import (
	"encoding/json"

	"subscription-be/internal/entity"
	"subscription-be/internal/model"

	"gorm.io/datatypes"
)

type BillingEventMapper struct{}

func NewBillingEventMapper() *BillingEventMapper {
	return &BillingEventMapper{}
}

func (m *BillingEventMapper) ToEntity(e *model.BillingEventLog) *entity.BillingEventLog {
	if e == nil {
		return nil
	}
	return &entity.BillingEventLog{
		Id:              e.Id,
		Type:            e.Type,
		SubscriptionRef: e.SubscriptionRef,
		Payload:         json.RawMessage(e.Payload),
		ReceivedAt:      e.ReceivedAt,
	}
}

func (m *BillingEventMapper) ToModel(e *entity.BillingEventLog) *model.BillingEventLog {
	if e == nil {
		return nil
	}
	return &model.BillingEventLog{
		Id:              e.Id,
		Type:            e.Type,
		SubscriptionRef: e.SubscriptionRef,
		Payload:         datatypes.JSON(e.Payload),
		ReceivedAt:      e.ReceivedAt,
	}
}
