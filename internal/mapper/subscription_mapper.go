package mapper

import (
	"encoding/json"
	"fmt"

	"subscription-be/internal/entity"
	"subscription-be/internal/model"

	"gorm.io/datatypes"
)

type SubscriptionMapper struct{}

func NewSubscriptionMapper() *SubscriptionMapper {
	return &SubscriptionMapper{}
}

func (m *SubscriptionMapper) ToEntity(s *model.Subscription) (*entity.Subscription, error) {
	if s == nil {
		return nil, nil
	}
	var terms entity.PlanTerms
	if len(s.Terms) > 0 {
		if err := json.Unmarshal(s.Terms, &terms); err != nil {
			return nil, fmt.Errorf("decode subscription terms: %w", err)
		}
	}
	return &entity.Subscription{
		Id:                   s.Id,
		UserId:               s.UserId,
		BusinessId:           s.BusinessId,
		PlanId:               s.PlanId,
		Status:               entity.SubscriptionStatus(s.Status),
		StripeSubscriptionId: s.StripeSubscriptionId,
		StripeCustomerId:     s.StripeCustomerId,
		CurrentPeriodStart:   s.CurrentPeriodStart,
		CurrentPeriodEnd:     s.CurrentPeriodEnd,
		CancelAtPeriodEnd:    s.CancelAtPeriodEnd,
		TrialStart:           s.TrialStart,
		TrialEnd:             s.TrialEnd,
		Terms:                terms,
		IsActive:             s.IsActive,
		CreatedAt:            s.CreatedAt,
		UpdatedAt:            s.UpdatedAt,
	}, nil
}

func (m *SubscriptionMapper) ToModel(s *entity.Subscription) (*model.Subscription, error) {
	if s == nil {
		return nil, nil
	}
	terms, err := json.Marshal(s.Terms)
	if err != nil {
		return nil, fmt.Errorf("encode subscription terms: %w", err)
	}
	return &model.Subscription{
		Id:                   s.Id,
		UserId:               s.UserId,
		BusinessId:           s.BusinessId,
		PlanId:               s.PlanId,
		Status:               string(s.Status),
		StripeSubscriptionId: s.StripeSubscriptionId,
		StripeCustomerId:     s.StripeCustomerId,
		CurrentPeriodStart:   s.CurrentPeriodStart,
		CurrentPeriodEnd:     s.CurrentPeriodEnd,
		CancelAtPeriodEnd:    s.CancelAtPeriodEnd,
		TrialStart:           s.TrialStart,
		TrialEnd:             s.TrialEnd,
		Terms:                datatypes.JSON(terms),
		IsActive:             s.IsActive,
		CreatedAt:            s.CreatedAt,
		UpdatedAt:            s.UpdatedAt,
	}, nil
}
