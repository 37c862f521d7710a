package dto

import (
	"time"

	"subscription-be/internal/entity"

	"github.com/google/uuid"
)

type CreateSubscriptionRequest struct {
	UserId            uuid.UUID  `json:"userId" validate:"required"`
	PlanId            uuid.UUID  `json:"planId" validate:"required"`
	BusinessId        *uuid.UUID `json:"businessId"`
	StripeCustomerId  string     `json:"stripeCustomerId"`
	PaymentMethodId   string     `json:"paymentMethodId"`
}

type FreeTrialRequest struct {
	UserId     uuid.UUID  `json:"userId" validate:"required"`
	PlanId     uuid.UUID  `json:"planId" validate:"required"`
	BusinessId *uuid.UUID `json:"businessId"`
	TrialDays  int        `json:"trialDays" validate:"omitempty,min=1,max=365"`
}

// UpdateSubscriptionRequest uses pointers so that absent fields are
// "unset", not zero values: only supplied fields are applied.
type UpdateSubscriptionRequest struct {
	PlanId            *uuid.UUID                 `json:"planId"`
	Status            *entity.SubscriptionStatus `json:"status"`
	CancelAtPeriodEnd *bool                      `json:"cancelAtPeriodEnd"`
}

type SubscriptionResponse struct {
	Id                   uuid.UUID                 `json:"id"`
	UserId               uuid.UUID                 `json:"userId"`
	BusinessId           *uuid.UUID                `json:"businessId,omitempty"`
	PlanId               uuid.UUID                 `json:"planId"`
	Status               entity.SubscriptionStatus `json:"status"`
	StripeSubscriptionId *string                   `json:"stripeSubscriptionId"`
	StripeCustomerId     *string                   `json:"stripeCustomerId,omitempty"`
	CurrentPeriodStart   time.Time                 `json:"currentPeriodStart"`
	CurrentPeriodEnd     time.Time                 `json:"currentPeriodEnd"`
	CancelAtPeriodEnd    bool                      `json:"cancelAtPeriodEnd"`
	TrialStart           *time.Time                `json:"trialStart,omitempty"`
	TrialEnd             *time.Time                `json:"trialEnd,omitempty"`
	Terms                entity.PlanTerms          `json:"terms"`
	IsActive             bool                      `json:"isActive"`
	CreatedAt            time.Time                 `json:"createdAt"`
	UpdatedAt            time.Time                 `json:"updatedAt"`
}

func SubscriptionToResponse(s *entity.Subscription) *SubscriptionResponse {
	if s == nil {
		return nil
	}
	return &SubscriptionResponse{
		Id:                   s.Id,
		UserId:               s.UserId,
		BusinessId:           s.BusinessId,
		PlanId:               s.PlanId,
		Status:               s.Status,
		StripeSubscriptionId: s.StripeSubscriptionId,
		StripeCustomerId:     s.StripeCustomerId,
		CurrentPeriodStart:   s.CurrentPeriodStart,
		CurrentPeriodEnd:     s.CurrentPeriodEnd,
		CancelAtPeriodEnd:    s.CancelAtPeriodEnd,
		TrialStart:           s.TrialStart,
		TrialEnd:             s.TrialEnd,
		Terms:                s.Terms,
		IsActive:             s.IsActive,
		CreatedAt:            s.CreatedAt,
		UpdatedAt:            s.UpdatedAt,
	}
}
