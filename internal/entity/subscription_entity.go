package entity

import (
	"time"

	"github.com/google/uuid"
)

type SubscriptionStatus string
type BillingInterval string

const (
	SubscriptionStatusIncomplete SubscriptionStatus = "incomplete"
	SubscriptionStatusTrialing   SubscriptionStatus = "trialing"
	SubscriptionStatusActive     SubscriptionStatus = "active"
	SubscriptionStatusPastDue    SubscriptionStatus = "past_due"
	SubscriptionStatusUnpaid     SubscriptionStatus = "unpaid"
	SubscriptionStatusCanceled   SubscriptionStatus = "canceled"

	BillingIntervalMonthly  BillingInterval = "monthly"
	BillingIntervalYearly   BillingInterval = "yearly"
	BillingIntervalLifetime BillingInterval = "lifetime"
)

// KnownStatus reports whether s is one of the recognized lifecycle statuses.
// Remote statuses outside this set are rejected at the boundary.
func KnownStatus(s SubscriptionStatus) bool {
	switch s {
	case SubscriptionStatusIncomplete, SubscriptionStatusTrialing,
		SubscriptionStatusActive, SubscriptionStatusPastDue,
		SubscriptionStatusUnpaid, SubscriptionStatusCanceled:
		return true
	}
	return false
}

type PlanFeature struct {
	Name     string `json:"name"`
	Included bool   `json:"included"`
	Limit    int    `json:"limit"` // -1 = unlimited, 0 = disabled
}

type PlanLimits struct {
	MaxFranchises  int `json:"maxFranchises"`
	MaxForms       int `json:"maxForms"`
	MaxSubmissions int `json:"maxSubmissions"`
	MaxStaff       int `json:"maxStaff"`
	StorageQuotaMB int `json:"storageQuotaMb"`
	APICallQuota   int `json:"apiCallQuota"`
}

// PlanTerms is the snapshot of plan pricing copied onto a subscription
// at create/update time. It is not live-linked to the plan catalog:
// later plan changes do not alter existing subscriptions.
type PlanTerms struct {
	Price    float64         `json:"price"`
	Currency string          `json:"currency"`
	Interval BillingInterval `json:"interval"`
	Features []PlanFeature   `json:"features"`
	Limits   PlanLimits      `json:"limits"`
}

type Subscription struct {
	Id                   uuid.UUID
	UserId               uuid.UUID
	BusinessId           *uuid.UUID
	PlanId               uuid.UUID
	Status               SubscriptionStatus
	StripeSubscriptionId *string
	StripeCustomerId     *string
	CurrentPeriodStart   time.Time
	CurrentPeriodEnd     time.Time
	CancelAtPeriodEnd    bool
	TrialStart           *time.Time
	TrialEnd             *time.Time
	Terms                PlanTerms
	IsActive             bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// SubscriptionPatch is an explicit partial update: nil means "leave
// unchanged". The store applies it as a field-level merge, so zero
// values can never overwrite persisted data by accident.
type SubscriptionPatch struct {
	PlanId             *uuid.UUID
	Status             *SubscriptionStatus
	CurrentPeriodStart *time.Time
	CurrentPeriodEnd   *time.Time
	CancelAtPeriodEnd  *bool
	IsActive           *bool
	Terms              *PlanTerms
}

// IsZero reports whether the patch carries no changes.
func (p SubscriptionPatch) IsZero() bool {
	return p.PlanId == nil && p.Status == nil &&
		p.CurrentPeriodStart == nil && p.CurrentPeriodEnd == nil &&
		p.CancelAtPeriodEnd == nil && p.IsActive == nil && p.Terms == nil
}
