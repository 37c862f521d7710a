package entity

import (
	"github.com/google/uuid"
)

// Plan is a billing tier definition owned by the plan catalog.
// The lifecycle manager only ever reads plans.
type Plan struct {
	Id            uuid.UUID
	Name          string
	Slug          string
	Description   string
	Price         float64
	Currency      string
	Interval      BillingInterval
	StripePriceId *string
	Features      []PlanFeature
	Limits        PlanLimits
	IsActive      bool
	SortOrder     int
}

// Terms builds the snapshot that gets copied onto a subscription.
func (p *Plan) Terms() PlanTerms {
	return PlanTerms{
		Price:    p.Price,
		Currency: p.Currency,
		Interval: p.Interval,
		Features: p.Features,
		Limits:   p.Limits,
	}
}
