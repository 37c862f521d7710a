package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OwnedBy filters subscriptions by owning user
type OwnedBy struct {
	UserID uuid.UUID
}

func (s OwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

// ActiveOnly keeps only non-canceled subscriptions
type ActiveOnly struct{}

func (s ActiveOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}

// ByStripeSubscriptionRef filters by the external billing reference
type ByStripeSubscriptionRef struct {
	Ref string
}

func (s ByStripeSubscriptionRef) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("stripe_subscription_id = ?", s.Ref)
}
