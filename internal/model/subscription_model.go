package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Subscription struct {
	Id                   uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId               uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:uniq_active_owner,where:is_active"`
	BusinessId           *uuid.UUID `gorm:"type:uuid;index;uniqueIndex:uniq_active_owner,where:is_active"`
	PlanId               uuid.UUID  `gorm:"type:uuid;not null;index"`
	Status               string     `gorm:"type:varchar(50);not null"`
	StripeSubscriptionId *string    `gorm:"type:varchar(255);uniqueIndex"`
	StripeCustomerId     *string    `gorm:"type:varchar(255);index"`
	CurrentPeriodStart   time.Time  `gorm:"not null"`
	CurrentPeriodEnd     time.Time  `gorm:"not null"`
	CancelAtPeriodEnd    bool       `gorm:"default:false"`
	TrialStart           *time.Time
	TrialEnd             *time.Time
	// Plan terms snapshot at create/update time (price, currency,
	// interval, features, limits) stored as JSONB.
	Terms     datatypes.JSON `gorm:"type:jsonb"`
	IsActive  bool           `gorm:"not null;default:true"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
