package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type BillingEventLog struct {
	Id              uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Type            string         `gorm:"type:varchar(100);not null;index"`
	SubscriptionRef string         `gorm:"type:varchar(255);index"`
	Payload         datatypes.JSON `gorm:"type:jsonb"`
	ReceivedAt      time.Time      `gorm:"not null;index"`
}

func (BillingEventLog) TableName() string {
	return "billing_event_logs"
}
