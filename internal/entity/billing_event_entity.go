package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// BillingEventLog is an append-only audit record of every verified
// webhook event received from the billing provider, including event
// types the lifecycle manager ignores.
type BillingEventLog struct {
	Id              uuid.UUID
	Type            string
	SubscriptionRef string
	Payload         json.RawMessage
	ReceivedAt      time.Time
}
