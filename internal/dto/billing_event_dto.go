package dto

import (
	"encoding/json"
	"time"
)

// BillingEventMessage travels over the in-process audit bus from the
// webhook handler to the persistence consumer.
type BillingEventMessage struct {
	Type            string          `json:"type"`
	SubscriptionRef string          `json:"subscriptionRef"`
	Payload         json.RawMessage `json:"payload"`
	ReceivedAt      time.Time       `json:"receivedAt"`
}
