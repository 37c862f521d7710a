// Package billing wraps the external payment provider. The rest of the
// system depends only on the Gateway interface so a fake can stand in
// for the provider in tests.
package billing

import (
	"context"
	"errors"
	"time"
)

// ErrInvalidSignature is returned when an inbound webhook payload fails
// cryptographic verification. The payload must not be processed.
var ErrInvalidSignature = errors.New("invalid webhook signature")

// RemoteSubscription is the provider's view of a subscription.
type RemoteSubscription struct {
	Id                 string
	CustomerId         string
	Status             string
	CurrentPeriodStart time.Time
	CurrentPeriodEnd   time.Time
	CancelAtPeriodEnd  bool
}

// SubscriptionUpdate carries the independently optional remote changes.
type SubscriptionUpdate struct {
	PriceId           *string
	CancelAtPeriodEnd *bool
}

type EventType string

const (
	EventSubscriptionUpdated EventType = "subscription.updated"
	EventSubscriptionDeleted EventType = "subscription.deleted"
	// EventIgnored covers every other event type the provider may send.
	// Unknown types are accepted and skipped, never an error.
	EventIgnored EventType = "ignored"
)

// Event is the closed variant over the provider notifications the
// lifecycle manager understands. Fields beyond these are discarded at
// this boundary.
type Event struct {
	Type              EventType
	RawType           string
	SubscriptionRef   string
	Status            string
	PeriodStart       time.Time
	PeriodEnd         time.Time
	CancelAtPeriodEnd bool
}

type Gateway interface {
	// CreateSubscription creates a remote subscription. Only called when
	// a customer reference and payment method are both available.
	CreateSubscription(ctx context.Context, customerId, priceId, paymentMethodId string) (*RemoteSubscription, error)
	// UpdateSubscription applies the supplied partial changes remotely.
	UpdateSubscription(ctx context.Context, subscriptionId string, update SubscriptionUpdate) error
	// CancelSubscription terminates the remote subscription immediately.
	CancelSubscription(ctx context.Context, subscriptionId string) error
	// VerifyAndParseEvent verifies payload authenticity against the
	// signature header before trusting any field. Fails with
	// ErrInvalidSignature on mismatch.
	VerifyAndParseEvent(payload []byte, signature string) (*Event, error)
}
