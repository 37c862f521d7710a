package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/client"
	"github.com/stripe/stripe-go/v74/webhook"
)

// StripeGateway implements Gateway on top of the Stripe API. The client
// is constructed explicitly and injected; no package-global key.
type StripeGateway struct {
	api           *client.API
	webhookSecret string
}

func NewStripeGateway(apiKey, webhookSecret string) *StripeGateway {
	api := &client.API{}
	api.Init(apiKey, nil)
	return &StripeGateway{
		api:           api,
		webhookSecret: webhookSecret,
	}
}

func (g *StripeGateway) CreateSubscription(ctx context.Context, customerId, priceId, paymentMethodId string) (*RemoteSubscription, error) {
	params := &stripe.SubscriptionParams{
		Customer:             stripe.String(customerId),
		DefaultPaymentMethod: stripe.String(paymentMethodId),
		Items: []*stripe.SubscriptionItemsParams{
			{Price: stripe.String(priceId)},
		},
	}
	params.Context = ctx

	sub, err := g.api.Subscriptions.New(params)
	if err != nil {
		return nil, fmt.Errorf("create subscription: %w", err)
	}
	return remoteFromStripe(sub), nil
}

func (g *StripeGateway) UpdateSubscription(ctx context.Context, subscriptionId string, update SubscriptionUpdate) error {
	params := &stripe.SubscriptionParams{}
	params.Context = ctx

	if update.PriceId != nil {
		// A price change replaces the existing (single) subscription item.
		getParams := &stripe.SubscriptionParams{}
		getParams.Context = ctx
		current, err := g.api.Subscriptions.Get(subscriptionId, getParams)
		if err != nil {
			return fmt.Errorf("fetch subscription %s: %w", subscriptionId, err)
		}
		if len(current.Items.Data) == 0 {
			return fmt.Errorf("subscription %s has no items to update", subscriptionId)
		}
		params.Items = []*stripe.SubscriptionItemsParams{
			{
				ID:    stripe.String(current.Items.Data[0].ID),
				Price: update.PriceId,
			},
		}
	}
	if update.CancelAtPeriodEnd != nil {
		params.CancelAtPeriodEnd = update.CancelAtPeriodEnd
	}

	if _, err := g.api.Subscriptions.Update(subscriptionId, params); err != nil {
		return fmt.Errorf("update subscription %s: %w", subscriptionId, err)
	}
	return nil
}

func (g *StripeGateway) CancelSubscription(ctx context.Context, subscriptionId string) error {
	params := &stripe.SubscriptionCancelParams{}
	params.Context = ctx
	if _, err := g.api.Subscriptions.Cancel(subscriptionId, params); err != nil {
		return fmt.Errorf("cancel subscription %s: %w", subscriptionId, err)
	}
	return nil
}

func (g *StripeGateway) VerifyAndParseEvent(payload []byte, signature string) (*Event, error) {
	stripeEvent, err := webhook.ConstructEvent(payload, signature, g.webhookSecret)
	if err != nil {
		return nil, ErrInvalidSignature
	}
	return ParseEvent(stripeEvent)
}

// ParseEvent maps a verified Stripe event onto the closed Event variant.
// Anything other than subscription updated/deleted becomes EventIgnored.
func ParseEvent(stripeEvent stripe.Event) (*Event, error) {
	eventType := strings.TrimPrefix(string(stripeEvent.Type), "customer.")

	switch eventType {
	case string(EventSubscriptionUpdated), string(EventSubscriptionDeleted):
	default:
		return &Event{Type: EventIgnored, RawType: string(stripeEvent.Type)}, nil
	}

	var sub stripe.Subscription
	if err := json.Unmarshal(stripeEvent.Data.Raw, &sub); err != nil {
		return nil, fmt.Errorf("decode subscription payload: %w", err)
	}

	return &Event{
		Type:              EventType(eventType),
		RawType:           string(stripeEvent.Type),
		SubscriptionRef:   sub.ID,
		Status:            string(sub.Status),
		PeriodStart:       time.Unix(sub.CurrentPeriodStart, 0).UTC(),
		PeriodEnd:         time.Unix(sub.CurrentPeriodEnd, 0).UTC(),
		CancelAtPeriodEnd: sub.CancelAtPeriodEnd,
	}, nil
}

func remoteFromStripe(sub *stripe.Subscription) *RemoteSubscription {
	remote := &RemoteSubscription{
		Id:                 sub.ID,
		Status:             string(sub.Status),
		CurrentPeriodStart: time.Unix(sub.CurrentPeriodStart, 0).UTC(),
		CurrentPeriodEnd:   time.Unix(sub.CurrentPeriodEnd, 0).UTC(),
		CancelAtPeriodEnd:  sub.CancelAtPeriodEnd,
	}
	if sub.Customer != nil {
		remote.CustomerId = sub.Customer.ID
	}
	return remote
}
