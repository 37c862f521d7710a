package billing

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stripe/stripe-go/v74"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWebhookSecret = "whsec_test_secret"

// signPayload computes the provider's signature header scheme:
// HMAC-SHA256 over "<timestamp>.<payload>" keyed with the endpoint secret.
func signPayload(payload []byte, secret string) string {
	ts := time.Now().Unix()
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts, payload)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func subscriptionEventPayload(t *testing.T, eventType string) []byte {
	t.Helper()
	payload, err := json.Marshal(map[string]interface{}{
		"id":   "evt_test_1",
		"type": eventType,
		"data": map[string]interface{}{
			"object": map[string]interface{}{
				"id":                   "sub_test_1",
				"status":               "past_due",
				"current_period_start": 1767225600,
				"current_period_end":   1769904000,
				"cancel_at_period_end": true,
			},
		},
	})
	require.NoError(t, err)
	return payload
}

func TestVerifyAndParseEvent_ValidSignature(t *testing.T) {
	gw := NewStripeGateway("sk_test_key", testWebhookSecret)
	payload := subscriptionEventPayload(t, "customer.subscription.updated")

	event, err := gw.VerifyAndParseEvent(payload, signPayload(payload, testWebhookSecret))
	require.NoError(t, err)

	assert.Equal(t, EventSubscriptionUpdated, event.Type)
	assert.Equal(t, "customer.subscription.updated", event.RawType)
	assert.Equal(t, "sub_test_1", event.SubscriptionRef)
	assert.Equal(t, "past_due", event.Status)
	assert.Equal(t, time.Unix(1767225600, 0).UTC(), event.PeriodStart)
	assert.Equal(t, time.Unix(1769904000, 0).UTC(), event.PeriodEnd)
	assert.True(t, event.CancelAtPeriodEnd)
}

func TestVerifyAndParseEvent_TamperedPayload(t *testing.T) {
	gw := NewStripeGateway("sk_test_key", testWebhookSecret)
	payload := subscriptionEventPayload(t, "customer.subscription.updated")
	header := signPayload(payload, testWebhookSecret)

	tampered := append([]byte(nil), payload...)
	tampered[len(tampered)-2] = 'X'

	_, err := gw.VerifyAndParseEvent(tampered, header)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerifyAndParseEvent_WrongSecret(t *testing.T) {
	gw := NewStripeGateway("sk_test_key", testWebhookSecret)
	payload := subscriptionEventPayload(t, "customer.subscription.updated")

	_, err := gw.VerifyAndParseEvent(payload, signPayload(payload, "whsec_other"))
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestParseEvent_EventTypes(t *testing.T) {
	tests := []struct {
		name     string
		rawType  string
		wantType EventType
	}{
		{"customer prefixed update", "customer.subscription.updated", EventSubscriptionUpdated},
		{"bare update", "subscription.updated", EventSubscriptionUpdated},
		{"customer prefixed delete", "customer.subscription.deleted", EventSubscriptionDeleted},
		{"invoice event ignored", "invoice.payment_succeeded", EventIgnored},
		{"unknown event ignored", "some.future.event", EventIgnored},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := json.Marshal(map[string]interface{}{"id": "sub_1", "status": "active"})
			require.NoError(t, err)

			event, err := ParseEvent(stripe.Event{
				Type: tt.rawType,
				Data: &stripe.EventData{Raw: raw},
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, event.Type)
			assert.Equal(t, tt.rawType, event.RawType)
		})
	}
}
