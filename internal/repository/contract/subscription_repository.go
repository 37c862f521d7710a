package contract

import (
	"context"

	"subscription-be/internal/entity"

	"github.com/google/uuid"
)

// SubscriptionRepository is the subscription record store. Finders
// return (nil, nil) when no record matches; errors are reserved for
// storage failures.
type SubscriptionRepository interface {
	Create(ctx context.Context, subscription *entity.Subscription) error
	FindById(ctx context.Context, id uuid.UUID) (*entity.Subscription, error)
	FindActiveByUser(ctx context.Context, userId uuid.UUID) (*entity.Subscription, error)
	FindByStripeSubscriptionId(ctx context.Context, ref string) (*entity.Subscription, error)
	// UpdateFields applies a field-level merge of the non-nil patch
	// fields and bumps updated_at. Returns (nil, nil) when the record
	// does not exist.
	UpdateFields(ctx context.Context, id uuid.UUID, patch entity.SubscriptionPatch) (*entity.Subscription, error)
}
