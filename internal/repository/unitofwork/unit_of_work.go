package unitofwork

import (
	"context"

	"subscription-be/internal/repository/contract"
)

// UnitOfWork scopes repositories to one logical operation and,
// optionally, one database transaction.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	SubscriptionRepository() contract.SubscriptionRepository
	PlanRepository() contract.PlanRepository
	BillingEventRepository() contract.BillingEventRepository
}
