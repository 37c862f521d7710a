package contract

import (
	"context"

	"subscription-be/internal/entity"
	"subscription-be/internal/repository/specification"
)

type BillingEventRepository interface {
	Create(ctx context.Context, event *entity.BillingEventLog) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.BillingEventLog, error)
}
