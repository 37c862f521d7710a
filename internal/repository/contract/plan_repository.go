package contract

import (
	"context"

	"subscription-be/internal/entity"
	"subscription-be/internal/repository/specification"

	"github.com/google/uuid"
)

type PlanRepository interface {
	Create(ctx context.Context, plan *entity.Plan) error
	FindById(ctx context.Context, id uuid.UUID) (*entity.Plan, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Plan, error)
}
