package service

import (
	"context"
	"time"

	"subscription-be/internal/entity"
	"subscription-be/internal/pkg/apperror"
	"subscription-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

// PlanResolver provides read-only access to the plan catalog. The
// lifecycle manager treats it as authoritative and never mutates plans.
type PlanResolver interface {
	Resolve(ctx context.Context, planId uuid.UUID) (*entity.Plan, error)
}

type planService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *gocache.Cache
}

func NewPlanService(uowFactory unitofwork.RepositoryFactory) PlanResolver {
	return &planService{
		uowFactory: uowFactory,
		cache:      gocache.New(5*time.Minute, 10*time.Minute),
	}
}

func (s *planService) Resolve(ctx context.Context, planId uuid.UUID) (*entity.Plan, error) {
	if cached, ok := s.cache.Get(planId.String()); ok {
		return cached.(*entity.Plan), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	plan, err := uow.PlanRepository().FindById(ctx, planId)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	if plan == nil {
		return nil, apperror.NotFound("plan")
	}

	s.cache.Set(planId.String(), plan, gocache.DefaultExpiration)
	return plan, nil
}
