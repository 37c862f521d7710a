package implementation

import (
	"context"
	"errors"

	"subscription-be/internal/entity"
	"subscription-be/internal/mapper"
	"subscription-be/internal/model"
	"subscription-be/internal/repository/contract"
	"subscription-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PlanRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PlanMapper
}

func NewPlanRepository(db *gorm.DB) contract.PlanRepository {
	return &PlanRepositoryImpl{
		db:     db,
		mapper: mapper.NewPlanMapper(),
	}
}

func (r *PlanRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *PlanRepositoryImpl) Create(ctx context.Context, plan *entity.Plan) error {
	m, err := r.mapper.ToModel(plan)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	created, err := r.mapper.ToEntity(m)
	if err != nil {
		return err
	}
	*plan = *created
	return nil
}

func (r *PlanRepositoryImpl) FindById(ctx context.Context, id uuid.UUID) (*entity.Plan, error) {
	var m model.Plan
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m)
}

func (r *PlanRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Plan, error) {
	var models []*model.Plan
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Plan, len(models))
	for i, m := range models {
		e, err := r.mapper.ToEntity(m)
		if err != nil {
			return nil, err
		}
		entities[i] = e
	}
	return entities, nil
}
