package implementation

import (
	"context"

	"subscription-be/internal/entity"
	"subscription-be/internal/mapper"
	"subscription-be/internal/model"
	"subscription-be/internal/repository/contract"
	"subscription-be/internal/repository/specification"

	"gorm.io/gorm"
)

type BillingEventRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.BillingEventMapper
}

func NewBillingEventRepository(db *gorm.DB) contract.BillingEventRepository {
	return &BillingEventRepositoryImpl{
		db:     db,
		mapper: mapper.NewBillingEventMapper(),
	}
}

func (r *BillingEventRepositoryImpl) Create(ctx context.Context, event *entity.BillingEventLog) error {
	m := r.mapper.ToModel(event)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*event = *r.mapper.ToEntity(m)
	return nil
}

func (r *BillingEventRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.BillingEventLog, error) {
	var models []*model.BillingEventLog
	query := r.db.WithContext(ctx)
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.BillingEventLog, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}
