package mapper

import (
	"encoding/json"
	"fmt"

	"subscription-be/internal/entity"
	"subscription-be/internal/model"

	"gorm.io/datatypes"
)

type PlanMapper struct{}

func NewPlanMapper() *PlanMapper {
	return &PlanMapper{}
}

func (m *PlanMapper) ToEntity(p *model.Plan) (*entity.Plan, error) {
	if p == nil {
		return nil, nil
	}
	var features []entity.PlanFeature
	if len(p.Features) > 0 {
		if err := json.Unmarshal(p.Features, &features); err != nil {
			return nil, fmt.Errorf("decode plan features: %w", err)
		}
	}
	var limits entity.PlanLimits
	if len(p.Limits) > 0 {
		if err := json.Unmarshal(p.Limits, &limits); err != nil {
			return nil, fmt.Errorf("decode plan limits: %w", err)
		}
	}
	return &entity.Plan{
		Id:            p.Id,
		Name:          p.Name,
		Slug:          p.Slug,
		Description:   p.Description,
		Price:         p.Price,
		Currency:      p.Currency,
		Interval:      entity.BillingInterval(p.Interval),
		StripePriceId: p.StripePriceId,
		Features:      features,
		Limits:        limits,
		IsActive:      p.IsActive,
		SortOrder:     p.SortOrder,
	}, nil
}

func (m *PlanMapper) ToModel(p *entity.Plan) (*model.Plan, error) {
	if p == nil {
		return nil, nil
	}
	features, err := json.Marshal(p.Features)
	if err != nil {
		return nil, fmt.Errorf("encode plan features: %w", err)
	}
	limits, err := json.Marshal(p.Limits)
	if err != nil {
		return nil, fmt.Errorf("encode plan limits: %w", err)
	}
	return &model.Plan{
		Id:            p.Id,
		Name:          p.Name,
		Slug:          p.Slug,
		Description:   p.Description,
		Price:         p.Price,
		Currency:      p.Currency,
		Interval:      string(p.Interval),
		StripePriceId: p.StripePriceId,
		Features:      datatypes.JSON(features),
		Limits:        datatypes.JSON(limits),
		IsActive:      p.IsActive,
		SortOrder:     p.SortOrder,
	}, nil
}
