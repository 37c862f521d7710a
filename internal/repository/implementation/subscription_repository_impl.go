package implementation

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"subscription-be/internal/entity"
	"subscription-be/internal/mapper"
	"subscription-be/internal/model"
	"subscription-be/internal/pkg/apperror"
	"subscription-be/internal/repository/contract"
	"subscription-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type SubscriptionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SubscriptionMapper
}

func NewSubscriptionRepository(db *gorm.DB) contract.SubscriptionRepository {
	return &SubscriptionRepositoryImpl{
		db:     db,
		mapper: mapper.NewSubscriptionMapper(),
	}
}

func (r *SubscriptionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *SubscriptionRepositoryImpl) Create(ctx context.Context, subscription *entity.Subscription) error {
	m, err := r.mapper.ToModel(subscription)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperror.Conflict("an active subscription already exists for this owner")
		}
		return err
	}
	created, err := r.mapper.ToEntity(m)
	if err != nil {
		return err
	}
	*subscription = *created
	return nil
}

func (r *SubscriptionRepositoryImpl) FindById(ctx context.Context, id uuid.UUID) (*entity.Subscription, error) {
	return r.findOne(ctx, specification.ByID{ID: id})
}

func (r *SubscriptionRepositoryImpl) FindActiveByUser(ctx context.Context, userId uuid.UUID) (*entity.Subscription, error) {
	return r.findOne(ctx,
		specification.OwnedBy{UserID: userId},
		specification.ActiveOnly{},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
}

func (r *SubscriptionRepositoryImpl) FindByStripeSubscriptionId(ctx context.Context, ref string) (*entity.Subscription, error) {
	return r.findOne(ctx, specification.ByStripeSubscriptionRef{Ref: ref})
}

func (r *SubscriptionRepositoryImpl) findOne(ctx context.Context, specs ...specification.Specification) (*entity.Subscription, error) {
	var m model.Subscription
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m)
}

func (r *SubscriptionRepositoryImpl) UpdateFields(ctx context.Context, id uuid.UUID, patch entity.SubscriptionPatch) (*entity.Subscription, error) {
	updates, err := PatchToUpdates(patch)
	if err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return r.FindById(ctx, id)
	}
	updates["updated_at"] = time.Now()

	res := r.db.WithContext(ctx).Model(&model.Subscription{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("an active subscription already exists for this owner")
		}
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return r.FindById(ctx, id)
}

// PatchToUpdates converts the explicit partial-update structure into a
// column map. Only non-nil fields appear, so unset fields can never be
// overwritten with zero values.
func PatchToUpdates(patch entity.SubscriptionPatch) (map[string]interface{}, error) {
	updates := map[string]interface{}{}
	if patch.PlanId != nil {
		updates["plan_id"] = *patch.PlanId
	}
	if patch.Status != nil {
		updates["status"] = string(*patch.Status)
	}
	if patch.CurrentPeriodStart != nil {
		updates["current_period_start"] = *patch.CurrentPeriodStart
	}
	if patch.CurrentPeriodEnd != nil {
		updates["current_period_end"] = *patch.CurrentPeriodEnd
	}
	if patch.CancelAtPeriodEnd != nil {
		updates["cancel_at_period_end"] = *patch.CancelAtPeriodEnd
	}
	if patch.IsActive != nil {
		updates["is_active"] = *patch.IsActive
	}
	if patch.Terms != nil {
		terms, err := json.Marshal(patch.Terms)
		if err != nil {
			return nil, err
		}
		updates["terms"] = datatypes.JSON(terms)
	}
	return updates, nil
}
