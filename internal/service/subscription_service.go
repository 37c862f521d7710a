package service

import (
	"context"
	"errors"
	"time"

	"subscription-be/internal/dto"
	"subscription-be/internal/entity"
	"subscription-be/internal/pkg/apperror"
	"subscription-be/internal/pkg/logger"
	"subscription-be/internal/repository/unitofwork"
	"subscription-be/pkg/billing"
	"subscription-be/pkg/events"

	"github.com/google/uuid"
)

// EventPublisher is the outbound domain event bus. Publishing is
// best-effort: a failure is logged, never surfaced to the caller.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type ISubscriptionService interface {
	Create(ctx context.Context, req *dto.CreateSubscriptionRequest) (*dto.SubscriptionResponse, error)
	StartFreeTrial(ctx context.Context, req *dto.FreeTrialRequest) (*dto.SubscriptionResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateSubscriptionRequest) (*dto.SubscriptionResponse, error)
	Cancel(ctx context.Context, id uuid.UUID) error
	GetActiveByUser(ctx context.Context, userId uuid.UUID) (*dto.SubscriptionResponse, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

type subscriptionService struct {
	uowFactory       unitofwork.RepositoryFactory
	plans            PlanResolver
	billing          billing.Gateway
	eventPublisher   EventPublisher
	auditRecorder    IBillingAuditRecorder
	logger           logger.ILogger
	defaultTrialDays int

	// Injectable clock so period arithmetic is exact under test.
	now func() time.Time
}

func NewSubscriptionService(
	uowFactory unitofwork.RepositoryFactory,
	plans PlanResolver,
	billingGateway billing.Gateway,
	eventPublisher EventPublisher,
	auditRecorder IBillingAuditRecorder,
	log logger.ILogger,
	defaultTrialDays int,
) ISubscriptionService {
	if defaultTrialDays <= 0 {
		defaultTrialDays = 14
	}
	return &subscriptionService{
		uowFactory:       uowFactory,
		plans:            plans,
		billing:          billingGateway,
		eventPublisher:   eventPublisher,
		auditRecorder:    auditRecorder,
		logger:           log,
		defaultTrialDays: defaultTrialDays,
		now:              time.Now,
	}
}

func (s *subscriptionService) Create(ctx context.Context, req *dto.CreateSubscriptionRequest) (*dto.SubscriptionResponse, error) {
	if req.UserId == uuid.Nil || req.PlanId == uuid.Nil {
		return nil, apperror.Validation("userId and planId are required")
	}

	plan, err := s.plans.Resolve(ctx, req.PlanId)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	sub := &entity.Subscription{
		Id:         uuid.New(),
		UserId:     req.UserId,
		BusinessId: req.BusinessId,
		PlanId:     plan.Id,
		Terms:      plan.Terms(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	// A remote counterpart is created only when the customer reference,
	// a payment method and the plan's remote price are all available.
	// Everything else stays local-only with a 30-day default period.
	if req.StripeCustomerId != "" && req.PaymentMethodId != "" && plan.StripePriceId != nil {
		remote, err := s.billing.CreateSubscription(ctx, req.StripeCustomerId, *plan.StripePriceId, req.PaymentMethodId)
		if err != nil {
			return nil, apperror.Upstream("create", err)
		}
		customerId := req.StripeCustomerId
		sub.StripeSubscriptionId = &remote.Id
		sub.StripeCustomerId = &customerId
		sub.Status = entity.SubscriptionStatus(remote.Status)
		sub.CurrentPeriodStart = remote.CurrentPeriodStart
		sub.CurrentPeriodEnd = remote.CurrentPeriodEnd
		sub.CancelAtPeriodEnd = remote.CancelAtPeriodEnd
	} else {
		sub.Status = entity.SubscriptionStatusActive
		sub.CurrentPeriodStart = now
		sub.CurrentPeriodEnd = now.Add(30 * 24 * time.Hour)
	}
	sub.IsActive = sub.Status != entity.SubscriptionStatusCanceled

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.SubscriptionRepository().Create(ctx, sub); err != nil {
		var conflict *apperror.ConflictError
		if errors.As(err, &conflict) {
			return nil, err
		}
		return nil, apperror.Storage(err)
	}

	s.publish(ctx, "SUBSCRIPTION_CREATED", sub)
	return dto.SubscriptionToResponse(sub), nil
}

func (s *subscriptionService) StartFreeTrial(ctx context.Context, req *dto.FreeTrialRequest) (*dto.SubscriptionResponse, error) {
	if req.UserId == uuid.Nil || req.PlanId == uuid.Nil {
		return nil, apperror.Validation("userId and planId are required")
	}

	plan, err := s.plans.Resolve(ctx, req.PlanId)
	if err != nil {
		return nil, err
	}

	trialDays := req.TrialDays
	if trialDays <= 0 {
		trialDays = s.defaultTrialDays
	}

	now := s.now().UTC()
	trialEnd := now.Add(time.Duration(trialDays) * 24 * time.Hour)

	// Trials are never pushed to the billing provider at start.
	sub := &entity.Subscription{
		Id:                 uuid.New(),
		UserId:             req.UserId,
		BusinessId:         req.BusinessId,
		PlanId:             plan.Id,
		Status:             entity.SubscriptionStatusTrialing,
		CurrentPeriodStart: now,
		CurrentPeriodEnd:   trialEnd,
		TrialStart:         &now,
		TrialEnd:           &trialEnd,
		Terms:              plan.Terms(),
		IsActive:           true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.SubscriptionRepository().Create(ctx, sub); err != nil {
		var conflict *apperror.ConflictError
		if errors.As(err, &conflict) {
			return nil, err
		}
		return nil, apperror.Storage(err)
	}

	s.publish(ctx, "TRIAL_STARTED", sub)
	return dto.SubscriptionToResponse(sub), nil
}

func (s *subscriptionService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateSubscriptionRequest) (*dto.SubscriptionResponse, error) {
	if req.Status != nil && !entity.KnownStatus(*req.Status) {
		return nil, apperror.Validation("unknown subscription status %q", *req.Status)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	sub, err := uow.SubscriptionRepository().FindById(ctx, id)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	if sub == nil {
		return nil, apperror.NotFound("subscription")
	}

	remoteUpdate := billing.SubscriptionUpdate{}
	pushRemote := false

	var newTerms *entity.PlanTerms
	if req.PlanId != nil {
		plan, err := s.plans.Resolve(ctx, *req.PlanId)
		if err != nil {
			return nil, err
		}
		terms := plan.Terms()
		newTerms = &terms
		if sub.StripeSubscriptionId != nil && plan.StripePriceId != nil {
			remoteUpdate.PriceId = plan.StripePriceId
			pushRemote = true
		}
	}
	if req.CancelAtPeriodEnd != nil && sub.StripeSubscriptionId != nil {
		remoteUpdate.CancelAtPeriodEnd = req.CancelAtPeriodEnd
		pushRemote = true
	}

	// The remote push happens before any local write. If it fails the
	// update aborts and the local record stays untouched, so local and
	// remote state cannot diverge.
	if pushRemote {
		if err := s.billing.UpdateSubscription(ctx, *sub.StripeSubscriptionId, remoteUpdate); err != nil {
			return nil, apperror.Upstream("update", err)
		}
	}

	patch := entity.SubscriptionPatch{
		PlanId:            req.PlanId,
		Status:            req.Status,
		CancelAtPeriodEnd: req.CancelAtPeriodEnd,
		Terms:             newTerms,
	}
	if req.Status != nil {
		isActive := *req.Status != entity.SubscriptionStatusCanceled
		patch.IsActive = &isActive
	}

	updated, err := uow.SubscriptionRepository().UpdateFields(ctx, id, patch)
	if err != nil {
		var conflict *apperror.ConflictError
		if errors.As(err, &conflict) {
			return nil, err
		}
		return nil, apperror.Storage(err)
	}
	if updated == nil {
		return nil, apperror.NotFound("subscription")
	}
	return dto.SubscriptionToResponse(updated), nil
}

func (s *subscriptionService) Cancel(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	sub, err := uow.SubscriptionRepository().FindById(ctx, id)
	if err != nil {
		return apperror.Storage(err)
	}
	if sub == nil {
		return apperror.NotFound("subscription")
	}

	// Remote cancellation goes first; on failure the local record is
	// left unmodified so cancellation is never partially applied.
	if sub.StripeSubscriptionId != nil {
		if err := s.billing.CancelSubscription(ctx, *sub.StripeSubscriptionId); err != nil {
			return apperror.Upstream("cancel", err)
		}
	}

	canceled := entity.SubscriptionStatusCanceled
	inactive := false
	_, err = uow.SubscriptionRepository().UpdateFields(ctx, id, entity.SubscriptionPatch{
		Status:   &canceled,
		IsActive: &inactive,
	})
	if err != nil {
		return apperror.Storage(err)
	}

	s.publish(ctx, "SUBSCRIPTION_CANCELED", sub)
	return nil
}

func (s *subscriptionService) GetActiveByUser(ctx context.Context, userId uuid.UUID) (*dto.SubscriptionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	sub, err := uow.SubscriptionRepository().FindActiveByUser(ctx, userId)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	if sub == nil {
		return nil, apperror.NotFound("active subscription")
	}
	return dto.SubscriptionToResponse(sub), nil
}

func (s *subscriptionService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.billing.VerifyAndParseEvent(payload, signature)
	if err != nil {
		return err
	}

	if err := s.applyEvent(ctx, event); err != nil {
		return err
	}

	if s.auditRecorder != nil {
		if err := s.auditRecorder.Record(ctx, event, payload); err != nil {
			s.logger.Warn("webhook", "failed to record billing event audit", map[string]interface{}{
				"type":  event.RawType,
				"error": err.Error(),
			})
		}
	}
	return nil
}

// applyEvent is idempotent: it overwrites fields by external reference
// lookup, so replaying the same payload converges on the same state.
func (s *subscriptionService) applyEvent(ctx context.Context, event *billing.Event) error {
	switch event.Type {
	case billing.EventSubscriptionUpdated:
		status := entity.SubscriptionStatus(event.Status)
		if !entity.KnownStatus(status) {
			s.logger.Warn("webhook", "billing event carries unknown status", map[string]interface{}{
				"type":   event.RawType,
				"status": event.Status,
			})
			return nil
		}
		return s.applyRemoteState(ctx, event, status, entity.SubscriptionPatch{
			CurrentPeriodStart: &event.PeriodStart,
			CurrentPeriodEnd:   &event.PeriodEnd,
			CancelAtPeriodEnd:  &event.CancelAtPeriodEnd,
		})
	case billing.EventSubscriptionDeleted:
		return s.applyRemoteState(ctx, event, entity.SubscriptionStatusCanceled, entity.SubscriptionPatch{})
	default:
		s.logger.Debug("webhook", "ignoring billing event", map[string]interface{}{
			"type": event.RawType,
		})
		return nil
	}
}

func (s *subscriptionService) applyRemoteState(ctx context.Context, event *billing.Event, status entity.SubscriptionStatus, patch entity.SubscriptionPatch) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return apperror.Storage(err)
	}
	defer uow.Rollback()

	sub, err := uow.SubscriptionRepository().FindByStripeSubscriptionId(ctx, event.SubscriptionRef)
	if err != nil {
		return apperror.Storage(err)
	}
	if sub == nil {
		// An event for an unknown subscription is not an error.
		s.logger.Warn("webhook", "billing event for unknown subscription", map[string]interface{}{
			"type": event.RawType,
			"ref":  event.SubscriptionRef,
		})
		return nil
	}

	isActive := status != entity.SubscriptionStatusCanceled
	patch.Status = &status
	patch.IsActive = &isActive

	if _, err := uow.SubscriptionRepository().UpdateFields(ctx, sub.Id, patch); err != nil {
		return apperror.Storage(err)
	}
	if err := uow.Commit(); err != nil {
		return apperror.Storage(err)
	}
	return nil
}

func (s *subscriptionService) publish(ctx context.Context, eventType string, sub *entity.Subscription) {
	if s.eventPublisher == nil {
		return
	}
	evt := events.BaseEvent{
		Type: eventType,
		Data: map[string]interface{}{
			"subscription_id": sub.Id,
			"user_id":         sub.UserId,
			"plan_id":         sub.PlanId,
			"status":          sub.Status,
			"occurred_at":     s.now().UTC(),
		},
		OccurredAt: s.now().UTC(),
	}
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("subscription", "failed to publish domain event", map[string]interface{}{
			"type":  eventType,
			"error": err.Error(),
		})
	}
}
