package subscription

import (
	"context"
	"time"

	"agrolink-be/internal/logger"
	"agrolink-be/internal/order"
	"agrolink-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, orderID uuid.UUID, freq order.Frequency) (*Subscription, error)
	Get(ctx context.Context, id uuid.UUID) (*Subscription, error)
	List(ctx context.Context) ([]*Subscription, error)
	Pause(ctx context.Context, id uuid.UUID) error
	Resume(ctx context.Context, id uuid.UUID) error
	Cancel(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo      Repository
	orderRepo order.Repository
}

func NewService(repo Repository, orderRepo order.Repository) Service {
	return &service{repo: repo, orderRepo: orderRepo}
}

func (s *service) Create(ctx context.Context, orderID uuid.UUID, freq order.Frequency) (*Subscription, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateSubscription"),
		zap.String("order_id", orderID.String()),
	)

	consumerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrNotSubscriptionOwner
	}

	// Subscriptions do not support CUSTOM intervals.
	if !freq.Valid() || freq == order.FrequencyCustom {
		return nil, ErrInvalidFrequency
	}

	o, err := s.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.ConsumerID != consumerID {
		return nil, ErrNotSubscriptionOwner
	}
	if o.Status != order.StatusCompleted {
		return nil, ErrOrderNotCompleted
	}

	if existing, err := s.repo.GetByOrderID(ctx, orderID); err == nil && existing != nil {
		return nil, ErrAlreadySubscribed
	}

	next, err := order.NextDeliveryDate(freq, time.Now(), nil)
	if err != nil {
		return nil, err
	}

	sub := &Subscription{
		ID:               uuid.New(),
		ConsumerID:       consumerID,
		OrderID:          orderID,
		Status:           StatusActive,
		Frequency:        freq,
		NextDeliveryDate: next,
	}

	if err := s.repo.Create(ctx, sub); err != nil {
		log.Error("failed to create subscription", zap.Error(err))
		return nil, err
	}

	log.Info("subscription created", zap.String("subscription_id", sub.ID.String()))
	return sub, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Subscription, error) {
	sub, err := s.ownedSubscription(ctx, id)
	if err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *service) List(ctx context.Context) ([]*Subscription, error) {
	consumerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrNotSubscriptionOwner
	}
	return s.repo.ListByConsumer(ctx, consumerID)
}

func (s *service) Pause(ctx context.Context, id uuid.UUID) error {
	sub, err := s.ownedSubscription(ctx, id)
	if err != nil {
		return err
	}
	if sub.Status != StatusActive {
		return ErrInvalidTransition
	}
	return s.repo.UpdateStatus(ctx, id, StatusPaused, nil)
}

func (s *service) Resume(ctx context.Context, id uuid.UUID) error {
	sub, err := s.ownedSubscription(ctx, id)
	if err != nil {
		return err
	}
	if sub.Status != StatusPaused {
		return ErrInvalidTransition
	}

	// The delivery clock restarts from now on resume.
	next, err := order.NextDeliveryDate(sub.Frequency, time.Now(), nil)
	if err != nil {
		return err
	}

	return s.repo.UpdateStatus(ctx, id, StatusActive, &next)
}

func (s *service) Cancel(ctx context.Context, id uuid.UUID) error {
	sub, err := s.ownedSubscription(ctx, id)
	if err != nil {
		return err
	}
	if sub.Status == StatusCancelled {
		return ErrInvalidTransition
	}
	return s.repo.UpdateStatus(ctx, id, StatusCancelled, nil)
}

func (s *service) ownedSubscription(ctx context.Context, id uuid.UUID) (*Subscription, error) {
	consumerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrNotSubscriptionOwner
	}

	sub, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub.ConsumerID != consumerID {
		return nil, ErrNotSubscriptionOwner
	}

	return sub, nil
}
