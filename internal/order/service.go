package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"agrolink-be/internal/address"
	"agrolink-be/internal/logger"
	"agrolink-be/internal/product"
	"agrolink-be/internal/user"
	"agrolink-be/internal/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Service interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*Order, error)
	GetOrder(ctx context.Context, orderID uuid.UUID) (*Order, error)
	ListOrders(ctx context.Context, filter *OrderFilter, limit, offset int32) (*OrderList, error)
	ManageOrder(ctx context.Context, orderID uuid.UUID, input ManageOrderInput) (*Order, error)
	DecideItem(ctx context.Context, itemID uuid.UUID, decision ItemStatus, reason *string) error
	ListProducerItems(ctx context.Context, filter *ItemFilter, limit, offset int32) (*ProducerItemList, error)
}

type service struct {
	repo        Repository
	userRepo    user.Repository
	addrRepo    address.Repository
	productRepo product.Repository
}

func NewService(
	repo Repository,
	userRepo user.Repository,
	addrRepo address.Repository,
	productRepo product.Repository,
) Service {
	return &service{
		repo:        repo,
		userRepo:    userRepo,
		addrRepo:    addrRepo,
		productRepo: productRepo,
	}
}

func (s *service) CreateOrder(ctx context.Context, input CreateOrderInput) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateOrder"),
		zap.Int("item_count", len(input.Items)),
	)

	consumerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	// 1. Actor must exist and be a consumer.
	actor, err := s.userRepo.GetByID(ctx, consumerID)
	if err != nil || actor.Role != user.RoleConsumer {
		log.Warn("actor is not a consumer", zap.Uint("consumer_id", consumerID))
		return nil, ErrRoleViolation
	}

	// 2. Delivery address must exist and belong to the consumer.
	addr, err := s.addrRepo.GetByID(ctx, input.AddressID)
	if err != nil || addr.UserID != consumerID {
		return nil, ErrAddressNotFound
	}

	if len(input.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	// 3. Validate each product and snapshot producer and price. Prices are
	// never re-read after this point: later price changes must not affect
	// existing orders.
	items := make([]OrderItem, 0, len(input.Items))
	total := decimal.Zero

	for i, in := range input.Items {
		if in.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}

		p, err := s.productRepo.GetByID(ctx, in.ProductID)
		if err != nil || !p.IsActive {
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, in.ProductID)
		}

		if p.Quantity < in.Quantity {
			return nil, fmt.Errorf("%w: %s", ErrInsufficientStock, p.Title)
		}

		lineTotal := p.Price.Mul(decimal.NewFromInt(int64(in.Quantity)))
		total = total.Add(lineTotal)

		log.Debug("item validated",
			zap.Int("index", i),
			zap.String("product_id", in.ProductID.String()),
			zap.Int("quantity", in.Quantity),
			zap.String("unit_price", p.Price.StringFixed(2)),
		)

		items = append(items, OrderItem{
			ID:           uuid.New(),
			ProductID:    p.ID,
			ProducerID:   p.ProducerID,
			Quantity:     in.Quantity,
			UnitPrice:    p.Price,
			TotalPrice:   lineTotal,
			Status:       ItemPending,
			ProductTitle: p.Title,
		})
	}

	// 4. Recurrence schedule.
	var (
		freq       *Frequency
		customDays *int
		next       *time.Time
	)
	if input.IsRecurring {
		if input.Frequency == nil {
			return nil, ErrFrequencyRequired
		}
		if !input.Frequency.Valid() {
			return nil, fmt.Errorf("%w: %s", ErrInvalidFrequency, *input.Frequency)
		}
		freq = input.Frequency
		if *freq == FrequencyCustom {
			if input.CustomDays == nil || *input.CustomDays <= 0 {
				return nil, ErrCustomDaysRequired
			}
			customDays = input.CustomDays
		}

		nd, err := NextDeliveryDate(*freq, time.Now(), customDays)
		if err != nil {
			return nil, err
		}
		next = &nd
	}

	o := &Order{
		ID:               uuid.New(),
		ConsumerID:       consumerID,
		AddressID:        addr.ID,
		TotalAmount:      total,
		Status:           StatusPending,
		IsRecurring:      input.IsRecurring,
		Frequency:        freq,
		CustomDays:       customDays,
		NextDeliveryDate: next,
		Items:            items,
	}
	for i := range o.Items {
		o.Items[i].OrderID = o.ID
	}

	// 5. Header and items are one atomic unit; a partial order is never
	// observable.
	if err := s.repo.CreateOrderTx(ctx, o); err != nil {
		log.Error("failed to create order", zap.Error(err))
		return nil, err
	}

	log.Info("order created",
		zap.String("order_id", o.ID.String()),
		zap.String("total_amount", o.TotalAmount.StringFixed(2)),
		zap.Bool("is_recurring", o.IsRecurring),
	)

	return o, nil
}

func (s *service) GetOrder(ctx context.Context, orderID uuid.UUID) (*Order, error) {
	actorID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}
	role := utils.GetUserRoleFromContext(ctx)

	o, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		// A missing order is not-found for every role.
		return nil, err
	}

	switch user.Role(role) {
	case user.RoleAdmin:
		return o, nil
	case user.RoleConsumer:
		if o.ConsumerID != actorID {
			return nil, ErrForbidden
		}
		return o, nil
	case user.RoleProducer:
		has, err := s.repo.HasProducerItem(ctx, orderID, actorID)
		if err != nil {
			return nil, err
		}
		if !has {
			return nil, ErrForbidden
		}
		return o, nil
	default:
		return nil, ErrForbidden
	}
}

func (s *service) ListOrders(ctx context.Context, filter *OrderFilter, limit, offset int32) (*OrderList, error) {
	actorID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}
	role := utils.GetUserRoleFromContext(ctx)

	if limit <= 0 {
		limit = 20
	} else if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	var scope ListScope
	switch user.Role(role) {
	case user.RoleAdmin:
		// unrestricted
	case user.RoleConsumer:
		scope.ConsumerID = &actorID
	case user.RoleProducer:
		scope.ProducerID = &actorID
	default:
		return nil, ErrForbidden
	}

	orders, err := s.repo.FetchOrders(ctx, scope, filter, limit, offset)
	if err != nil {
		return nil, err
	}

	total, err := s.repo.CountOrders(ctx, scope, filter)
	if err != nil {
		return nil, err
	}

	return &OrderList{
		Orders: orders,
		Pagination: Pagination{
			Limit:   limit,
			Offset:  offset,
			Total:   total,
			HasNext: int64(offset)+int64(limit) < total,
		},
	}, nil
}

func (s *service) DecideItem(ctx context.Context, itemID uuid.UUID, decision ItemStatus, reason *string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "DecideItem"),
		zap.String("item_id", itemID.String()),
		zap.String("decision", string(decision)),
	)

	producerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return ErrUnauthenticated
	}

	if decision != ItemApproved && decision != ItemRejected {
		return ErrInvalidDecision
	}

	item, err := s.repo.GetItemByID(ctx, itemID)
	if err != nil {
		return err
	}

	if item.ProducerID != producerID {
		log.Warn("producer does not own item", zap.Uint("producer_id", producerID))
		return ErrNotItemOwner
	}

	if item.Status != ItemPending {
		return ErrInvalidTransition
	}

	if decision == ItemRejected {
		if reason == nil || *reason == "" {
			return ErrReasonRequired
		}
	} else {
		// Approving clears any stale reason.
		reason = nil
	}

	status, err := s.repo.DecideItemTx(ctx, item.OrderID, itemID, decision, reason)
	if err != nil {
		return err
	}

	log.Info("item decision applied",
		zap.String("order_id", item.OrderID.String()),
		zap.String("order_status", string(status)),
	)

	return nil
}

func (s *service) ManageOrder(ctx context.Context, orderID uuid.UUID, input ManageOrderInput) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ManageOrder"),
		zap.String("order_id", orderID.String()),
	)

	consumerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	if input.Empty() {
		return nil, ErrNothingToUpdate
	}

	o, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if o.ConsumerID != consumerID {
		return nil, ErrNotOrderOwner
	}

	if input.Action != nil {
		target, err := resolveAction(*input.Action, o)
		if err != nil {
			return nil, err
		}
		if err := s.repo.UpdateOrderStatus(ctx, orderID, target); err != nil {
			return nil, err
		}
		log.Info("order action applied",
			zap.String("action", string(*input.Action)),
			zap.String("status", string(target)),
		)
	}

	if input.IsRecurring != nil || input.Frequency != nil || input.CustomDays != nil {
		if err := s.applyRecurrencePatch(ctx, o, input); err != nil {
			return nil, err
		}
	}

	return s.repo.GetOrderByID(ctx, orderID)
}

// resolveAction validates the lifecycle state machine and returns the
// target status. resume restores the aggregate implied by the current item
// statuses rather than a fixed state.
func resolveAction(action Action, o *Order) (OrderStatus, error) {
	switch action {
	case ActionPause:
		if o.Status != StatusCompleted && o.Status != StatusPartiallyCompleted {
			return "", ErrInvalidTransition
		}
		return StatusPaused, nil
	case ActionResume:
		if o.Status != StatusPaused {
			return "", ErrInvalidTransition
		}
		return AggregateStatus(o.Items), nil
	case ActionCancel:
		if o.Status == StatusCancelled || o.Status == StatusRejected {
			return "", ErrInvalidTransition
		}
		return StatusCancelled, nil
	default:
		return "", fmt.Errorf("unknown action: %s", action)
	}
}

func (s *service) applyRecurrencePatch(ctx context.Context, o *Order, input ManageOrderInput) error {
	isRecurring := o.IsRecurring
	if input.IsRecurring != nil {
		isRecurring = *input.IsRecurring
	}

	patched := &Order{ID: o.ID}

	if !isRecurring {
		// Stopping recurrence wins over any simultaneous frequency change:
		// everything is cleared regardless of what else was passed.
		patched.IsRecurring = false
	} else {
		freq := o.Frequency
		if input.Frequency != nil {
			freq = input.Frequency
		}
		if freq == nil {
			return ErrFrequencyRequired
		}
		if !freq.Valid() {
			return fmt.Errorf("%w: %s", ErrInvalidFrequency, *freq)
		}

		customDays := o.CustomDays
		if input.CustomDays != nil {
			customDays = input.CustomDays
		}

		if *freq == FrequencyCustom {
			if customDays == nil || *customDays <= 0 {
				return ErrCustomDaysRequired
			}
		} else {
			customDays = nil
		}

		next, err := NextDeliveryDate(*freq, time.Now(), customDays)
		if err != nil {
			return err
		}

		patched.IsRecurring = true
		patched.Frequency = freq
		patched.CustomDays = customDays
		patched.NextDeliveryDate = &next
	}

	return s.repo.UpdateRecurrence(ctx, patched)
}

func (s *service) ListProducerItems(ctx context.Context, filter *ItemFilter, limit, offset int32) (*ProducerItemList, error) {
	producerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}
	if utils.GetUserRoleFromContext(ctx) != string(user.RoleProducer) {
		return nil, ErrForbidden
	}

	if limit <= 0 {
		limit = 20
	} else if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	items, err := s.repo.FetchProducerItems(ctx, producerID, filter, limit, offset)
	if err != nil {
		return nil, err
	}

	total, err := s.repo.CountProducerItems(ctx, producerID, filter)
	if err != nil {
		return nil, err
	}

	// Group by parent order, preserving fetch order.
	var groups []*OrderItemGroup
	idx := make(map[uuid.UUID]*OrderItemGroup)
	for _, item := range items {
		g, ok := idx[item.OrderID]
		if !ok {
			g = &OrderItemGroup{OrderID: item.OrderID}
			idx[item.OrderID] = g
			groups = append(groups, g)
		}
		g.Items = append(g.Items, item)
	}

	return &ProducerItemList{
		Groups: groups,
		Pagination: Pagination{
			Limit:   limit,
			Offset:  offset,
			Total:   total,
			HasNext: int64(offset)+int64(limit) < total,
		},
	}, nil
}

// IsValidationError reports whether err belongs to the domain-validation
// family (malformed or incomplete input).
func IsValidationError(err error) bool {
	return errors.Is(err, ErrEmptyOrder) ||
		errors.Is(err, ErrInvalidQuantity) ||
		errors.Is(err, ErrInsufficientStock) ||
		errors.Is(err, ErrFrequencyRequired) ||
		errors.Is(err, ErrInvalidFrequency) ||
		errors.Is(err, ErrCustomDaysRequired) ||
		errors.Is(err, ErrReasonRequired) ||
		errors.Is(err, ErrInvalidDecision) ||
		errors.Is(err, ErrNothingToUpdate)
}
