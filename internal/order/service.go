package order

import (
	"context"

	"storefront-be/internal/auth"
	"storefront-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	// GetOrder returns the order view only when the current actor owns it.
	GetOrder(ctx context.Context, orderID int64) (*View, error)

	// GetAllOrders returns every order owned by the current actor.
	GetAllOrders(ctx context.Context) ([]*View, error)

	// MarkAsPaid and MarkAsFailed apply webhook outcomes. Both are
	// idempotent: repeated deliveries and deliveries for already-terminal
	// orders succeed without changing anything.
	MarkAsPaid(ctx context.Context, orderID int64) error
	MarkAsFailed(ctx context.Context, orderID int64) error
}

type service struct {
	repo     Repository
	identity auth.Service
}

func NewService(repo Repository, identity auth.Service) Service {
	return &service{repo: repo, identity: identity}
}

func (s *service) GetOrder(ctx context.Context, orderID int64) (*View, error) {
	o, err := s.repo.FindWithItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}

	actor, err := s.identity.CurrentActor(ctx)
	if err != nil {
		return nil, err
	}

	// Reveal nothing beyond the denial itself.
	if o.CustomerID != actor.ID {
		return nil, ErrAccessDenied
	}

	return ToView(o), nil
}

func (s *service) GetAllOrders(ctx context.Context) ([]*View, error) {
	actor, err := s.identity.CurrentActor(ctx)
	if err != nil {
		return nil, err
	}

	orders, err := s.repo.FindAllByCustomer(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	views := make([]*View, 0, len(orders))
	for _, o := range orders {
		views = append(views, ToView(o))
	}

	return views, nil
}

func (s *service) MarkAsPaid(ctx context.Context, orderID int64) error {
	return s.applyOutcome(ctx, orderID, StatusPaid)
}

func (s *service) MarkAsFailed(ctx context.Context, orderID int64) error {
	return s.applyOutcome(ctx, orderID, StatusFailed)
}

func (s *service) applyOutcome(ctx context.Context, orderID int64, status PaymentStatus) error {
	log := logger.FromCtx(ctx).With(
		zap.Int64("order_id", orderID),
		zap.String("status", string(status)),
	)

	transitioned, err := s.repo.UpdateStatusIfPending(ctx, orderID, status)
	if err != nil {
		log.Error("failed to update order status", zap.Error(err))
		return err
	}

	if transitioned {
		log.Info("order status updated")
		return nil
	}

	// Nothing changed: either the order is already terminal (repeat or
	// out-of-order delivery, accepted as a no-op) or it never existed.
	o, err := s.repo.FindWithItems(ctx, orderID)
	if err != nil {
		return err
	}
	if o == nil {
		return ErrOrderNotFound
	}

	if o.Status.Terminal() {
		log.Info("order already in terminal status, ignoring webhook",
			zap.String("current_status", string(o.Status)),
		)
	}
	return nil
}
