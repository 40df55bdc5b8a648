package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mikios34/storefront-backend/entity"
	"github.com/mikios34/storefront-backend/messaging"
	orderpkg "github.com/mikios34/storefront-backend/order"
	"github.com/mikios34/storefront-backend/realtime"
	"gorm.io/gorm"
)

type orderService struct {
	repo      orderpkg.Repository
	publisher messaging.Publisher
	notifier  orderpkg.Notifier
	topic     string
}

// NewOrderService wires the order repository with the event publisher and realtime notifier.
// Both are optional; nil disables the corresponding side effect.
func NewOrderService(repo orderpkg.Repository, publisher messaging.Publisher, notifier orderpkg.Notifier, topic string) orderpkg.Service {
	if publisher == nil {
		publisher = messaging.Noop{}
	}
	return &orderService{repo: repo, publisher: publisher, notifier: notifier, topic: topic}
}

// Checkout validates the cart before opening the transaction, then converts it into an order.
func (s *orderService) Checkout(ctx context.Context, userID, cartID uuid.UUID) (*entity.Order, error) {
	exists, count, err := s.repo.CartItemCount(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, orderpkg.ErrCartNotFound
	}
	if count == 0 {
		return nil, orderpkg.ErrEmptyCart
	}

	o, err := s.repo.Checkout(ctx, userID, cartID)
	if err != nil {
		return nil, err
	}
	slog.Info("order placed", "order_id", o.ID, "customer_id", o.CustomerID, "lines", len(o.Items), "total", o.Total().StringFixed(2))

	// reload so lines carry their products
	if full, err := s.repo.GetByID(ctx, o.ID); err == nil {
		o = full
	}
	s.announce(ctx, realtime.EventOrderPlaced, o)
	return o, nil
}

func (s *orderService) List(ctx context.Context, viewer orderpkg.Viewer, limit, offset int) ([]entity.Order, int64, error) {
	if viewer.IsAdmin {
		return s.repo.List(ctx, nil, limit, offset)
	}
	customerID, err := s.customerOf(ctx, viewer.UserID)
	if err != nil {
		return nil, 0, err
	}
	return s.repo.List(ctx, &customerID, limit, offset)
}

// Get returns the order when the viewer is an admin or the customer who placed it.
func (s *orderService) Get(ctx context.Context, viewer orderpkg.Viewer, id uuid.UUID) (*entity.Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, orderpkg.ErrOrderNotFound
		}
		return nil, err
	}
	if viewer.IsAdmin {
		return o, nil
	}
	customerID, err := s.customerOf(ctx, viewer.UserID)
	if err != nil {
		if errors.Is(err, orderpkg.ErrCustomerNotFound) {
			return nil, orderpkg.ErrForbidden
		}
		return nil, err
	}
	if o.CustomerID != customerID {
		return nil, orderpkg.ErrForbidden
	}
	return o, nil
}

func (s *orderService) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status entity.PaymentStatus) (*entity.Order, error) {
	if !status.Valid() {
		return nil, orderpkg.ErrInvalidPaymentStatus
	}
	if err := s.repo.UpdatePaymentStatus(ctx, id, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, orderpkg.ErrOrderNotFound
		}
		return nil, err
	}
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	slog.Info("order payment status updated", "order_id", id, "payment_status", status)
	s.announce(ctx, realtime.EventOrderPaymentStatus, o)
	return o, nil
}

func (s *orderService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return orderpkg.ErrOrderNotFound
	}
	if err == nil {
		slog.Info("order deleted", "order_id", id)
	}
	return err
}

func (s *orderService) customerOf(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	id, err := s.repo.GetCustomerIDByUserID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, orderpkg.ErrCustomerNotFound
	}
	return id, err
}

// announce publishes the event and pushes it over websockets. Failures are logged only;
// the order has already been committed.
func (s *orderService) announce(ctx context.Context, event string, o *entity.Order) {
	total := o.Total().StringFixed(2)
	msg := orderpkg.Event{
		Type:          event,
		OrderID:       o.ID.String(),
		CustomerID:    o.CustomerID.String(),
		PaymentStatus: string(o.PaymentStatus),
		Total:         total,
		Items:         len(o.Items),
		OccurredAt:    time.Now().UTC(),
	}
	if err := s.publisher.PublishEvent(ctx, s.topic, msg.OrderID, msg); err != nil {
		slog.Error("failed to publish order event", "event", event, "order_id", o.ID, "err", err)
	}

	if s.notifier == nil {
		return
	}
	payload := realtime.OrderPayload{
		OrderID:       msg.OrderID,
		CustomerID:    msg.CustomerID,
		PaymentStatus: msg.PaymentStatus,
		Total:         total,
	}
	_ = s.notifier.NotifyCustomer(msg.CustomerID, event, payload)
	if event == realtime.EventOrderPlaced {
		s.notifier.BroadcastAdmins(event, payload)
	}
}
