package order

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/velora/storefront-backend/internal/address"
	"github.com/velora/storefront-backend/internal/platform/events"
	"github.com/velora/storefront-backend/internal/product"
)

// Notifier delivers a user-facing notification. Implementations are best
// effort from the order flow's point of view.
type Notifier interface {
	Notify(userID int, title, body string) error
}

// EventPublisher pushes order events onto the stream, best effort as well.
type EventPublisher interface {
	Publish(ctx context.Context, ev events.OrderEvent) error
}

// PlaceRequest is a client cart snapshot to be converted into an order.
type PlaceRequest struct {
	UserID            int
	Items             []Line
	Subtotal          float64
	ShippingAddressID int
}

type Service struct {
	repo      Repository
	products  product.ServiceInterface
	addresses address.ServiceInterface
	notifier  Notifier       // may be nil
	publisher EventPublisher // may be nil
	logger    *zap.Logger
}

func NewService(repo Repository, products product.ServiceInterface, addresses address.ServiceInterface,
	notifier Notifier, publisher EventPublisher, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:      repo,
		products:  products,
		addresses: addresses,
		notifier:  notifier,
		publisher: publisher,
		logger:    logger,
	}
}

// Place validates the snapshot against the live catalog and, when everything
// holds, persists the order, moves stock and clears the cart atomically.
func (s *Service) Place(req PlaceRequest) (Order, error) {
	if len(req.Items) == 0 {
		return Order{}, ErrEmptyOrder
	}
	for _, ln := range req.Items {
		if ln.Quantity <= 0 {
			return Order{}, fmt.Errorf("%w: product %d", ErrInvalidQuantity, ln.ProductID)
		}
	}

	addr, err := s.addresses.GetByID(req.UserID, req.ShippingAddressID)
	if err != nil {
		return Order{}, ErrAddressNotFound
	}

	ids := make([]int, 0, len(req.Items))
	for _, ln := range req.Items {
		if ln.ProductID != FreeGiftProductID {
			ids = append(ids, ln.ProductID)
		}
	}
	prods, err := s.products.ListByIDs(ids)
	if err != nil {
		return Order{}, err
	}
	byID := make(map[int]product.Product, len(prods))
	for _, p := range prods {
		byID[p.ID] = p
	}

	var (
		subtotal   float64
		storefront string
	)
	lines := make([]Line, len(req.Items))
	copy(lines, req.Items)
	for i := range lines {
		ln := &lines[i]
		if ln.ProductID == FreeGiftProductID {
			// gift lines are always carried at price 0, whatever the client sent
			ln.Price = 0
			continue
		}
		p, ok := byID[ln.ProductID]
		if !ok {
			return Order{}, fmt.Errorf("%w: product %d", ErrUnknownProduct, ln.ProductID)
		}
		if p.Stock < ln.Quantity {
			return Order{}, fmt.Errorf("%w: product %d", ErrInsufficientStock, ln.ProductID)
		}
		if ln.Price != p.SellingPrice {
			return Order{}, fmt.Errorf("%w: product %d is now %.2f", ErrPriceDrift, ln.ProductID, p.SellingPrice)
		}
		subtotal += ln.Price * float64(ln.Quantity)
		if storefront == "" {
			storefront = p.Storefront
		}
	}

	if math.Abs(subtotal-req.Subtotal) > SubtotalTolerance {
		return Order{}, fmt.Errorf("%w: server computed %.2f", ErrSubtotalMismatch, subtotal)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	ord := Order{
		OrderRef:    uuid.NewString(),
		UserID:      req.UserID,
		Storefront:  storefront,
		Lines:       lines,
		TotalAmount: subtotal,
		Status:      StatusPending,
		Shipping: Shipping{
			Recipient: addr.Recipient,
			Line1:     addr.Line1,
			Line2:     addr.Line2,
			City:      addr.City,
			Postcode:  addr.Postcode,
			Phone:     addr.Phone,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	placed, err := s.repo.Place(ord)
	if err != nil {
		return Order{}, err
	}

	s.notify(placed.UserID, "Order placed",
		fmt.Sprintf("Your order %s has been received.", placed.OrderRef))
	s.publish(events.OrderEvent{
		Type:       events.TypeOrderPlaced,
		OrderID:    placed.OrderID,
		OrderRef:   placed.OrderRef,
		UserID:     placed.UserID,
		Storefront: placed.Storefront,
		Status:     string(placed.Status),
		Total:      placed.TotalAmount,
	})

	return placed, nil
}

// Cancel reverses a not-yet-shipped order. Only the owner (or an admin) may
// cancel.
func (s *Service) Cancel(orderID, userID int, isAdmin bool) (Order, error) {
	ord, err := s.repo.GetByID(orderID)
	if err != nil {
		return Order{}, err
	}
	if !isAdmin && ord.UserID != userID {
		return Order{}, ErrForbidden
	}
	if !ord.Status.Cancellable() {
		return Order{}, ErrNotCancellable
	}

	cancelled, err := s.repo.Cancel(orderID)
	if err != nil {
		return Order{}, err
	}

	s.notify(cancelled.UserID, "Order cancelled",
		fmt.Sprintf("Your order %s has been cancelled.", cancelled.OrderRef))
	s.publish(events.OrderEvent{
		Type:       events.TypeOrderCancelled,
		OrderID:    cancelled.OrderID,
		OrderRef:   cancelled.OrderRef,
		UserID:     cancelled.UserID,
		Storefront: cancelled.Storefront,
		Status:     string(cancelled.Status),
		Total:      cancelled.TotalAmount,
	})
	return cancelled, nil
}

// UpdateStatus is the admin transition path.
func (s *Service) UpdateStatus(orderID int, next Status) (Order, error) {
	if !next.Valid() {
		return Order{}, ErrBadTransition
	}

	updated, err := s.repo.UpdateStatus(orderID, next)
	if err != nil {
		return Order{}, err
	}

	s.publish(events.OrderEvent{
		Type:       events.TypeOrderStatus,
		OrderID:    updated.OrderID,
		OrderRef:   updated.OrderRef,
		UserID:     updated.UserID,
		Storefront: updated.Storefront,
		Status:     string(updated.Status),
		Total:      updated.TotalAmount,
	})
	return updated, nil
}

func (s *Service) GetByID(id int) (Order, error) {
	return s.repo.GetByID(id)
}

func (s *Service) ListByUser(userID int) ([]Order, error) {
	return s.repo.ListByUser(userID)
}

func (s *Service) ListAll(storefront string, status Status) ([]Order, error) {
	return s.repo.ListAll(storefront, status)
}

// notify and publish are fire-and-forget: a failed side effect never rolls
// back a placed order.
func (s *Service) notify(userID int, title, body string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(userID, title, body); err != nil {
		s.logger.Warn("order notification failed", zap.Int("userId", userID), zap.Error(err))
	}
}

func (s *Service) publish(ev events.OrderEvent) {
	if s.publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.publisher.Publish(ctx, ev); err != nil {
		s.logger.Warn("order event publish failed", zap.String("orderRef", ev.OrderRef), zap.Error(err))
	}
}
