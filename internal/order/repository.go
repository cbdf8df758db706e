package order

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/velora/storefront-backend/internal/cart"
	"github.com/velora/storefront-backend/internal/product"
)

// Repository persists orders. Place and Cancel are atomic: either every
// effect (order row, stock movement, cart clear) lands or none does.
type Repository interface {
	// Place inserts the order, applies a guarded stock decrement per line
	// and clears the user's cart, all or nothing. A line that loses a
	// stock race returns ErrInsufficientStock with nothing applied.
	Place(ord Order) (Order, error)
	GetByID(id int) (Order, error)
	ListByUser(userID int) ([]Order, error)
	ListAll(storefront string, status Status) ([]Order, error)
	// Cancel flips status to cancelled iff the current status still allows
	// it (compare-and-swap) and restores each line's stock. A second
	// concurrent cancel loses the swap and returns ErrNotCancellable.
	Cancel(orderID int) (Order, error)
	// UpdateStatus moves the order to next iff the current status permits
	// the transition. Moving to cancelled delegates to Cancel.
	UpdateStatus(orderID int, next Status) (Order, error)
}

// InMemoryRepository mirrors the transactional semantics of the Postgres
// implementation against in-memory product and cart repositories. Tests use
// it to observe stock and cart effects.
type InMemoryRepository struct {
	mu       sync.Mutex
	orders   []Order
	nextID   int
	products *product.InMemoryRepository
	carts    *cart.InMemoryRepository
}

func NewInMemoryRepository(products *product.InMemoryRepository, carts *cart.InMemoryRepository) *InMemoryRepository {
	return &InMemoryRepository{nextID: 1, products: products, carts: carts}
}

func (r *InMemoryRepository) Place(ord Order) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// check every line before touching anything
	for _, ln := range ord.Lines {
		if ln.ProductID == FreeGiftProductID {
			continue
		}
		p, err := r.products.GetByID(ln.ProductID)
		if err != nil {
			return Order{}, fmt.Errorf("%w: product %d", ErrUnknownProduct, ln.ProductID)
		}
		if p.Stock < ln.Quantity {
			return Order{}, fmt.Errorf("%w: product %d", ErrInsufficientStock, ln.ProductID)
		}
	}

	for _, ln := range ord.Lines {
		if ln.ProductID == FreeGiftProductID {
			continue
		}
		p, _ := r.products.GetByID(ln.ProductID)
		p.Stock -= ln.Quantity
		if _, err := r.products.Update(p.ID, p); err != nil {
			return Order{}, err
		}
	}

	if ord.OrderID == 0 {
		ord.OrderID = r.nextID
		r.nextID++
	}
	if ord.OrderRef == "" {
		ord.OrderRef = uuid.NewString()
	}
	r.orders = append(r.orders, ord)

	if err := r.carts.Clear(ord.UserID); err != nil {
		return Order{}, err
	}
	return ord, nil
}

func (r *InMemoryRepository) GetByID(id int) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.OrderID == id {
			return o, nil
		}
	}
	return Order{}, ErrNotFound
}

func (r *InMemoryRepository) ListByUser(userID int) ([]Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Order, 0)
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) ListAll(storefront string, status Status) ([]Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Order, 0)
	for _, o := range r.orders {
		if storefront != "" && o.Storefront != storefront {
			continue
		}
		if status != "" && o.Status != status {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (r *InMemoryRepository) Cancel(orderID int) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.orders {
		if r.orders[i].OrderID != orderID {
			continue
		}
		if !r.orders[i].Status.Cancellable() {
			return Order{}, ErrNotCancellable
		}
		r.orders[i].Status = StatusCancelled
		for _, ln := range r.orders[i].Lines {
			if ln.ProductID == FreeGiftProductID {
				continue
			}
			if p, err := r.products.GetByID(ln.ProductID); err == nil {
				p.Stock += ln.Quantity
				r.products.Update(p.ID, p)
			}
		}
		return r.orders[i], nil
	}
	return Order{}, ErrNotFound
}

func (r *InMemoryRepository) UpdateStatus(orderID int, next Status) (Order, error) {
	if next == StatusCancelled {
		return r.Cancel(orderID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.orders {
		if r.orders[i].OrderID != orderID {
			continue
		}
		if !r.orders[i].Status.CanTransitionTo(next) {
			return Order{}, ErrBadTransition
		}
		r.orders[i].Status = next
		return r.orders[i], nil
	}
	return Order{}, ErrNotFound
}
