package cart

import (
	"errors"
	"sort"
	"sync"
)

var (
	ErrNotFound = errors.New("cart item not found")
)

type Repository interface {
	Get(userID int) ([]Item, error)
	// Add merges qty into an existing line; the line is removed when its
	// quantity drops to zero or below.
	Add(userID, productID, qty int) ([]Item, error)
	Remove(userID, productID int) error
	Clear(userID int) error
}

// InMemoryRepository backs tests.
type InMemoryRepository struct {
	mu    sync.RWMutex
	carts map[int]map[int]int // userID -> productID -> qty
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{carts: make(map[int]map[int]int)}
}

func (r *InMemoryRepository) snapshot(userID int) []Item {
	m := r.carts[userID]
	out := make([]Item, 0, len(m))
	for pid, q := range m {
		out = append(out, Item{ProductID: pid, Quantity: q})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out
}

func (r *InMemoryRepository) Get(userID int) ([]Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot(userID), nil
}

func (r *InMemoryRepository) Add(userID, productID, qty int) ([]Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.carts[userID] == nil {
		r.carts[userID] = make(map[int]int)
	}
	r.carts[userID][productID] += qty
	if r.carts[userID][productID] <= 0 {
		delete(r.carts[userID], productID)
	}
	return r.snapshot(userID), nil
}

func (r *InMemoryRepository) Remove(userID, productID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.carts[userID][productID]; !ok {
		return ErrNotFound
	}
	delete(r.carts[userID], productID)
	return nil
}

func (r *InMemoryRepository) Clear(userID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, userID)
	return nil
}
