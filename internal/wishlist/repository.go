package wishlist

import (
	"errors"
	"sort"
	"sync"
)

var (
	ErrNotFound      = errors.New("wishlist item not found")
	ErrAlreadyListed = errors.New("product already in wishlist")
)

type Repository interface {
	List(userID int) ([]int, error)
	Add(userID, productID int) ([]int, error)
	Remove(userID, productID int) ([]int, error)
}

// InMemoryRepository backs tests.
type InMemoryRepository struct {
	mu   sync.RWMutex
	data map[int]map[int]struct{} // userID -> set of productIDs
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{data: make(map[int]map[int]struct{})}
}

func (r *InMemoryRepository) snapshot(userID int) []int {
	out := make([]int, 0, len(r.data[userID]))
	for pid := range r.data[userID] {
		out = append(out, pid)
	}
	sort.Ints(out)
	return out
}

func (r *InMemoryRepository) List(userID int) ([]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot(userID), nil
}

func (r *InMemoryRepository) Add(userID, productID int) ([]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.data[userID] == nil {
		r.data[userID] = make(map[int]struct{})
	}
	if _, ok := r.data[userID][productID]; ok {
		return nil, ErrAlreadyListed
	}
	r.data[userID][productID] = struct{}{}
	return r.snapshot(userID), nil
}

func (r *InMemoryRepository) Remove(userID, productID int) ([]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[userID][productID]; !ok {
		return nil, ErrNotFound
	}
	delete(r.data[userID], productID)
	return r.snapshot(userID), nil
}
