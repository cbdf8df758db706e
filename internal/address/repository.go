package address

import (
	"errors"
	"sync"
)

var (
	ErrNotFound = errors.New("address not found")
)

type Repository interface {
	ListByUser(userID int) ([]Address, error)
	// GetByID only resolves addresses owned by userID; anything else is
	// ErrNotFound so ownership never leaks.
	GetByID(userID, addressID int) (Address, error)
	Create(a Address) (Address, error)
	Update(userID, addressID int, a Address) (Address, error)
	Delete(userID, addressID int) error
}

// InMemoryRepository backs tests.
type InMemoryRepository struct {
	mu     sync.RWMutex
	data   []Address
	nextID int
}

func NewInMemoryRepository(seed []Address) *InMemoryRepository {
	r := &InMemoryRepository{data: make([]Address, 0, len(seed)), nextID: 1}
	maxID := 0
	for _, a := range seed {
		r.data = append(r.data, a)
		if a.AddressID > maxID {
			maxID = a.AddressID
		}
	}
	r.nextID = maxID + 1
	return r
}

func (r *InMemoryRepository) ListByUser(userID int) ([]Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Address, 0)
	for _, a := range r.data {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) GetByID(userID, addressID int) (Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.data {
		if a.AddressID == addressID && a.UserID == userID {
			return a, nil
		}
	}
	return Address{}, ErrNotFound
}

func (r *InMemoryRepository) Create(a Address) (Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a.AddressID == 0 {
		a.AddressID = r.nextID
		r.nextID++
	}
	r.data = append(r.data, a)
	return a, nil
}

func (r *InMemoryRepository) Update(userID, addressID int, a Address) (Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.data {
		if r.data[i].AddressID == addressID && r.data[i].UserID == userID {
			a.AddressID = addressID
			a.UserID = userID
			r.data[i] = a
			return a, nil
		}
	}
	return Address{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(userID, addressID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.data {
		if r.data[i].AddressID == addressID && r.data[i].UserID == userID {
			r.data = append(r.data[:i], r.data[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
