package hamper

import (
	"errors"
	"sync"
)

var (
	ErrNoDraft         = errors.New("no draft hamper")
	ErrDraftIncomplete = errors.New("draft hamper is missing a box or products")
)

type Repository interface {
	GetDraft(userID int) (Hamper, error)
	// Upsert merges the patch into the user's single draft, creating it on
	// first write. Two concurrent first writes still end up in one draft.
	Upsert(userID int, p Patch, now string) (Hamper, error)
	DeleteDraft(userID int) error
	// Finalize flips the draft to complete and returns it; ErrNoDraft when
	// the user has none.
	Finalize(userID int, now string) (Hamper, error)
}

// InMemoryRepository backs tests.
type InMemoryRepository struct {
	mu      sync.Mutex
	hampers []Hamper
	nextID  int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{nextID: 1}
}

func (r *InMemoryRepository) draftIndex(userID int) int {
	for i := range r.hampers {
		if r.hampers[i].UserID == userID && !r.hampers[i].IsComplete {
			return i
		}
	}
	return -1
}

func (r *InMemoryRepository) GetDraft(userID int) (Hamper, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i := r.draftIndex(userID); i >= 0 {
		return r.hampers[i], nil
	}
	return Hamper{}, ErrNoDraft
}

func (r *InMemoryRepository) Upsert(userID int, p Patch, now string) (Hamper, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.draftIndex(userID)
	if i < 0 {
		r.hampers = append(r.hampers, Hamper{
			HamperID:   r.nextID,
			UserID:     userID,
			ProductIDs: []int{},
			CreatedAt:  now,
		})
		r.nextID++
		i = len(r.hampers) - 1
	}

	h := &r.hampers[i]
	if p.Occasion != nil {
		h.Occasion = *p.Occasion
	}
	if p.BoxProductID != nil {
		v := *p.BoxProductID
		h.BoxProductID = &v
	}
	if p.BagProductID != nil {
		v := *p.BagProductID
		h.BagProductID = &v
	}
	if p.ProductIDs != nil {
		h.ProductIDs = append([]int(nil), p.ProductIDs...)
	}
	if p.Note != nil {
		h.Note = *p.Note
	}
	h.UpdatedAt = now
	return *h, nil
}

func (r *InMemoryRepository) DeleteDraft(userID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i := r.draftIndex(userID); i >= 0 {
		r.hampers = append(r.hampers[:i], r.hampers[i+1:]...)
		return nil
	}
	return ErrNoDraft
}

func (r *InMemoryRepository) Finalize(userID int, now string) (Hamper, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i := r.draftIndex(userID); i >= 0 {
		r.hampers[i].IsComplete = true
		r.hampers[i].UpdatedAt = now
		return r.hampers[i], nil
	}
	return Hamper{}, ErrNoDraft
}
