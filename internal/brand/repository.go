package brand

import (
	"errors"
	"sync"
)

var (
	ErrNotFound   = errors.New("brand not found")
	ErrSlugExists = errors.New("brand slug already exists")
)

type Repository interface {
	List() ([]Brand, error)
	GetBySlug(slug string) (Brand, error)
	Create(b Brand) (Brand, error)
	Update(b Brand) (Brand, error)
	Delete(id int) error
}

type InMemoryRepository struct {
	mu     sync.Mutex
	brands []Brand
	nextID int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{nextID: 1}
}

func (r *InMemoryRepository) List() ([]Brand, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Brand, len(r.brands))
	copy(out, r.brands)
	return out, nil
}

func (r *InMemoryRepository) GetBySlug(slug string) (Brand, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.brands {
		if b.Slug == slug {
			return b, nil
		}
	}
	return Brand{}, ErrNotFound
}

func (r *InMemoryRepository) Create(b Brand) (Brand, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.brands {
		if existing.Slug == b.Slug {
			return Brand{}, ErrSlugExists
		}
	}
	b.BrandID = r.nextID
	r.nextID++
	r.brands = append(r.brands, b)
	return b, nil
}

func (r *InMemoryRepository) Update(b Brand) (Brand, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.brands {
		if r.brands[i].BrandID == b.BrandID {
			r.brands[i] = b
			return b, nil
		}
	}
	return Brand{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.brands {
		if r.brands[i].BrandID == id {
			r.brands = append(r.brands[:i], r.brands[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
