package coupon

import (
	"errors"
	"strings"
	"sync"
)

var (
	ErrNotFound   = errors.New("coupon not found")
	ErrCodeExists = errors.New("coupon code already exists")
)

type Repository interface {
	List() ([]Coupon, error)
	GetByCode(code string) (Coupon, error)
	Create(c Coupon) (Coupon, error)
	Update(c Coupon) (Coupon, error)
	Delete(id int) error
}

type InMemoryRepository struct {
	mu      sync.Mutex
	coupons []Coupon
	nextID  int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{nextID: 1}
}

func (r *InMemoryRepository) List() ([]Coupon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Coupon, len(r.coupons))
	copy(out, r.coupons)
	return out, nil
}

func (r *InMemoryRepository) GetByCode(code string) (Coupon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.coupons {
		if strings.EqualFold(c.Code, code) {
			return c, nil
		}
	}
	return Coupon{}, ErrNotFound
}

func (r *InMemoryRepository) Create(c Coupon) (Coupon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.coupons {
		if strings.EqualFold(existing.Code, c.Code) {
			return Coupon{}, ErrCodeExists
		}
	}
	c.CouponID = r.nextID
	r.nextID++
	r.coupons = append(r.coupons, c)
	return c, nil
}

func (r *InMemoryRepository) Update(c Coupon) (Coupon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.coupons {
		if r.coupons[i].CouponID == c.CouponID {
			r.coupons[i] = c
			return c, nil
		}
	}
	return Coupon{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.coupons {
		if r.coupons[i].CouponID == id {
			r.coupons = append(r.coupons[:i], r.coupons[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
