package coupon

import (
	"errors"
	"math"
	"time"
)

var (
	ErrInactive    = errors.New("coupon is inactive")
	ErrExpired     = errors.New("coupon has expired")
	ErrMinSubtotal = errors.New("subtotal below coupon minimum")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Apply computes the discount a code grants against a subtotal. The total is
// rounded to the cent and never goes below zero.
func (s *Service) Apply(code string, subtotal float64) (Application, error) {
	c, err := s.repo.GetByCode(code)
	if err != nil {
		return Application{}, err
	}
	if !c.Active {
		return Application{}, ErrInactive
	}
	if c.ExpiresAt != "" {
		expires, err := time.Parse(time.RFC3339, c.ExpiresAt)
		if err == nil && s.now().After(expires) {
			return Application{}, ErrExpired
		}
	}
	if subtotal < c.MinSubtotal {
		return Application{}, ErrMinSubtotal
	}

	var discount float64
	switch c.Type {
	case TypePercent:
		discount = subtotal * c.Value / 100
	case TypeFlat:
		discount = c.Value
	}
	if discount > subtotal {
		discount = subtotal
	}
	discount = math.Round(discount*100) / 100

	return Application{
		Code:     c.Code,
		Discount: discount,
		Total:    math.Round((subtotal-discount)*100) / 100,
	}, nil
}

func (s *Service) List() ([]Coupon, error) {
	return s.repo.List()
}

func (s *Service) Create(c Coupon) (Coupon, error) {
	now := s.now().Format(time.RFC3339)
	c.CreatedAt = now
	c.UpdatedAt = now
	return s.repo.Create(c)
}

func (s *Service) Update(c Coupon) (Coupon, error) {
	c.UpdatedAt = s.now().Format(time.RFC3339)
	return s.repo.Update(c)
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}
