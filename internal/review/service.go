package review

import (
	"errors"
	"fmt"
	"time"

	"github.com/velora/storefront-backend/internal/product"
)

var ErrInvalidRating = errors.New("rating must be between 1 and 5")

type Service struct {
	repo     Repository
	products product.ServiceInterface
}

func NewService(repo Repository, products product.ServiceInterface) *Service {
	return &Service{repo: repo, products: products}
}

// ListByProduct returns the reviews plus the aggregate in one shot, the
// shape the product page renders directly.
func (s *Service) ListByProduct(productID int) ([]Review, Summary, error) {
	reviews, err := s.repo.ListByProduct(productID)
	if err != nil {
		return nil, Summary{}, err
	}
	summary, err := s.repo.Summarize(productID)
	if err != nil {
		return nil, Summary{}, err
	}
	return reviews, summary, nil
}

func (s *Service) Create(rv Review) (Review, error) {
	if rv.Rating < 1 || rv.Rating > 5 {
		return Review{}, ErrInvalidRating
	}
	if _, err := s.products.GetByID(rv.ProductID); err != nil {
		if errors.Is(err, product.ErrNotFound) {
			return Review{}, fmt.Errorf("%w: product %d", product.ErrNotFound, rv.ProductID)
		}
		return Review{}, err
	}
	rv.CreatedAt = time.Now().Format(time.RFC3339)
	return s.repo.Create(rv)
}

func (s *Service) Delete(userID, reviewID int) error {
	return s.repo.Delete(userID, reviewID)
}
