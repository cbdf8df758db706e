package review

import (
	"errors"
	"math"
	"sync"
)

var (
	ErrAlreadyReviewed = errors.New("product already reviewed by this user")
	ErrNotFound        = errors.New("review not found")
)

type Repository interface {
	ListByProduct(productID int) ([]Review, error)
	Summarize(productID int) (Summary, error)
	// Create enforces one review per user and product.
	Create(r Review) (Review, error)
	Delete(userID, reviewID int) error
}

type InMemoryRepository struct {
	mu      sync.Mutex
	reviews []Review
	nextID  int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{nextID: 1}
}

func (r *InMemoryRepository) ListByProduct(productID int) ([]Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []Review{}
	for _, rv := range r.reviews {
		if rv.ProductID == productID {
			out = append(out, rv)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) Summarize(productID int) (Summary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sum, count := 0, 0
	for _, rv := range r.reviews {
		if rv.ProductID == productID {
			sum += rv.Rating
			count++
		}
	}
	s := Summary{ProductID: productID, ReviewCount: count}
	if count > 0 {
		s.AverageRating = math.Round(float64(sum)/float64(count)*10) / 10
	}
	return s, nil
}

func (r *InMemoryRepository) Create(rv Review) (Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.reviews {
		if existing.ProductID == rv.ProductID && existing.UserID == rv.UserID {
			return Review{}, ErrAlreadyReviewed
		}
	}
	rv.ReviewID = r.nextID
	r.nextID++
	r.reviews = append(r.reviews, rv)
	return rv, nil
}

func (r *InMemoryRepository) Delete(userID, reviewID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.reviews {
		if r.reviews[i].ReviewID == reviewID && r.reviews[i].UserID == userID {
			r.reviews = append(r.reviews[:i], r.reviews[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
