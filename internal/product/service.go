package product

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// ServiceInterface is what other packages (order, hamper, review) need from
// the catalog.
type ServiceInterface interface {
	GetByID(id int) (Product, error)
	ListByIDs(ids []int) ([]Product, error)
}

// Cache is the subset of the redis cache the catalog uses. May be nil.
type Cache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) error
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

const cacheTTL = 10 * time.Minute

type Service struct {
	repo   Repository
	cache  Cache
	logger *zap.Logger
}

// NewService builds the catalog service. cache may be nil to disable
// caching; logger may be nil in tests.
func NewService(repo Repository, cache Cache, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, cache: cache, logger: logger}
}

func cacheKey(id int) string {
	return fmt.Sprintf("product:%d", id)
}

func (s *Service) List(f Filter) ([]Product, error) {
	return s.repo.List(f)
}

func (s *Service) GetByID(id int) (Product, error) {
	if s.cache != nil {
		var cached Product
		if err := s.cache.GetJSON(context.Background(), cacheKey(id), &cached); err == nil {
			return cached, nil
		}
	}

	p, err := s.repo.GetByID(id)
	if err != nil {
		return Product{}, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(context.Background(), cacheKey(id), p, cacheTTL); err != nil {
			s.logger.Warn("product cache write failed", zap.Int("productId", id), zap.Error(err))
		}
	}
	return p, nil
}

func (s *Service) ListByIDs(ids []int) ([]Product, error) {
	return s.repo.ListByIDs(ids)
}

// Variants returns every row sharing the product's style id, the product
// itself included.
func (s *Service) Variants(id int) ([]Product, error) {
	p, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p.StyleID == "" {
		return []Product{p}, nil
	}
	return s.repo.List(Filter{StyleID: p.StyleID})
}

func (s *Service) Create(p Product) (Product, error) {
	return s.repo.Create(p)
}

func (s *Service) Update(id int, p Product) (Product, error) {
	updated, err := s.repo.Update(id, p)
	if err != nil {
		return Product{}, err
	}
	s.invalidate(id)
	return updated, nil
}

func (s *Service) Delete(id int) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.invalidate(id)
	return nil
}

func (s *Service) invalidate(id int) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(context.Background(), cacheKey(id)); err != nil {
		s.logger.Warn("product cache invalidation failed", zap.Int("productId", id), zap.Error(err))
	}
}
