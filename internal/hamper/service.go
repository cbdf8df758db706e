package hamper

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/velora/storefront-backend/internal/cart"
	"github.com/velora/storefront-backend/internal/product"
)

var (
	ErrUnknownProduct = errors.New("unknown product")
	ErrNotPackaging   = errors.New("product is not a packaging item")
	ErrPackagingOnly  = errors.New("packaging items cannot be hamper contents")
)

type Service struct {
	repo     Repository
	products product.ServiceInterface
	carts    cart.ServiceInterface
	logger   *zap.Logger
}

func NewService(repo Repository, products product.ServiceInterface, carts cart.ServiceInterface, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, products: products, carts: carts, logger: logger}
}

func (s *Service) Get(userID int) (Hamper, error) {
	return s.repo.GetDraft(userID)
}

// Update merges the patch into the user's draft, creating one on first call.
// Referenced products are validated before anything is stored.
func (s *Service) Update(userID int, p Patch) (Hamper, error) {
	if p.BoxProductID != nil {
		if err := s.checkPackaging(*p.BoxProductID); err != nil {
			return Hamper{}, err
		}
	}
	if p.BagProductID != nil {
		if err := s.checkPackaging(*p.BagProductID); err != nil {
			return Hamper{}, err
		}
	}
	if p.ProductIDs != nil {
		if err := s.checkContents(p.ProductIDs); err != nil {
			return Hamper{}, err
		}
	}
	return s.repo.Upsert(userID, p, time.Now().Format(time.RFC3339))
}

func (s *Service) Discard(userID int) error {
	return s.repo.DeleteDraft(userID)
}

// Checkout finalizes the draft and moves its box, bag and contents into the
// user's cart as ordinary lines, so the order flow needs no hamper awareness.
func (s *Service) Checkout(userID int) (Hamper, error) {
	draft, err := s.repo.GetDraft(userID)
	if err != nil {
		return Hamper{}, err
	}
	if draft.BoxProductID == nil || len(draft.ProductIDs) == 0 {
		return Hamper{}, ErrDraftIncomplete
	}

	// the catalog may have changed since the draft step, so every stored id
	// is resolved again before the draft is finalized
	if err := s.checkPackaging(*draft.BoxProductID); err != nil {
		return Hamper{}, err
	}
	if draft.BagProductID != nil {
		if err := s.checkPackaging(*draft.BagProductID); err != nil {
			return Hamper{}, err
		}
	}
	if err := s.checkContents(draft.ProductIDs); err != nil {
		return Hamper{}, err
	}

	done, err := s.repo.Finalize(userID, time.Now().Format(time.RFC3339))
	if err != nil {
		return Hamper{}, err
	}

	lines := map[int]int{*done.BoxProductID: 1}
	if done.BagProductID != nil {
		lines[*done.BagProductID]++
	}
	for _, id := range done.ProductIDs {
		lines[id]++
	}
	for id, qty := range lines {
		if _, err := s.carts.Add(userID, id, qty); err != nil {
			// the draft is finalized already, so the cart may hold a partial move
			s.logger.Warn("hamper cart move incomplete",
				zap.Int("userId", userID), zap.Int("productId", id), zap.Error(err))
			return Hamper{}, fmt.Errorf("move hamper to cart: %w", err)
		}
	}
	return done, nil
}

func (s *Service) checkContents(ids []int) error {
	items, err := s.products.ListByIDs(ids)
	if err != nil {
		return err
	}
	byID := make(map[int]product.Product, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}
	for _, id := range ids {
		it, ok := byID[id]
		if !ok {
			return fmt.Errorf("%w: product %d", ErrUnknownProduct, id)
		}
		if it.IsPackaging {
			return fmt.Errorf("%w: product %d", ErrPackagingOnly, id)
		}
	}
	return nil
}

func (s *Service) checkPackaging(id int) error {
	p, err := s.products.GetByID(id)
	if errors.Is(err, product.ErrNotFound) {
		return fmt.Errorf("%w: product %d", ErrUnknownProduct, id)
	}
	if err != nil {
		return err
	}
	if !p.IsPackaging {
		return fmt.Errorf("%w: product %d", ErrNotPackaging, id)
	}
	return nil
}
