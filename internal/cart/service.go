package cart

import "errors"

var errInvalidUser = errors.New("invalid user")

// ServiceInterface is the slice of the cart other packages (hamper) use.
type ServiceInterface interface {
	Add(userID, productID, qty int) ([]Item, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(userID int) ([]Item, error) {
	if userID <= 0 {
		return nil, errInvalidUser
	}
	return s.repo.Get(userID)
}

func (s *Service) Add(userID, productID, qty int) ([]Item, error) {
	if userID <= 0 || productID <= 0 {
		return nil, errInvalidUser
	}
	if qty == 0 {
		return s.repo.Get(userID)
	}
	return s.repo.Add(userID, productID, qty)
}

func (s *Service) Remove(userID, productID int) error {
	if userID <= 0 {
		return errInvalidUser
	}
	return s.repo.Remove(userID, productID)
}

func (s *Service) Clear(userID int) error {
	if userID <= 0 {
		return errInvalidUser
	}
	return s.repo.Clear(userID)
}
