package wishlist

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(userID int) ([]int, error) {
	return s.repo.List(userID)
}

func (s *Service) Add(userID, productID int) ([]int, error) {
	if productID <= 0 {
		return nil, ErrNotFound
	}
	return s.repo.Add(userID, productID)
}

func (s *Service) Remove(userID, productID int) ([]int, error) {
	return s.repo.Remove(userID, productID)
}
