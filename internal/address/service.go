package address

// ServiceInterface is what order placement needs from the address book.
type ServiceInterface interface {
	GetByID(userID, addressID int) (Address, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListByUser(userID int) ([]Address, error) {
	return s.repo.ListByUser(userID)
}

func (s *Service) GetByID(userID, addressID int) (Address, error) {
	if userID <= 0 || addressID <= 0 {
		return Address{}, ErrNotFound
	}
	return s.repo.GetByID(userID, addressID)
}

func (s *Service) Create(a Address) (Address, error) {
	return s.repo.Create(a)
}

func (s *Service) Update(userID, addressID int, a Address) (Address, error) {
	return s.repo.Update(userID, addressID, a)
}

func (s *Service) Delete(userID, addressID int) error {
	return s.repo.Delete(userID, addressID)
}
