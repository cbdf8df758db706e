package brand

import "time"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List() ([]Brand, error) {
	return s.repo.List()
}

func (s *Service) GetBySlug(slug string) (Brand, error) {
	return s.repo.GetBySlug(slug)
}

func (s *Service) Create(b Brand) (Brand, error) {
	now := time.Now().Format(time.RFC3339)
	b.CreatedAt = now
	b.UpdatedAt = now
	return s.repo.Create(b)
}

func (s *Service) Update(b Brand) (Brand, error) {
	b.UpdatedAt = time.Now().Format(time.RFC3339)
	return s.repo.Update(b)
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}
