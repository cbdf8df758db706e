package notification

import (
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Notify creates a single notification for one user. This is the hook the
// order flow calls after placement and cancellation.
func (s *Service) Notify(userID int, title, body string) error {
	_, err := s.repo.Create(Notification{
		UserID:    userID,
		Title:     title,
		Body:      body,
		CreatedAt: time.Now().Format(time.RFC3339),
	})
	return err
}

func (s *Service) ListByUser(userID int) ([]Notification, error) {
	return s.repo.ListByUser(userID)
}

func (s *Service) MarkRead(userID, notificationID int) (Notification, error) {
	return s.repo.MarkRead(userID, notificationID)
}

// Broadcast delivers one copy to every registered user, all stamped with the
// same batch id so a campaign can be traced afterwards.
func (s *Service) Broadcast(title, body string) (string, int, error) {
	batchID := uuid.NewString()
	count, err := s.repo.Broadcast(title, body, batchID, time.Now().Format(time.RFC3339))
	if err != nil {
		return "", 0, err
	}
	return batchID, count, nil
}
