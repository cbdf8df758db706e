package notification

import (
	"errors"
	"sync"
)

var ErrNotFound = errors.New("notification not found")

type Repository interface {
	ListByUser(userID int) ([]Notification, error)
	Create(n Notification) (Notification, error)
	// MarkRead flips the flag only when the notification belongs to userID.
	MarkRead(userID, notificationID int) (Notification, error)
	// Broadcast inserts one copy per registered user in a single statement
	// and reports how many were created.
	Broadcast(title, body, batchID, now string) (int, error)
}

type InMemoryRepository struct {
	mu            sync.Mutex
	notifications []Notification
	nextID        int

	// BroadcastUserIDs stands in for the users table.
	BroadcastUserIDs []int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{nextID: 1}
}

func (r *InMemoryRepository) ListByUser(userID int) ([]Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []Notification{}
	for _, n := range r.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) Create(n Notification) (Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n.NotificationID = r.nextID
	r.nextID++
	r.notifications = append(r.notifications, n)
	return n, nil
}

func (r *InMemoryRepository) MarkRead(userID, notificationID int) (Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.notifications {
		if r.notifications[i].NotificationID == notificationID && r.notifications[i].UserID == userID {
			r.notifications[i].Read = true
			return r.notifications[i], nil
		}
	}
	return Notification{}, ErrNotFound
}

func (r *InMemoryRepository) Broadcast(title, body, batchID, now string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, userID := range r.BroadcastUserIDs {
		r.notifications = append(r.notifications, Notification{
			NotificationID: r.nextID,
			UserID:         userID,
			Title:          title,
			Body:           body,
			BatchID:        &batchID,
			CreatedAt:      now,
		})
		r.nextID++
	}
	return len(r.BroadcastUserIDs), nil
}
