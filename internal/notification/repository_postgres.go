package notification

import (
	"database/sql"
	"errors"
	"fmt"
)

const notificationColumns = "notification_id, user_id, title, body, read, batch_id, created_at"

const (
	listByUserQuery = "SELECT " + notificationColumns + " FROM notifications WHERE user_id = $1 ORDER BY notification_id DESC"

	createNotificationQuery = `
		INSERT INTO notifications (user_id, title, body, read, batch_id, created_at)
		VALUES ($1, $2, $3, FALSE, $4, $5)
		RETURNING ` + notificationColumns

	markReadQuery = `
		UPDATE notifications SET read = TRUE
		WHERE notification_id = $1 AND user_id = $2
		RETURNING ` + notificationColumns

	// One INSERT..SELECT fans a broadcast out to every registered user;
	// there is no per-user round trip.
	broadcastQuery = `
		INSERT INTO notifications (user_id, title, body, read, batch_id, created_at)
		SELECT user_id, $1, $2, FALSE, $3, $4 FROM users`
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var _ Repository = (*PostgresRepository)(nil)

func scanNotification(row interface{ Scan(...interface{}) error }) (Notification, error) {
	var n Notification
	err := row.Scan(&n.NotificationID, &n.UserID, &n.Title, &n.Body, &n.Read, &n.BatchID, &n.CreatedAt)
	return n, err
}

func (r *PostgresRepository) ListByUser(userID int) ([]Notification, error) {
	rows, err := r.db.Query(listByUserQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	notifications := []Notification{}
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (r *PostgresRepository) Create(n Notification) (Notification, error) {
	created, err := scanNotification(r.db.QueryRow(createNotificationQuery,
		n.UserID, n.Title, n.Body, n.BatchID, n.CreatedAt))
	if err != nil {
		return Notification{}, fmt.Errorf("create notification: %w", err)
	}
	return created, nil
}

func (r *PostgresRepository) MarkRead(userID, notificationID int) (Notification, error) {
	n, err := scanNotification(r.db.QueryRow(markReadQuery, notificationID, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return Notification{}, ErrNotFound
	}
	if err != nil {
		return Notification{}, fmt.Errorf("mark notification read: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) Broadcast(title, body, batchID, now string) (int, error) {
	res, err := r.db.Exec(broadcastQuery, title, body, batchID, now)
	if err != nil {
		return 0, fmt.Errorf("broadcast notification: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}
