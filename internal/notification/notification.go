package notification

type Notification struct {
	NotificationID int     `json:"notificationId"`
	UserID         int     `json:"userId"`
	Title          string  `json:"title"`
	Body           string  `json:"body"`
	Read           bool    `json:"read"`
	BatchID        *string `json:"batchId,omitempty"`
	CreatedAt      string  `json:"createdAt"`
}
