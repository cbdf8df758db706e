package cart

// Item is one line of a user's cart.
type Item struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}
