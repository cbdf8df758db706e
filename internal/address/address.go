package address

// Address is a saved shipping destination belonging to one user.
type Address struct {
	AddressID int    `json:"addressId"`
	UserID    int    `json:"userId"`
	Recipient string `json:"recipient"`
	Line1     string `json:"line1"`
	Line2     string `json:"line2,omitempty"`
	City      string `json:"city"`
	Postcode  string `json:"postcode"`
	Phone     string `json:"phone"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}
