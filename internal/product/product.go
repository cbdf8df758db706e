package product

// Product is one sellable catalog row. Colour/size variants of the same
// conceptual product share a StyleID; Storefront scopes the row to a brand.
// JSON tags follow the camelCase convention used across the API.
type Product struct {
	ID            int     `json:"productId"`
	Name          string  `json:"productName"`
	Description   string  `json:"productDesc,omitempty"`
	MRP           float64 `json:"mrp"`
	SellingPrice  float64 `json:"sellingPrice"`
	PurchasePrice float64 `json:"purchasePrice,omitempty"`
	Stock         int     `json:"stock"`
	StyleID       string  `json:"styleId,omitempty"`
	Storefront    string  `json:"storefront"`
	Category      string  `json:"category,omitempty"`
	ImageURL      *string `json:"imageUrl,omitempty"`
	// Packaging rows (hamper boxes and bags) live in the catalog like any
	// other product so hampers can reference them by id.
	IsPackaging bool   `json:"isPackaging,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

// Filter narrows catalog listings.
type Filter struct {
	Storefront    string
	Category      string
	StyleID       string
	PackagingOnly bool
}
