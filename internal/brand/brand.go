package brand

// Brand is a storefront tenant. Slug is the value products carry in their
// storefront column.
type Brand struct {
	BrandID   int    `json:"brandId"`
	Slug      string `json:"slug"`
	Name      string `json:"name"`
	Tagline   string `json:"tagline"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}
