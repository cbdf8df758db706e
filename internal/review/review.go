package review

type Review struct {
	ReviewID  int    `json:"reviewId"`
	ProductID int    `json:"productId"`
	UserID    int    `json:"userId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	CreatedAt string `json:"createdAt"`
}

// Summary aggregates a product's reviews.
type Summary struct {
	ProductID     int     `json:"productId"`
	AverageRating float64 `json:"averageRating"`
	ReviewCount   int     `json:"reviewCount"`
}
