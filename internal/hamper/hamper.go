package hamper

// Hamper is a gift hamper built up across several requests. At most one
// draft (IsComplete=false) exists per user; checkout completes it and the
// completed row stays behind as an artifact.
type Hamper struct {
	HamperID     int    `json:"hamperId"`
	UserID       int    `json:"userId"`
	Occasion     string `json:"occasion,omitempty"`
	BoxProductID *int   `json:"boxProductId,omitempty"`
	BagProductID *int   `json:"bagProductId,omitempty"`
	ProductIDs   []int  `json:"productIds"`
	Note         string `json:"note,omitempty"`
	IsComplete   bool   `json:"isComplete"`
	CreatedAt    string `json:"createdAt,omitempty"`
	UpdatedAt    string `json:"updatedAt,omitempty"`
}

// Patch carries the fields of one build step. Nil pointers leave the stored
// value untouched so steps accumulate.
type Patch struct {
	Occasion     *string `json:"occasion"`
	BoxProductID *int    `json:"boxProductId"`
	BagProductID *int    `json:"bagProductId"`
	ProductIDs   []int   `json:"productIds"`
	Note         *string `json:"note"`
}
