package coupon

// Discount types. Percent coupons take Value as a percentage of the
// subtotal, flat coupons take Value off directly.
const (
	TypePercent = "percent"
	TypeFlat    = "flat"
)

type Coupon struct {
	CouponID    int     `json:"couponId"`
	Code        string  `json:"code"`
	Type        string  `json:"type"`
	Value       float64 `json:"value"`
	MinSubtotal float64 `json:"minSubtotal"`
	ExpiresAt   string  `json:"expiresAt"`
	Active      bool    `json:"active"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// Application is the outcome of applying a coupon to a subtotal.
type Application struct {
	Code     string  `json:"code"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`
}
