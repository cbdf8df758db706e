package order

import "errors"

// FreeGiftProductID is the reserved sentinel id for promotional gift lines.
// Gift lines skip existence, stock and price checks and never move stock.
const FreeGiftProductID = 0

// SubtotalTolerance is the largest accepted drift between a client-claimed
// amount and the server-computed one.
const SubtotalTolerance = 0.01

// Line is one order position, an immutable snapshot taken at placement time.
type Line struct {
	ProductID int     `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Shipping is the address snapshot embedded in the order. Later edits to the
// saved address must not rewrite order history.
type Shipping struct {
	Recipient string `json:"recipient"`
	Line1     string `json:"line1"`
	Line2     string `json:"line2,omitempty"`
	City      string `json:"city"`
	Postcode  string `json:"postcode"`
	Phone     string `json:"phone"`
}

// Order is a placed purchase. Everything except Status is immutable.
type Order struct {
	OrderID     int      `json:"orderId"`
	OrderRef    string   `json:"orderRef"`
	UserID      int      `json:"userId"`
	Storefront  string   `json:"storefront"`
	Lines       []Line   `json:"lines"`
	TotalAmount float64  `json:"totalAmount"`
	Status      Status   `json:"status"`
	Shipping    Shipping `json:"shippingAddress"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
}

var (
	ErrNotFound          = errors.New("order not found")
	ErrEmptyOrder        = errors.New("order has no items")
	ErrInvalidQuantity   = errors.New("line quantity must be positive")
	ErrUnknownProduct    = errors.New("unknown product")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrPriceDrift        = errors.New("price drift")
	ErrSubtotalMismatch  = errors.New("subtotal mismatch")
	ErrAddressNotFound   = errors.New("shipping address not found")
	ErrNotCancellable    = errors.New("order can no longer be cancelled")
	ErrBadTransition     = errors.New("invalid status transition")
	ErrForbidden         = errors.New("not the order owner")
)
