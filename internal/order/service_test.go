package order

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velora/storefront-backend/internal/address"
	"github.com/velora/storefront-backend/internal/cart"
	"github.com/velora/storefront-backend/internal/platform/events"
	"github.com/velora/storefront-backend/internal/product"
)

type fakeNotifier struct {
	sent []string
}

func (f *fakeNotifier) Notify(userID int, title, body string) error {
	f.sent = append(f.sent, title)
	return nil
}

type fakePublisher struct {
	events []events.OrderEvent
}

func (f *fakePublisher) Publish(ctx context.Context, ev events.OrderEvent) error {
	f.events = append(f.events, ev)
	return nil
}

type orderFixture struct {
	svc       *Service
	products  *product.InMemoryRepository
	carts     *cart.InMemoryRepository
	notifier  *fakeNotifier
	publisher *fakePublisher
}

func newFixture() *orderFixture {
	products := product.NewInMemoryRepository([]product.Product{
		{ID: 1, Name: "Sea Salt Caramels", SellingPrice: 15, Stock: 10, Storefront: "velora"},
		{ID: 2, Name: "Single Origin Coffee", SellingPrice: 19, Stock: 3, Storefront: "velora"},
	})
	carts := cart.NewInMemoryRepository()
	addresses := address.NewInMemoryRepository([]address.Address{
		{AddressID: 1, UserID: 7, Recipient: "Sam", Line1: "1 High St", City: "Leeds", Postcode: "LS1", Phone: "0113"},
	})
	notifier := &fakeNotifier{}
	publisher := &fakePublisher{}

	repo := NewInMemoryRepository(products, carts)
	svc := NewService(repo, product.NewService(products, nil, nil),
		address.NewService(addresses), notifier, publisher, nil)
	return &orderFixture{svc: svc, products: products, carts: carts, notifier: notifier, publisher: publisher}
}

func TestPlace_DecrementsStockAndClearsCart(t *testing.T) {
	f := newFixture()
	f.carts.Add(7, 1, 2)

	placed, err := f.svc.Place(PlaceRequest{
		UserID:            7,
		Items:             []Line{{ProductID: 1, Quantity: 2, Price: 15}},
		Subtotal:          30,
		ShippingAddressID: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, StatusPending, placed.Status)
	assert.NotEmpty(t, placed.OrderRef)
	assert.Equal(t, "velora", placed.Storefront)
	assert.Equal(t, "Sam", placed.Shipping.Recipient)
	assert.InDelta(t, 30, placed.TotalAmount, 0.001)

	p, _ := f.products.GetByID(1)
	assert.Equal(t, 8, p.Stock)

	items, _ := f.carts.Get(7)
	assert.Empty(t, items)

	assert.Equal(t, []string{"Order placed"}, f.notifier.sent)
	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, events.TypeOrderPlaced, f.publisher.events[0].Type)
}

func TestPlace_InsufficientStockLeavesNothingBehind(t *testing.T) {
	f := newFixture()
	f.carts.Add(7, 2, 5)

	_, err := f.svc.Place(PlaceRequest{
		UserID:            7,
		Items:             []Line{{ProductID: 2, Quantity: 5, Price: 19}},
		Subtotal:          95,
		ShippingAddressID: 1,
	})
	require.ErrorIs(t, err, ErrInsufficientStock)

	p, _ := f.products.GetByID(2)
	assert.Equal(t, 3, p.Stock)

	items, _ := f.carts.Get(7)
	assert.Len(t, items, 1)

	orders, _ := f.svc.ListByUser(7)
	assert.Empty(t, orders)
	assert.Empty(t, f.notifier.sent)
}

func TestPlace_PriceDriftRejected(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Place(PlaceRequest{
		UserID:            7,
		Items:             []Line{{ProductID: 1, Quantity: 1, Price: 14}},
		Subtotal:          14,
		ShippingAddressID: 1,
	})
	require.ErrorIs(t, err, ErrPriceDrift)

	p, _ := f.products.GetByID(1)
	assert.Equal(t, 10, p.Stock)

	// per-line prices match exactly, no tolerance
	_, err = f.svc.Place(PlaceRequest{
		UserID:            7,
		Items:             []Line{{ProductID: 1, Quantity: 1, Price: 15.005}},
		Subtotal:          15.005,
		ShippingAddressID: 1,
	})
	require.ErrorIs(t, err, ErrPriceDrift)
}

func TestPlace_SubtotalMismatchRejected(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Place(PlaceRequest{
		UserID:            7,
		Items:             []Line{{ProductID: 1, Quantity: 2, Price: 15}},
		Subtotal:          25,
		ShippingAddressID: 1,
	})
	require.ErrorIs(t, err, ErrSubtotalMismatch)
}

func TestPlace_SubtotalWithinToleranceAccepted(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Place(PlaceRequest{
		UserID:            7,
		Items:             []Line{{ProductID: 1, Quantity: 2, Price: 15}},
		Subtotal:          30.009,
		ShippingAddressID: 1,
	})
	require.NoError(t, err)
}

func TestPlace_UnknownProduct(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Place(PlaceRequest{
		UserID:            7,
		Items:             []Line{{ProductID: 99, Quantity: 1, Price: 5}},
		Subtotal:          5,
		ShippingAddressID: 1,
	})
	require.ErrorIs(t, err, ErrUnknownProduct)
}

func TestPlace_FreeGiftLineSkipsChecks(t *testing.T) {
	f := newFixture()

	placed, err := f.svc.Place(PlaceRequest{
		UserID: 7,
		Items: []Line{
			{ProductID: 1, Quantity: 1, Price: 15},
			{ProductID: FreeGiftProductID, Quantity: 1, Price: 0},
		},
		Subtotal:          15,
		ShippingAddressID: 1,
	})
	require.NoError(t, err)
	assert.Len(t, placed.Lines, 2)

	// gift lines never touch stock
	p, _ := f.products.GetByID(1)
	assert.Equal(t, 9, p.Stock)
}

func TestPlace_FreeGiftLineNeverBilled(t *testing.T) {
	f := newFixture()

	// a priced gift line must not inflate the total
	_, err := f.svc.Place(PlaceRequest{
		UserID: 7,
		Items: []Line{
			{ProductID: 1, Quantity: 1, Price: 15},
			{ProductID: FreeGiftProductID, Quantity: 1, Price: 50},
		},
		Subtotal:          65,
		ShippingAddressID: 1,
	})
	require.ErrorIs(t, err, ErrSubtotalMismatch)

	placed, err := f.svc.Place(PlaceRequest{
		UserID: 7,
		Items: []Line{
			{ProductID: 1, Quantity: 1, Price: 15},
			{ProductID: FreeGiftProductID, Quantity: 1, Price: 50},
		},
		Subtotal:          15,
		ShippingAddressID: 1,
	})
	require.NoError(t, err)
	assert.InDelta(t, 15, placed.TotalAmount, 0.001)
	require.Len(t, placed.Lines, 2)
	assert.Zero(t, placed.Lines[1].Price)
}

func TestPlace_EmptyAndInvalidQuantity(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Place(PlaceRequest{UserID: 7, ShippingAddressID: 1})
	require.ErrorIs(t, err, ErrEmptyOrder)

	_, err = f.svc.Place(PlaceRequest{
		UserID:            7,
		Items:             []Line{{ProductID: 1, Quantity: 0, Price: 15}},
		ShippingAddressID: 1,
	})
	require.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestPlace_MissingAddress(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Place(PlaceRequest{
		UserID:            7,
		Items:             []Line{{ProductID: 1, Quantity: 1, Price: 15}},
		Subtotal:          15,
		ShippingAddressID: 42,
	})
	require.ErrorIs(t, err, ErrAddressNotFound)
}

func placeOne(t *testing.T, f *orderFixture) Order {
	t.Helper()
	placed, err := f.svc.Place(PlaceRequest{
		UserID:            7,
		Items:             []Line{{ProductID: 1, Quantity: 2, Price: 15}},
		Subtotal:          30,
		ShippingAddressID: 1,
	})
	require.NoError(t, err)
	return placed
}

func TestCancel_RestocksExactly(t *testing.T) {
	f := newFixture()
	placed := placeOne(t, f)

	cancelled, err := f.svc.Cancel(placed.OrderID, 7, false)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, cancelled.Status)

	p, _ := f.products.GetByID(1)
	assert.Equal(t, 10, p.Stock)
	assert.Contains(t, f.notifier.sent, "Order cancelled")
}

func TestCancel_SecondAttemptRejected(t *testing.T) {
	f := newFixture()
	placed := placeOne(t, f)

	_, err := f.svc.Cancel(placed.OrderID, 7, false)
	require.NoError(t, err)

	_, err = f.svc.Cancel(placed.OrderID, 7, false)
	require.ErrorIs(t, err, ErrNotCancellable)

	// no double restock
	p, _ := f.products.GetByID(1)
	assert.Equal(t, 10, p.Stock)
}

func TestCancel_ShippedOrderRejected(t *testing.T) {
	f := newFixture()
	placed := placeOne(t, f)

	_, err := f.svc.UpdateStatus(placed.OrderID, StatusReadyToShip)
	require.NoError(t, err)
	_, err = f.svc.UpdateStatus(placed.OrderID, StatusShipped)
	require.NoError(t, err)

	_, err = f.svc.Cancel(placed.OrderID, 7, false)
	require.ErrorIs(t, err, ErrNotCancellable)
}

func TestCancel_OwnershipEnforced(t *testing.T) {
	f := newFixture()
	placed := placeOne(t, f)

	_, err := f.svc.Cancel(placed.OrderID, 8, false)
	require.ErrorIs(t, err, ErrForbidden)

	// admins may cancel on behalf of the user
	_, err = f.svc.Cancel(placed.OrderID, 8, true)
	require.NoError(t, err)
}

func TestUpdateStatus_RejectsBadTransitions(t *testing.T) {
	f := newFixture()
	placed := placeOne(t, f)

	_, err := f.svc.UpdateStatus(placed.OrderID, StatusDelivered)
	require.ErrorIs(t, err, ErrBadTransition)

	_, err = f.svc.UpdateStatus(placed.OrderID, Status("returned"))
	require.ErrorIs(t, err, ErrBadTransition)

	updated, err := f.svc.UpdateStatus(placed.OrderID, StatusOnHold)
	require.NoError(t, err)
	assert.Equal(t, StatusOnHold, updated.Status)
}

func TestUpdateStatus_CancelPathRestocks(t *testing.T) {
	f := newFixture()
	placed := placeOne(t, f)

	updated, err := f.svc.UpdateStatus(placed.OrderID, StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, updated.Status)

	p, _ := f.products.GetByID(1)
	assert.Equal(t, 10, p.Stock)
}

func TestListAll_Filters(t *testing.T) {
	f := newFixture()
	placeOne(t, f)

	all, err := f.svc.ListAll("", "")
	require.NoError(t, err)
	assert.Len(t, all, 1)

	none, err := f.svc.ListAll("maison-noor", "")
	require.NoError(t, err)
	assert.Empty(t, none)

	pending, err := f.svc.ListAll("velora", StatusPending)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}
