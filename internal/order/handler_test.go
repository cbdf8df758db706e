package order

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testApp(f *orderFixture, claims jwt.MapClaims) *fiber.App {
	app := fiber.New()
	if claims != nil {
		app.Use(func(c *fiber.Ctx) error {
			c.Locals("user", &jwt.Token{Claims: claims})
			return c.Next()
		})
	}
	NewHandler(f.svc).RegisterProtectedRoutes(app)
	return app
}

func TestPlaceOrderHandler_Created(t *testing.T) {
	f := newFixture()
	app := testApp(f, jwt.MapClaims{"user_id": float64(7)})

	body, _ := json.Marshal(placeOrderRequest{
		Items:             []Line{{ProductID: 1, Quantity: 2, Price: 15}},
		Subtotal:          30,
		ShippingAddressID: 1,
	})
	req := httptest.NewRequest("POST", "/api/v1/orders/place", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, res.StatusCode)

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&out))
	assert.NotEmpty(t, out["orderRef"])
}

func TestPlaceOrderHandler_PriceDriftConflict(t *testing.T) {
	f := newFixture()
	app := testApp(f, jwt.MapClaims{"user_id": float64(7)})

	body, _ := json.Marshal(placeOrderRequest{
		Items:             []Line{{ProductID: 1, Quantity: 1, Price: 12}},
		Subtotal:          12,
		ShippingAddressID: 1,
	})
	req := httptest.NewRequest("POST", "/api/v1/orders/place", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, res.StatusCode)
}

func TestPlaceOrderHandler_InsufficientStockBadRequest(t *testing.T) {
	f := newFixture()
	app := testApp(f, jwt.MapClaims{"user_id": float64(7)})

	body, _ := json.Marshal(placeOrderRequest{
		Items:             []Line{{ProductID: 2, Quantity: 5, Price: 19}},
		Subtotal:          95,
		ShippingAddressID: 1,
	})
	req := httptest.NewRequest("POST", "/api/v1/orders/place", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)
}

func TestPlaceOrderHandler_Unauthorized(t *testing.T) {
	f := newFixture()
	app := testApp(f, nil)

	req := httptest.NewRequest("POST", "/api/v1/orders/place", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")

	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
}

func TestGetOrderHandler_OwnerAndStranger(t *testing.T) {
	f := newFixture()
	placed := placeOne(t, f)

	owner := testApp(f, jwt.MapClaims{"user_id": float64(7)})
	res, err := owner.Test(httptest.NewRequest("GET", "/api/v1/orders/1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)

	var got Order
	require.NoError(t, json.NewDecoder(res.Body).Decode(&got))
	assert.Equal(t, placed.OrderRef, got.OrderRef)

	stranger := testApp(f, jwt.MapClaims{"user_id": float64(8)})
	res, err = stranger.Test(httptest.NewRequest("GET", "/api/v1/orders/1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, res.StatusCode)

	admin := testApp(f, jwt.MapClaims{"user_id": float64(8), "role": "admin"})
	res, err = admin.Test(httptest.NewRequest("GET", "/api/v1/orders/1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)
}

func TestAdminOrdersHandler_RequiresAdmin(t *testing.T) {
	f := newFixture()
	placeOne(t, f)

	customer := testApp(f, jwt.MapClaims{"user_id": float64(7)})
	res, err := customer.Test(httptest.NewRequest("GET", "/api/v1/admin/orders", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, res.StatusCode)

	admin := testApp(f, jwt.MapClaims{"user_id": float64(1), "role": "admin"})
	res, err = admin.Test(httptest.NewRequest("GET", "/api/v1/admin/orders?storefront=velora", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)

	var orders []Order
	require.NoError(t, json.NewDecoder(res.Body).Decode(&orders))
	assert.Len(t, orders, 1)
}

func TestCancelOrderHandler(t *testing.T) {
	f := newFixture()
	placeOne(t, f)

	app := testApp(f, jwt.MapClaims{"user_id": float64(7)})
	res, err := app.Test(httptest.NewRequest("PATCH", "/api/v1/orders/1/cancel", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)

	// already cancelled
	res, err = app.Test(httptest.NewRequest("PATCH", "/api/v1/orders/1/cancel", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)
}
