package cart

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velora/storefront-backend/internal/product"
)

func cartApp(userID int) *fiber.App {
	products := product.NewInMemoryRepository([]product.Product{
		{ID: 1, Name: "Sea Salt Caramels", SellingPrice: 15, Stock: 10},
	})
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user", &jwt.Token{Claims: jwt.MapClaims{"user_id": float64(userID)}})
		return c.Next()
	})
	NewHandler(NewService(NewInMemoryRepository()), product.NewService(products, nil, nil)).
		RegisterProtectedRoutes(app)
	return app
}

func addItem(t *testing.T, app *fiber.App, productID, qty int) *fiber.App {
	t.Helper()
	body, _ := json.Marshal(addRequest{ProductID: productID, Quantity: qty})
	req := httptest.NewRequest("POST", "/api/v1/cart", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, res.StatusCode)
	return app
}

func TestAddToCart_MergesQuantities(t *testing.T) {
	app := cartApp(7)
	addItem(t, app, 1, 2)
	addItem(t, app, 1, 3)

	res, err := app.Test(httptest.NewRequest("GET", "/api/v1/cart", nil))
	require.NoError(t, err)

	var lines []line
	require.NoError(t, json.NewDecoder(res.Body).Decode(&lines))
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
	require.NotNil(t, lines[0].Product)
	assert.Equal(t, "Sea Salt Caramels", lines[0].Product.Name)
}

func TestAddToCart_NegativeDeltaRemovesLine(t *testing.T) {
	app := cartApp(7)
	addItem(t, app, 1, 2)
	addItem(t, app, 1, -2)

	res, err := app.Test(httptest.NewRequest("GET", "/api/v1/cart", nil))
	require.NoError(t, err)

	var lines []line
	require.NoError(t, json.NewDecoder(res.Body).Decode(&lines))
	assert.Empty(t, lines)
}

func TestAddToCart_UnknownProduct(t *testing.T) {
	app := cartApp(7)

	body, _ := json.Marshal(addRequest{ProductID: 42, Quantity: 1})
	req := httptest.NewRequest("POST", "/api/v1/cart", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, res.StatusCode)
}

func TestRemoveAndClear(t *testing.T) {
	app := cartApp(7)
	addItem(t, app, 1, 2)

	res, err := app.Test(httptest.NewRequest("DELETE", "/api/v1/cart?productId=1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)

	res, err = app.Test(httptest.NewRequest("DELETE", "/api/v1/cart?productId=1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, res.StatusCode)

	addItem(t, app, 1, 2)
	res, err = app.Test(httptest.NewRequest("DELETE", "/api/v1/cart/all", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)

	res, err = app.Test(httptest.NewRequest("GET", "/api/v1/cart", nil))
	require.NoError(t, err)
	var lines []line
	require.NoError(t, json.NewDecoder(res.Body).Decode(&lines))
	assert.Empty(t, lines)
}
