package product

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

func seedCatalog() []Product {
	return []Product{
		{ID: 1, Name: "Sea Salt Caramels", MRP: 18, SellingPrice: 15, Stock: 10, StyleID: "caramel", Storefront: "velora", Category: "confectionery"},
		{ID: 2, Name: "Dark Chocolate Caramels", MRP: 18, SellingPrice: 16, Stock: 5, StyleID: "caramel", Storefront: "velora", Category: "confectionery"},
		{ID: 3, Name: "Classic Gift Box", MRP: 12, SellingPrice: 9.5, Stock: 100, Storefront: "velora", Category: "packaging", IsPackaging: true},
		{ID: 4, Name: "Single Origin Coffee", MRP: 22, SellingPrice: 19, Stock: 8, Storefront: "maison-noor", Category: "pantry"},
	}
}

func publicApp() *fiber.App {
	app := fiber.New()
	NewHandler(NewService(NewInMemoryRepository(seedCatalog()), nil, nil)).RegisterPublicRoutes(app)
	return app
}

func adminApp(role string) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user", &jwt.Token{Claims: jwt.MapClaims{"user_id": float64(1), "role": role}})
		return c.Next()
	})
	NewHandler(NewService(NewInMemoryRepository(seedCatalog()), nil, nil)).RegisterProtectedRoutes(app)
	return app
}

func TestListProducts_Filters(t *testing.T) {
	app := publicApp()

	res, err := app.Test(httptest.NewRequest("GET", "/api/v1/products?storefront=velora", nil))
	require.NoError(t, err)
	var got []Product
	require.NoError(t, json.NewDecoder(res.Body).Decode(&got))
	assert.Len(t, got, 3)

	res, err = app.Test(httptest.NewRequest("GET", "/api/v1/products?storefront=velora&packaging=1", nil))
	require.NoError(t, err)
	require.NoError(t, json.NewDecoder(res.Body).Decode(&got))
	require.Len(t, got, 1)
	assert.True(t, got[0].IsPackaging)

	res, err = app.Test(httptest.NewRequest("GET", "/api/v1/products?styleId=caramel", nil))
	require.NoError(t, err)
	require.NoError(t, json.NewDecoder(res.Body).Decode(&got))
	assert.Len(t, got, 2)
}

func TestGetProduct(t *testing.T) {
	app := publicApp()

	res, err := app.Test(httptest.NewRequest("GET", "/api/v1/products/1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)

	var got Product
	require.NoError(t, json.NewDecoder(res.Body).Decode(&got))
	assert.Equal(t, "Sea Salt Caramels", got.Name)

	res, err = app.Test(httptest.NewRequest("GET", "/api/v1/products/99", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, res.StatusCode)
}

func TestGetVariants_SharesStyleID(t *testing.T) {
	app := publicApp()

	res, err := app.Test(httptest.NewRequest("GET", "/api/v1/products/1/variants", nil))
	require.NoError(t, err)

	var got []Product
	require.NoError(t, json.NewDecoder(res.Body).Decode(&got))
	require.Len(t, got, 2)

	// a product without a style id is its own only variant
	res, err = app.Test(httptest.NewRequest("GET", "/api/v1/products/4/variants", nil))
	require.NoError(t, err)
	require.NoError(t, json.NewDecoder(res.Body).Decode(&got))
	assert.Len(t, got, 1)
}

func TestCreateProduct_AdminOnly(t *testing.T) {
	payload := Product{Name: "Honey Jar", MRP: 10, SellingPrice: 8, PurchasePrice: 3, Stock: 30, Storefront: "velora"}
	body, _ := json.Marshal(payload)

	customer := adminApp("customer")
	req := httptest.NewRequest("POST", "/api/v1/products", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res, err := customer.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, res.StatusCode)

	admin := adminApp("admin")
	req = httptest.NewRequest("POST", "/api/v1/products", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res, err = admin.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, res.StatusCode)

	var created Product
	require.NoError(t, json.NewDecoder(res.Body).Decode(&created))
	assert.NotZero(t, created.ID)
}

func TestCreateProduct_ValidationErrors(t *testing.T) {
	admin := adminApp("admin")

	body, _ := json.Marshal(Product{Name: "", MRP: 5, SellingPrice: 8, Stock: -1})
	req := httptest.NewRequest("POST", "/api/v1/products", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	res, err := admin.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)

	var out struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&out))
	assert.Contains(t, out.Errors, "productName")
	assert.Contains(t, out.Errors, "storefront")
	assert.Contains(t, out.Errors, "mrp")
	assert.Contains(t, out.Errors, "stock")
}

func TestDeleteProduct(t *testing.T) {
	admin := adminApp("admin")

	res, err := admin.Test(httptest.NewRequest("DELETE", "/api/v1/products/1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)

	res, err = admin.Test(httptest.NewRequest("DELETE", "/api/v1/products/99", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, res.StatusCode)
}
