package cart

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/velora/storefront-backend/internal/auth"
	"github.com/velora/storefront-backend/internal/product"
)

type Handler struct {
	service  *Service
	products product.ServiceInterface
}

func NewHandler(service *Service, products product.ServiceInterface) *Handler {
	return &Handler{service: service, products: products}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/cart", h.getCart)
	app.Post("/api/v1/cart", h.addToCart)
	app.Delete("/api/v1/cart/all", h.clearCart)
	app.Delete("/api/v1/cart", h.removeFromCart)
}

// line is a cart item enriched with its catalog row.
type line struct {
	Item
	Product *product.Product `json:"product,omitempty"`
}

type addRequest struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

func (h *Handler) enrich(items []Item) []line {
	ids := make([]int, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}

	byID := map[int]product.Product{}
	if h.products != nil && len(ids) > 0 {
		if prods, err := h.products.ListByIDs(ids); err == nil {
			for _, p := range prods {
				byID[p.ID] = p
			}
		}
	}

	out := make([]line, 0, len(items))
	for _, it := range items {
		l := line{Item: it}
		if p, ok := byID[it.ProductID]; ok {
			cp := p
			l.Product = &cp
		}
		out = append(out, l)
	}
	return out
}

func (h *Handler) getCart(c *fiber.Ctx) error {
	ac, err := auth.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	items, err := h.service.Get(ac.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not load cart"})
	}
	return c.JSON(h.enrich(items))
}

func (h *Handler) addToCart(c *fiber.Ctx) error {
	ac, err := auth.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(addRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.ProductID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid productId"})
	}

	// the product must exist before it can be carted
	if h.products != nil {
		if _, err := h.products.GetByID(payload.ProductID); err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		}
	}

	items, err := h.service.Add(ac.UserID, payload.ProductID, payload.Quantity)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not update cart"})
	}
	return c.JSON(h.enrich(items))
}

func (h *Handler) removeFromCart(c *fiber.Ctx) error {
	ac, err := auth.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	productID, err := strconv.Atoi(c.Query("productId"))
	if err != nil || productID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid productId"})
	}

	if err := h.service.Remove(ac.UserID, productID); err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "cart item not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not update cart"})
	}
	return c.JSON(fiber.Map{"removed": true})
}

func (h *Handler) clearCart(c *fiber.Ctx) error {
	ac, err := auth.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	if err := h.service.Clear(ac.UserID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not clear cart"})
	}
	return c.JSON(fiber.Map{"cleared": true})
}
