package wishlist

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
	app.Get("/api/v1/wishlist", h.list)
	app.Post("/api/v1/wishlist", h.add)
	app.Delete("/api/v1/wishlist/:productId<[0-9]+>", h.remove)
}

type addRequest struct {
	ProductID int `json:"productId"`
}

func (h *Handler) respond(c *fiber.Ctx, ids []int) error {
	if h.products == nil || len(ids) == 0 {
		return c.JSON(fiber.Map{"productIds": ids, "products": []product.Product{}})
	}
	prods, err := h.products.ListByIDs(ids)
	if err != nil {
		prods = []product.Product{}
	}
	return c.JSON(fiber.Map{"productIds": ids, "products": prods})
}

func (h *Handler) list(c *fiber.Ctx) error {
	ac, err := auth.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	ids, err := h.service.List(ac.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not load wishlist"})
	}
	return h.respond(c, ids)
}

func (h *Handler) add(c *fiber.Ctx) error {
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
	if h.products != nil {
		if _, err := h.products.GetByID(payload.ProductID); err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		}
	}

	ids, err := h.service.Add(ac.UserID, payload.ProductID)
	if err != nil {
		if err == ErrAlreadyListed {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "product already in wishlist"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not update wishlist"})
	}
	return h.respond(c, ids)
}

func (h *Handler) remove(c *fiber.Ctx) error {
	ac, err := auth.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	productID, err := strconv.Atoi(c.Params("productId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid productId"})
	}

	ids, err := h.service.Remove(ac.UserID, productID)
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "wishlist item not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not update wishlist"})
	}
	return h.respond(c, ids)
}
