package brand

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/velora/storefront-backend/internal/auth"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/brands", h.listBrands)
	app.Get("/api/v1/brands/:slug", h.getBrand)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/brands", h.createBrand)
	app.Put("/api/v1/brands/:id<[0-9]+>", h.updateBrand)
	app.Delete("/api/v1/brands/:id<[0-9]+>", h.deleteBrand)
}

func (h *Handler) listBrands(c *fiber.Ctx) error {
	brands, err := h.service.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not list brands"})
	}
	return c.JSON(brands)
}

func (h *Handler) getBrand(c *fiber.Ctx) error {
	b, err := h.service.GetBySlug(c.Params("slug"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "brand not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not load brand"})
	}
	return c.JSON(b)
}

func validateBrandPayload(b Brand) map[string]string {
	errs := map[string]string{}
	if b.Slug == "" {
		errs["slug"] = "slug is required"
	}
	if b.Name == "" {
		errs["name"] = "name is required"
	}
	return errs
}

func (h *Handler) createBrand(c *fiber.Ctx) error {
	ac, err := auth.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	if !ac.IsAdmin() {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "admin only"})
	}

	payload := new(Brand)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if errs := validateBrandPayload(*payload); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	created, err := h.service.Create(*payload)
	if err != nil {
		if errors.Is(err, ErrSlugExists) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "brand slug already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not create brand"})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) updateBrand(c *fiber.Ctx) error {
	ac, err := auth.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	if !ac.IsAdmin() {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "admin only"})
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid brand id"})
	}

	payload := new(Brand)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if errs := validateBrandPayload(*payload); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}
	payload.BrandID = id

	updated, err := h.service.Update(*payload)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "brand not found"})
		case errors.Is(err, ErrSlugExists):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "brand slug already exists"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not update brand"})
		}
	}
	return c.JSON(updated)
}

func (h *Handler) deleteBrand(c *fiber.Ctx) error {
	ac, err := auth.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	if !ac.IsAdmin() {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "admin only"})
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid brand id"})
	}

	if err := h.service.Delete(id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "brand not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not delete brand"})
	}
	return c.JSON(fiber.Map{"message": "brand deleted"})
}
