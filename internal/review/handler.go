package review

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/velora/storefront-backend/internal/auth"
	"github.com/velora/storefront-backend/internal/product"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/products/:id<[0-9]+>/reviews", h.listReviews)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/reviews", h.createReview)
	app.Delete("/api/v1/reviews/:id<[0-9]+>", h.deleteReview)
}

func (h *Handler) listReviews(c *fiber.Ctx) error {
	productID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid product id"})
	}

	reviews, summary, err := h.service.ListByProduct(productID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not list reviews"})
	}
	return c.JSON(fiber.Map{
		"reviews": reviews,
		"summary": summary,
	})
}

type createReviewRequest struct {
	ProductID int    `json:"productId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

func (h *Handler) createReview(c *fiber.Ctx) error {
	ac, err := auth.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(createReviewRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	created, err := h.service.Create(Review{
		ProductID: payload.ProductID,
		UserID:    ac.UserID,
		Rating:    payload.Rating,
		Comment:   payload.Comment,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidRating):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": fiber.Map{"rating": err.Error()}})
		case errors.Is(err, product.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		case errors.Is(err, ErrAlreadyReviewed):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "you already reviewed this product"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not create review"})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) deleteReview(c *fiber.Ctx) error {
	ac, err := auth.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid review id"})
	}

	if err := h.service.Delete(ac.UserID, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "review not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not delete review"})
	}
	return c.JSON(fiber.Map{"message": "review deleted"})
}
