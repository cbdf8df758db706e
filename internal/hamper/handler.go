package hamper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/velora/storefront-backend/internal/auth"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/hampers", h.getDraft)
	app.Post("/api/v1/hampers", h.updateDraft)
	app.Delete("/api/v1/hampers", h.discardDraft)
	app.Post("/api/v1/hampers/checkout", h.checkout)
}

func (h *Handler) getDraft(c *fiber.Ctx) error {
	ac, err := auth.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	draft, err := h.service.Get(ac.UserID)
	if errors.Is(err, ErrNoDraft) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "no draft hamper"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not load hamper"})
	}
	return c.JSON(draft)
}

func (h *Handler) updateDraft(c *fiber.Ctx) error {
	ac, err := auth.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(Patch)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	draft, err := h.service.Update(ac.UserID, *payload)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnknownProduct):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})
		case errors.Is(err, ErrNotPackaging), errors.Is(err, ErrPackagingOnly):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not update hamper"})
		}
	}
	return c.JSON(draft)
}

func (h *Handler) discardDraft(c *fiber.Ctx) error {
	ac, err := auth.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	if err := h.service.Discard(ac.UserID); err != nil {
		if errors.Is(err, ErrNoDraft) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "no draft hamper"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not discard hamper"})
	}
	return c.JSON(fiber.Map{"message": "hamper discarded"})
}

func (h *Handler) checkout(c *fiber.Ctx) error {
	ac, err := auth.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	done, err := h.service.Checkout(ac.UserID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoDraft), errors.Is(err, ErrUnknownProduct):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})
		case errors.Is(err, ErrDraftIncomplete), errors.Is(err, ErrNotPackaging), errors.Is(err, ErrPackagingOnly):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not check out hamper"})
		}
	}
	return c.JSON(fiber.Map{"hamper": done})
}
