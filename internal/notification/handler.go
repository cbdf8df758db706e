package notification

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

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/notifications", h.listNotifications)
	app.Patch("/api/v1/notifications/:id<[0-9]+>/read", h.markRead)
	app.Post("/api/v1/admin/notifications/broadcast", h.broadcast)
}

func (h *Handler) listNotifications(c *fiber.Ctx) error {
	ac, err := auth.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	notifications, err := h.service.ListByUser(ac.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not list notifications"})
	}
	return c.JSON(notifications)
}

func (h *Handler) markRead(c *fiber.Ctx) error {
	ac, err := auth.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid notification id"})
	}

	n, err := h.service.MarkRead(ac.UserID, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "notification not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not update notification"})
	}
	return c.JSON(n)
}

type broadcastRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (h *Handler) broadcast(c *fiber.Ctx) error {
	ac, err := auth.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	if !ac.IsAdmin() {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "admin only"})
	}

	payload := new(broadcastRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": fiber.Map{"title": "title is required"}})
	}

	batchID, count, err := h.service.Broadcast(payload.Title, payload.Body)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not broadcast"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"batchId":   batchID,
		"delivered": count,
	})
}
