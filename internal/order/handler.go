package order

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
	app.Post("/api/v1/orders/place", h.placeOrder)
	app.Get("/api/v1/orders", h.listOrders)
	app.Get("/api/v1/orders/:id<[0-9]+>", h.getOrder)
	app.Patch("/api/v1/orders/:id<[0-9]+>/cancel", h.cancelOrder)
	app.Patch("/api/v1/orders/:id<[0-9]+>/status", h.updateStatus)
	app.Get("/api/v1/admin/orders", h.listAllOrders)
}

type placeOrderRequest struct {
	Items             []Line  `json:"items"`
	Subtotal          float64 `json:"subtotal"`
	ShippingAddressID int     `json:"shippingAddressId"`
}

func (h *Handler) placeOrder(c *fiber.Ctx) error {
	ac, err := auth.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(placeOrderRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if len(payload.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "items cannot be empty"})
	}

	placed, err := h.service.Place(PlaceRequest{
		UserID:            ac.UserID,
		Items:             payload.Items,
		Subtotal:          payload.Subtotal,
		ShippingAddressID: payload.ShippingAddressID,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrUnknownProduct), errors.Is(err, ErrAddressNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})
		case errors.Is(err, ErrPriceDrift):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": err.Error()})
		case errors.Is(err, ErrInsufficientStock),
			errors.Is(err, ErrSubtotalMismatch),
			errors.Is(err, ErrEmptyOrder),
			errors.Is(err, ErrInvalidQuantity):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not place order"})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"orderId":  placed.OrderID,
		"orderRef": placed.OrderRef,
	})
}

func (h *Handler) listOrders(c *fiber.Ctx) error {
	ac, err := auth.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	orders, err := h.service.ListByUser(ac.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not list orders"})
	}
	return c.JSON(orders)
}

func (h *Handler) getOrder(c *fiber.Ctx) error {
	ac, err := auth.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid order id"})
	}

	ord, err := h.service.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
	}
	if ord.UserID != ac.UserID && !ac.IsAdmin() {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "not your order"})
	}
	return c.JSON(ord)
}

func (h *Handler) cancelOrder(c *fiber.Ctx) error {
	ac, err := auth.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid order id"})
	}

	cancelled, err := h.service.Cancel(id, ac.UserID, ac.IsAdmin())
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
		case errors.Is(err, ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "not your order"})
		case errors.Is(err, ErrNotCancellable):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not cancel order"})
		}
	}
	return c.JSON(fiber.Map{"order": cancelled})
}

type statusUpdateRequest struct {
	Status Status `json:"status"`
}

func (h *Handler) updateStatus(c *fiber.Ctx) error {
	ac, err := auth.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	if !ac.IsAdmin() {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "admin only"})
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid order id"})
	}

	payload := new(statusUpdateRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	updated, err := h.service.UpdateStatus(id, payload.Status)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
		case errors.Is(err, ErrBadTransition), errors.Is(err, ErrNotCancellable):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not update status"})
		}
	}
	return c.JSON(fiber.Map{"order": updated})
}

func (h *Handler) listAllOrders(c *fiber.Ctx) error {
	ac, err := auth.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	if !ac.IsAdmin() {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "admin only"})
	}

	orders, err := h.service.ListAll(c.Query("storefront"), Status(c.Query("status")))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not list orders"})
	}
	return c.JSON(orders)
}
