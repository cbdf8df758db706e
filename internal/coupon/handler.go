package coupon

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
	app.Post("/api/v1/coupons/apply", h.applyCoupon)
	app.Get("/api/v1/admin/coupons", h.listCoupons)
	app.Post("/api/v1/admin/coupons", h.createCoupon)
	app.Put("/api/v1/admin/coupons/:id<[0-9]+>", h.updateCoupon)
	app.Delete("/api/v1/admin/coupons/:id<[0-9]+>", h.deleteCoupon)
}

type applyRequest struct {
	Code     string  `json:"code"`
	Subtotal float64 `json:"subtotal"`
}

func (h *Handler) applyCoupon(c *fiber.Ctx) error {
	if _, err := auth.FromCtx(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(applyRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "code is required"})
	}

	applied, err := h.service.Apply(payload.Code, payload.Subtotal)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "coupon not found"})
		case errors.Is(err, ErrInactive), errors.Is(err, ErrExpired), errors.Is(err, ErrMinSubtotal):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not apply coupon"})
		}
	}
	return c.JSON(applied)
}

func (h *Handler) listCoupons(c *fiber.Ctx) error {
	ac, err := auth.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	if !ac.IsAdmin() {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "admin only"})
	}

	coupons, err := h.service.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not list coupons"})
	}
	return c.JSON(coupons)
}

func validateCouponPayload(c Coupon) map[string]string {
	errs := map[string]string{}
	if c.Code == "" {
		errs["code"] = "code is required"
	}
	if c.Type != TypePercent && c.Type != TypeFlat {
		errs["type"] = "type must be percent or flat"
	}
	if c.Value <= 0 {
		errs["value"] = "value must be positive"
	}
	if c.Type == TypePercent && c.Value > 100 {
		errs["value"] = "percent value cannot exceed 100"
	}
	if c.MinSubtotal < 0 {
		errs["minSubtotal"] = "minSubtotal cannot be negative"
	}
	return errs
}

func (h *Handler) createCoupon(c *fiber.Ctx) error {
	ac, err := auth.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	if !ac.IsAdmin() {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "admin only"})
	}

	payload := new(Coupon)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if errs := validateCouponPayload(*payload); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	created, err := h.service.Create(*payload)
	if err != nil {
		if errors.Is(err, ErrCodeExists) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "coupon code already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not create coupon"})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) updateCoupon(c *fiber.Ctx) error {
	ac, err := auth.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	if !ac.IsAdmin() {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "admin only"})
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid coupon id"})
	}

	payload := new(Coupon)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if errs := validateCouponPayload(*payload); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}
	payload.CouponID = id

	updated, err := h.service.Update(*payload)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "coupon not found"})
		case errors.Is(err, ErrCodeExists):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "coupon code already exists"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not update coupon"})
		}
	}
	return c.JSON(updated)
}

func (h *Handler) deleteCoupon(c *fiber.Ctx) error {
	ac, err := auth.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	if !ac.IsAdmin() {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "admin only"})
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid coupon id"})
	}

	if err := h.service.Delete(id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "coupon not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not delete coupon"})
	}
	return c.JSON(fiber.Map{"message": "coupon deleted"})
}
