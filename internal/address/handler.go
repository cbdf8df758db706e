package address

import (
	"strconv"
	"time"

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
	app.Get("/api/v1/addresses", h.listAddresses)
	app.Post("/api/v1/addresses", h.createAddress)
	app.Put("/api/v1/addresses/:id<[0-9]+>", h.updateAddress)
	app.Delete("/api/v1/addresses/:id<[0-9]+>", h.deleteAddress)
}

type addressPayload struct {
	Recipient string `json:"recipient"`
	Line1     string `json:"line1"`
	Line2     string `json:"line2"`
	City      string `json:"city"`
	Postcode  string `json:"postcode"`
	Phone     string `json:"phone"`
}

func validateAddressPayload(p *addressPayload) map[string]string {
	errs := map[string]string{}
	if p.Recipient == "" {
		errs["recipient"] = "recipient is required"
	}
	if p.Line1 == "" {
		errs["line1"] = "line1 is required"
	}
	if p.City == "" {
		errs["city"] = "city is required"
	}
	if p.Postcode == "" {
		errs["postcode"] = "postcode is required"
	}
	return errs
}

func (h *Handler) listAddresses(c *fiber.Ctx) error {
	ac, err := auth.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	out, err := h.service.ListByUser(ac.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not list addresses"})
	}
	return c.JSON(out)
}

func (h *Handler) createAddress(c *fiber.Ctx) error {
	ac, err := auth.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(addressPayload)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if ves := validateAddressPayload(payload); len(ves) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": ves})
	}

	now := time.Now().UTC().Format(time.RFC3339)
	created, err := h.service.Create(Address{
		UserID:    ac.UserID,
		Recipient: payload.Recipient,
		Line1:     payload.Line1,
		Line2:     payload.Line2,
		City:      payload.City,
		Postcode:  payload.Postcode,
		Phone:     payload.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not create address"})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) updateAddress(c *fiber.Ctx) error {
	ac, err := auth.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	addressID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid address id"})
	}

	payload := new(addressPayload)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if ves := validateAddressPayload(payload); len(ves) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": ves})
	}

	updated, err := h.service.Update(ac.UserID, addressID, Address{
		Recipient: payload.Recipient,
		Line1:     payload.Line1,
		Line2:     payload.Line2,
		City:      payload.City,
		Postcode:  payload.Postcode,
		Phone:     payload.Phone,
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "address not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not update address"})
	}
	return c.JSON(updated)
}

func (h *Handler) deleteAddress(c *fiber.Ctx) error {
	ac, err := auth.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	addressID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid address id"})
	}
	if err := h.service.Delete(ac.UserID, addressID); err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "address not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not delete address"})
	}
	return c.JSON(fiber.Map{"deleted": true})
}
