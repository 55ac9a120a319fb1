package delivery

import (
	"github.com/gofiber/fiber/v2"

	"stunting/domain"
	"stunting/middleware"
)

type addressHandler struct {
	uc domain.AddressUseCase
}

func NewAddressDelivery(app *fiber.App, uc domain.AddressUseCase) {
	handler := &addressHandler{
		uc: uc,
	}

	route := app.Group("/alamat", middleware.AuthRequired())
	route.Get("/", handler.GetAllAddress)
	route.Get("/:id", handler.GetAddressByID)
	route.Post("/", middleware.RoleRequired(domain.RoleAdmin, domain.RolePuskesmas), handler.CreateAddress)
	route.Put("/:id", middleware.RoleRequired(domain.RoleAdmin), handler.UpdateAddress)
	route.Delete("/:id", middleware.RoleRequired(domain.RoleAdmin), handler.DeleteAddress)
}

func (h *addressHandler) GetAllAddress(c *fiber.Ctx) error {
	_, username := claimsOf(c)

	addrs, err := h.uc.GetAllAddress(c.Context(), scopeOf(c))
	if err != nil {
		return failure(c, username, "GetAllAddress", "Failed to retrieve addresses", err)
	}

	return ok(c, username, fiber.StatusOK, "GetAllAddress", "Addresses retrieved successfully", addrs)
}

func (h *addressHandler) GetAddressByID(c *fiber.Ctx) error {
	_, username := claimsOf(c)

	id, err := parseID(c)
	if err != nil {
		return failure(c, username, "GetAddressByID", "Invalid address id", err)
	}

	addr, err := h.uc.GetAddressByID(c.Context(), scopeOf(c), id)
	if err != nil {
		return failure(c, username, "GetAddressByID", "Failed to retrieve address", err)
	}

	return ok(c, username, fiber.StatusOK, "GetAddressByID", "Address retrieved successfully", addr)
}

func (h *addressHandler) CreateAddress(c *fiber.Ctx) error {
	_, username := claimsOf(c)

	var payload domain.AddressPayload
	if err := c.BodyParser(&payload); err != nil {
		return badBody(c, username, "CreateAddress", err)
	}

	addr, err := h.uc.CreateAddress(c.Context(), &payload)
	if err != nil {
		return failure(c, username, "CreateAddress", "Failed to create address", err)
	}

	return ok(c, username, fiber.StatusCreated, "CreateAddress", "Address created successfully", addr)
}

func (h *addressHandler) UpdateAddress(c *fiber.Ctx) error {
	_, username := claimsOf(c)

	id, err := parseID(c)
	if err != nil {
		return failure(c, username, "UpdateAddress", "Invalid address id", err)
	}

	var payload domain.AddressPayload
	if err := c.BodyParser(&payload); err != nil {
		return badBody(c, username, "UpdateAddress", err)
	}

	addr, err := h.uc.UpdateAddress(c.Context(), id, &payload)
	if err != nil {
		return failure(c, username, "UpdateAddress", "Failed to update address", err)
	}

	return ok(c, username, fiber.StatusOK, "UpdateAddress", "Address updated successfully", addr)
}

func (h *addressHandler) DeleteAddress(c *fiber.Ctx) error {
	_, username := claimsOf(c)

	id, err := parseID(c)
	if err != nil {
		return failure(c, username, "DeleteAddress", "Invalid address id", err)
	}

	if err := h.uc.DeleteAddress(c.Context(), id); err != nil {
		return failure(c, username, "DeleteAddress", "Failed to delete address", err)
	}

	return ok(c, username, fiber.StatusOK, "DeleteAddress", "Address deleted successfully", nil)
}
