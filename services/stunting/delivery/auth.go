package delivery

import (
	"github.com/gofiber/fiber/v2"

	"stunting/domain"
)

type authHandler struct {
	uc domain.AuthUseCase
}

func NewAuthDelivery(app *fiber.App, uc domain.AuthUseCase) {
	handler := &authHandler{
		uc: uc,
	}

	route := app.Group("/login")
	route.Post("/user", handler.Login)
}

func (h *authHandler) Login(c *fiber.Ctx) error {
	var req domain.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, nil, "Login", err)
	}

	resp, err := h.uc.Login(c.Context(), &req)
	if err != nil {
		return failure(c, &req.Username, "Login", "Login failed", err)
	}

	return ok(c, &req.Username, fiber.StatusOK, "Login", "Login successful", resp)
}
