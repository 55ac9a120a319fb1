package delivery

import (
	"github.com/gofiber/fiber/v2"

	"stunting/domain"
	"stunting/middleware"
)

type userHandler struct {
	uc domain.UserUseCase
}

func NewUserDelivery(app *fiber.App, uc domain.UserUseCase) {
	handler := &userHandler{
		uc: uc,
	}

	route := app.Group("/user", middleware.AuthRequired(), middleware.RoleRequired(domain.RoleAdmin))
	route.Post("/", handler.CreateUser)
	route.Get("/", handler.GetAllUser)
}

func (h *userHandler) CreateUser(c *fiber.Ctx) error {
	_, username := claimsOf(c)

	var payload domain.User
	if err := c.BodyParser(&payload); err != nil {
		return badBody(c, username, "CreateUser", err)
	}

	user, err := h.uc.CreateUser(c.Context(), &payload)
	if err != nil {
		return failure(c, username, "CreateUser", "Failed to create user", err)
	}

	return ok(c, username, fiber.StatusCreated, "CreateUser", "User created successfully", user)
}

func (h *userHandler) GetAllUser(c *fiber.Ctx) error {
	_, username := claimsOf(c)

	users, err := h.uc.GetAllUser(c.Context())
	if err != nil {
		return failure(c, username, "GetAllUser", "Failed to retrieve users", err)
	}

	return ok(c, username, fiber.StatusOK, "GetAllUser", "Users retrieved successfully", users)
}
