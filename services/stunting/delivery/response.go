package delivery

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"stunting/config"
	"stunting/domain"
)

// claimsOf returns the token claims and the username used in logs. Public
// routes have no claims.
func claimsOf(c *fiber.Ctx) (*domain.Claims, *string) {
	userToken, ok := c.Locals("user").(*domain.Claims)
	if !ok || userToken == nil {
		return nil, nil
	}
	return userToken, &userToken.Username
}

func scopeOf(c *fiber.Ctx) domain.Scope {
	userToken, _ := claimsOf(c)
	return domain.ScopeFromClaims(userToken)
}

func parseID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, domain.NewValidationError("id", "id must be a valid UUID")
	}
	return id, nil
}

func badBody(c *fiber.Ctx, username *string, fn string, err error) error {
	config.PrintLogInfo(username, fiber.StatusBadRequest, fn)
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": "Invalid request body",
		"error":   err.Error(),
	})
}

// failure maps err to its status code and writes the error response. Server
// side failures keep their detail in the log only.
func failure(c *fiber.Ctx, username *string, fn, message string, err error) error {
	status := fiber.StatusInternalServerError
	detail := "Internal Server Error"

	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		status = fiber.StatusBadRequest
		detail = vErr.Message
	case errors.Is(err, domain.ErrAddressInUse):
		status = fiber.StatusBadRequest
		detail = domain.ErrAddressInUse.Error()
	case errors.Is(err, domain.ErrNotFound):
		status = fiber.StatusNotFound
		detail = domain.ErrNotFound.Error()
	case errors.Is(err, domain.ErrInvalidCredentials):
		status = fiber.StatusUnauthorized
		detail = domain.ErrInvalidCredentials.Error()
	case errors.Is(err, domain.ErrDuplicate):
		status = fiber.StatusConflict
		detail = domain.ErrDuplicate.Error()
	default:
		user := "Unknown"
		if username != nil {
			user = *username
		}
		config.GetLogrusInstance().WithError(err).WithField("user", user).Errorf("%s failed", fn)
	}

	config.PrintLogInfo(username, status, fn)
	body := fiber.Map{
		"success": false,
		"message": message,
		"error":   detail,
	}
	if vErr != nil && vErr.Field != "" {
		body["field"] = vErr.Field
	}
	return c.Status(status).JSON(body)
}

func ok(c *fiber.Ctx, username *string, status int, fn, message string, data interface{}) error {
	config.PrintLogInfo(username, status, fn)
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}
