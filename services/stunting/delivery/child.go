package delivery

import (
	"github.com/gofiber/fiber/v2"

	"stunting/domain"
	"stunting/middleware"
)

type childHandler struct {
	uc  domain.ChildUseCase
	ruc domain.RecommendationUseCase
}

func NewChildDelivery(app *fiber.App, uc domain.ChildUseCase, ruc domain.RecommendationUseCase) {
	handler := &childHandler{
		uc:  uc,
		ruc: ruc,
	}

	route := app.Group("/children", middleware.AuthRequired())
	route.Post("/", middleware.RoleRequired(domain.RoleAdmin, domain.RolePuskesmas), handler.CreateChild)
	route.Get("/", handler.GetAllChildren)
	route.Get("/import/template", handler.DownloadImportTemplate)
	route.Post("/import", middleware.RoleRequired(domain.RoleAdmin, domain.RolePuskesmas), handler.ImportChildren)
	route.Get("/nik/:nik/history", handler.GetChildHistory)
	route.Get("/nik/:nik/qrcode", handler.GetChildHistoryQRCode)
	route.Get("/:id", handler.GetChildByID)
	route.Get("/:id/recommendation", handler.GetIndividualRecommendation)
	route.Delete("/:id", middleware.RoleRequired(domain.RoleAdmin), handler.DeleteChild)
}

func (h *childHandler) CreateChild(c *fiber.Ctx) error {
	_, username := claimsOf(c)

	var payload domain.ChildPayload
	if err := c.BodyParser(&payload); err != nil {
		return badBody(c, username, "CreateChild", err)
	}

	child, err := h.uc.CreateChild(c.Context(), &payload)
	if err != nil {
		return failure(c, username, "CreateChild", "Failed to save child data", err)
	}

	return ok(c, username, fiber.StatusCreated, "CreateChild", "Child data saved successfully", child)
}

// GetAllChildren lists the latest examination per NIK. ?all=true returns every
// examination.
func (h *childHandler) GetAllChildren(c *fiber.Ctx) error {
	_, username := claimsOf(c)

	children, err := h.uc.GetAllChildren(c.Context(), scopeOf(c), c.QueryBool("all", false))
	if err != nil {
		return failure(c, username, "GetAllChildren", "Failed to retrieve children", err)
	}

	return ok(c, username, fiber.StatusOK, "GetAllChildren", "Children retrieved successfully", children)
}

func (h *childHandler) GetChildByID(c *fiber.Ctx) error {
	_, username := claimsOf(c)

	id, err := parseID(c)
	if err != nil {
		return failure(c, username, "GetChildByID", "Invalid child id", err)
	}

	child, err := h.uc.GetChildByID(c.Context(), scopeOf(c), id)
	if err != nil {
		return failure(c, username, "GetChildByID", "Failed to retrieve child", err)
	}

	return ok(c, username, fiber.StatusOK, "GetChildByID", "Child retrieved successfully", child)
}

func (h *childHandler) GetChildHistory(c *fiber.Ctx) error {
	_, username := claimsOf(c)

	history, err := h.uc.GetChildHistory(c.Context(), scopeOf(c), c.Params("nik"))
	if err != nil {
		return failure(c, username, "GetChildHistory", "Failed to retrieve child history", err)
	}

	return ok(c, username, fiber.StatusOK, "GetChildHistory", "Child history retrieved successfully", history)
}

func (h *childHandler) GetChildHistoryQRCode(c *fiber.Ctx) error {
	_, username := claimsOf(c)

	png, err := h.uc.ChildHistoryQRCode(c.Context(), scopeOf(c), c.Params("nik"))
	if err != nil {
		return failure(c, username, "GetChildHistoryQRCode", "Failed to generate QR code", err)
	}

	c.Set(fiber.HeaderContentType, "image/png")
	c.Set(fiber.HeaderContentDisposition, "inline; filename=riwayat-"+c.Params("nik")+".png")

	return c.Status(fiber.StatusOK).Send(png)
}

func (h *childHandler) GetIndividualRecommendation(c *fiber.Ctx) error {
	_, username := claimsOf(c)

	id, err := parseID(c)
	if err != nil {
		return failure(c, username, "GetIndividualRecommendation", "Invalid child id", err)
	}

	rec, err := h.ruc.GetIndividualRecommendation(c.Context(), scopeOf(c), id)
	if err != nil {
		return failure(c, username, "GetIndividualRecommendation", "Failed to generate recommendation", err)
	}

	return ok(c, username, fiber.StatusOK, "GetIndividualRecommendation", "Recommendation generated successfully", rec)
}

func (h *childHandler) DeleteChild(c *fiber.Ctx) error {
	_, username := claimsOf(c)

	id, err := parseID(c)
	if err != nil {
		return failure(c, username, "DeleteChild", "Invalid child id", err)
	}

	if err := h.uc.DeleteChild(c.Context(), id); err != nil {
		return failure(c, username, "DeleteChild", "Failed to delete child data", err)
	}

	return ok(c, username, fiber.StatusOK, "DeleteChild", "Child data deleted successfully", nil)
}
