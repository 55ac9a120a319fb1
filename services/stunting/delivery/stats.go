package delivery

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"stunting/domain"
	"stunting/middleware"
	"stunting/services/stunting/analytics"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type statsHandler struct {
	uc  domain.StatsUseCase
	ruc domain.RecommendationUseCase
}

func NewStatsDelivery(app *fiber.App, uc domain.StatsUseCase, ruc domain.RecommendationUseCase) {
	handler := &statsHandler{
		uc:  uc,
		ruc: ruc,
	}

	route := app.Group("/stats", middleware.AuthRequired())
	route.Get("/all", handler.GetAllStats)
	route.Get("/province/:province", handler.GetProvinceStats)
	route.Get("/city/:province/:city", handler.GetCityStats)
	route.Get("/district/:province/:city/:district", handler.GetDistrictStats)
	route.Get("/recommendation", handler.GetPolicyRecommendation)
	route.Get("/export", handler.ExportStats)
}

// statsQuery reads the period and kecamatan query values around region.
func statsQuery(c *fiber.Ctx, region domain.Region) (domain.StatsQuery, error) {
	period, err := analytics.ParsePeriod(c.Query("year"), c.Query("month"), c.Query("mode"))
	if err != nil {
		return domain.StatsQuery{}, err
	}
	return domain.StatsQuery{
		Region:   region,
		Period:   period,
		District: strings.TrimSpace(c.Query("kecamatan")),
	}, nil
}

func (h *statsHandler) respondStats(c *fiber.Ctx, fn string, region domain.Region, err error) error {
	_, username := claimsOf(c)
	if err != nil {
		return failure(c, username, fn, "Invalid statistics request", err)
	}

	query, err := statsQuery(c, region)
	if err != nil {
		return failure(c, username, fn, "Invalid statistics request", err)
	}

	stats, err := h.uc.GetRegionStats(c.Context(), scopeOf(c), query)
	if err != nil {
		return failure(c, username, fn, "Failed to retrieve statistics", err)
	}

	return ok(c, username, fiber.StatusOK, fn, fmt.Sprintf("Statistics for %s retrieved successfully", region.Name()), stats.Body())
}

func (h *statsHandler) GetAllStats(c *fiber.Ctx) error {
	region, err := analytics.ParseRegion(string(domain.LevelAll), "", "", "")
	return h.respondStats(c, "GetAllStats", region, err)
}

func (h *statsHandler) GetProvinceStats(c *fiber.Ctx) error {
	region, err := analytics.ParseRegion(string(domain.LevelProvince), c.Params("province"), "", "")
	return h.respondStats(c, "GetProvinceStats", region, err)
}

func (h *statsHandler) GetCityStats(c *fiber.Ctx) error {
	region, err := analytics.ParseRegion(string(domain.LevelCity), c.Params("province"), c.Params("city"), "")
	return h.respondStats(c, "GetCityStats", region, err)
}

func (h *statsHandler) GetDistrictStats(c *fiber.Ctx) error {
	region, err := analytics.ParseRegion(string(domain.LevelDistrict), c.Params("province"), c.Params("city"), c.Params("district"))
	return h.respondStats(c, "GetDistrictStats", region, err)
}

// regionFromQuery reads the region of the recommendation and export routes.
func regionFromQuery(c *fiber.Ctx) (domain.StatsQuery, error) {
	region, err := analytics.ParseRegion(c.Query("level"), c.Query("province"), c.Query("city"), c.Query("district"))
	if err != nil {
		return domain.StatsQuery{}, err
	}
	return statsQuery(c, region)
}

// GetPolicyRecommendation answers 200 even when the generator fails; the
// rule-based recommendation is returned instead.
func (h *statsHandler) GetPolicyRecommendation(c *fiber.Ctx) error {
	_, username := claimsOf(c)

	query, err := regionFromQuery(c)
	if err != nil {
		return failure(c, username, "GetPolicyRecommendation", "Invalid recommendation request", err)
	}

	rec, err := h.ruc.GetPolicyRecommendation(c.Context(), scopeOf(c), query)
	if err != nil {
		return failure(c, username, "GetPolicyRecommendation", "Failed to generate recommendation", err)
	}

	return ok(c, username, fiber.StatusOK, "GetPolicyRecommendation", "Recommendation generated successfully", rec)
}

func (h *statsHandler) ExportStats(c *fiber.Ctx) error {
	_, username := claimsOf(c)

	query, err := regionFromQuery(c)
	if err != nil {
		return failure(c, username, "ExportStats", "Invalid export request", err)
	}

	data, err := h.uc.ExportRegionStats(c.Context(), scopeOf(c), query)
	if err != nil {
		return failure(c, username, "ExportStats", "Failed to export statistics", err)
	}

	filename := strings.ToLower(strings.ReplaceAll(query.Region.Name(), " ", "_"))
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=stunting_%s.xlsx", filename))

	return c.Status(fiber.StatusOK).Send(data)
}
