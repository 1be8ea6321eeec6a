package handler

import (
	"github.com/gofiber/fiber/v2"

	"gedo/internal/http/middleware"
	"gedo/internal/service"
)

// DashboardStats returns the record counters of the caller's scope.
//
// @Summary  Dashboard counters
// @Tags     dashboard
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} service.DashboardStats
// @Router   /api/dashboard/stats [get]
func DashboardStats(svc service.DashboardService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		st, err := svc.Stats(c.UserContext(), middleware.CurrentUser(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(st)
	}
}

// DashboardTimeline returns records per day.
//
// @Summary  Records per day
// @Tags     dashboard
// @Produce  json
// @Security BearerAuth
// @Param    dias    query int    false "days (default 30, max 365)"
// @Param    obra_id query string false "obra id"
// @Success  200 {array} service.TimelinePoint
// @Router   /api/dashboard/registros-timeline [get]
func DashboardTimeline(svc service.DashboardService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		obraID := c.Query("obra_id")
		if obraID != "" && !validID(obraID) {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid obra_id format")
		}
		points, err := svc.Timeline(c.UserContext(), middleware.CurrentUser(c), c.QueryInt("dias", 0), obraID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(points)
	}
}

// DashboardRecent returns the latest records.
//
// @Summary  Recent activity
// @Tags     dashboard
// @Produce  json
// @Security BearerAuth
// @Param    limit query int false "items (default 5, max 50)"
// @Success  200 {array} service.ActivityItem
// @Router   /api/dashboard/atividades-recentes [get]
func DashboardRecent(svc service.DashboardService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.RecentActivity(c.UserContext(), middleware.CurrentUser(c), c.QueryInt("limit", 0))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(items)
	}
}

// DashboardTopTipos returns the most used record types.
//
// @Summary  Top record types
// @Tags     dashboard
// @Produce  json
// @Security BearerAuth
// @Success  200 {array} service.TipoTotal
// @Router   /api/dashboard/top-tipos-registro [get]
func DashboardTopTipos(svc service.DashboardService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tipos, err := svc.TopTipos(c.UserContext(), middleware.CurrentUser(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(tipos)
	}
}
