package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/sucursal-api/internal/application/analytics"
)

// DashboardHandler handles the dashboard endpoint (protected).
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler builds the handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Get godoc
// @Summary      Dashboard snapshot
// @Description  Stats for the selected period window, growth versus the
// @Description  preceding window, charts and recent activity.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        period  query  string  false  "daily|weekly|monthly|yearly"  default(monthly)
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	period := c.Query("period", "monthly")
	out, err := h.uc.GetDashboardData(c.UserContext(), period)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, out)
}
