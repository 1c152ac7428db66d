package controllers

import (
	"net/http"

	"github.com/cashdesk/pettycash.go/lib/responses"
	"github.com/cashdesk/pettycash.go/lib/service"
	"github.com/labstack/echo/v4"
)

// StatsController : StatsController struct
type StatsController struct {
	svc *service.PettyCashService
}

func NewStatsController(svc *service.PettyCashService) *StatsController {
	return &StatsController{svc: svc}
}

// GetStats godoc
// @Summary      Dashboard statistics
// @Description  Approved spend, pending queue size, available liquidity and per-category totals
// @Produce      json
// @Tags         Stats
// @Success      200  {object}  service.Stats
// @Router       /stats [get]
// @Security     OAuth2Password
func (controller *StatsController) GetStats(c echo.Context) error {
	stats, err := controller.svc.GetStats(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("Failed to compute stats: %v", err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}
	return c.JSON(http.StatusOK, stats)
}
