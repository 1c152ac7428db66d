package controllers

import (
	"net/http"

	"github.com/cashdesk/pettycash.go/lib/responses"
	"github.com/cashdesk/pettycash.go/lib/service"
	"github.com/labstack/echo/v4"
)

// AuditLogController : AuditLogController struct
type AuditLogController struct {
	svc *service.PettyCashService
}

func NewAuditLogController(svc *service.PettyCashService) *AuditLogController {
	return &AuditLogController{svc: svc}
}

// ListAuditLogs godoc
// @Summary      List audit log entries
// @Description  Most recent entries first, capped by the configured limit
// @Produce      json
// @Tags         Audit
// @Success      200  {array}  models.AuditLog
// @Router       /audit-logs [get]
// @Security     OAuth2Password
func (controller *AuditLogController) ListAuditLogs(c echo.Context) error {
	logs, err := controller.svc.AuditLogs(c.Request().Context(), controller.svc.Config.AuditLogLimit)
	if err != nil {
		c.Logger().Errorf("Failed to list audit logs: %v", err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}
	return c.JSON(http.StatusOK, logs)
}
